package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/config"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newCommand(args *config.CliArgs, keyspace string, stdin string) (*Command, *bytes.Buffer, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := &config.SchemaConfig{CliArgs: args, TypeCacheSize: 8}
	if keyspace != "" {
		ks := types.NewIdentifier(keyspace)
		cfg.Keyspace = &ks
	}
	out := &bytes.Buffer{}
	return &Command{
		Logger: zap.New(core),
		Config: cfg,
		Stdin:  strings.NewReader(stdin),
		Stdout: out,
	}, out, logs
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecuteDescribeFromStdin(t *testing.T) {
	cmd, out, logs := newCommand(&config.CliArgs{Format: config.FormatDescribe}, "shop",
		"create type address (street text);\ncreate table users (id int primary key, home frozen<address>)")

	require.NoError(t, cmd.Execute(context.Background()))
	assert.Equal(t, "CREATE TYPE shop.address (\n    street TEXT\n);\n\n"+
		"CREATE TABLE shop.users (\n    id INT,\n    home FROZEN<address>,\n    PRIMARY KEY (id)\n);\n", out.String())

	loaded := logs.FilterMessage("schema loaded").All()
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(1), loaded[0].ContextMap()["tables"])
	assert.Equal(t, int64(2), loaded[0].ContextMap()["statements"])
	assert.Equal(t, 2, logs.FilterMessage("resolved statement").Len())
}

func TestExecuteYamlAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	typesPath := writeScript(t, dir, "types.cql", "CREATE TYPE shop.address (street text, zip int);")
	tablesPath := writeScript(t, dir, "tables.cql", "CREATE TABLE shop.users (id uuid, at timestamp, home frozen<address>, PRIMARY KEY (id, at));")

	cmd, out, _ := newCommand(&config.CliArgs{Format: config.FormatYaml, Files: []string{typesPath, tablesPath}}, "", "")
	require.NoError(t, cmd.Execute(context.Background()))

	yamlOut := out.String()
	assert.Contains(t, yamlOut, "keyspaces:\n- name: shop\n")
	assert.Contains(t, yamlOut, "partitionKey:\n    - id\n")
	assert.Contains(t, yamlOut, "type: frozen<shop.address>")
	assert.Contains(t, yamlOut, "goType: time.Time")
}

func TestExecuteSystemTables(t *testing.T) {
	cmd, out, _ := newCommand(&config.CliArgs{Format: config.FormatSystem}, "shop",
		"CREATE TABLE users (id int, at timestamp, PRIMARY KEY (id, at)) WITH CLUSTERING ORDER BY (at DESC);")
	require.NoError(t, cmd.Execute(context.Background()))

	yamlOut := out.String()
	assert.Regexp(t, `(?m)^schema_version: [0-9a-f-]{36}$`, yamlOut)
	assert.Contains(t, yamlOut, "system_schema.keyspaces:\n- durable_writes: true\n")
	assert.Contains(t, yamlOut, "clustering_order: desc")
	assert.Contains(t, yamlOut, "kind: partition_key")
	assert.Contains(t, yamlOut, "table_name: users")
}

func TestExecuteErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		files   map[string]string
		stdin   string
		wantErr string
		wantRef string
	}{
		{
			name:    "syntax error names the file",
			files:   map[string]string{"broken.cql": "CREATE TABLE t (a int,)"},
			wantErr: "broken.cql: syntax error at line 1, column 23",
		},
		{
			name:    "unresolved type",
			stdin:   "CREATE TABLE t (a int PRIMARY KEY, b frozen<missing>)",
			wantErr: "unresolved type reference 'shop.missing'",
			wantRef: "shop.missing",
		},
		{
			name:    "unsupported option",
			stdin:   "CREATE TABLE t (a int PRIMARY KEY) WITH comment = 'x'",
			wantErr: "table option 'comment' is not supported",
		},
		{
			name:    "catalog validation",
			stdin:   "CREATE TABLE t (a int, b int)",
			wantErr: "table shop.t has no primary key",
		},
		{
			name:    "missing file",
			files:   map[string]string{},
			wantErr: "failed to read script",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := &config.CliArgs{Format: config.FormatDescribe}
			if tt.files != nil {
				args.Files = []string{filepath.Join(dir, "missing.cql")}
				for name, content := range tt.files {
					args.Files = []string{writeScript(t, dir, name, content)}
				}
			}
			cmd, out, _ := newCommand(args, "shop", tt.stdin)
			err := cmd.Execute(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, out.String())
			if tt.wantRef != "" {
				ref, ok := types.UnresolvedReference(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantRef, ref.String())
			}
		})
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd, _, _ := newCommand(&config.CliArgs{Format: config.FormatDescribe}, "", "CREATE TYPE ks.u (a int)")
	assert.ErrorIs(t, cmd.Execute(ctx), context.Canceled)
}

func TestExecuteDescribeType(t *testing.T) {
	tests := []struct {
		name    string
		format  config.OutputFormat
		expr    string
		want    []string
		wantErr string
	}{
		{
			name:   "describe",
			format: config.FormatDescribe,
			expr:   "map<text, frozen<list<int>>>",
			want:   []string{"type:     map<text, frozen<list<int>>>\n", "cql:      MAP<TEXT, FROZEN<LIST<INT>>>\n", "go:       map[string][]int\n"},
		},
		{
			name:   "yaml",
			format: config.FormatYaml,
			expr:   "set<bigint>",
			want:   []string{"type: set<bigint>\n", "cql: SET<BIGINT>\n", "goType: '[]int64'\n"},
		},
		{
			name:    "user defined types are not known",
			format:  config.FormatDescribe,
			expr:    "frozen<address>",
			wantErr: "unresolved type reference 'address'",
		},
		{
			name:    "invalid expression",
			format:  config.FormatDescribe,
			expr:    "list<>",
			wantErr: "invalid type 'list<>'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, out, _ := newCommand(&config.CliArgs{Format: tt.format, Type: tt.expr}, "", "")
			err := cmd.Execute(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	assert.NoError(t, Run(context.Background(), []string{"--version"}))

	err := Run(context.Background(), []string{"--format", "json"})
	assert.ErrorContains(t, err, "unsupported output format")

	err = Run(context.Background(), []string{"-f", "testdata/missing.yaml"})
	assert.ErrorContains(t, err, "failed to read config file")
}
