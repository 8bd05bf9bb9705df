/*
 * Copyright (C) 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not
 * use this file except in compliance with the License. You may obtain a copy of
 * the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
 * WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
 * License for the specific language governing permissions and limitations under
 * the License.
 */

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/config"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/constants"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/metadata"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/parser"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/resolver"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/system_tables"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/utilities"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const stdinName = "-"

// Run runs the command line tool. 'args' shouldn't include the executable
// (i.e. os.Args[1:]).
func Run(ctx context.Context, args []string) error {
	cliArgs, err := config.ParseCliArgs(args)
	if err != nil {
		return err
	}

	if cliArgs.Version {
		fmt.Printf("Version - %s\n", constants.ReleaseVersion)
		return nil
	}

	cfg, err := config.LoadSchemaConfig(cliArgs)
	if err != nil {
		return err
	}

	logger, err := config.ParseLoggerConfig(cfg)
	if err != nil {
		return fmt.Errorf("unable to create logger: %w", err)
	}
	defer logger.Sync()

	cmd := &Command{
		Logger: logger,
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
	if err := cmd.Execute(ctx); err != nil {
		logger.Error("failed", zap.Error(err))
		return err
	}
	return nil
}

// Command reads CQL scripts, resolves them into a schema catalog and prints
// it in the configured format.
type Command struct {
	Logger *zap.Logger
	Config *config.SchemaConfig
	Stdin  io.Reader
	Stdout io.Writer
}

func (c *Command) Execute(ctx context.Context) error {
	if c.Config.CliArgs.Type != "" {
		return c.describeType(c.Config.CliArgs.Type)
	}

	stmts, err := c.readScripts(ctx)
	if err != nil {
		return err
	}

	resolved, err := resolver.NewResolver(c.Logger).Resolve(stmts, c.Config.Keyspace)
	if err != nil {
		return err
	}

	catalog, err := metadata.BuildSchemaMetadata(c.Logger, resolved)
	if err != nil {
		return err
	}
	c.Logger.Info("schema loaded",
		zap.Int("statements", len(stmts)),
		zap.Strings("keyspaces", catalog.ListKeyspaces()),
		zap.Int("tables", catalog.CountTables()),
		zap.Int("types", len(catalog.Types())))

	switch c.Config.CliArgs.Format {
	case config.FormatYaml:
		export, err := catalog.Export()
		if err != nil {
			return err
		}
		return c.writeYaml(export)
	case config.FormatSystem:
		tables := system_tables.NewSystemTableManager(catalog, c.Logger)
		if err := tables.Initialize(); err != nil {
			return err
		}
		defer tables.Close()
		return c.writeYaml(tables.Snapshot())
	default:
		_, err = fmt.Fprintln(c.Stdout, catalog.Describe())
		return err
	}
}

// readScripts parses every input in order. Statements of later scripts can
// reference types created by earlier ones.
func (c *Command) readScripts(ctx context.Context) ([]types.ParsedStatement, error) {
	files := c.Config.CliArgs.Files
	if len(files) == 0 {
		files = []string{stdinName}
	}

	var stmts []types.ParsedStatement
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := c.readScript(name)
		if err != nil {
			return nil, err
		}
		parsed, err := parser.ParseCql(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		c.Logger.Debug("parsed script", zap.String("file", name), zap.Int("statements", len(parsed)))
		stmts = append(stmts, parsed...)
	}
	return stmts, nil
}

func (c *Command) readScript(name string) (string, error) {
	if name == stdinName {
		data, err := io.ReadAll(c.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(data), nil
}

type typeReport struct {
	Type     string `yaml:"type"`
	Cql      string `yaml:"cql"`
	Protocol string `yaml:"protocol"`
	GoType   string `yaml:"goType"`
}

func (c *Command) describeType(expr string) error {
	tp, err := utilities.NewTypeParser(c.Config.TypeCacheSize)
	if err != nil {
		return err
	}
	t, err := tp.ParseScalarOrCollection(expr)
	if err != nil {
		return err
	}
	dt, err := utilities.ToDataType(t)
	if err != nil {
		return err
	}
	info, err := utilities.ToGocqlType(t, metadata.ExportProtocolVersion)
	if err != nil {
		return err
	}
	report := typeReport{
		Type:     t.String(),
		Cql:      metadata.DescribeType(t),
		Protocol: dt.String(),
		GoType:   utilities.GoTypeName(info),
	}
	if c.Config.CliArgs.Format == config.FormatYaml {
		return c.writeYaml(report)
	}
	_, err = fmt.Fprintf(c.Stdout, "type:     %s\ncql:      %s\nprotocol: %s\ngo:       %s\n",
		report.Type, report.Cql, report.Protocol, report.GoType)
	return err
}

func (c *Command) writeYaml(v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	_, err = c.Stdout.Write(out)
	return err
}
