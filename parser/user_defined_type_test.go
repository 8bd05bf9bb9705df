package parser

import (
	"errors"
	"testing"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateType(t *testing.T) {
	quotedKs := types.NewQuotedIdentifier("my_keyspace")
	tests := []struct {
		name  string
		input string
		want  types.ParsedUserDefinedType
	}{
		{
			name: "all kinds of fields",
			input: `CREATE TYPE IF NOT EXISTS "my_keyspace".my_type (
				my_field1 int,
				my_field2 text,
				my_field3 frozen<list<text>>,
				my_field4 frozen<map<text, text>>,
				my_field5 some_udt
			)`,
			want: types.ParsedUserDefinedType{
				IfNotExists: true,
				Name:        types.NewQualifiedIdentifier(&quotedKs, id("my_type")),
				Fields: []types.Field[types.Identifier]{
					{Name: id("my_field1"), Type: scalar(types.INT)},
					{Name: id("my_field2"), Type: scalar(types.TEXT)},
					{Name: id("my_field3"), Type: types.NewFrozenType(types.NewListType(scalar(types.TEXT)))},
					{Name: id("my_field4"), Type: types.NewFrozenType(types.NewMapType(scalar(types.TEXT), scalar(types.TEXT)))},
					{Name: id("my_field5"), Type: udt("some_udt")},
				},
			},
		},
		{
			name:  "single field without keyspace",
			input: "create type point(x double)",
			want: types.ParsedUserDefinedType{
				Name:   bare("point"),
				Fields: []types.Field[types.Identifier]{{Name: id("x"), Type: scalar(types.DOUBLE)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := ParseCql(tt.input)
			require.NoError(t, err)
			require.Len(t, stmts, 1)
			require.True(t, stmts[0].IsCreateUserDefinedType())
			assert.Equal(t, tt.want, stmts[0].UserDefinedType)
		})
	}
}

func TestCreateTypeSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no fields", input: "CREATE TYPE t ()"},
		{name: "static field", input: "CREATE TYPE t (a int STATIC)"},
		{name: "primary key field", input: "CREATE TYPE t (a int PRIMARY KEY)"},
		{name: "missing type", input: "CREATE TYPE t (a)"},
		{name: "trailing comma", input: "CREATE TYPE t (a int,)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCql(tt.input)
			var syntaxErr *types.SyntaxError
			assert.True(t, errors.As(err, &syntaxErr))
		})
	}
}
