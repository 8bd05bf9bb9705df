package utilities

import (
	"testing"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/stretchr/testify/assert"
)

func TestNeedsQuoting(t *testing.T) {
	tests := []struct {
		name string
		id   types.Identifier
		want bool
	}{
		{"plain name", types.NewIdentifier("user_id"), false},
		{"reserved keyword", types.NewIdentifier("select"), true},
		{"reserved keyword upper case", types.NewIdentifier("TABLE"), true},
		{"quoted keyword", types.NewQuotedIdentifier("select"), false},
		{"non reserved keyword", types.NewIdentifier("ttl"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsQuoting(tt.id))
		})
	}
}

func TestIsReservedCqlKeyword(t *testing.T) {
	assert.True(t, IsReservedCqlKeyword("select"))
	assert.True(t, IsReservedCqlKeyword("ttl"))
	assert.False(t, IsReservedCqlKeyword("customer"))
}
