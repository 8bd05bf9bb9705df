package parser

import (
	"strings"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
)

// identifier is a bare word or a double quoted name. Bare words include the
// keywords; only quoting keeps the case.
type identifier struct {
	Quoted   *string `parser:"  @QuotedIdent"`
	Unquoted *string `parser:"| @Ident"`
}

func (i *identifier) toIdentifier() types.Identifier {
	if i.Quoted != nil {
		text := *i.Quoted
		text = text[1 : len(text)-1]
		return types.NewQuotedIdentifier(strings.ReplaceAll(text, `""`, `"`))
	}
	return types.NewIdentifier(*i.Unquoted)
}

// qualifiedIdentifier is `name` or `keyspace . name`.
type qualifiedIdentifier struct {
	First  *identifier `parser:"@@"`
	Second *identifier `parser:"( \".\" @@ )?"`
}

func (q *qualifiedIdentifier) toQualified() types.QualifiedIdentifier {
	first := q.First.toIdentifier()
	if q.Second == nil {
		return types.NewQualifiedIdentifier(nil, first)
	}
	return types.NewQualifiedIdentifier(&first, q.Second.toIdentifier())
}

func toIdentifiers(ids []*identifier) []types.Identifier {
	out := make([]types.Identifier, len(ids))
	for i, id := range ids {
		out[i] = id.toIdentifier()
	}
	return out
}
