package parser

import (
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
)

// createType is `CREATE TYPE [IF NOT EXISTS] name ( ident type (, ident type)* )`.
type createType struct {
	IfNotExists bool                 `parser:"\"CREATE\" \"TYPE\" @(\"IF\" \"NOT\" \"EXISTS\")?"`
	Name        *qualifiedIdentifier `parser:"@@"`
	Fields      []*field             `parser:"\"(\" @@ ( \",\" @@ )* \")\""`
}

type field struct {
	Name *identifier `parser:"@@"`
	Type *cqlType    `parser:"@@"`
}

func (c *createType) toParsed() types.ParsedUserDefinedType {
	u := types.ParsedUserDefinedType{
		IfNotExists: c.IfNotExists,
		Name:        c.Name.toQualified(),
		Fields:      make([]types.Field[types.Identifier], len(c.Fields)),
	}
	for i, f := range c.Fields {
		u.Fields[i] = types.Field[types.Identifier]{Name: f.Name.toIdentifier(), Type: f.Type.toParsed()}
	}
	return u
}
