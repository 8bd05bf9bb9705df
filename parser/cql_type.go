package parser

import (
	"strings"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
)

var scalarsByName = func() map[string]types.CqlTypeCode {
	m := make(map[string]types.CqlTypeCode)
	for _, code := range types.ScalarCodes() {
		m[code.String()] = code
	}
	return m
}()

// cqlType tries the scalar keywords, then the parameterized forms, then
// falls back to a user defined type reference. A keyword that is not
// followed by its parameter list, like a bare `frozen`, is a reference too.
// References are always bare names.
type cqlType struct {
	Scalar *string     `parser:"  @(\"ASCII\" | \"BIGINT\" | \"BLOB\" | \"BOOLEAN\" | \"COUNTER\" | \"DATE\" | \"DECIMAL\" | \"DOUBLE\" | \"DURATION\" | \"FLOAT\" | \"INET\" | \"INT\" | \"SMALLINT\" | \"TEXT\" | \"TIME\" | \"TIMESTAMP\" | \"TIMEUUID\" | \"TINYINT\" | \"UUID\" | \"VARCHAR\" | \"VARINT\")"`
	Frozen *cqlType    `parser:"| \"FROZEN\" \"<\" @@ \">\""`
	Map    *mapType    `parser:"| \"MAP\" \"<\" @@ \">\""`
	Set    *cqlType    `parser:"| \"SET\" \"<\" @@ \">\""`
	List   *cqlType    `parser:"| \"LIST\" \"<\" @@ \">\""`
	Tuple  []*cqlType  `parser:"| \"TUPLE\" \"<\" @@ ( \",\" @@ )* \">\""`
	Ref    *identifier `parser:"| @@"`
}

type mapType struct {
	Key   *cqlType `parser:"@@ \",\""`
	Value *cqlType `parser:"@@"`
}

func (c *cqlType) toParsed() types.ParsedType {
	switch {
	case c.Scalar != nil:
		return types.NewScalarType[types.Identifier](scalarsByName[strings.ToLower(*c.Scalar)])
	case c.Frozen != nil:
		return types.NewFrozenType(c.Frozen.toParsed())
	case c.Map != nil:
		return types.NewMapType(c.Map.Key.toParsed(), c.Map.Value.toParsed())
	case c.Set != nil:
		return types.NewSetType(c.Set.toParsed())
	case c.List != nil:
		return types.NewListType(c.List.toParsed())
	case len(c.Tuple) > 0:
		rest := make([]types.ParsedType, 0, len(c.Tuple)-1)
		for _, t := range c.Tuple[1:] {
			rest = append(rest, t.toParsed())
		}
		return types.NewTupleType(c.Tuple[0].toParsed(), rest...)
	default:
		return types.NewUserDefinedTypeRef(c.Ref.toIdentifier())
	}
}
