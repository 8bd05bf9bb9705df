package metadata

import (
	"fmt"
	"strings"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/utilities"
	"github.com/datastax/go-cassandra-native-protocol/datatype"
)

// TypeSchema is a user defined type registered in a keyspace.
type TypeSchema struct {
	Keyspace types.Identifier
	Name     types.Identifier
	Type     *types.UserDefinedType
	DataType datatype.DataType
}

func NewTypeSchema(udt *types.UserDefinedType) (*TypeSchema, error) {
	if udt.Name.Keyspace == nil {
		return nil, fmt.Errorf("type %s has no keyspace", udt.Name)
	}
	for i, f := range udt.Fields {
		for _, other := range udt.Fields[:i] {
			if other.Name.Equal(f.Name) {
				return nil, fmt.Errorf("duplicate field %s in type %s", f.Name, udt.Name)
			}
		}
	}
	dt, err := utilities.UserDefinedDataType(udt)
	if err != nil {
		return nil, err
	}
	return &TypeSchema{
		Keyspace: *udt.Name.Keyspace,
		Name:     udt.Name.Name,
		Type:     udt,
		DataType: dt,
	}, nil
}

func (t *TypeSchema) QualifiedName() types.QualifiedIdentifier {
	return t.Type.Name
}

func (t *TypeSchema) Describe() string {
	fields := make([]string, len(t.Type.Fields))
	for i, f := range t.Type.Fields {
		fields[i] = fmt.Sprintf("%s %s", f.Name, DescribeType(f.Type))
	}
	return fmt.Sprintf("CREATE TYPE %s (\n    %s\n);", t.QualifiedName(), strings.Join(fields, ",\n    "))
}
