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
package utilities

import (
	"testing"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/datastax/go-cassandra-native-protocol/datatype"
	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolvedType = types.ResolvedType

func scalar(code types.CqlTypeCode) resolvedType {
	return types.NewScalarType[*types.UserDefinedType](code)
}

func addressType() *types.UserDefinedType {
	return &types.UserDefinedType{
		Name: types.Qualified("ks", "address"),
		Fields: []types.Field[*types.UserDefinedType]{
			{Name: types.NewIdentifier("street"), Type: scalar(types.TEXT)},
			{Name: types.NewIdentifier("zip"), Type: scalar(types.INT)},
		},
	}
}

func TestIsCollectionDataType(t *testing.T) {
	testCases := []struct {
		input datatype.DataType
		want  bool
	}{
		{datatype.Varchar, false},
		{datatype.Blob, false},
		{datatype.Bigint, false},
		{datatype.Boolean, false},
		{datatype.Date, false},
		{datatype.NewMapType(datatype.Varchar, datatype.Boolean), true},
		{datatype.NewListType(datatype.Int), true},
		{datatype.NewSetType(datatype.Varchar), true},
		{datatype.NewTupleType(datatype.Int), false},
	}

	for _, tt := range testCases {
		t.Run(tt.input.String(), func(t *testing.T) {
			got := IsCollection(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToDataType(t *testing.T) {
	udt, err := datatype.NewUserDefinedType("ks", "address", []string{"street", "zip"}, []datatype.DataType{datatype.Varchar, datatype.Int})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input resolvedType
		want  datatype.DataType
	}{
		{"int", scalar(types.INT), datatype.Int},
		{"text", scalar(types.TEXT), datatype.Varchar},
		{"varchar", scalar(types.VARCHAR), datatype.Varchar},
		{"timeuuid", scalar(types.TIMEUUID), datatype.Timeuuid},
		{"list", types.NewListType(scalar(types.BIGINT)), datatype.NewListType(datatype.Bigint)},
		{"set", types.NewSetType(scalar(types.TEXT)), datatype.NewSetType(datatype.Varchar)},
		{"map", types.NewMapType(scalar(types.TEXT), scalar(types.BOOLEAN)), datatype.NewMapType(datatype.Varchar, datatype.Boolean)},
		{"frozen list", types.NewFrozenType(types.NewListType(scalar(types.INT))), datatype.NewListType(datatype.Int)},
		{"tuple", types.NewTupleType(scalar(types.INT), scalar(types.TEXT)), datatype.NewTupleType(datatype.Int, datatype.Varchar)},
		{"udt", types.NewUserDefinedTypeRef(addressType()), udt},
		{"frozen udt", types.NewFrozenType(types.NewUserDefinedTypeRef(addressType())), udt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDataType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToDataTypeUnresolved(t *testing.T) {
	_, err := ToDataType(types.NewUserDefinedTypeRef[*types.UserDefinedType](nil))
	assert.Error(t, err)
}

func TestToGocqlType(t *testing.T) {
	const proto = 4
	tests := []struct {
		name     string
		input    resolvedType
		wantType gocql.Type
		wantGo   string
	}{
		{"int", scalar(types.INT), gocql.TypeInt, "int"},
		{"bigint", scalar(types.BIGINT), gocql.TypeBigInt, "int64"},
		{"text", scalar(types.TEXT), gocql.TypeText, "string"},
		{"boolean", scalar(types.BOOLEAN), gocql.TypeBoolean, "bool"},
		{"list", types.NewListType(scalar(types.INT)), gocql.TypeList, "[]int"},
		{"set", types.NewSetType(scalar(types.TEXT)), gocql.TypeSet, "[]string"},
		{"map", types.NewMapType(scalar(types.TEXT), scalar(types.BIGINT)), gocql.TypeMap, "map[string]int64"},
		{"frozen", types.NewFrozenType(types.NewListType(scalar(types.TEXT))), gocql.TypeList, "[]string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ToGocqlType(tt.input, proto)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, info.Type())
			assert.Equal(t, tt.wantGo, GoTypeName(info))
		})
	}
}

func TestToGocqlTypeUserDefined(t *testing.T) {
	info, err := ToGocqlType(types.NewUserDefinedTypeRef(addressType()), 4)
	require.NoError(t, err)
	udt, ok := info.(gocql.UDTTypeInfo)
	require.True(t, ok)
	assert.Equal(t, "ks", udt.KeySpace)
	assert.Equal(t, "address", udt.Name)
	require.Len(t, udt.Elements, 2)
	assert.Equal(t, "street", udt.Elements[0].Name)
	assert.Equal(t, gocql.TypeText, udt.Elements[0].Type.Type())
	assert.Equal(t, "zip", udt.Elements[1].Name)
	assert.Equal(t, gocql.TypeInt, udt.Elements[1].Type.Type())
}

func TestToGocqlTypeTuple(t *testing.T) {
	info, err := ToGocqlType(types.NewTupleType(scalar(types.INT), scalar(types.UUID)), 4)
	require.NoError(t, err)
	tuple, ok := info.(gocql.TupleTypeInfo)
	require.True(t, ok)
	require.Len(t, tuple.Elems, 2)
	assert.Equal(t, gocql.TypeInt, tuple.Elems[0].Type())
	assert.Equal(t, gocql.TypeUUID, tuple.Elems[1].Type())
}
