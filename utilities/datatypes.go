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
	"fmt"
	"reflect"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/datastax/go-cassandra-native-protocol/datatype"
	"github.com/datastax/go-cassandra-native-protocol/primitive"
	"github.com/gocql/gocql"
)

// IsCollection checks if the provided data type is a list, set or map.
func IsCollection(dt datatype.DataType) bool {
	switch dt.GetDataTypeCode() {
	case primitive.DataTypeCodeList, primitive.DataTypeCodeSet, primitive.DataTypeCodeMap:
		return true
	default:
		return false
	}
}

// ToDataType converts a resolved type into its native protocol description.
// The protocol has no notion of frozen, so FROZEN yields its inner type.
func ToDataType(t types.ResolvedType) (datatype.DataType, error) {
	if dt, ok := t.Code().ScalarDataType(); ok {
		return dt, nil
	}
	switch t.Code() {
	case types.FROZEN:
		return ToDataType(t.InnerType())
	case types.LIST:
		et, err := ToDataType(t.ElementType())
		if err != nil {
			return nil, err
		}
		return datatype.NewListType(et), nil
	case types.SET:
		et, err := ToDataType(t.ElementType())
		if err != nil {
			return nil, err
		}
		return datatype.NewSetType(et), nil
	case types.MAP:
		kt, err := ToDataType(t.KeyType())
		if err != nil {
			return nil, err
		}
		vt, err := ToDataType(t.ValueType())
		if err != nil {
			return nil, err
		}
		return datatype.NewMapType(kt, vt), nil
	case types.TUPLE:
		elems, err := toDataTypes(t.Elements())
		if err != nil {
			return nil, err
		}
		return datatype.NewTupleType(elems...), nil
	case types.USER_DEFINED:
		return UserDefinedDataType(t.Ref())
	}
	return nil, fmt.Errorf("unhandled type: %s", t)
}

// UserDefinedDataType describes a resolved user defined type, fields included.
func UserDefinedDataType(u *types.UserDefinedType) (datatype.DataType, error) {
	if u == nil {
		return nil, fmt.Errorf("unresolved user defined type")
	}
	fieldTypes := make([]datatype.DataType, len(u.Fields))
	for i, f := range u.Fields {
		ft, err := ToDataType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s of type %s: %w", f.Name, u.Name, err)
		}
		fieldTypes[i] = ft
	}
	keyspace := ""
	if u.Name.Keyspace != nil {
		keyspace = u.Name.Keyspace.Text()
	}
	return datatype.NewUserDefinedType(keyspace, u.Name.Name.Text(), u.FieldNames(), fieldTypes)
}

func toDataTypes(ts []types.ResolvedType) ([]datatype.DataType, error) {
	out := make([]datatype.DataType, len(ts))
	for i, t := range ts {
		dt, err := ToDataType(t)
		if err != nil {
			return nil, err
		}
		out[i] = dt
	}
	return out, nil
}

var gocqlScalars = map[types.CqlTypeCode]gocql.Type{
	types.ASCII:     gocql.TypeAscii,
	types.BIGINT:    gocql.TypeBigInt,
	types.BLOB:      gocql.TypeBlob,
	types.BOOLEAN:   gocql.TypeBoolean,
	types.COUNTER:   gocql.TypeCounter,
	types.DATE:      gocql.TypeDate,
	types.DECIMAL:   gocql.TypeDecimal,
	types.DOUBLE:    gocql.TypeDouble,
	types.DURATION:  gocql.TypeDuration,
	types.FLOAT:     gocql.TypeFloat,
	types.INET:      gocql.TypeInet,
	types.INT:       gocql.TypeInt,
	types.SMALLINT:  gocql.TypeSmallInt,
	types.TEXT:      gocql.TypeText,
	types.TIME:      gocql.TypeTime,
	types.TIMESTAMP: gocql.TypeTimestamp,
	types.TIMEUUID:  gocql.TypeTimeUUID,
	types.TINYINT:   gocql.TypeTinyInt,
	types.UUID:      gocql.TypeUUID,
	types.VARCHAR:   gocql.TypeVarchar,
	types.VARINT:    gocql.TypeVarint,
}

// ToGocqlType converts a resolved type into the driver's type info for the
// given protocol version. FROZEN yields its inner type.
func ToGocqlType(t types.ResolvedType, proto byte) (gocql.TypeInfo, error) {
	if typ, ok := gocqlScalars[t.Code()]; ok {
		return gocql.NewNativeType(proto, typ, ""), nil
	}
	switch t.Code() {
	case types.FROZEN:
		return ToGocqlType(t.InnerType(), proto)
	case types.LIST, types.SET:
		elem, err := ToGocqlType(t.ElementType(), proto)
		if err != nil {
			return nil, err
		}
		typ := gocql.TypeList
		if t.Code() == types.SET {
			typ = gocql.TypeSet
		}
		return gocql.CollectionType{NativeType: gocql.NewNativeType(proto, typ, ""), Elem: elem}, nil
	case types.MAP:
		key, err := ToGocqlType(t.KeyType(), proto)
		if err != nil {
			return nil, err
		}
		elem, err := ToGocqlType(t.ValueType(), proto)
		if err != nil {
			return nil, err
		}
		return gocql.CollectionType{NativeType: gocql.NewNativeType(proto, gocql.TypeMap, ""), Key: key, Elem: elem}, nil
	case types.TUPLE:
		elems := make([]gocql.TypeInfo, len(t.Elements()))
		for i, e := range t.Elements() {
			info, err := ToGocqlType(e, proto)
			if err != nil {
				return nil, err
			}
			elems[i] = info
		}
		return gocql.TupleTypeInfo{NativeType: gocql.NewNativeType(proto, gocql.TypeTuple, ""), Elems: elems}, nil
	case types.USER_DEFINED:
		u := t.Ref()
		if u == nil {
			return nil, fmt.Errorf("unresolved user defined type")
		}
		fields := make([]gocql.UDTField, len(u.Fields))
		for i, f := range u.Fields {
			info, err := ToGocqlType(f.Type, proto)
			if err != nil {
				return nil, fmt.Errorf("field %s of type %s: %w", f.Name, u.Name, err)
			}
			fields[i] = gocql.UDTField{Name: f.Name.Text(), Type: info}
		}
		keyspace := ""
		if u.Name.Keyspace != nil {
			keyspace = u.Name.Keyspace.Text()
		}
		return gocql.UDTTypeInfo{
			NativeType: gocql.NewNativeType(proto, gocql.TypeUDT, ""),
			KeySpace:   keyspace,
			Name:       u.Name.Name.Text(),
			Elements:   fields,
		}, nil
	}
	return nil, fmt.Errorf("unhandled type: %s", t)
}

// GoTypeName is the Go type the driver unmarshals a value of info into,
// e.g. "[]string" for list<text>. Types the driver cannot allocate are
// reported as "interface {}".
func GoTypeName(info gocql.TypeInfo) (name string) {
	defer func() {
		if recover() != nil {
			name = "interface {}"
		}
	}()
	return reflect.TypeOf(info.New()).Elem().String()
}
