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

package metadata

import (
	"fmt"
	"slices"
	"strings"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/utilities"
	"github.com/datastax/go-cassandra-native-protocol/datatype"
	"github.com/datastax/go-cassandra-native-protocol/message"
)

type KeyType string

const (
	KeyTypePartition  KeyType = "partition_key"
	KeyTypeClustering KeyType = "clustering"
	KeyTypeStatic     KeyType = "static"
	KeyTypeRegular    KeyType = "regular"
)

// ColumnSchema is a resolved column together with its role in the table.
type ColumnSchema struct {
	Column  *types.ResolvedColumn
	KeyType KeyType
	// PkPrecedence is the 1-based position in the primary key, 0 for other
	// columns.
	PkPrecedence int
	// Order is only meaningful for clustering columns.
	Order    types.Order
	DataType datatype.DataType
	Metadata message.ColumnMetadata
}

func (c *ColumnSchema) Name() types.Identifier {
	return c.Column.Name
}

func (c *ColumnSchema) IsPrimaryKey() bool {
	return c.KeyType == KeyTypePartition || c.KeyType == KeyTypeClustering
}

// TableSchema contains all schema information about a single table
type TableSchema struct {
	Keyspace types.Identifier
	Name     types.Identifier
	Table    *types.ResolvedTable
	// Columns are in definition order.
	Columns     []*ColumnSchema
	PrimaryKeys []*ColumnSchema
}

// NewTableSchema validates the primary key of a resolved table and derives
// the role of each column. The table must be keyspace qualified.
func NewTableSchema(table *types.ResolvedTable) (*TableSchema, error) {
	if table.Name.Keyspace == nil {
		return nil, fmt.Errorf("table %s has no keyspace", table.Name)
	}
	name := table.Name

	for i, c := range table.Columns {
		for _, other := range table.Columns[:i] {
			if other.Name.Equal(c.Name) {
				return nil, fmt.Errorf("duplicate column %s in table %s", c.Name, name)
			}
		}
	}

	pk, err := effectivePrimaryKey(table)
	if err != nil {
		return nil, err
	}

	columns := make([]*ColumnSchema, len(table.Columns))
	byColumn := make(map[*types.ResolvedColumn]*ColumnSchema, len(table.Columns))
	for i, c := range table.Columns {
		dt, err := utilities.ToDataType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s of table %s: %w", c.Name, name, err)
		}
		keyType := KeyTypeRegular
		if c.IsStatic {
			keyType = KeyTypeStatic
		}
		columns[i] = &ColumnSchema{
			Column:   c,
			KeyType:  keyType,
			DataType: dt,
			Metadata: message.ColumnMetadata{
				Keyspace: name.Keyspace.Text(),
				Table:    name.Name.Text(),
				Name:     c.Name.Text(),
				Index:    int32(i),
				Type:     dt,
			},
		}
		byColumn[c] = columns[i]
	}

	var pks []*ColumnSchema
	assign := func(c *types.ResolvedColumn, keyType KeyType) error {
		col := byColumn[c]
		if col.IsPrimaryKey() {
			return fmt.Errorf("column %s appears more than once in the primary key of table %s", c.Name, name)
		}
		if col.KeyType == KeyTypeStatic {
			return fmt.Errorf("primary key column %s of table %s cannot be static", c.Name, name)
		}
		col.KeyType = keyType
		pks = append(pks, col)
		col.PkPrecedence = len(pks)
		return nil
	}
	for _, c := range pk.PartitionKey {
		if err := assign(c, KeyTypePartition); err != nil {
			return nil, err
		}
	}
	for _, c := range pk.ClusteringColumns {
		if err := assign(c, KeyTypeClustering); err != nil {
			return nil, err
		}
	}

	if len(pk.ClusteringColumns) == 0 {
		for _, col := range columns {
			if col.KeyType == KeyTypeStatic {
				return nil, fmt.Errorf("static column %s of table %s requires at least one clustering column", col.Name(), name)
			}
		}
	}

	if table.Options != nil {
		for _, o := range table.Options.ClusteringOrder {
			col := byColumn[o.Column]
			if col.KeyType != KeyTypeClustering {
				return nil, fmt.Errorf("column %s of table %s is not a clustering column and cannot be ordered", o.Column.Name, name)
			}
			col.Order = o.Order
		}
	}

	return &TableSchema{
		Keyspace:    *name.Keyspace,
		Name:        name.Name,
		Table:       table,
		Columns:     columns,
		PrimaryKeys: pks,
	}, nil
}

// effectivePrimaryKey is the PRIMARY KEY clause if present, otherwise the
// single column marked PRIMARY KEY inline.
func effectivePrimaryKey(table *types.ResolvedTable) (*types.PrimaryKey[*types.ResolvedColumn], error) {
	var inline []*types.ResolvedColumn
	for _, c := range table.Columns {
		if c.IsPrimaryKey {
			inline = append(inline, c)
		}
	}
	if table.PrimaryKey != nil {
		if len(inline) > 0 {
			return nil, fmt.Errorf("table %s declares its primary key both inline and in a PRIMARY KEY clause", table.Name)
		}
		return table.PrimaryKey, nil
	}
	switch len(inline) {
	case 0:
		return nil, fmt.Errorf("table %s has no primary key", table.Name)
	case 1:
		return &types.PrimaryKey[*types.ResolvedColumn]{PartitionKey: inline}, nil
	default:
		return nil, fmt.Errorf("table %s declares more than one inline primary key", table.Name)
	}
}

func (t *TableSchema) QualifiedName() types.QualifiedIdentifier {
	keyspace := t.Keyspace
	return types.NewQualifiedIdentifier(&keyspace, t.Name)
}

func (t *TableSchema) GetColumn(name types.Identifier) (*ColumnSchema, error) {
	for _, c := range t.Columns {
		if c.Name().Equal(name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown column '%s' in table %s", name, t.QualifiedName())
}

func (t *TableSchema) HasColumn(name types.Identifier) bool {
	_, err := t.GetColumn(name)
	return err == nil
}

func (t *TableSchema) PartitionKeys() []*ColumnSchema {
	return t.keysOf(KeyTypePartition)
}

func (t *TableSchema) ClusteringColumns() []*ColumnSchema {
	return t.keysOf(KeyTypeClustering)
}

func (t *TableSchema) keysOf(keyType KeyType) []*ColumnSchema {
	var result []*ColumnSchema
	for _, pk := range t.PrimaryKeys {
		if pk.KeyType == keyType {
			result = append(result, pk)
		}
	}
	return result
}

func (t *TableSchema) GetMetadata() []*message.ColumnMetadata {
	results := make([]*message.ColumnMetadata, len(t.Columns))
	for i, c := range t.Columns {
		results[i] = &c.Metadata
	}
	return results
}

func (t *TableSchema) CompactStorage() bool {
	return t.Table.Options != nil && t.Table.Options.CompactStorage
}

// Describe renders the table as a CREATE TABLE statement with the primary
// key columns first.
func (t *TableSchema) Describe() string {
	cols := slices.Clone(t.Columns)
	slices.SortStableFunc(cols, func(a, b *ColumnSchema) int {
		if a.IsPrimaryKey() && b.IsPrimaryKey() {
			return a.PkPrecedence - b.PkPrecedence
		} else if a.IsPrimaryKey() {
			return -1
		} else if b.IsPrimaryKey() {
			return 1
		}
		return int(a.Metadata.Index - b.Metadata.Index)
	})

	var colDefs []string
	for _, col := range cols {
		def := fmt.Sprintf("%s %s", col.Name(), DescribeType(col.Column.Type))
		if col.KeyType == KeyTypeStatic {
			def += " STATIC"
		}
		colDefs = append(colDefs, def)
	}

	pkCols := names(t.PartitionKeys())
	clusteringCols := names(t.ClusteringColumns())

	partition := pkCols[0]
	if len(pkCols) > 1 {
		partition = "(" + strings.Join(pkCols, ", ") + ")"
	}
	pkClause := fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(append([]string{partition}, clusteringCols...), ", "))

	var options []string
	if t.Table.Options != nil && len(t.Table.Options.ClusteringOrder) > 0 {
		var orders []string
		for _, o := range t.Table.Options.ClusteringOrder {
			orders = append(orders, fmt.Sprintf("%s %s", o.Column.Name, o.Order))
		}
		options = append(options, fmt.Sprintf("CLUSTERING ORDER BY (%s)", strings.Join(orders, ", ")))
	}
	if t.CompactStorage() {
		options = append(options, "COMPACT STORAGE")
	}
	with := ""
	if len(options) > 0 {
		with = " WITH " + strings.Join(options, "\n    AND ")
	}

	return fmt.Sprintf("CREATE TABLE %s (\n    %s,\n    %s\n)%s;",
		t.QualifiedName(),
		strings.Join(colDefs, ",\n    "),
		pkClause,
		with)
}

func names(cols []*ColumnSchema) []string {
	result := make([]string, len(cols))
	for i, c := range cols {
		result[i] = c.Name().String()
	}
	return result
}

// DescribeType renders t with upper case keywords and user defined type
// names as written. Type references are bare names, resolved against the
// keyspace of the enclosing statement.
func DescribeType(t types.ResolvedType) string {
	switch t.Code() {
	case types.FROZEN:
		return "FROZEN<" + DescribeType(t.InnerType()) + ">"
	case types.LIST, types.SET, types.MAP, types.TUPLE:
		elems := make([]string, len(t.Elements()))
		for i, e := range t.Elements() {
			elems[i] = DescribeType(e)
		}
		return strings.ToUpper(t.Code().String()) + "<" + strings.Join(elems, ", ") + ">"
	case types.USER_DEFINED:
		return t.Ref().Name.Name.String()
	default:
		return strings.ToUpper(t.Code().String())
	}
}
