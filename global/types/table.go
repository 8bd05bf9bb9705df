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
package types

import "strings"

// Column is a column definition. R follows CqlType: Identifier before
// resolution, *UserDefinedType after.
type Column[R any] struct {
	Name Identifier
	Type CqlType[R]
	// IsStatic is the STATIC suffix.
	IsStatic bool
	// IsPrimaryKey is the inline PRIMARY KEY suffix, independent of the
	// table level primary key clause.
	IsPrimaryKey bool
}

type ParsedColumn = Column[Identifier]
type ResolvedColumn = Column[*UserDefinedType]

func (c Column[R]) QualifiedName() QualifiedIdentifier {
	return c.Name.QualifiedName()
}

// PrimaryKey holds column references. C is an Identifier before resolution
// and the table's own *ResolvedColumn after.
type PrimaryKey[C any] struct {
	PartitionKey      []C
	ClusteringColumns []C
}

type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

type ClusteringOrder[C any] struct {
	Column C
	Order  Order
}

// TableOption is a free form `name = value` option.
type TableOption struct {
	Name  Identifier
	Value string
}

type TableOptions[C any] struct {
	CompactStorage  bool
	ClusteringOrder []ClusteringOrder[C]
	Options         []TableOption
}

// Table is a CREATE TABLE statement. Col is the column representation and C
// the representation of column references held by the primary key and the
// clustering order.
type Table[Col any, C any] struct {
	IfNotExists bool
	Name        QualifiedIdentifier
	Columns     []Col
	PrimaryKey  *PrimaryKey[C]
	Options     *TableOptions[C]
}

type ParsedTable = Table[ParsedColumn, Identifier]

// ResolvedTable shares each column pointer between Columns, PrimaryKey and
// Options.
type ResolvedTable = Table[*ResolvedColumn, *ResolvedColumn]

func (t Table[Col, C]) QualifiedName() QualifiedIdentifier {
	return t.Name
}

// Field is a member of a user defined type.
type Field[R any] struct {
	Name Identifier
	Type CqlType[R]
}

// ParsedUserDefinedType is a CREATE TYPE statement with raw field type
// references.
type ParsedUserDefinedType struct {
	IfNotExists bool
	Name        QualifiedIdentifier
	Fields      []Field[Identifier]
}

func (u ParsedUserDefinedType) QualifiedName() QualifiedIdentifier {
	return u.Name
}

// UserDefinedType is a resolved CREATE TYPE. Pointers to it are the shared
// handles held by columns, fields and nested types of later statements.
type UserDefinedType struct {
	IfNotExists bool
	Name        QualifiedIdentifier
	Fields      []Field[*UserDefinedType]
}

func (u *UserDefinedType) QualifiedName() QualifiedIdentifier {
	return u.Name
}

func (u *UserDefinedType) FieldNames() []string {
	names := make([]string, len(u.Fields))
	for i, f := range u.Fields {
		names[i] = f.Name.Text()
	}
	return names
}

func (u *UserDefinedType) String() string {
	var b strings.Builder
	b.WriteString(u.Name.String())
	b.WriteString("{")
	for i, f := range u.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name.String())
		b.WriteString(" ")
		b.WriteString(f.Type.String())
	}
	b.WriteString("}")
	return b.String()
}
