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
package parser

import (
	"strings"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/alecthomas/participle/v2/lexer"
)

// createTable is
//
//	CREATE TABLE [IF NOT EXISTS] name ( column (, column)* [, PRIMARY KEY (...)] ) [WITH options]
//
// The primary key clause is accepted anywhere in the element list by the
// grammar and checked to be last during conversion.
type createTable struct {
	IfNotExists bool                 `parser:"\"CREATE\" \"TABLE\" @(\"IF\" \"NOT\" \"EXISTS\")?"`
	Name        *qualifiedIdentifier `parser:"@@"`
	First       *column              `parser:"\"(\" @@"`
	Rest        []*tableElement      `parser:"( \",\" @@ )* \")\""`
	Options     []*tableOption       `parser:"( \"WITH\" @@ ( \"AND\" @@ )* )?"`
}

type tableElement struct {
	Pos lexer.Position

	PrimaryKey *primaryKey `parser:"  \"PRIMARY\" \"KEY\" @@"`
	Column     *column     `parser:"| @@"`
}

// column is `name type [STATIC] [PRIMARY KEY]`. The suffixes are only
// recognized in that order.
type column struct {
	Name       *identifier `parser:"@@"`
	Type       *cqlType    `parser:"@@"`
	Static     bool        `parser:"@\"STATIC\"?"`
	PrimaryKey bool        `parser:"@(\"PRIMARY\" \"KEY\")?"`
}

// primaryKey is `( partition [, clustering (, clustering)*] )` where
// partition is a single name or a parenthesized list of names.
type primaryKey struct {
	Composite  []*identifier `parser:"\"(\" ( \"(\" @@ ( \",\" @@ )* \")\""`
	Single     *identifier   `parser:"    | @@ )"`
	Clustering []*identifier `parser:"( \",\" @@ )* \")\""`
}

type tableOption struct {
	CompactStorage  bool               `parser:"  @(\"COMPACT\" \"STORAGE\")"`
	ClusteringOrder []*clusteringOrder `parser:"| \"CLUSTERING\" \"ORDER\" \"BY\" \"(\" @@ ( \",\" @@ )* \")\""`
	Generic         *genericOption     `parser:"| @@"`
}

type clusteringOrder struct {
	Column *identifier `parser:"@@"`
	Order  string      `parser:"@(\"ASC\" | \"DESC\")"`
}

// genericOption is a `name = value` option. It is parsed in full so the
// statement is consumed, then rejected as unsupported.
type genericOption struct {
	Name  *identifier  `parser:"@@ \"=\""`
	Value *optionValue `parser:"@@"`
}

type optionValue struct {
	Scalar *string        `parser:"  @(String | Number | Ident | QuotedIdent)"`
	Map    []*optionEntry `parser:"| \"{\" ( @@ ( \",\" @@ )* )? \"}\""`
}

type optionEntry struct {
	Key   string `parser:"@(String | Ident | Number) \":\""`
	Value string `parser:"@(String | Number | Ident)"`
}

func (c *createTable) toParsed(text string) (types.ParsedTable, error) {
	t := types.ParsedTable{
		IfNotExists: c.IfNotExists,
		Name:        c.Name.toQualified(),
		Columns:     []types.ParsedColumn{c.First.toParsed()},
	}
	for i, elem := range c.Rest {
		if elem.PrimaryKey == nil {
			t.Columns = append(t.Columns, elem.Column.toParsed())
			continue
		}
		if i+1 < len(c.Rest) {
			next := c.Rest[i+1]
			return types.ParsedTable{}, syntaxErrorAt(text, next.Pos, "the PRIMARY KEY clause must be the last element of the column list")
		}
		pk := elem.PrimaryKey.toParsed()
		t.PrimaryKey = &pk
	}

	if len(c.Options) == 0 {
		return t, nil
	}
	opts := &types.TableOptions[types.Identifier]{}
	for _, opt := range c.Options {
		switch {
		case opt.CompactStorage:
			opts.CompactStorage = true
		case len(opt.ClusteringOrder) > 0:
			// A repeated clause replaces the earlier one.
			opts.ClusteringOrder = make([]types.ClusteringOrder[types.Identifier], len(opt.ClusteringOrder))
			for i, o := range opt.ClusteringOrder {
				opts.ClusteringOrder[i] = o.toParsed()
			}
		default:
			return types.ParsedTable{}, &types.UnimplementedOptionError{Option: opt.Generic.Name.toIdentifier().String()}
		}
	}
	t.Options = opts
	return t, nil
}

func (c *column) toParsed() types.ParsedColumn {
	return types.ParsedColumn{
		Name:         c.Name.toIdentifier(),
		Type:         c.Type.toParsed(),
		IsStatic:     c.Static,
		IsPrimaryKey: c.PrimaryKey,
	}
}

func (p *primaryKey) toParsed() types.PrimaryKey[types.Identifier] {
	pk := types.PrimaryKey[types.Identifier]{
		PartitionKey:      toIdentifiers(p.Composite),
		ClusteringColumns: toIdentifiers(p.Clustering),
	}
	if p.Single != nil {
		pk.PartitionKey = []types.Identifier{p.Single.toIdentifier()}
	}
	return pk
}

func (o *clusteringOrder) toParsed() types.ClusteringOrder[types.Identifier] {
	order := types.Ascending
	if strings.EqualFold(o.Order, "desc") {
		order = types.Descending
	}
	return types.ClusteringOrder[types.Identifier]{Column: o.Column.toIdentifier(), Order: order}
}
