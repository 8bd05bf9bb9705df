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
	"sync"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/utilities"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

// KeyspaceSchema holds the tables and types of one keyspace in creation
// order.
type KeyspaceSchema struct {
	Name   types.Identifier
	Tables []*TableSchema
	Types  []*TypeSchema
}

func (k *KeyspaceSchema) table(name types.Identifier) *TableSchema {
	for _, t := range k.Tables {
		if t.Name.Equal(name) {
			return t
		}
	}
	return nil
}

func (k *KeyspaceSchema) userDefinedType(name types.Identifier) *TypeSchema {
	for _, t := range k.Types {
		if t.Name.Equal(name) {
			return t
		}
	}
	return nil
}

// SchemaMetadata is the catalog of every table and type created by the
// resolved scripts fed to it.
type SchemaMetadata struct {
	mu         sync.RWMutex
	logger     *zap.Logger
	keyspaces  []*KeyspaceSchema
	statements []types.ResolvedStatement
	publisher  *utilities.EventPublisher[MetadataEvent]
}

// NewSchemaMetadata is a constructor for SchemaMetadata. Please use this instead of direct initialization.
func NewSchemaMetadata(logger *zap.Logger) *SchemaMetadata {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaMetadata{
		logger:    logger,
		publisher: utilities.NewPublisher[MetadataEvent](),
	}
}

// BuildSchemaMetadata creates a catalog holding stmts.
func BuildSchemaMetadata(logger *zap.Logger, stmts []types.ResolvedStatement) (*SchemaMetadata, error) {
	c := NewSchemaMetadata(logger)
	if err := c.AddStatements(stmts); err != nil {
		return nil, err
	}
	return c, nil
}

// Subscribe registers s for the events of later AddStatements calls. The
// returned func unsubscribes.
func (c *SchemaMetadata) Subscribe(s utilities.Subscriber[MetadataEvent]) func() {
	return c.publisher.Register(s)
}

// AddStatements applies resolved statements in order. It is all or
// nothing: on error the catalog is left as it was and no events are sent.
func (c *SchemaMetadata) AddStatements(stmts []types.ResolvedStatement) error {
	events, err := c.apply(stmts)
	if err != nil {
		return err
	}
	for _, e := range events {
		c.publisher.SendEvent(e)
	}
	return nil
}

func (c *SchemaMetadata) apply(stmts []types.ResolvedStatement) ([]MetadataEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keyspaces := c.cloneKeyspaces()
	statements := slices.Clone(c.statements)
	var events []MetadataEvent
	for _, stmt := range stmts {
		var e MetadataEvent
		var err error
		if stmt.IsCreateUserDefinedType() {
			e, err = c.addType(stmt.UserDefinedType)
		} else {
			e, err = c.addTable(stmt.Table)
		}
		if err != nil {
			c.keyspaces = keyspaces
			c.statements = statements
			return nil, err
		}
		if e.Type != EventSkipped {
			c.statements = append(c.statements, stmt)
		}
		events = append(events, e)
	}
	return events, nil
}

func (c *SchemaMetadata) cloneKeyspaces() []*KeyspaceSchema {
	result := make([]*KeyspaceSchema, len(c.keyspaces))
	for i, ks := range c.keyspaces {
		result[i] = &KeyspaceSchema{
			Name:   ks.Name,
			Tables: slices.Clone(ks.Tables),
			Types:  slices.Clone(ks.Types),
		}
	}
	return result
}

func (c *SchemaMetadata) keyspaceFor(name types.Identifier) *KeyspaceSchema {
	if ks := c.keyspace(name); ks != nil {
		return ks
	}
	ks := &KeyspaceSchema{Name: name}
	c.keyspaces = append(c.keyspaces, ks)
	return ks
}

func (c *SchemaMetadata) keyspace(name types.Identifier) *KeyspaceSchema {
	for _, ks := range c.keyspaces {
		if ks.Name.Equal(name) {
			return ks
		}
	}
	return nil
}

func (c *SchemaMetadata) addTable(table *types.ResolvedTable) (MetadataEvent, error) {
	schema, err := NewTableSchema(table)
	if err != nil {
		return MetadataEvent{}, err
	}
	name := schema.QualifiedName()
	ks := c.keyspaceFor(schema.Keyspace)
	if ks.table(schema.Name) != nil {
		if !table.IfNotExists {
			return MetadataEvent{}, fmt.Errorf("cannot create table %s because it already exists", name)
		}
		c.logger.Info("table already exists, skipping", zap.String("table", name.String()))
		return MetadataEvent{Type: EventSkipped, Kind: types.CreateTable, Name: name}, nil
	}

	c.lintName("table", name.String(), schema.Name)
	for _, col := range schema.Columns {
		c.lintName("column", name.String()+"."+col.Name().String(), col.Name())
	}
	ks.Tables = append(ks.Tables, schema)
	c.logger.Debug("table created", zap.String("table", name.String()), zap.Int("columns", len(schema.Columns)))
	return MetadataEvent{Type: EventTableCreated, Kind: types.CreateTable, Name: name}, nil
}

func (c *SchemaMetadata) addType(udt *types.UserDefinedType) (MetadataEvent, error) {
	schema, err := NewTypeSchema(udt)
	if err != nil {
		return MetadataEvent{}, err
	}
	name := schema.QualifiedName()
	ks := c.keyspaceFor(schema.Keyspace)
	if ks.userDefinedType(schema.Name) != nil {
		if !udt.IfNotExists {
			return MetadataEvent{}, fmt.Errorf("cannot create type %s because it already exists", name)
		}
		c.logger.Info("type already exists, skipping", zap.String("type", name.String()))
		return MetadataEvent{Type: EventSkipped, Kind: types.CreateUserDefinedType, Name: name}, nil
	}

	c.lintName("type", name.String(), schema.Name)
	for _, f := range udt.Fields {
		c.lintName("field", name.String()+"."+f.Name.String(), f.Name)
	}
	ks.Types = append(ks.Types, schema)
	c.logger.Debug("type created", zap.String("type", name.String()), zap.Int("fields", len(udt.Fields)))
	return MetadataEvent{Type: EventTypeCreated, Kind: types.CreateUserDefinedType, Name: name}, nil
}

// lintName warns about unquoted names that are reserved keywords.
func (c *SchemaMetadata) lintName(kind, qualified string, id types.Identifier) {
	if utilities.NeedsQuoting(id) {
		c.logger.Warn("name is a reserved keyword and should be quoted",
			zap.String("kind", kind),
			zap.String("name", qualified))
	}
}

// Keyspaces returns the keyspace names in creation order.
func (c *SchemaMetadata) Keyspaces() []types.Identifier {
	c.mu.RLock()
	defer c.mu.RUnlock()
	results := make([]types.Identifier, len(c.keyspaces))
	for i, ks := range c.keyspaces {
		results[i] = ks.Name
	}
	return results
}

// ListKeyspaces returns a sorted list of all keyspace names.
func (c *SchemaMetadata) ListKeyspaces() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make(map[string]struct{}, len(c.keyspaces))
	for _, ks := range c.keyspaces {
		names[ks.Name.String()] = struct{}{}
	}
	keyspaces := maps.Keys(names)
	slices.SortFunc(keyspaces, strings.Compare)
	return keyspaces
}

func (c *SchemaMetadata) ValidateKeyspace(keyspace types.Identifier) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.keyspace(keyspace) == nil {
		return fmt.Errorf("keyspace '%s' does not exist", keyspace)
	}
	return nil
}

func (c *SchemaMetadata) GetKeyspace(keyspace types.Identifier) ([]*TableSchema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ks := c.keyspace(keyspace)
	if ks == nil {
		return nil, fmt.Errorf("keyspace '%s' does not exist", keyspace)
	}
	return slices.Clone(ks.Tables), nil
}

func (c *SchemaMetadata) Tables() []*TableSchema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var tables []*TableSchema
	for _, ks := range c.keyspaces {
		tables = append(tables, ks.Tables...)
	}
	return tables
}

func (c *SchemaMetadata) Types() []*TypeSchema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []*TypeSchema
	for _, ks := range c.keyspaces {
		result = append(result, ks.Types...)
	}
	return result
}

// GetTableConfig finds a table by keyspace and name using identifier
// equality.
func (c *SchemaMetadata) GetTableConfig(keyspace, table types.Identifier) (*TableSchema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ks := c.keyspace(keyspace)
	if ks == nil {
		return nil, fmt.Errorf("keyspace '%s' does not exist", keyspace)
	}
	t := ks.table(table)
	if t == nil {
		return nil, fmt.Errorf("table '%s' does not exist", table)
	}
	return t, nil
}

func (c *SchemaMetadata) GetType(keyspace, name types.Identifier) (*TypeSchema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ks := c.keyspace(keyspace)
	if ks == nil {
		return nil, fmt.Errorf("keyspace '%s' does not exist", keyspace)
	}
	t := ks.userDefinedType(name)
	if t == nil {
		return nil, fmt.Errorf("type '%s' does not exist", name)
	}
	return t, nil
}

func (c *SchemaMetadata) CountTables() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result = 0
	for _, ks := range c.keyspaces {
		result += len(ks.Tables)
	}
	return result
}

// Statements returns the accepted statements in the order they were added.
// Skipped IF NOT EXISTS duplicates are not included.
func (c *SchemaMetadata) Statements() []types.ResolvedStatement {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.statements)
}

// Describe renders every accepted statement in order, separated by a blank
// line. The output parses back into an equivalent catalog.
func (c *SchemaMetadata) Describe() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	parts := make([]string, 0, len(c.statements))
	for _, stmt := range c.statements {
		name := stmt.QualifiedName()
		ks := c.keyspace(*name.Keyspace)
		if stmt.IsCreateUserDefinedType() {
			parts = append(parts, ks.userDefinedType(name.Name).Describe())
		} else {
			parts = append(parts, ks.table(name.Name).Describe())
		}
	}
	return strings.Join(parts, "\n\n")
}
