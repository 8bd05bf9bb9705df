package system_tables

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/metadata"
	"github.com/datastax/go-cassandra-native-protocol/primitive"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

const (
	SystemSchemaTableKeyspace = "system_schema.keyspaces"
	SystemSchemaTableTables   = "system_schema.tables"
	SystemSchemaTableColumns  = "system_schema.columns"
	SystemSchemaTableTypes    = "system_schema.types"
)

// Row is a system table row keyed by column name.
type Row map[string]interface{}

// SystemTableManager keeps the system_schema tables in sync with a schema
// catalog.
type SystemTableManager struct {
	mu            sync.RWMutex
	catalog       *metadata.SchemaMetadata
	logger        *zap.Logger
	schemaVersion primitive.UUID
	data          map[string][]Row
	unsubscribe   func()
}

func NewSystemTableManager(catalog *metadata.SchemaMetadata, logger *zap.Logger) *SystemTableManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemTableManager{
		catalog: catalog,
		logger:  logger,
		data:    make(map[string][]Row),
	}
}

// Initialize builds the tables and subscribes for catalog changes.
func (s *SystemTableManager) Initialize() error {
	s.unsubscribe = s.catalog.Subscribe(s)
	return s.ReloadSystemTables()
}

func (s *SystemTableManager) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *SystemTableManager) OnEvent(event metadata.MetadataEvent) {
	s.logger.Debug("received schema update event",
		zap.Stringer("type", event.Type),
		zap.String("name", event.Name.String()))
	if event.Type == metadata.EventSkipped {
		return
	}
	if err := s.ReloadSystemTables(); err != nil {
		s.logger.Error("failed to update system tables", zap.Error(err))
	}
}

func (s *SystemTableManager) ReloadSystemTables() error {
	data := map[string][]Row{
		SystemSchemaTableKeyspace: s.getKeyspaceMetadata(),
		SystemSchemaTableTables:   s.getTableMetadata(),
		SystemSchemaTableColumns:  s.getColumnMetadata(),
		SystemSchemaTableTypes:    s.getTypeMetadata(),
	}
	version := nameBasedUUID(s.catalog.Describe())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.schemaVersion = version
	return nil
}

func (s *SystemTableManager) SchemaVersion() primitive.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schemaVersion
}

func (s *SystemTableManager) Rows(table string) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.data[table]
	if !ok {
		return nil, fmt.Errorf("unknown system table '%s'", table)
	}
	return rows, nil
}

// TableNames returns the names of the maintained system tables, sorted.
func (s *SystemTableManager) TableNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := maps.Keys(s.data)
	slices.Sort(names)
	return names
}

// Snapshot is every system table plus the schema version, ready to be
// serialized.
func (s *SystemTableManager) Snapshot() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := map[string]interface{}{
		"schema_version": uuid.UUID(s.schemaVersion).String(),
	}
	for name, rows := range s.data {
		result[name] = rows
	}
	return result
}

func (s *SystemTableManager) getKeyspaceMetadata() []Row {
	var rows []Row
	for _, keyspace := range s.catalog.Keyspaces() {
		rows = append(rows, Row{
			"keyspace_name":  keyspace.Text(),
			"durable_writes": true,
			"replication": map[string]string{
				"class":              "org.apache.cassandra.locator.SimpleStrategy",
				"replication_factor": "1",
			},
		})
	}
	return rows
}

// getTableMetadata converts table metadata into table metadata rows
func (s *SystemTableManager) getTableMetadata() []Row {
	var rows []Row
	for _, t := range s.catalog.Tables() {
		flags := []string{"compound"}
		if t.CompactStorage() {
			flags = []string{"dense"}
		}
		rows = append(rows, Row{
			"keyspace_name": t.Keyspace.Text(),
			"table_name":    t.Name.Text(),
			"flags":         flags,
		})
	}
	return rows
}

// getColumnMetadata converts table metadata into column metadata rows
func (s *SystemTableManager) getColumnMetadata() []Row {
	var rows []Row
	for _, table := range s.catalog.Tables() {
		partitionKeys := len(table.PartitionKeys())
		for _, column := range table.Columns {
			rows = append(rows, Row{
				"keyspace_name":    table.Keyspace.Text(),
				"table_name":       table.Name.Text(),
				"column_name":      column.Name().Text(),
				"clustering_order": clusteringOrder(column),
				"kind":             string(column.KeyType),
				"position":         position(column, partitionKeys),
				"type":             systemTypeName(column.Column.Type),
			})
		}
	}
	return rows
}

func (s *SystemTableManager) getTypeMetadata() []Row {
	var rows []Row
	for _, t := range s.catalog.Types() {
		fieldTypes := make([]string, len(t.Type.Fields))
		for i, f := range t.Type.Fields {
			fieldTypes[i] = systemTypeName(f.Type)
		}
		rows = append(rows, Row{
			"keyspace_name": t.Keyspace.Text(),
			"type_name":     t.Name.Text(),
			"field_names":   t.Type.FieldNames(),
			"field_types":   fieldTypes,
		})
	}
	return rows
}

func clusteringOrder(column *metadata.ColumnSchema) string {
	if column.KeyType != metadata.KeyTypeClustering {
		return "none"
	}
	return strings.ToLower(column.Order.String())
}

// position is the index of the column within its key kind, e.g. given
// PRIMARY KEY((org, user), email, name) org=0, user=1, email=0 and name=1.
// Other columns are -1.
func position(column *metadata.ColumnSchema, partitionKeys int) int {
	switch column.KeyType {
	case metadata.KeyTypePartition:
		return column.PkPrecedence - 1
	case metadata.KeyTypeClustering:
		return column.PkPrecedence - 1 - partitionKeys
	default:
		return -1
	}
}

// systemTypeName renders t the way system_schema stores it: lower case with
// user defined types unqualified.
func systemTypeName(t types.ResolvedType) string {
	switch t.Code() {
	case types.FROZEN, types.LIST, types.SET, types.MAP, types.TUPLE:
		elems := make([]string, len(t.Elements()))
		for i, e := range t.Elements() {
			elems[i] = systemTypeName(e)
		}
		return t.Code().String() + "<" + strings.Join(elems, ", ") + ">"
	case types.USER_DEFINED:
		return t.Ref().Name.Name.Text()
	default:
		return t.Code().String()
	}
}

// nameBasedUUID is a version 3 UUID of name, so equal schemas share a
// version.
func nameBasedUUID(name string) primitive.UUID {
	return primitive.UUID(uuid.NewMD5(uuid.NameSpaceOID, []byte(name)))
}
