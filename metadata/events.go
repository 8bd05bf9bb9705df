package metadata

import "github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"

type EventType int

const (
	EventTableCreated EventType = iota
	EventTypeCreated
	// EventSkipped is sent for an IF NOT EXISTS statement whose name is
	// already taken.
	EventSkipped
)

func (e EventType) String() string {
	switch e {
	case EventTableCreated:
		return "table_created"
	case EventTypeCreated:
		return "type_created"
	case EventSkipped:
		return "skipped"
	}
	return "unknown"
}

type MetadataEvent struct {
	Type EventType
	Kind types.StatementKind
	Name types.QualifiedIdentifier
}
