package metadata

import (
	"fmt"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/utilities"
)

// ExportProtocolVersion is the native protocol version used to derive the
// driver types of exported columns.
const ExportProtocolVersion byte = 4

type Export struct {
	Keyspaces []KeyspaceExport `yaml:"keyspaces"`
}

type KeyspaceExport struct {
	Name   string        `yaml:"name"`
	Types  []TypeExport  `yaml:"types,omitempty"`
	Tables []TableExport `yaml:"tables,omitempty"`
}

type TypeExport struct {
	Name   string        `yaml:"name"`
	Fields []FieldExport `yaml:"fields"`
}

type FieldExport struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	GoType string `yaml:"goType"`
}

type TableExport struct {
	Name              string         `yaml:"name"`
	Columns           []ColumnExport `yaml:"columns"`
	PartitionKey      []string       `yaml:"partitionKey"`
	ClusteringColumns []string       `yaml:"clusteringColumns,omitempty"`
	CompactStorage    bool           `yaml:"compactStorage,omitempty"`
}

type ColumnExport struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	KeyType string `yaml:"keyType"`
	Order   string `yaml:"order,omitempty"`
	GoType  string `yaml:"goType"`
}

// Export builds a serializable view of the catalog, keyspaces in creation
// order.
func (c *SchemaMetadata) Export() (*Export, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := &Export{}
	for _, ks := range c.keyspaces {
		ke := KeyspaceExport{Name: ks.Name.String()}
		for _, t := range ks.Types {
			te := TypeExport{Name: t.Name.String()}
			for _, f := range t.Type.Fields {
				goType, err := goTypeOf(f.Type)
				if err != nil {
					return nil, fmt.Errorf("field %s of type %s: %w", f.Name, t.QualifiedName(), err)
				}
				te.Fields = append(te.Fields, FieldExport{Name: f.Name.String(), Type: f.Type.String(), GoType: goType})
			}
			ke.Types = append(ke.Types, te)
		}
		for _, t := range ks.Tables {
			te, err := exportTable(t)
			if err != nil {
				return nil, err
			}
			ke.Tables = append(ke.Tables, te)
		}
		result.Keyspaces = append(result.Keyspaces, ke)
	}
	return result, nil
}

func exportTable(t *TableSchema) (TableExport, error) {
	te := TableExport{
		Name:              t.Name.String(),
		PartitionKey:      names(t.PartitionKeys()),
		ClusteringColumns: names(t.ClusteringColumns()),
		CompactStorage:    t.CompactStorage(),
	}
	for _, col := range t.Columns {
		goType, err := goTypeOf(col.Column.Type)
		if err != nil {
			return TableExport{}, fmt.Errorf("column %s of table %s: %w", col.Name(), t.QualifiedName(), err)
		}
		ce := ColumnExport{
			Name:    col.Name().String(),
			Type:    col.Column.Type.String(),
			KeyType: string(col.KeyType),
			GoType:  goType,
		}
		if col.KeyType == KeyTypeClustering {
			ce.Order = col.Order.String()
		}
		te.Columns = append(te.Columns, ce)
	}
	return te, nil
}

func goTypeOf(t types.ResolvedType) (string, error) {
	info, err := utilities.ToGocqlType(t, ExportProtocolVersion)
	if err != nil {
		return "", err
	}
	return utilities.GoTypeName(info), nil
}
