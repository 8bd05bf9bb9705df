package resolver

import (
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
)

// scope is the already resolved prefix of the script. It is only read.
type scope []types.ResolvedStatement

// lookupType returns the first CREATE TYPE whose name matches ref once both
// are contextualized with keyspace.
func (s scope) lookupType(ref types.QualifiedIdentifier, keyspace *types.Identifier) (*types.UserDefinedType, bool) {
	want := ref.Contextualize(keyspace)
	for _, stmt := range s {
		if !stmt.IsCreateUserDefinedType() {
			continue
		}
		if stmt.UserDefinedType.Name.Contextualize(keyspace).Equal(want) {
			return stmt.UserDefinedType, true
		}
	}
	return nil, false
}

// resolveType replaces every user defined reference with the shared handle
// of its definition. R is Identifier for parsed types and *UserDefinedType
// when re-linking resolved ones.
func resolveType[R types.Identifiable](t types.CqlType[R], keyspace *types.Identifier, prior scope) (types.ResolvedType, error) {
	return types.MapRefs(t, func(ref R) (*types.UserDefinedType, error) {
		name := ref.QualifiedName()
		if udt, ok := prior.lookupType(name, keyspace); ok {
			return udt, nil
		}
		return nil, &types.UnresolvedTypeReferenceError{Reference: name.Contextualize(keyspace)}
	})
}

func parsedColumn(c types.ParsedColumn) types.ParsedColumn {
	return c
}

func resolvedColumn(c *types.ResolvedColumn) types.ResolvedColumn {
	return *c
}

// resolveTable resolves the column types, then links the primary key and the
// clustering order to the table's own column handles.
func resolveTable[Col any, R types.Identifiable, C types.Identifiable](
	t types.Table[Col, C],
	column func(Col) types.Column[R],
	ambient *types.Identifier,
	prior scope,
) (*types.ResolvedTable, error) {
	keyspace := t.Name.ContextualizedKeyspace(ambient)

	columns := make([]*types.ResolvedColumn, len(t.Columns))
	for i, c := range t.Columns {
		def := column(c)
		typ, err := resolveType(def.Type, keyspace, prior)
		if err != nil {
			return nil, err
		}
		columns[i] = &types.ResolvedColumn{
			Name:         def.Name,
			Type:         typ,
			IsStatic:     def.IsStatic,
			IsPrimaryKey: def.IsPrimaryKey,
		}
	}

	find := func(ref C) (*types.ResolvedColumn, error) {
		want := ref.QualifiedName().Contextualize(keyspace)
		for _, c := range columns {
			if c.QualifiedName().Contextualize(keyspace).Equal(want) {
				return c, nil
			}
		}
		return nil, &types.UnresolvedColumnReferenceError{Reference: want}
	}

	resolved := &types.ResolvedTable{
		IfNotExists: t.IfNotExists,
		Name:        types.NewQualifiedIdentifier(keyspace, t.Name.Name),
		Columns:     columns,
	}

	if t.PrimaryKey != nil {
		partition, err := resolveColumns(t.PrimaryKey.PartitionKey, find)
		if err != nil {
			return nil, err
		}
		clustering, err := resolveColumns(t.PrimaryKey.ClusteringColumns, find)
		if err != nil {
			return nil, err
		}
		resolved.PrimaryKey = &types.PrimaryKey[*types.ResolvedColumn]{
			PartitionKey:      partition,
			ClusteringColumns: clustering,
		}
	}

	if t.Options != nil {
		opts := &types.TableOptions[*types.ResolvedColumn]{
			CompactStorage: t.Options.CompactStorage,
			Options:        t.Options.Options,
		}
		if t.Options.ClusteringOrder != nil {
			opts.ClusteringOrder = make([]types.ClusteringOrder[*types.ResolvedColumn], len(t.Options.ClusteringOrder))
			for i, o := range t.Options.ClusteringOrder {
				c, err := find(o.Column)
				if err != nil {
					return nil, err
				}
				opts.ClusteringOrder[i] = types.ClusteringOrder[*types.ResolvedColumn]{Column: c, Order: o.Order}
			}
		}
		resolved.Options = opts
	}
	return resolved, nil
}

func resolveColumns[C any](refs []C, find func(C) (*types.ResolvedColumn, error)) ([]*types.ResolvedColumn, error) {
	if refs == nil {
		return nil, nil
	}
	out := make([]*types.ResolvedColumn, len(refs))
	for i, ref := range refs {
		c, err := find(ref)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// resolveUserDefinedType resolves the field types against the prior
// statements only; the type being defined is not visible to its own fields.
func resolveUserDefinedType[R types.Identifiable](
	ifNotExists bool,
	name types.QualifiedIdentifier,
	fields []types.Field[R],
	ambient *types.Identifier,
	prior scope,
) (*types.UserDefinedType, error) {
	keyspace := name.ContextualizedKeyspace(ambient)
	udt := &types.UserDefinedType{
		IfNotExists: ifNotExists,
		Name:        types.NewQualifiedIdentifier(keyspace, name.Name),
		Fields:      make([]types.Field[*types.UserDefinedType], len(fields)),
	}
	for i, f := range fields {
		typ, err := resolveType(f.Type, keyspace, prior)
		if err != nil {
			return nil, err
		}
		udt.Fields[i] = types.Field[*types.UserDefinedType]{Name: f.Name, Type: typ}
	}
	return udt, nil
}
