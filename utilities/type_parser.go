package utilities

import (
	"fmt"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/parser"
	lru "github.com/hashicorp/golang-lru"
)

const DefaultTypeCacheSize = 256

// TypeParser parses standalone type strings such as "map<text, int>" and
// keeps the most recently used results.
type TypeParser struct {
	cache *lru.Cache
}

func NewTypeParser(size int) (*TypeParser, error) {
	if size <= 0 {
		size = DefaultTypeCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create type cache: %w", err)
	}
	return &TypeParser{cache: cache}, nil
}

func (p *TypeParser) Parse(typeStr string) (types.ParsedType, error) {
	if cached, ok := p.cache.Get(typeStr); ok {
		return cached.(types.ParsedType), nil
	}
	t, err := parser.ParseType(typeStr)
	if err != nil {
		return types.ParsedType{}, fmt.Errorf("invalid type '%s': %w", typeStr, err)
	}
	p.cache.Add(typeStr, t)
	return t, nil
}

// ParseScalarOrCollection parses a type string that must not reference a
// user defined type and returns it in resolved form.
func (p *TypeParser) ParseScalarOrCollection(typeStr string) (types.ResolvedType, error) {
	t, err := p.Parse(typeStr)
	if err != nil {
		return types.ResolvedType{}, err
	}
	return types.MapRefs(t, func(ref types.Identifier) (*types.UserDefinedType, error) {
		return nil, &types.UnresolvedTypeReferenceError{Reference: ref.QualifiedName()}
	})
}

func (p *TypeParser) Len() int {
	return p.cache.Len()
}
