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

// Package resolver links the name references of parsed statements to shared
// handles. Statements are resolved strictly in script order and each one can
// only see the statements before it, so forward references never resolve.
package resolver

import (
	"fmt"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"go.uber.org/zap"
)

type Resolver struct {
	logger *zap.Logger
}

func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger}
}

// ResolveReferences resolves parsed statements against an optional ambient
// keyspace. The first unresolved reference aborts with no partial result.
func ResolveReferences(stmts []types.ParsedStatement, keyspace *types.Identifier) ([]types.ResolvedStatement, error) {
	return NewResolver(nil).Resolve(stmts, keyspace)
}

// ResolveResolved re-links statements that were already resolved. The result
// is structurally identical to the input.
func ResolveResolved(stmts []types.ResolvedStatement, keyspace *types.Identifier) ([]types.ResolvedStatement, error) {
	return NewResolver(nil).ResolveResolved(stmts, keyspace)
}

func (r *Resolver) Resolve(stmts []types.ParsedStatement, keyspace *types.Identifier) ([]types.ResolvedStatement, error) {
	return fold(r, stmts, func(stmt types.ParsedStatement, prior scope) (types.ResolvedStatement, error) {
		if stmt.IsCreateUserDefinedType() {
			u := stmt.UserDefinedType
			udt, err := resolveUserDefinedType(u.IfNotExists, u.Name, u.Fields, keyspace, prior)
			if err != nil {
				return types.ResolvedStatement{}, err
			}
			return types.NewResolvedCreateType(udt), nil
		}
		table, err := resolveTable(stmt.Table, parsedColumn, keyspace, prior)
		if err != nil {
			return types.ResolvedStatement{}, err
		}
		return types.NewResolvedCreateTable(table), nil
	})
}

func (r *Resolver) ResolveResolved(stmts []types.ResolvedStatement, keyspace *types.Identifier) ([]types.ResolvedStatement, error) {
	return fold(r, stmts, func(stmt types.ResolvedStatement, prior scope) (types.ResolvedStatement, error) {
		if stmt.IsCreateUserDefinedType() {
			u := stmt.UserDefinedType
			udt, err := resolveUserDefinedType(u.IfNotExists, u.Name, u.Fields, keyspace, prior)
			if err != nil {
				return types.ResolvedStatement{}, err
			}
			return types.NewResolvedCreateType(udt), nil
		}
		table, err := resolveTable(*stmt.Table, resolvedColumn, keyspace, prior)
		if err != nil {
			return types.ResolvedStatement{}, err
		}
		return types.NewResolvedCreateTable(table), nil
	})
}

// fold resolves each statement against the statements resolved before it.
func fold[S types.Identifiable](r *Resolver, stmts []S, resolve func(S, scope) (types.ResolvedStatement, error)) ([]types.ResolvedStatement, error) {
	resolved := make([]types.ResolvedStatement, 0, len(stmts))
	for i, stmt := range stmts {
		out, err := resolve(stmt, scope(resolved))
		if err != nil {
			if ref, ok := types.UnresolvedReference(err); ok {
				r.logger.Debug("unresolved reference",
					zap.Int("statement", i+1),
					zap.String("name", stmt.QualifiedName().String()),
					zap.String("reference", ref.String()))
			}
			return nil, fmt.Errorf("statement %d (%s): %w", i+1, stmt.QualifiedName(), err)
		}
		r.logger.Debug("resolved statement",
			zap.Int("statement", i+1),
			zap.Stringer("kind", out.Kind),
			zap.String("name", out.QualifiedName().String()))
		resolved = append(resolved, out)
	}
	return resolved, nil
}
