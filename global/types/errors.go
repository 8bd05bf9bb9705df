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

import (
	"errors"
	"fmt"
)

const maxRemainingInMessage = 40

// SyntaxError is returned when the input does not match the grammar. Offset,
// Line and Column locate the deepest position the grammar reached; Line and
// Column are 1-based. Reason says what was found there and what was expected.
type SyntaxError struct {
	Offset    int
	Line      int
	Column    int
	Reason    string
	Remaining string
}

func (e *SyntaxError) Error() string {
	near := e.Remaining
	if len(near) > maxRemainingInMessage {
		near = near[:maxRemainingInMessage] + "..."
	}
	if e.Reason == "" {
		return fmt.Sprintf("syntax error at line %d, column %d near '%s'", e.Line, e.Column, near)
	}
	return fmt.Sprintf("syntax error at line %d, column %d near '%s': %s", e.Line, e.Column, near, e.Reason)
}

// UnresolvedTypeReferenceError means a user defined type reference matched no
// CREATE TYPE among the preceding statements.
type UnresolvedTypeReferenceError struct {
	Reference QualifiedIdentifier
}

func (e *UnresolvedTypeReferenceError) Error() string {
	return fmt.Sprintf("unresolved type reference '%s'", e.Reference)
}

// UnresolvedColumnReferenceError means a primary key or clustering order
// column matched none of the table's own columns.
type UnresolvedColumnReferenceError struct {
	Reference QualifiedIdentifier
}

func (e *UnresolvedColumnReferenceError) Error() string {
	return fmt.Sprintf("unresolved column reference '%s'", e.Reference)
}

// UnimplementedOptionError is returned for free form table options, which
// are not supported.
type UnimplementedOptionError struct {
	Option string
}

func (e *UnimplementedOptionError) Error() string {
	return fmt.Sprintf("table option '%s' is not supported", e.Option)
}

// UnresolvedReference returns the qualified identifier carried by either
// unresolved reference error anywhere in err's chain.
func UnresolvedReference(err error) (QualifiedIdentifier, bool) {
	var typeErr *UnresolvedTypeReferenceError
	if errors.As(err, &typeErr) {
		return typeErr.Reference, true
	}
	var colErr *UnresolvedColumnReferenceError
	if errors.As(err, &colErr) {
		return colErr.Reference, true
	}
	return QualifiedIdentifier{}, false
}
