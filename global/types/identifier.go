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
	"strings"
)

// Identifier is a CQL name token, either bare (`my_table`) or double quoted
// (`"My Table"`). For quoted identifiers text holds the decoded content, with
// `""` already collapsed to a single `"`.
type Identifier struct {
	text   string
	quoted bool
}

// NewIdentifier creates an unquoted identifier.
func NewIdentifier(text string) Identifier {
	return Identifier{text: text}
}

// NewQuotedIdentifier creates a quoted identifier from its decoded content.
func NewQuotedIdentifier(text string) Identifier {
	return Identifier{text: text, quoted: true}
}

func (i Identifier) Text() string {
	return i.text
}

func (i Identifier) IsQuoted() bool {
	return i.quoted
}

// Equal compares two identifiers. Two quoted identifiers must match byte for
// byte; every other pairing, including quoted against unquoted, compares
// ASCII case-insensitively.
func (i Identifier) Equal(other Identifier) bool {
	if i.quoted && other.quoted {
		return i.text == other.text
	}
	return equalFoldASCII(i.text, other.text)
}

// String renders the identifier as it would appear in a CQL script.
func (i Identifier) String() string {
	if !i.quoted {
		return i.text
	}
	return `"` + strings.ReplaceAll(i.text, `"`, `""`) + `"`
}

func (i Identifier) QualifiedName() QualifiedIdentifier {
	return QualifiedIdentifier{Name: i}
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for k := 0; k < len(a); k++ {
		if toLowerASCII(a[k]) != toLowerASCII(b[k]) {
			return false
		}
	}
	return true
}

func toLowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
