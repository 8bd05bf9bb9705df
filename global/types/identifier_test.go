package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierEqual(t *testing.T) {
	tests := []struct {
		name     string
		a        Identifier
		b        Identifier
		expected bool
	}{
		{
			name:     "unquoted differing only in case",
			a:        NewIdentifier("my_table"),
			b:        NewIdentifier("MY_Table"),
			expected: true,
		},
		{
			name:     "unquoted different names",
			a:        NewIdentifier("a"),
			b:        NewIdentifier("b"),
			expected: false,
		},
		{
			name:     "unquoted prefix is not equal",
			a:        NewIdentifier("abc"),
			b:        NewIdentifier("ab"),
			expected: false,
		},
		{
			name:     "quoted identical bytes",
			a:        NewQuotedIdentifier("MyTable"),
			b:        NewQuotedIdentifier("MyTable"),
			expected: true,
		},
		{
			// Quoted names are case sensitive among themselves.
			name:     "quoted differing in case",
			a:        NewQuotedIdentifier("MyTable"),
			b:        NewQuotedIdentifier("mytable"),
			expected: false,
		},
		{
			// Mixed pairs fold case even though a quoted name is case
			// sensitive against another quoted name. Kept on purpose.
			name:     "unquoted against quoted folds case",
			a:        NewIdentifier("mytable"),
			b:        NewQuotedIdentifier("MyTable"),
			expected: true,
		},
		{
			name:     "quoted against unquoted folds case",
			a:        NewQuotedIdentifier("MYTABLE"),
			b:        NewIdentifier("mytable"),
			expected: true,
		},
		{
			name:     "non ascii is compared exactly",
			a:        NewIdentifier("é"),
			b:        NewQuotedIdentifier("É"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
			assert.Equal(t, tt.expected, tt.b.Equal(tt.a))
		})
	}
}

func TestIdentifierEqualIgnoresAsciiCaseForEveryLetter(t *testing.T) {
	for c := 'a'; c <= 'z'; c++ {
		lower := fmt.Sprintf("x%c_1", c)
		upper := fmt.Sprintf("X%c_1", c-('a'-'A'))
		assert.True(t, NewIdentifier(lower).Equal(NewIdentifier(upper)), lower)
		assert.False(t, NewQuotedIdentifier(lower).Equal(NewQuotedIdentifier(upper)), lower)
	}
}

func TestIdentifierString(t *testing.T) {
	assert.Equal(t, "users", NewIdentifier("users").String())
	assert.Equal(t, `"Users"`, NewQuotedIdentifier("Users").String())
	assert.Equal(t, `"say ""hi"""`, NewQuotedIdentifier(`say "hi"`).String())
}

func TestQualifiedIdentifierContextualize(t *testing.T) {
	ks1 := NewIdentifier("ks1")
	bare := NewQualifiedIdentifier(nil, NewIdentifier("t"))
	explicit := Qualified("ks2", "t")

	assert.Equal(t, "ks1.t", bare.Contextualize(&ks1).String())
	assert.Equal(t, "ks2.t", explicit.Contextualize(&ks1).String())
	assert.Equal(t, "t", bare.Contextualize(nil).String())
	assert.Nil(t, bare.ContextualizedKeyspace(nil))
	assert.Same(t, explicit.Keyspace, explicit.ContextualizedKeyspace(&ks1))
}

func TestQualifiedIdentifierEqual(t *testing.T) {
	tests := []struct {
		name     string
		a        QualifiedIdentifier
		b        QualifiedIdentifier
		expected bool
	}{
		{
			name:     "same keyspace and name",
			a:        Qualified("ks", "t"),
			b:        Qualified("KS", "T"),
			expected: true,
		},
		{
			name:     "different keyspace",
			a:        Qualified("ks1", "t"),
			b:        Qualified("ks2", "t"),
			expected: false,
		},
		{
			name:     "missing keyspace against present keyspace",
			a:        NewQualifiedIdentifier(nil, NewIdentifier("t")),
			b:        Qualified("ks", "t"),
			expected: false,
		},
		{
			name:     "both without keyspace",
			a:        NewQualifiedIdentifier(nil, NewIdentifier("t")),
			b:        NewQualifiedIdentifier(nil, NewQuotedIdentifier("T")),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
		})
	}
}

func TestUnresolvedReference(t *testing.T) {
	ref := Qualified("ks", "missing")

	got, ok := UnresolvedReference(fmt.Errorf("resolving: %w", &UnresolvedTypeReferenceError{Reference: ref}))
	assert.True(t, ok)
	assert.Equal(t, ref, got)

	got, ok = UnresolvedReference(&UnresolvedColumnReferenceError{Reference: ref})
	assert.True(t, ok)
	assert.Equal(t, ref, got)

	_, ok = UnresolvedReference(errors.New("other"))
	assert.False(t, ok)
}

func TestSyntaxErrorMessage(t *testing.T) {
	err := &SyntaxError{Offset: 7, Line: 1, Column: 8, Reason: `unexpected token "oops" (expected "(")`, Remaining: "oops"}
	assert.Equal(t, `syntax error at line 1, column 8 near 'oops': unexpected token "oops" (expected "(")`, err.Error())

	err = &SyntaxError{Line: 2, Column: 1, Remaining: "0123456789012345678901234567890123456789xyz"}
	assert.Equal(t, "syntax error at line 2, column 1 near '0123456789012345678901234567890123456789...'", err.Error())
}
