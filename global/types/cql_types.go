package types

import (
	"fmt"
	"strings"

	"github.com/datastax/go-cassandra-native-protocol/datatype"
)

type CqlTypeCode int

// Enumeration of all CQL type kinds.
const (
	// Scalars
	ASCII CqlTypeCode = iota
	BIGINT
	BLOB
	BOOLEAN
	COUNTER
	DATE
	DECIMAL
	DOUBLE
	DURATION
	FLOAT
	INET
	INT
	SMALLINT
	TEXT
	TIME
	TIMESTAMP
	TIMEUUID
	TINYINT
	UUID
	VARCHAR
	VARINT
	// Wrappers
	FROZEN
	MAP
	SET
	LIST
	TUPLE
	// Other
	USER_DEFINED
)

const durationClassName = "org.apache.cassandra.db.marshal.DurationType"

type scalarInfo struct {
	name string
	dt   datatype.DataType
}

var scalars = map[CqlTypeCode]scalarInfo{
	ASCII:     {name: "ascii", dt: datatype.Ascii},
	BIGINT:    {name: "bigint", dt: datatype.Bigint},
	BLOB:      {name: "blob", dt: datatype.Blob},
	BOOLEAN:   {name: "boolean", dt: datatype.Boolean},
	COUNTER:   {name: "counter", dt: datatype.Counter},
	DATE:      {name: "date", dt: datatype.Date},
	DECIMAL:   {name: "decimal", dt: datatype.Decimal},
	DOUBLE:    {name: "double", dt: datatype.Double},
	DURATION:  {name: "duration", dt: datatype.NewCustomType(durationClassName)},
	FLOAT:     {name: "float", dt: datatype.Float},
	INET:      {name: "inet", dt: datatype.Inet},
	INT:       {name: "int", dt: datatype.Int},
	SMALLINT:  {name: "smallint", dt: datatype.Smallint},
	TEXT:      {name: "text", dt: datatype.Varchar},
	TIME:      {name: "time", dt: datatype.Time},
	TIMESTAMP: {name: "timestamp", dt: datatype.Timestamp},
	TIMEUUID:  {name: "timeuuid", dt: datatype.Timeuuid},
	TINYINT:   {name: "tinyint", dt: datatype.Tinyint},
	UUID:      {name: "uuid", dt: datatype.Uuid},
	VARCHAR:   {name: "varchar", dt: datatype.Varchar},
	VARINT:    {name: "varint", dt: datatype.Varint},
}

// ScalarCodes lists the scalar kinds in declaration order.
func ScalarCodes() []CqlTypeCode {
	codes := make([]CqlTypeCode, 0, len(scalars))
	for c := ASCII; c <= VARINT; c++ {
		codes = append(codes, c)
	}
	return codes
}

func (c CqlTypeCode) IsScalar() bool {
	_, ok := scalars[c]
	return ok
}

// ScalarDataType returns the native protocol type of a scalar kind.
func (c CqlTypeCode) ScalarDataType() (datatype.DataType, bool) {
	s, ok := scalars[c]
	return s.dt, ok
}

func (c CqlTypeCode) String() string {
	if s, ok := scalars[c]; ok {
		return s.name
	}
	switch c {
	case FROZEN:
		return "frozen"
	case MAP:
		return "map"
	case SET:
		return "set"
	case LIST:
		return "list"
	case TUPLE:
		return "tuple"
	case USER_DEFINED:
		return "user_defined"
	}
	return fmt.Sprintf("CqlTypeCode(%d)", int(c))
}

// CqlType is a CQL type expression. R is how a user defined type reference
// is represented: a raw Identifier after parsing, a *UserDefinedType after
// resolution. The same tree shape serves both.
type CqlType[R any] struct {
	code  CqlTypeCode
	elems []CqlType[R]
	ref   R
}

// ParsedType is a type straight out of the grammar.
type ParsedType = CqlType[Identifier]

// ResolvedType is a type whose user defined references point at shared
// resolved definitions.
type ResolvedType = CqlType[*UserDefinedType]

// NewScalarType panics on a non scalar code; scalar codes are compile time
// constants so a bad call is a programming error.
func NewScalarType[R any](code CqlTypeCode) CqlType[R] {
	if !code.IsScalar() {
		panic(fmt.Sprintf("%s is not a scalar type", code))
	}
	return CqlType[R]{code: code}
}

func NewFrozenType[R any](inner CqlType[R]) CqlType[R] {
	return CqlType[R]{code: FROZEN, elems: []CqlType[R]{inner}}
}

func NewMapType[R any](key, value CqlType[R]) CqlType[R] {
	return CqlType[R]{code: MAP, elems: []CqlType[R]{key, value}}
}

func NewSetType[R any](elem CqlType[R]) CqlType[R] {
	return CqlType[R]{code: SET, elems: []CqlType[R]{elem}}
}

func NewListType[R any](elem CqlType[R]) CqlType[R] {
	return CqlType[R]{code: LIST, elems: []CqlType[R]{elem}}
}

func NewTupleType[R any](first CqlType[R], rest ...CqlType[R]) CqlType[R] {
	return CqlType[R]{code: TUPLE, elems: append([]CqlType[R]{first}, rest...)}
}

func NewUserDefinedTypeRef[R any](ref R) CqlType[R] {
	return CqlType[R]{code: USER_DEFINED, ref: ref}
}

func (c CqlType[R]) Code() CqlTypeCode {
	return c.code
}

func (c CqlType[R]) IsScalar() bool {
	return c.code.IsScalar()
}

func (c CqlType[R]) IsCollection() bool {
	return c.code == MAP || c.code == SET || c.code == LIST
}

func (c CqlType[R]) IsFrozen() bool {
	return c.code == FROZEN
}

// IsAnyFrozen reports whether the type or any nested type is frozen.
func (c CqlType[R]) IsAnyFrozen() bool {
	if c.code == FROZEN {
		return true
	}
	for _, e := range c.elems {
		if e.IsAnyFrozen() {
			return true
		}
	}
	return false
}

// InnerType is the wrapped type of FROZEN.
func (c CqlType[R]) InnerType() CqlType[R] {
	return c.elems[0]
}

// ElementType is the element type of SET and LIST.
func (c CqlType[R]) ElementType() CqlType[R] {
	return c.elems[0]
}

func (c CqlType[R]) KeyType() CqlType[R] {
	return c.elems[0]
}

func (c CqlType[R]) ValueType() CqlType[R] {
	return c.elems[1]
}

// Elements returns the nested types in declaration order: the single inner
// type of FROZEN/SET/LIST, key then value for MAP, every member of TUPLE.
func (c CqlType[R]) Elements() []CqlType[R] {
	return c.elems
}

// Ref is the user defined type reference. Only meaningful for USER_DEFINED.
func (c CqlType[R]) Ref() R {
	return c.ref
}

func (c CqlType[R]) String() string {
	switch c.code {
	case FROZEN, SET, LIST, MAP, TUPLE:
		parts := make([]string, len(c.elems))
		for i, e := range c.elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("%s<%s>", c.code, strings.Join(parts, ", "))
	case USER_DEFINED:
		if named, ok := any(c.ref).(Identifiable); ok {
			return named.QualifiedName().String()
		}
		return fmt.Sprint(c.ref)
	}
	return c.code.String()
}

// MapRefs rebuilds the type with every user defined reference replaced by
// fn's result. The first error aborts the walk.
func MapRefs[R, S any](c CqlType[R], fn func(R) (S, error)) (CqlType[S], error) {
	out := CqlType[S]{code: c.code}
	if c.code == USER_DEFINED {
		ref, err := fn(c.ref)
		if err != nil {
			return CqlType[S]{}, err
		}
		out.ref = ref
		return out, nil
	}
	if len(c.elems) > 0 {
		out.elems = make([]CqlType[S], len(c.elems))
		for i, e := range c.elems {
			mapped, err := MapRefs(e, fn)
			if err != nil {
				return CqlType[S]{}, err
			}
			out.elems[i] = mapped
		}
	}
	return out, nil
}
