package types

// QualifiedIdentifier is a table or type name with an optional keyspace.
type QualifiedIdentifier struct {
	Keyspace *Identifier
	Name     Identifier
}

// Identifiable is implemented by anything that can be referenced by a
// qualified name: raw identifiers, definitions and resolved handles.
type Identifiable interface {
	QualifiedName() QualifiedIdentifier
}

func NewQualifiedIdentifier(keyspace *Identifier, name Identifier) QualifiedIdentifier {
	return QualifiedIdentifier{Keyspace: keyspace, Name: name}
}

// Qualified is a shorthand for building `keyspace.name` from two unquoted names.
func Qualified(keyspace, name string) QualifiedIdentifier {
	ks := NewIdentifier(keyspace)
	return QualifiedIdentifier{Keyspace: &ks, Name: NewIdentifier(name)}
}

func (q QualifiedIdentifier) QualifiedName() QualifiedIdentifier {
	return q
}

// ContextualizedKeyspace returns the explicit keyspace if present, otherwise
// the ambient one. The result is nil when neither is set.
func (q QualifiedIdentifier) ContextualizedKeyspace(ambient *Identifier) *Identifier {
	if q.Keyspace != nil {
		return q.Keyspace
	}
	return ambient
}

func (q QualifiedIdentifier) Contextualize(ambient *Identifier) QualifiedIdentifier {
	return QualifiedIdentifier{Keyspace: q.ContextualizedKeyspace(ambient), Name: q.Name}
}

// Equal compares keyspace and name with Identifier equality. A missing
// keyspace only equals another missing keyspace.
func (q QualifiedIdentifier) Equal(other QualifiedIdentifier) bool {
	if !q.Name.Equal(other.Name) {
		return false
	}
	if q.Keyspace == nil || other.Keyspace == nil {
		return q.Keyspace == nil && other.Keyspace == nil
	}
	return q.Keyspace.Equal(*other.Keyspace)
}

func (q QualifiedIdentifier) String() string {
	if q.Keyspace == nil {
		return q.Name.String()
	}
	return q.Keyspace.String() + "." + q.Name.String()
}
