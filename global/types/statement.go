package types

type StatementKind int

const (
	CreateTable StatementKind = iota
	CreateUserDefinedType
)

func (k StatementKind) String() string {
	if k == CreateUserDefinedType {
		return "CREATE TYPE"
	}
	return "CREATE TABLE"
}

// Statement is either a CREATE TABLE or a CREATE TYPE. Only the member
// matching Kind is set.
type Statement[T any, U any] struct {
	Kind            StatementKind
	Table           T
	UserDefinedType U
}

type ParsedStatement = Statement[ParsedTable, ParsedUserDefinedType]
type ResolvedStatement = Statement[*ResolvedTable, *UserDefinedType]

func NewParsedCreateTable(t ParsedTable) ParsedStatement {
	return ParsedStatement{Kind: CreateTable, Table: t}
}

func NewParsedCreateType(u ParsedUserDefinedType) ParsedStatement {
	return ParsedStatement{Kind: CreateUserDefinedType, UserDefinedType: u}
}

func NewResolvedCreateTable(t *ResolvedTable) ResolvedStatement {
	return ResolvedStatement{Kind: CreateTable, Table: t}
}

func NewResolvedCreateType(u *UserDefinedType) ResolvedStatement {
	return ResolvedStatement{Kind: CreateUserDefinedType, UserDefinedType: u}
}

func (s Statement[T, U]) IsCreateTable() bool {
	return s.Kind == CreateTable
}

func (s Statement[T, U]) IsCreateUserDefinedType() bool {
	return s.Kind == CreateUserDefinedType
}

// QualifiedName is the name of the table or type the statement creates.
func (s Statement[T, U]) QualifiedName() QualifiedIdentifier {
	var member any = s.Table
	if s.Kind == CreateUserDefinedType {
		member = s.UserDefinedType
	}
	if named, ok := member.(Identifiable); ok {
		return named.QualifiedName()
	}
	return QualifiedIdentifier{}
}
