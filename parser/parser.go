package parser

import (
	"errors"
	"strings"
	"unicode"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/global/types"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var cqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\n\r\f\v]+`},
	{Name: "QuotedIdent", Pattern: `"(?:[^"]|"")*"`},
	{Name: "String", Pattern: `'(?:[^']|'')*'`},
	{Name: "Number", Pattern: `-?[0-9]+(?:\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(),.;<>={}:]`},
	{Name: "Other", Pattern: `.`},
})

var grammarOptions = []participle.Option{
	participle.Lexer(cqlLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Ident"),
	// Every alternative may backtrack as far as it needs, so a failed parse
	// reports the deepest position any alternative reached.
	participle.UseLookahead(participle.MaxLookahead),
}

var (
	scriptParser     = participle.MustBuild[script](grammarOptions...)
	typeParser       = participle.MustBuild[cqlType](grammarOptions...)
	identifierParser = participle.MustBuild[identifier](grammarOptions...)
)

// script is a sequence of statements, each optionally followed by ';', plus
// an optional trailing ';'.
type script struct {
	Statements []*statement `parser:"( @@ \";\"? )* \";\"?"`

	EndPos lexer.Position
}

type statement struct {
	Type  *createType  `parser:"  @@"`
	Table *createTable `parser:"| @@"`
}

func (s *statement) toParsed(text string) (types.ParsedStatement, error) {
	if s.Type != nil {
		return types.NewParsedCreateType(s.Type.toParsed()), nil
	}
	table, err := s.Table.toParsed(text)
	if err != nil {
		return types.ParsedStatement{}, err
	}
	return types.NewParsedCreateTable(table), nil
}

func (s *script) toParsed(text string) ([]types.ParsedStatement, error) {
	stmts := make([]types.ParsedStatement, 0, len(s.Statements))
	for _, stmt := range s.Statements {
		parsed, err := stmt.toParsed(text)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, parsed)
	}
	return stmts, nil
}

// ParsePrefix runs the script grammar and returns whatever input it could
// not consume. A statement that fails to match simply ends the script; an
// unsupported table option in a matched statement is still an error.
func ParsePrefix(text string) (string, []types.ParsedStatement, error) {
	parsed, err := scriptParser.ParseString("", text, participle.AllowTrailing(true))
	if err != nil {
		return text, nil, convertError(text, err)
	}
	stmts, err := parsed.toParsed(text)
	if err != nil {
		return text, nil, err
	}
	return remainder(text, parsed.EndPos.Offset), stmts, nil
}

// ParseCql parses a whole script. Input the script grammar cannot consume is
// reported as a *types.SyntaxError at the deepest position reached.
func ParseCql(text string) ([]types.ParsedStatement, error) {
	parsed, err := scriptParser.ParseString("", text)
	if err != nil {
		return nil, convertError(text, err)
	}
	return parsed.toParsed(text)
}

// ParseType parses a standalone type expression such as `map<text, int>`.
func ParseType(text string) (types.ParsedType, error) {
	parsed, err := typeParser.ParseString("", text)
	if err != nil {
		return types.ParsedType{}, convertError(text, err)
	}
	return parsed.toParsed(), nil
}

// ParseIdentifier parses a single, possibly quoted, identifier such as a
// keyspace name given on the command line.
func ParseIdentifier(text string) (types.Identifier, error) {
	parsed, err := identifierParser.ParseString("", text)
	if err != nil {
		return types.Identifier{}, convertError(text, err)
	}
	return parsed.toIdentifier(), nil
}

// remainder is the input from offset on, without leading whitespace. A
// remainder of only whitespace is empty.
func remainder(text string, offset int) string {
	offset = min(max(offset, 0), len(text))
	return strings.TrimLeftFunc(text[offset:], unicode.IsSpace)
}

// convertError turns a participle or lexer error into a *types.SyntaxError.
// The position is the deepest one any alternative reached.
func convertError(text string, err error) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return err
	}
	return syntaxErrorAt(text, perr.Position(), perr.Message())
}

func syntaxErrorAt(text string, pos lexer.Position, reason string) *types.SyntaxError {
	offset := min(max(pos.Offset, 0), len(text))
	return &types.SyntaxError{
		Offset:    offset,
		Line:      pos.Line,
		Column:    pos.Column,
		Reason:    reason,
		Remaining: text[offset:],
	}
}
