// Package dsl implements a small expression language for building
// documents, used by the show command to experiment with layouts.
//
// A program is a sequence of statements separated by semicolons. Each
// statement is either a binding or an expression:
//
//	let items = fill(words("alpha beta gamma delta"));
//	group("list(" nest(2, softline items) softline ")")
//
// Terms written next to each other are concatenated. A string literal is a
// text document, integers are only valid as arguments, and an identifier is
// a bound name, a builtin called with no arguments, or a call when followed
// by a parenthesised, comma separated argument list.
package dsl

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

//nolint:gochecknoglobals // Grammar definitions are immutable after init.
var (
	exprLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
		{Name: "Int", Pattern: `-?\d+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `[(),=;]`},
	})

	programParser = participle.MustBuild[Program](
		participle.Lexer(exprLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// Program is the root of a parsed expression source.
type Program struct {
	Pos        lexer.Position `parser:""`
	Statements []*Statement   `parser:"( @@ ';'* )*"`
}

// Statement is a binding or an expression.
type Statement struct {
	Let  *Let  `parser:"  @@"`
	Expr *Expr `parser:"| @@"`
}

// Let binds a name to the value of an expression for the rest of the
// program.
type Let struct {
	Pos   lexer.Position `parser:""`
	Name  string         `parser:"'let' @Ident '='"`
	Value *Expr          `parser:"@@"`
}

// Expr is a concatenation of one or more terms.
type Expr struct {
	Pos   lexer.Position `parser:""`
	Terms []*Term        `parser:"@@+"`
}

// Term is a single literal or call.
type Term struct {
	Pos    lexer.Position `parser:""`
	String *StringLiteral `parser:"  @String"`
	Int    *int           `parser:"| @Int"`
	Call   *Call          `parser:"| @@"`
}

// Call is an identifier with an optional argument list.
type Call struct {
	Pos  lexer.Position `parser:""`
	Name string         `parser:"@Ident"`
	Args *ArgList       `parser:"@@?"`
}

// ArgList is a parenthesised, comma separated list of expressions.
type ArgList struct {
	Open string  `parser:"@'('"`
	Args []*Expr `parser:"( @@ ( ',' @@ )* )? ')'"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses src. name is used in error positions.
func Parse(name, src string) (*Program, error) {
	prog, err := programParser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", displayName(name), err)
	}
	return prog, nil
}

func displayName(name string) string {
	if name == "" {
		return "expression"
	}
	return name
}
