package dsl

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

// Sentinel errors for compile failures.
var (
	ErrUnknownFunc = errors.New("unknown function")
	ErrArity       = errors.New("wrong number of arguments")
	ErrType        = errors.New("wrong argument type")
)

// value is the result of evaluating an expression: a document or, for a
// lone integer literal, a number.
type value struct {
	doc doc.Doc
	num *int
}

type builtin func(pos lexer.Position, args []value) (doc.Doc, error)

//nolint:gochecknoglobals // Read-only table of builtin functions.
var builtins = map[string]builtin{
	"nil":      fixedDoc(doc.Nil),
	"line":     builtinLine,
	"softline": fixedDoc(doc.SoftLine()),
	"text":     builtinText,
	"words":    builtinWords,
	"verbatim": builtinVerbatim,
	"nest":     builtinNest,
	"concat":   variadic(func(ds []doc.Doc) doc.Doc { return doc.Concat(ds...) }),
	"group":    variadic(func(ds []doc.Doc) doc.Doc { return doc.Group(doc.Concat(ds...)) }),
	"flatten":  variadic(func(ds []doc.Doc) doc.Doc { return doc.Flatten(doc.Concat(ds...)) }),
	"fill":     variadic(doc.Fill),
	"join":     builtinJoin,
	"union":    builtinUnion,
}

// Builtins returns the names of the builtin functions.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Compile evaluates p to a document. Expression statements are
// concatenated in order.
func Compile(p *Program) (doc.Doc, error) {
	c := &compiler{scope: make(map[string]value)}

	var parts []doc.Doc
	for _, st := range p.Statements {
		if st.Let != nil {
			v, err := c.expr(st.Let.Value)
			if err != nil {
				return nil, err
			}
			c.scope[st.Let.Name] = v
			continue
		}

		v, err := c.expr(st.Expr)
		if err != nil {
			return nil, err
		}
		d, err := asDoc(st.Expr.Pos, v)
		if err != nil {
			return nil, err
		}
		parts = append(parts, d)
	}
	return doc.Concat(parts...), nil
}

// Eval parses and compiles src.
func Eval(src string) (doc.Doc, error) {
	p, err := Parse("", src)
	if err != nil {
		return nil, err
	}
	return Compile(p)
}

type compiler struct {
	scope map[string]value
}

func (c *compiler) expr(e *Expr) (value, error) {
	if len(e.Terms) == 1 {
		return c.term(e.Terms[0])
	}

	parts := make([]doc.Doc, 0, len(e.Terms))
	for _, t := range e.Terms {
		v, err := c.term(t)
		if err != nil {
			return value{}, err
		}
		d, err := asDoc(t.Pos, v)
		if err != nil {
			return value{}, err
		}
		parts = append(parts, d)
	}
	return value{doc: doc.Concat(parts...)}, nil
}

func (c *compiler) term(t *Term) (value, error) {
	switch {
	case t.String != nil:
		return value{doc: doc.Text(string(*t.String), "")}, nil
	case t.Int != nil:
		return value{num: t.Int}, nil
	default:
		return c.call(t.Call)
	}
}

func (c *compiler) call(call *Call) (value, error) {
	if call.Args == nil {
		if v, ok := c.scope[call.Name]; ok {
			return v, nil
		}
	}

	fn, ok := builtins[call.Name]
	if !ok {
		return value{}, fmt.Errorf("%s: %w %q", call.Pos, ErrUnknownFunc, call.Name)
	}

	var args []value
	if call.Args != nil {
		args = make([]value, 0, len(call.Args.Args))
		for _, a := range call.Args.Args {
			v, err := c.expr(a)
			if err != nil {
				return value{}, err
			}
			args = append(args, v)
		}
	}

	d, err := fn(call.Pos, args)
	if err != nil {
		return value{}, fmt.Errorf("%s: %s: %w", call.Pos, call.Name, err)
	}
	return value{doc: d}, nil
}

func asDoc(pos lexer.Position, v value) (doc.Doc, error) {
	if v.num != nil {
		return nil, fmt.Errorf("%s: %w: integer %d used as a document", pos, ErrType, *v.num)
	}
	return v.doc, nil
}

func fixedDoc(d doc.Doc) builtin {
	return func(_ lexer.Position, args []value) (doc.Doc, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: want 0, got %d", ErrArity, len(args))
		}
		return d, nil
	}
}

func variadic(fn func([]doc.Doc) doc.Doc) builtin {
	return func(pos lexer.Position, args []value) (doc.Doc, error) {
		ds, err := docs(pos, args)
		if err != nil {
			return nil, err
		}
		return fn(ds), nil
	}
}

func docs(pos lexer.Position, args []value) ([]doc.Doc, error) {
	ds := make([]doc.Doc, len(args))
	for i, a := range args {
		d, err := asDoc(pos, a)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}

// literal returns the content of an argument that is a single text
// document, which is what a string literal compiles to.
func literal(v value) (string, bool) {
	t, ok := v.doc.(doc.TextNode)
	if !ok || v.num != nil {
		return "", false
	}
	return t.Content, true
}

// textArgs reads the (string[, style]) arguments shared by the text
// builtins.
func textArgs(args []value) (string, doc.Style, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", "", fmt.Errorf("%w: want 1 or 2, got %d", ErrArity, len(args))
	}
	s, ok := literal(args[0])
	if !ok {
		return "", "", fmt.Errorf("%w: first argument must be a string", ErrType)
	}
	var style doc.Style
	if len(args) == 2 {
		st, ok := literal(args[1])
		if !ok {
			return "", "", fmt.Errorf("%w: style must be a string", ErrType)
		}
		style = doc.Style(st)
	}
	return s, style, nil
}

func builtinText(_ lexer.Position, args []value) (doc.Doc, error) {
	s, style, err := textArgs(args)
	if err != nil {
		return nil, err
	}
	return doc.Text(s, style), nil
}

func builtinWords(_ lexer.Position, args []value) (doc.Doc, error) {
	s, style, err := textArgs(args)
	if err != nil {
		return nil, err
	}
	return doc.Fill(doc.Words(s, style)), nil
}

func builtinVerbatim(_ lexer.Position, args []value) (doc.Doc, error) {
	s, style, err := textArgs(args)
	if err != nil {
		return nil, err
	}
	return doc.Verbatim(s, style), nil
}

func builtinLine(_ lexer.Position, args []value) (doc.Doc, error) {
	switch len(args) {
	case 0:
		return doc.Line(), nil
	case 1:
		s, ok := literal(args[0])
		if !ok {
			return nil, fmt.Errorf("%w: reduced text must be a string", ErrType)
		}
		return doc.LineOr(s), nil
	default:
		return nil, fmt.Errorf("%w: want 0 or 1, got %d", ErrArity, len(args))
	}
}

func builtinNest(pos lexer.Position, args []value) (doc.Doc, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: want at least 2, got %d", ErrArity, len(args))
	}
	if args[0].num == nil {
		return nil, fmt.Errorf("%w: indent must be an integer", ErrType)
	}
	body, err := docs(pos, args[1:])
	if err != nil {
		return nil, err
	}
	return doc.Nest(*args[0].num, doc.Concat(body...)), nil
}

func builtinJoin(pos lexer.Position, args []value) (doc.Doc, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: want at least 1, got 0", ErrArity)
	}
	ds, err := docs(pos, args)
	if err != nil {
		return nil, err
	}
	return doc.Join(ds[0], ds[1:]), nil
}

func builtinUnion(pos lexer.Position, args []value) (doc.Doc, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: want 2, got %d", ErrArity, len(args))
	}
	ds, err := docs(pos, args)
	if err != nil {
		return nil, err
	}
	return doc.Either(ds[0], ds[1]), nil
}
