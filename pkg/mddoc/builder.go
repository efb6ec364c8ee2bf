// Package mddoc turns Markdown into pretty-printable documents.
//
// Paragraphs are reflowed to the print width with doc.Fill, list items are
// indented under their markers, and block quotes are prefixed line by line.
// Code blocks, HTML blocks and tables keep their line structure. The
// output is normalized Markdown: ATX headings, fenced code blocks and
// inline links.
package mddoc

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

// Supported Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Styles attached to the text of generated documents.
const (
	StyleHeading  doc.Style = "heading"
	StyleEmphasis doc.Style = "emphasis"
	StyleStrong   doc.Style = "strong"
	StyleCode     doc.Style = "code"
	StyleLink     doc.Style = "link"
	StyleMarker   doc.Style = "marker"
)

// Builder converts Markdown source to documents.
type Builder struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a Builder for the given flavor. Unknown flavors default to
// CommonMark.
func New(flavor string) *Builder {
	f := flavorOrDefault(flavor)
	return &Builder{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (b *Builder) Flavor() string {
	return b.flavor
}

// Build parses src and returns its document. width is the print width the
// document will be laid out at; block quotes are laid out at that width
// while building, since their line prefixes cannot be expressed as
// indentation.
func (b *Builder) Build(ctx context.Context, src []byte, width int) (doc.Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build cancelled: %w", err)
	}

	root := b.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build cancelled: %w", err)
	}

	c := &converter{ctx: ctx, src: src, width: width}
	d := c.blocks(root, 0)
	if c.err != nil {
		return nil, c.err
	}
	return d, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return goldmark.New(opts...)
}

// converter walks one goldmark tree.
type converter struct {
	ctx   context.Context //nolint:containedctx // Scoped to a single Build call.
	src   []byte
	width int
	err   error
}

func (c *converter) cancelled() bool {
	if c.err != nil {
		return true
	}
	if err := c.ctx.Err(); err != nil {
		c.err = fmt.Errorf("build cancelled: %w", err)
		return true
	}
	return false
}

// lines returns the source text of a node's line segments.
func (c *converter) lines(n ast.Node) []string {
	lines := n.Lines()
	out := make([]string, lines.Len())
	for i := range lines.Len() {
		seg := lines.At(i)
		out[i] = string(seg.Value(c.src))
	}
	return out
}
