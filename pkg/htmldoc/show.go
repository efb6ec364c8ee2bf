package htmldoc

import (
	"math"
	"strings"

	"golang.org/x/net/html"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

// Styles attached to the text of generated documents.
const (
	StyleTag       doc.Style = "tag"
	StyleProperty  doc.Style = "property"
	StyleAttribute doc.Style = "attribute"
	StyleComment   doc.Style = "comment"
)

// DefaultIndent is the number of spaces children are indented by.
const DefaultIndent = 2

// Printer converts nodes to documents.
type Printer struct {
	// Indent is the indentation of child and attribute lists.
	Indent int
}

// DefaultPrinter returns a Printer using DefaultIndent.
func DefaultPrinter() Printer {
	return Printer{Indent: DefaultIndent}
}

// Show returns the documents for n. Text nodes produce one document per
// word so that the enclosing list can reflow them; every other node
// produces exactly one.
func (p Printer) Show(n *Node) []doc.Doc {
	switch n.Kind {
	case KindText:
		return words(n.Text)

	case KindComment:
		return []doc.Doc{doc.Concat(
			doc.Text("<!--", StyleComment),
			doc.Group(doc.Concat(
				doc.Nest(p.Indent, doc.Concat(doc.Line(), doc.Fill(doc.Words(n.Text, StyleComment)))),
				doc.Line(),
			)),
			doc.Text("-->", StyleComment),
		)}

	case KindDoctype:
		return []doc.Doc{doc.Text("<!DOCTYPE "+n.Text+">", StyleTag)}

	case KindRaw:
		return []doc.Doc{doc.Text(n.Text, "")}

	default:
		return []doc.Doc{p.showElement(n)}
	}
}

func (p Printer) showElement(n *Node) doc.Doc {
	closing := doc.Text("</"+n.Tag+">", StyleTag)

	switch {
	case len(n.Children) == 0 && IsVoid(n.Tag):
		return p.showTag(n, "/>")
	case len(n.Children) == 0:
		return doc.Concat(p.showTag(n, ">"), closing)
	case IsRaw(n.Tag):
		return doc.Concat(p.showTag(n, ">"), doc.Text(p.rawContent(n), ""), closing)
	}

	items, spaced := p.showChildren(n.Children)
	return doc.Concat(p.showTag(n, ">"), p.showList(doc.SoftLine(), items, spaced), closing)
}

// showChildren returns the documents of children with, for each gap
// between consecutive documents, whether a space separates them. Words of
// one text node are always spaced; other gaps follow Node.SpaceBefore.
func (p Printer) showChildren(children []*Node) ([]doc.Doc, []bool) {
	var items []doc.Doc
	var spaced []bool
	for _, c := range children {
		for i, d := range p.Show(c) {
			if len(items) > 0 {
				spaced = append(spaced, i > 0 || c.SpaceBefore)
			}
			items = append(items, d)
		}
	}
	return items, spaced
}

func (p Printer) showTag(n *Node, end string) doc.Doc {
	attrs := make([]doc.Doc, len(n.Attrs))
	for i, a := range n.Attrs {
		attrs[i] = showAttribute(a)
	}
	return doc.Concat(
		doc.Text("<"+n.Tag, StyleTag),
		p.showList(doc.Line(), attrs, nil),
		doc.Text(end, StyleTag),
	)
}

// showList indents items on their own lines unless they all fit after
// open. The lines between items are decided pairwise by doc.FillSpaced;
// a nil spaced separates every pair with a space.
func (p Printer) showList(open doc.Doc, items []doc.Doc, spaced []bool) doc.Doc {
	if len(items) == 0 {
		return doc.Nil
	}
	return doc.Group(doc.Concat(
		doc.Nest(p.Indent, doc.Concat(open, doc.FillSpaced(items, spaced))),
		doc.SoftLine(),
	))
}

func showAttribute(a Attr) doc.Doc {
	if a.Value == "" {
		return doc.Text(a.Key, StyleProperty)
	}
	return doc.Concat(
		doc.Text(a.Key+"=", StyleProperty),
		doc.Text(`"`+html.EscapeString(a.Value)+`"`, StyleAttribute),
	)
}

// words splits s on HTML whitespace, keeping &nbsp; inside words.
func words(s string) []doc.Doc {
	fields := strings.FieldsFunc(s, isHTMLSpace)
	out := make([]doc.Doc, len(fields))
	for i, f := range fields {
		out[i] = doc.Text(html.EscapeString(f), "")
	}
	return out
}

// rawContent returns the children of a raw element as source text on as
// few lines as they were written with. Text is escaped except inside
// script and style.
func (p Printer) rawContent(n *Node) string {
	escape := n.Tag != "script" && n.Tag != "style"

	var sb strings.Builder
	for _, c := range n.Children {
		switch c.Kind {
		case KindText:
			if escape {
				sb.WriteString(html.EscapeString(c.Text))
			} else {
				sb.WriteString(c.Text)
			}
		case KindRaw:
			sb.WriteString(c.Text)
		default:
			sb.WriteString(doc.String(math.MaxInt32, doc.Flatten(doc.Concat(p.Show(c)...))))
		}
	}
	return sb.String()
}

// Document returns a single document for nodes. Top-level nodes are
// separated by line breaks.
func (p Printer) Document(nodes ...*Node) doc.Doc {
	parts := make([]doc.Doc, 0, len(nodes))
	for _, n := range nodes {
		if ds := p.Show(n); len(ds) > 0 {
			parts = append(parts, doc.Fill(ds))
		}
	}
	return doc.Join(doc.Line(), parts)
}

// Pretty lays out nodes for the given width.
func (p Printer) Pretty(width int, nodes ...*Node) []doc.Token {
	return doc.Pretty(width, p.Document(nodes...))
}

// Show is Printer.Show with the default indentation.
func Show(n *Node) []doc.Doc {
	return DefaultPrinter().Show(n)
}

// Document is Printer.Document with the default indentation.
func Document(nodes ...*Node) doc.Doc {
	return DefaultPrinter().Document(nodes...)
}

// Pretty is Printer.Pretty with the default indentation.
func Pretty(width int, nodes ...*Node) []doc.Token {
	return DefaultPrinter().Pretty(width, nodes...)
}
