package mddoc

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

func blankLine() doc.Doc {
	return doc.Concat(doc.SoftLine(), doc.SoftLine())
}

// blocks lays out the block children of parent. indent is the absolute
// column the children start at.
func (c *converter) blocks(parent ast.Node, indent int) doc.Doc {
	var parts []doc.Doc
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if c.cancelled() {
			return doc.Nil
		}
		parts = append(parts, c.block(n, indent))
	}

	sep := blankLine()
	if list, ok := parent.Parent().(*ast.List); ok && list.IsTight {
		sep = doc.SoftLine()
	}
	return doc.Join(sep, parts)
}

func (c *converter) block(n ast.Node, indent int) doc.Doc {
	switch v := n.(type) {
	case *ast.Heading:
		return c.heading(v)

	case *ast.Paragraph, *ast.TextBlock:
		return c.paragraph(v)

	case *ast.ThematicBreak:
		return doc.Text("---", StyleMarker)

	case *ast.FencedCodeBlock:
		var info string
		if v.Info != nil {
			info = string(v.Info.Segment.Value(c.src))
		}
		return c.codeBlock(c.fenceChar(v), info, c.lines(v))

	case *ast.CodeBlock:
		return c.codeBlock('`', "", c.lines(v))

	case *ast.HTMLBlock:
		lines := c.lines(v)
		if v.HasClosure() {
			lines = append(lines, string(v.ClosureLine.Value(c.src)))
		}
		return doc.Verbatim(strings.Join(lines, ""), "")

	case *ast.Blockquote:
		return c.blockquote(v, indent)

	case *ast.List:
		return c.list(v, indent)

	case *east.Table:
		return c.table(v)

	default:
		if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
			return doc.Verbatim(strings.Join(c.lines(n), ""), "")
		}
		return c.blocks(n, indent)
	}
}

func (c *converter) heading(h *ast.Heading) doc.Doc {
	b := &inlineBuilder{}
	c.inline(b, h, StyleHeading)

	marker := doc.Text(strings.Repeat("#", h.Level), StyleMarker)
	words := b.allWords()
	if len(words) == 0 {
		return marker
	}
	return doc.Concat(marker, doc.Text(" ", ""), doc.Join(doc.Text(" ", ""), words))
}

// paragraph reflows inline content. Hard line breaks are kept.
func (c *converter) paragraph(n ast.Node) doc.Doc {
	b := &inlineBuilder{}
	c.inline(b, n, "")

	segments := b.finish()
	parts := make([]doc.Doc, len(segments))
	for i, seg := range segments {
		parts[i] = doc.Fill(seg)
	}
	return doc.Join(doc.SoftLine(), parts)
}

func (c *converter) codeBlock(fence byte, info string, lines []string) doc.Doc {
	content := strings.Join(lines, "")

	marker := strings.Repeat(string(fence), 3)
	for strings.Contains(content, marker) {
		marker += string(fence)
	}

	parts := []doc.Doc{doc.Text(marker+info, StyleMarker)}
	if content != "" {
		parts = append(parts, doc.Verbatim(content, StyleCode))
	}
	parts = append(parts, doc.Text(marker, StyleMarker))
	return doc.Join(doc.SoftLine(), parts)
}

// fenceChar returns the fence character used in the source of a fenced
// code block, read from the opening fence line.
func (c *converter) fenceChar(v *ast.FencedCodeBlock) byte {
	var end int
	switch {
	case v.Info != nil:
		end = v.Info.Segment.Start
	case v.Lines().Len() > 0:
		p := v.Lines().At(0).Start
		for p > 0 && c.src[p-1] != '\n' {
			p--
		}
		end = p - 1
	default:
		return '`'
	}
	if end <= 0 {
		return '`'
	}

	start := end
	for start > 0 && c.src[start-1] != '\n' {
		start--
	}
	if strings.HasPrefix(strings.TrimLeft(string(c.src[start:end]), " \t>"), "~") {
		return '~'
	}
	return '`'
}

// blockquote lays out the quoted blocks at the width left after the
// current indentation and the "> " prefix, then prefixes every line.
func (c *converter) blockquote(q *ast.Blockquote, indent int) doc.Doc {
	inner := c.blocks(q, indent+2)
	tokens := doc.Pretty(c.width-indent-2, inner)

	lines := [][]doc.Doc{nil}
	for _, tok := range tokens {
		last := len(lines) - 1
		if strings.HasPrefix(tok.Content, "\n") {
			lines = append(lines, nil)
			if pad := tok.Content[1:]; pad != "" {
				lines[last+1] = append(lines[last+1], doc.Text(pad, ""))
			}
			continue
		}
		lines[last] = append(lines[last], doc.Text(tok.Content, tok.Style))
	}

	out := make([]doc.Doc, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(doc.String(0, doc.Concat(line...))) == "" {
			out[i] = doc.Text(">", StyleMarker)
			continue
		}
		out[i] = doc.Concat(doc.Text("> ", StyleMarker), doc.Concat(line...))
	}
	return doc.Join(doc.SoftLine(), out)
}

// list lays out items under their markers. Continuation lines are
// indented by the marker width.
func (c *converter) list(l *ast.List, indent int) doc.Doc {
	num := l.Start

	var items []doc.Doc
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := string(l.Marker)
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + marker
			num++
		}
		width := len(marker) + 1

		body := c.blocks(item, indent+width)
		if item.ChildCount() == 0 {
			items = append(items, doc.Text(marker, StyleMarker))
			continue
		}
		items = append(items, doc.Concat(doc.Text(marker, StyleMarker), doc.Text(" ", ""), doc.Nest(width, body)))
	}

	sep := blankLine()
	if l.IsTight {
		sep = doc.SoftLine()
	}
	return doc.Join(sep, items)
}
