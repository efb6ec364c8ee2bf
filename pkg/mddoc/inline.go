package mddoc

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

// unsafeStart matches words that would start a different block if a
// reflowed line began with them.
//
//nolint:gochecknoglobals // Compiled once.
var unsafeStart = regexp.MustCompile(`^(#{1,6}|[-+*>]|\d{1,9}[.)]|=+|-+)$`)

// inlineBuilder accumulates inline content as words. A word is a run of
// styled fragments with no whitespace in between; hard line breaks split
// the words into segments.
type inlineBuilder struct {
	segments [][]doc.Doc
	words    []doc.Doc
	cur      []doc.Doc
	curText  strings.Builder
}

// glue appends s to the current word without breaking it.
func (b *inlineBuilder) glue(s string, style doc.Style) {
	if s == "" {
		return
	}
	b.cur = append(b.cur, doc.Text(s, style))
	b.curText.WriteString(s)
}

// text appends s, starting a new word at each run of whitespace.
func (b *inlineBuilder) text(s string, style doc.Style) {
	for s != "" {
		i := strings.IndexAny(s, " \t\r\n")
		if i < 0 {
			b.glue(s, style)
			return
		}
		b.glue(s[:i], style)
		b.space()
		s = strings.TrimLeft(s[i:], " \t\r\n")
	}
}

// space ends the current word.
func (b *inlineBuilder) space() {
	if len(b.cur) == 0 {
		return
	}
	word := doc.Concat(b.cur...)
	if n := len(b.words); n > 0 && unsafeStart.MatchString(b.curText.String()) {
		b.words[n-1] = doc.Concat(b.words[n-1], doc.Text(" ", ""), word)
	} else {
		b.words = append(b.words, word)
	}
	b.cur = nil
	b.curText.Reset()
}

func (b *inlineBuilder) hardBreak() {
	b.space()
	b.segments = append(b.segments, b.words)
	b.words = nil
}

// finish returns the segments separated by hard line breaks.
func (b *inlineBuilder) finish() [][]doc.Doc {
	b.space()
	return append(b.segments, b.words)
}

// allWords returns every word, ignoring hard line breaks.
func (b *inlineBuilder) allWords() []doc.Doc {
	var out []doc.Doc
	for _, seg := range b.finish() {
		out = append(out, seg...)
	}
	return out
}

func (c *converter) inline(b *inlineBuilder, parent ast.Node, style doc.Style) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Text:
			b.text(string(v.Segment.Value(c.src)), style)
			switch {
			case v.HardLineBreak():
				b.glue(`\`, StyleMarker)
				b.hardBreak()
			case v.SoftLineBreak():
				b.space()
			}

		case *ast.String:
			b.text(string(v.Value), style)

		case *ast.CodeSpan:
			b.glue(c.codeSpan(v), StyleCode)

		case *ast.Emphasis:
			delim := strings.Repeat("*", v.Level)
			inner := StyleEmphasis
			if v.Level > 1 {
				inner = StyleStrong
			}
			b.glue(delim, StyleMarker)
			c.inline(b, v, inner)
			b.glue(delim, StyleMarker)

		case *ast.Link:
			b.glue("[", StyleMarker)
			c.inline(b, v, StyleLink)
			b.glue("]("+destination(v.Destination, v.Title)+")", StyleMarker)

		case *ast.Image:
			b.glue("![", StyleMarker)
			c.inline(b, v, StyleLink)
			b.glue("]("+destination(v.Destination, v.Title)+")", StyleMarker)

		case *ast.AutoLink:
			b.glue("<"+string(v.Label(c.src))+">", StyleLink)

		case *ast.RawHTML:
			parts := make([]string, v.Segments.Len())
			for i := range v.Segments.Len() {
				seg := v.Segments.At(i)
				parts[i] = strings.TrimRight(string(seg.Value(c.src)), "\r\n")
			}
			b.glue(strings.Join(parts, " "), "")

		case *east.Strikethrough:
			b.glue("~~", StyleMarker)
			c.inline(b, v, style)
			b.glue("~~", StyleMarker)

		case *east.TaskCheckBox:
			if v.IsChecked {
				b.glue("[x]", StyleMarker)
			} else {
				b.glue("[ ]", StyleMarker)
			}
			b.space()

		default:
			c.inline(b, n, style)
		}
	}
}

// codeSpan returns a code span with enough backticks to enclose its
// content.
func (c *converter) codeSpan(v *ast.CodeSpan) string {
	var sb strings.Builder
	for n := v.FirstChild(); n != nil; n = n.NextSibling() {
		t, ok := n.(*ast.Text)
		if !ok {
			continue
		}
		sb.Write(t.Segment.Value(c.src))
		if t.SoftLineBreak() {
			sb.WriteByte(' ')
		}
	}
	content := sb.String()

	ticks := "`"
	for strings.Contains(content, ticks) {
		ticks += "`"
	}
	pad := ""
	if strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") {
		pad = " "
	}
	return ticks + pad + content + pad + ticks
}

func destination(dest, title []byte) string {
	d := string(dest)
	if d == "" || strings.ContainsAny(d, " ()") {
		d = "<" + d + ">"
	}
	if len(title) == 0 {
		return d
	}
	return d + ` "` + strings.ReplaceAll(string(title), `"`, `\"`) + `"`
}
