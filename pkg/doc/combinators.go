package doc

import (
	"fmt"
	"strings"
)

// Flatten returns the single-line rendering of d: unions are replaced by
// their primary branch and line breaks by their reduced text.
func Flatten(d Doc) Doc {
	for {
		u, ok := d.(UnionNode)
		if !ok {
			break
		}
		if u.flat {
			return u.Primary.Force()
		}
		d = u.Primary.Force()
	}

	switch d := d.(type) {
	case NilNode, TextNode:
		return d
	case LineNode:
		return TextNode{Content: d.Reduced}
	case NestNode:
		return NestNode{Indent: d.Indent, Body: Flatten(d.Body)}
	case ConcatNode:
		parts := make([]Doc, len(d.Parts))
		for i, p := range d.Parts {
			parts[i] = Flatten(p)
		}
		return ConcatNode{Parts: parts}
	default:
		panic(fmt.Sprintf("doc: unknown document type %T", d))
	}
}

// Group offers d on a single line, falling back to d as written.
func Group(d Doc) Doc {
	return UnionNode{
		Primary:  NewLazy(func() Doc { return Flatten(d) }),
		Fallback: Value(d),
		flat:     true,
	}
}

// Fill packs items onto lines like words in a paragraph: each separator is
// a space when the next item fits on the current line and a line break
// otherwise.
func Fill(items []Doc) Doc {
	return FillSpaced(items, nil)
}

// FillSpaced is Fill with a choice per gap. Gap i, between items i and
// i+1, is a space when the items share a line and spaced[i] is set, and
// nothing when it is not. Gaps past the end of spaced are spaces. Every
// gap may still become a line break.
func FillSpaced(items []Doc, spaced []bool) Doc {
	if len(items) == 0 {
		return Nil
	}
	return fill(items[0], items[1:], spaced)
}

func fill(first Doc, rest []Doc, spaced []bool) Doc {
	if len(rest) == 0 {
		return first
	}
	sep := " "
	if len(spaced) > 0 {
		if !spaced[0] {
			sep = ""
		}
		spaced = spaced[1:]
	}
	second, tail := rest[0], rest[1:]
	return Union(
		NewLazy(func() Doc {
			return Concat(Flatten(first), Text(sep, ""), fill(Flatten(second), tail, spaced))
		}),
		NewLazy(func() Doc {
			return Concat(first, SoftLine(), fill(second, tail, spaced))
		}),
	)
}

// Join places sep between consecutive items.
func Join(sep Doc, items []Doc) Doc {
	if len(items) == 0 {
		return Nil
	}
	parts := make([]Doc, 0, 2*len(items)-1)
	for i, item := range items {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, item)
	}
	return Concat(parts...)
}

// Words splits s on whitespace into one text document per word.
func Words(s string, style Style) []Doc {
	fields := strings.Fields(s)
	words := make([]Doc, len(fields))
	for i, f := range fields {
		words[i] = Text(f, style)
	}
	return words
}

// Verbatim renders multi-line text line by line, each line break indented
// by the enclosing Nest. A trailing newline is dropped.
func Verbatim(s string, style Style) Doc {
	s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	lines := strings.Split(s, "\n")
	parts := make([]Doc, len(lines))
	for i, l := range lines {
		parts[i] = Text(l, style)
	}
	return Join(SoftLine(), parts)
}
