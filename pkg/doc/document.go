package doc

// Style is an opaque display hint attached to text. The empty style means
// "default".
type Style string

// Doc is an immutable document. The set of implementations is closed:
// NilNode, TextNode, LineNode, NestNode, ConcatNode and UnionNode.
type Doc interface {
	isDoc()
}

// NilNode contributes nothing to the output.
type NilNode struct{}

// TextNode is a run of text without line breaks.
type TextNode struct {
	Content string
	Style   Style
}

// LineNode is a potential line break. When the enclosing document is
// flattened it becomes the Reduced text instead.
type LineNode struct {
	Reduced string
}

// NestNode indents every line break inside Body by Indent more spaces.
type NestNode struct {
	Indent int
	Body   Doc
}

// ConcatNode lays out Parts one after another.
type ConcatNode struct {
	Parts []Doc
}

// UnionNode is a choice between two renderings of the same content. The
// first line of Primary must be at least as long as the first line of
// Fallback; Best relies on this to try Primary first and never look back.
type UnionNode struct {
	Primary  *Lazy[Doc]
	Fallback *Lazy[Doc]

	// flat is set when Primary is already the flattened form of Fallback.
	flat bool
}

func (NilNode) isDoc()    {}
func (TextNode) isDoc()   {}
func (LineNode) isDoc()   {}
func (NestNode) isDoc()   {}
func (ConcatNode) isDoc() {}
func (UnionNode) isDoc()  {}

// Nil is the empty document.
//
//nolint:gochecknoglobals // Immutable sentinel value.
var Nil Doc = NilNode{}

// Text returns a text document.
//
// content must not contain line breaks. Such content is not rejected: it is
// emitted verbatim and counted as if it were on a single line, which breaks
// width accounting. Use Verbatim for multi-line text.
func Text(content string, style Style) Doc {
	return TextNode{Content: content, Style: style}
}

// Line returns a line break that flattens to a single space.
func Line() Doc {
	return LineNode{Reduced: " "}
}

// SoftLine returns a line break that flattens to nothing.
func SoftLine() Doc {
	return LineNode{Reduced: ""}
}

// LineOr returns a line break that flattens to reduced.
func LineOr(reduced string) Doc {
	return LineNode{Reduced: reduced}
}

// Nest indents the line breaks of body by indent spaces. Negative indents
// are treated as zero.
func Nest(indent int, body Doc) Doc {
	if indent < 0 {
		indent = 0
	}
	return NestNode{Indent: indent, Body: body}
}

// Concat joins parts in order. The slice is copied.
func Concat(parts ...Doc) Doc {
	switch len(parts) {
	case 0:
		return Nil
	case 1:
		return parts[0]
	}
	cp := make([]Doc, len(parts))
	copy(cp, parts)
	return ConcatNode{Parts: cp}
}

// Union returns a choice between two lazily built documents. The caller
// guarantees that primary's first line is at least as long as fallback's.
func Union(primary, fallback *Lazy[Doc]) Doc {
	return UnionNode{Primary: primary, Fallback: fallback}
}

// Either is Union for documents that are already built.
func Either(primary, fallback Doc) Doc {
	return Union(Value(primary), Value(fallback))
}
