package doc

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Kind identifies the type of a Layout node.
type Kind int

const (
	// End terminates every layout stream.
	End Kind = iota
	// TextTok emits a run of text.
	TextTok
	// LineTok emits a newline followed by indentation.
	LineTok
)

func (k Kind) String() string {
	switch k {
	case End:
		return "end"
	case TextTok:
		return "text"
	case LineTok:
		return "line"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Layout is one node of a lazily produced layout stream. The rest of the
// stream is computed on the first call to Next and cached.
type Layout struct {
	Kind    Kind
	Content string
	Style   Style

	next *Lazy[*Layout]
}

//nolint:gochecknoglobals // Shared terminator, never mutated.
var endLayout = &Layout{Kind: End}

// Next returns the following node, or nil after End.
func (l *Layout) Next() *Layout {
	if l == nil || l.next == nil {
		return nil
	}
	return l.next.Force()
}

// Width returns the number of terminal columns s occupies. For ASCII text
// it is the byte length; East Asian wide characters count two.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Fits reports whether the text of l up to its first line break fits in
// remaining columns. Text is measured in terminal columns (see Width), not
// bytes, so wide and combining characters count as they display.
func Fits(remaining int, l *Layout) bool {
	for {
		if remaining < 0 {
			return false
		}
		if l == nil || l.Kind != TextTok {
			return true
		}
		remaining -= Width(l.Content)
		l = l.Next()
	}
}

// Item is an indented document awaiting layout.
type Item struct {
	Indent int
	Doc    Doc
}

// workItem is the worklist used by best. The list is immutable so the tail
// can be shared by both branches of a union and by pending continuations.
type workItem struct {
	indent int
	doc    Doc
	next   *workItem
}

// Best lays out items for a maximum line width, starting at column. Items
// are processed in order. The returned stream is lazy: only the nodes that
// are consumed are ever computed.
func Best(width, column int, items ...Item) *Layout {
	var list *workItem
	for i := len(items) - 1; i >= 0; i-- {
		list = &workItem{indent: items[i].Indent, doc: items[i].Doc, next: list}
	}
	return best(width, column, list)
}

func best(width, column int, items *workItem) *Layout {
	for items != nil {
		indent, rest := items.indent, items.next

		switch d := items.doc.(type) {
		case NilNode:
			items = rest

		case ConcatNode:
			for i := len(d.Parts) - 1; i >= 0; i-- {
				rest = &workItem{indent: indent, doc: d.Parts[i], next: rest}
			}
			items = rest

		case NestNode:
			items = &workItem{indent: indent + d.Indent, doc: d.Body, next: rest}

		case TextNode:
			column += Width(d.Content)
			return &Layout{
				Kind:    TextTok,
				Content: d.Content,
				Style:   d.Style,
				next:    NewLazy(func() *Layout { return best(width, column, rest) }),
			}

		case LineNode:
			return &Layout{
				Kind:    LineTok,
				Content: "\n" + strings.Repeat(" ", indent),
				next:    NewLazy(func() *Layout { return best(width, indent, rest) }),
			}

		case UnionNode:
			candidate := best(width, column, &workItem{indent: indent, doc: d.Primary.Force(), next: rest})
			if Fits(width-column, candidate) {
				return candidate
			}
			items = &workItem{indent: indent, doc: d.Fallback.Force(), next: rest}

		default:
			panic(fmt.Sprintf("doc: unknown document type %T", d))
		}
	}
	return endLayout
}
