package doc_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

func BenchmarkPrettyFillWords(b *testing.B) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 200)
	d := doc.Fill(doc.Words(text, ""))
	b.ResetTimer()
	for range b.N {
		doc.Pretty(80, d)
	}
}

// nestedList builds depth levels of bracketed, comma-separated groups.
func nestedList(depth, width int) doc.Doc {
	if depth == 0 {
		return doc.Text("item", "")
	}
	items := make([]doc.Doc, width)
	for i := range items {
		items[i] = nestedList(depth-1, width)
	}
	return doc.Group(doc.Concat(
		doc.Text("[", ""),
		doc.Nest(2, doc.Concat(doc.SoftLine(), doc.Join(doc.Concat(doc.Text(",", ""), doc.Line()), items))),
		doc.SoftLine(),
		doc.Text("]", ""),
	))
}

func BenchmarkPrettyNestedGroups(b *testing.B) {
	d := nestedList(4, 5)
	b.ResetTimer()
	for range b.N {
		doc.Pretty(60, d)
	}
}

func BenchmarkPrettyNarrow(b *testing.B) {
	d := nestedList(3, 6)
	b.ResetTimer()
	for range b.N {
		doc.Pretty(1, d)
	}
}
