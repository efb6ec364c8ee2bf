package doc_test

import (
	"math/rand/v2"
	"strings"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

// randomDoc builds a pseudo-random document from every constructor.
func randomDoc(r *rand.Rand, depth int) doc.Doc {
	words := []string{"a", "bb", "ccc", "dddd", "x", "lorem", "ipsum"}
	if depth <= 0 {
		switch r.IntN(3) {
		case 0:
			return doc.Line()
		case 1:
			return doc.SoftLine()
		default:
			return doc.Text(words[r.IntN(len(words))], "")
		}
	}

	children := func() []doc.Doc {
		n := 1 + r.IntN(4)
		out := make([]doc.Doc, n)
		for i := range out {
			out[i] = randomDoc(r, depth-1)
		}
		return out
	}

	switch r.IntN(6) {
	case 0:
		return doc.Text(words[r.IntN(len(words))], "")
	case 1:
		return doc.Nest(r.IntN(4), randomDoc(r, depth-1))
	case 2:
		return doc.Concat(children()...)
	case 3:
		return doc.Group(doc.Concat(children()...))
	case 4:
		return doc.Fill(children())
	default:
		return doc.Concat(doc.Text(words[r.IntN(len(words))], ""), doc.Line(), randomDoc(r, depth-1))
	}
}

func randomDocs(n int) []doc.Doc {
	r := rand.New(rand.NewPCG(7, 11)) //nolint:gosec // Deterministic test data.
	docs := make([]doc.Doc, n)
	for i := range docs {
		docs[i] = randomDoc(r, 4)
	}
	return docs
}

// flatText concatenates the text a document shows when laid out on one line.
func flatText(d doc.Doc) string {
	var sb strings.Builder
	var walk func(doc.Doc)
	walk = func(d doc.Doc) {
		switch d := d.(type) {
		case doc.TextNode:
			sb.WriteString(d.Content)
		case doc.LineNode:
			sb.WriteString(d.Reduced)
		case doc.NestNode:
			walk(d.Body)
		case doc.ConcatNode:
			for _, p := range d.Parts {
				walk(p)
			}
		case doc.UnionNode:
			walk(d.Primary.Force())
		}
	}
	walk(d)
	return sb.String()
}

// firstLineWidth returns the width of the text before the first line token.
func firstLineWidth(tokens []doc.Token) int {
	n := 0
	for _, tok := range tokens {
		if strings.HasPrefix(tok.Content, "\n") {
			break
		}
		n += doc.Width(tok.Content)
	}
	return n
}

func tokenContents(tokens []doc.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Content
	}
	return out
}
