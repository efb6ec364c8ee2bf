package htmldoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/prettydoc/pkg/doc"
	"github.com/yaklabco/prettydoc/pkg/htmldoc"
)

func render(width int, nodes ...*htmldoc.Node) string {
	return doc.Contents(htmldoc.Pretty(width, nodes...))
}

func TestPretty_TextReflow(t *testing.T) {
	t.Parallel()

	p := htmldoc.Element("p", nil, htmldoc.TextNode("Hello world"))

	tests := []struct {
		width int
		want  string
	}{
		{width: 80, want: "<p>Hello world</p>"},
		{width: 14, want: "<p>\n  Hello world\n</p>"},
		{width: 10, want: "<p>\n  Hello\n  world\n</p>"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, render(tt.width, p), "width %d", tt.width)
	}
}

func TestPretty_Attributes(t *testing.T) {
	t.Parallel()

	a := htmldoc.Element("a", []htmldoc.Attr{{Key: "href", Value: "x"}, {Key: "class", Value: "big"}},
		htmldoc.TextNode("link"))

	assert.Equal(t, `<a href="x" class="big">link</a>`, render(80, a))
	assert.Equal(t, "<a\n  href=\"x\"\n  class=\"big\"\n>link</a>", render(12, a))
}

func TestPretty_Styles(t *testing.T) {
	t.Parallel()

	img := htmldoc.Element("img", []htmldoc.Attr{{Key: "src", Value: "a.png"}})

	assert.Equal(t, []doc.Token{
		{Content: "<img", Style: htmldoc.StyleTag},
		{Content: " "},
		{Content: "src=", Style: htmldoc.StyleProperty},
		{Content: `"a.png"`, Style: htmldoc.StyleAttribute},
		{Content: ""},
		{Content: "/>", Style: htmldoc.StyleTag},
	}, htmldoc.Pretty(80, img))
}

func TestPretty_EmptyElements(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<br/>", render(80, htmldoc.Element("br", nil)))
	assert.Equal(t, `<img src="a.png" alt/>`, render(80, htmldoc.Element("img",
		[]htmldoc.Attr{{Key: "src", Value: "a.png"}, {Key: "alt"}})))
	assert.Equal(t, "<div></div>", render(80, htmldoc.Element("div", nil)))
}

func TestPretty_Escaping(t *testing.T) {
	t.Parallel()

	p := htmldoc.Element("p", []htmldoc.Attr{{Key: "title", Value: `say "hi"`}}, htmldoc.TextNode("a<b & c"))

	assert.Equal(t, `<p title="say &#34;hi&#34;">a&lt;b &amp; c</p>`, render(80, p))
}

func TestPretty_NestedList(t *testing.T) {
	t.Parallel()

	ul := htmldoc.Element("ul", nil,
		htmldoc.Element("li", nil, htmldoc.TextNode("one")),
		htmldoc.Element("li", nil, htmldoc.TextNode("two")),
	)

	assert.Equal(t, "<ul><li>one</li><li>two</li></ul>", render(80, ul))
	assert.Equal(t, "<ul>\n  <li>one</li><li>two</li>\n</ul>", render(30, ul))
	assert.Equal(t, "<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>", render(20, ul))
}

func TestPretty_SpaceBeforeSiblings(t *testing.T) {
	t.Parallel()

	two := htmldoc.Element("li", nil, htmldoc.TextNode("two"))
	two.SpaceBefore = true
	ul := htmldoc.Element("ul", nil, htmldoc.Element("li", nil, htmldoc.TextNode("one")), two)

	assert.Equal(t, "<ul><li>one</li> <li>two</li></ul>", render(80, ul))
	assert.Equal(t, "<ul>\n  <li>one</li> <li>two</li>\n</ul>", render(30, ul))
	assert.Equal(t, "<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>", render(20, ul))
}

func TestPretty_CustomIndent(t *testing.T) {
	t.Parallel()

	p := htmldoc.Element("p", nil, htmldoc.TextNode("Hello world"))

	assert.Equal(t, "<p>\n    Hello\n    world\n</p>", doc.Contents(htmldoc.Printer{Indent: 4}.Pretty(10, p)))
}

func TestPretty_CommentAndDoctype(t *testing.T) {
	t.Parallel()

	got := render(80, htmldoc.Doctype("html"), htmldoc.Comment("note here"), htmldoc.Element("p", nil, htmldoc.TextNode("hi")))

	assert.Equal(t, "<!DOCTYPE html>\n<!-- note here -->\n<p>hi</p>", got)
}

func TestPretty_RawContentUnchanged(t *testing.T) {
	t.Parallel()

	div := htmldoc.Element("div", nil, htmldoc.Element("pre", nil, htmldoc.TextNode("a <b>\n  c")))

	assert.Equal(t, "<div><pre>a &lt;b&gt;\n  c</pre></div>", render(80, div))
}

func TestShow_TextSplitsIntoWords(t *testing.T) {
	t.Parallel()

	ds := htmldoc.Show(htmldoc.TextNode(" Here is  some "))

	assert.Equal(t, []doc.Doc{doc.Text("Here", ""), doc.Text("is", ""), doc.Text("some", "")}, ds)
}

func TestDocument_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, doc.Nil, htmldoc.Document())
}
