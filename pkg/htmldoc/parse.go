package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads HTML from r and returns its top-level nodes.
//
// Input starting with a doctype or an <html> tag is parsed as a complete
// document; anything else is parsed as a fragment of <body>, so snippets
// are not wrapped in implied html/head/body elements. Whitespace-only text
// is dropped and other text is trimmed, except inside raw elements (see
// IsRaw) where it is kept unchanged. Dropped whitespace is remembered in
// Node.SpaceBefore of the following sibling.
func Parse(r io.Reader) ([]*Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}

	if isDocument(src) {
		root, err := html.Parse(bytes.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
		return convertChildren(root), nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	fragment, err := html.ParseFragment(bytes.NewReader(src), context)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}

	return convertAll(fragment), nil
}

// ParseString is Parse for in-memory input.
func ParseString(s string) ([]*Node, error) {
	return Parse(strings.NewReader(s))
}

func isDocument(src []byte) bool {
	head := strings.ToLower(string(bytes.TrimSpace(src[:min(len(src), 512)])))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

func convertChildren(n *html.Node) []*Node {
	var siblings []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		siblings = append(siblings, c)
	}
	return convertAll(siblings)
}

// htmlSpace is the whitespace of the HTML standard. Unlike unicode.IsSpace
// it leaves U+00A0 (&nbsp;) alone.
const htmlSpace = " \t\n\f\r"

func isHTMLSpace(r rune) bool {
	return strings.ContainsRune(htmlSpace, r)
}

// convertAll converts sibling nodes, folding whitespace at text edges into
// SpaceBefore.
func convertAll(siblings []*html.Node) []*Node {
	var out []*Node
	pending := false
	for _, c := range siblings {
		if c.Type == html.TextNode {
			text := strings.Trim(c.Data, htmlSpace)
			if text == "" {
				pending = pending || c.Data != ""
				continue
			}
			node := TextNode(text)
			node.SpaceBefore = pending || text[0] != c.Data[0]
			out = append(out, node)
			pending = text[len(text)-1] != c.Data[len(c.Data)-1]
			continue
		}

		node := convert(c)
		if node == nil {
			continue
		}
		node.SpaceBefore = pending
		pending = false
		out = append(out, node)
	}
	return out
}

// serializeChildren renders the children of n back to markup. Text in
// script and style is raw text and must not be escaped.
func serializeChildren(n *html.Node) ([]*Node, error) {
	rawText := n.DataAtom == atom.Script || n.DataAtom == atom.Style

	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rawText && c.Type == html.TextNode {
			buf.WriteString(c.Data)
			continue
		}
		if err := html.Render(&buf, c); err != nil {
			return nil, fmt.Errorf("render <%s> content: %w", n.Data, err)
		}
	}
	if buf.Len() == 0 {
		return nil, nil
	}
	return []*Node{Raw(buf.String())}, nil
}

// convert converts a non-text node. Text is handled by convertAll.
func convert(n *html.Node) *Node {
	switch n.Type {
	case html.CommentNode:
		return Comment(strings.TrimSpace(n.Data))

	case html.DoctypeNode:
		return Doctype(n.Data)

	case html.ElementNode:
		attrs := make([]Attr, len(n.Attr))
		for i, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + key
			}
			attrs[i] = Attr{Key: key, Value: a.Val}
		}
		if IsRaw(n.Data) {
			children, err := serializeChildren(n)
			if err == nil {
				return Element(n.Data, attrs, children...)
			}
		}
		return Element(n.Data, attrs, convertChildren(n)...)

	default:
		return nil
	}
}
