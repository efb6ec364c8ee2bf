// Package htmldoc turns HTML trees into pretty-printable documents.
//
// Elements are laid out so that tags get lines to themselves when the
// content does not fit: child lists and attribute lists are grouped and
// indented, and text is reflowed word by word with doc.Fill.
package htmldoc

// Kind identifies the type of a Node.
type Kind int

const (
	// KindElement is a tag with attributes and children.
	KindElement Kind = iota
	// KindText is character data.
	KindText
	// KindComment is an HTML comment.
	KindComment
	// KindDoctype is a document type declaration.
	KindDoctype
	// KindRaw is serialized markup that is printed unchanged.
	KindRaw
)

// Attr is a single attribute. Attributes keep their source order.
type Attr struct {
	Key   string
	Value string
}

// Node is an HTML element, text run, comment or doctype.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Children []*Node
	// Text holds the content of every node kind except elements.
	Text string
	// SpaceBefore records whitespace between the node and its previous
	// sibling in the source. Without it the two are printed touching.
	SpaceBefore bool
}

// Element returns an element node.
func Element(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Kind: KindElement, Tag: tag, Attrs: attrs, Children: children}
}

// TextNode returns a text node.
func TextNode(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// Comment returns a comment node.
func Comment(text string) *Node {
	return &Node{Kind: KindComment, Text: text}
}

// Raw returns a node whose text is printed exactly as given.
func Raw(markup string) *Node {
	return &Node{Kind: KindRaw, Text: markup}
}

// Doctype returns a doctype node, e.g. Doctype("html").
func Doctype(name string) *Node {
	return &Node{Kind: KindDoctype, Text: name}
}

//nolint:gochecknoglobals // Read-only lookup table.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var rawElements = map[string]bool{
	"pre": true, "script": true, "style": true, "textarea": true,
}

// IsVoid reports whether tag never has content and is written self-closed.
func IsVoid(tag string) bool {
	return voidElements[tag]
}

// IsRaw reports whether whitespace inside tag is significant, so its
// content must be printed unchanged.
func IsRaw(tag string) bool {
	return rawElements[tag]
}
