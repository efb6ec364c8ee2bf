package doc

import "strings"

// Token is one emitted piece of a layout: either text with its style, or a
// newline plus indentation with the default style.
type Token struct {
	Content string `json:"content"`
	Style   Style  `json:"style"`
}

// Unravel walks l to the end, forcing each continuation, and collects one
// token per text or line node.
func Unravel(l *Layout) []Token {
	var tokens []Token
	for ; l != nil && l.Kind != End; l = l.Next() {
		tokens = append(tokens, Token{Content: l.Content, Style: l.Style})
	}
	return tokens
}

// Pretty returns the best layout of d for the given maximum line width.
func Pretty(width int, d Doc) []Token {
	return Unravel(Best(width, 0, Item{Indent: 0, Doc: d}))
}

// String is Pretty with the token contents joined.
func String(width int, d Doc) string {
	return Contents(Pretty(width, d))
}

// Contents concatenates token contents.
func Contents(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Content)
	}
	return sb.String()
}
