package render

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/net/html"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

// HTMLRenderer writes a <pre> element with one span per styled token.
// Unstyled tokens are written as escaped text.
type HTMLRenderer struct {
	prefix string
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(w io.Writer, tokens []doc.Token) error {
	bw := bufio.NewWriterSize(w, bufWriterSize)

	if _, err := bw.WriteString("<pre>"); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	for _, tok := range tokens {
		if tok.Content == "" {
			continue
		}
		var err error
		if tok.Style == "" {
			_, err = bw.WriteString(html.EscapeString(tok.Content))
		} else {
			_, err = fmt.Fprintf(bw, `<span class="%s">%s</span>`,
				html.EscapeString(r.prefix+string(tok.Style)), html.EscapeString(tok.Content))
		}
		if err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}
	if _, err := bw.WriteString("</pre>\n"); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return flush(bw)
}
