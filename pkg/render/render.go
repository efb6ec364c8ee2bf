// Package render writes laid-out token streams in an output format: plain
// text, ANSI-colored text, HTML or JSON.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/prettydoc/internal/ui/pretty"
	"github.com/yaklabco/prettydoc/pkg/doc"
)

// Format names an output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatANSI Format = "ansi"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// DefaultClassPrefix prefixes the CSS class of every styled HTML span.
const DefaultClassPrefix = "pd-"

// bufWriterSize is the buffer size for renderer output.
const bufWriterSize = 64 * 1024

// Formats returns every output format.
func Formats() []Format {
	return []Format{FormatText, FormatANSI, FormatHTML, FormatJSON}
}

// ParseFormat converts a format name. Empty means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	for _, f := range Formats() {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

// Renderer writes a token stream.
type Renderer interface {
	Render(w io.Writer, tokens []doc.Token) error
}

// Options configures a renderer.
type Options struct {
	Format Format

	// Styles maps token styles to terminal colors for FormatANSI. Nil uses
	// forced-color defaults.
	Styles *pretty.Styles

	// ClassPrefix prefixes HTML span classes. Empty uses
	// DefaultClassPrefix.
	ClassPrefix string
}

// New creates a renderer for opts.Format.
func New(opts Options) (Renderer, error) {
	switch opts.Format {
	case FormatText, "":
		return TextRenderer{}, nil
	case FormatANSI:
		styles := opts.Styles
		if styles == nil {
			styles = pretty.NewStylesFor(io.Discard, true)
		}
		return &ANSIRenderer{styles: styles}, nil
	case FormatHTML:
		prefix := opts.ClassPrefix
		if prefix == "" {
			prefix = DefaultClassPrefix
		}
		return &HTMLRenderer{prefix: prefix}, nil
	case FormatJSON:
		return JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// Render writes tokens to w in format f with default options.
func Render(w io.Writer, f Format, tokens []doc.Token) error {
	r, err := New(Options{Format: f})
	if err != nil {
		return err
	}
	return r.Render(w, tokens)
}

// TextRenderer writes token contents only.
type TextRenderer struct{}

// Render implements Renderer.
func (TextRenderer) Render(w io.Writer, tokens []doc.Token) error {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	for _, tok := range tokens {
		if _, err := bw.WriteString(tok.Content); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
	}
	return flush(bw)
}

// ANSIRenderer writes token contents colored by style.
type ANSIRenderer struct {
	styles *pretty.Styles
}

// Render implements Renderer.
func (r *ANSIRenderer) Render(w io.Writer, tokens []doc.Token) error {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	for _, tok := range tokens {
		if _, err := bw.WriteString(r.styles.RenderToken(tok)); err != nil {
			return fmt.Errorf("write ansi: %w", err)
		}
	}
	return flush(bw)
}

func flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
