// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

// Token style names produced by the built-in languages.
const (
	TokenTag       doc.Style = "tag"
	TokenProperty  doc.Style = "property"
	TokenAttribute doc.Style = "attribute"
	TokenComment   doc.Style = "comment"
	TokenHeading   doc.Style = "heading"
	TokenEmphasis  doc.Style = "emphasis"
	TokenStrong    doc.Style = "strong"
	TokenCode      doc.Style = "code"
	TokenLink      doc.Style = "link"
	TokenMarker    doc.Style = "marker"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	FilePath lipgloss.Style
	Language lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	tokens map[doc.Style]lipgloss.Style
	plain  lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode, rendering
// through the default lipgloss renderer.
func NewStyles(colorEnabled bool) *Styles {
	return newStyles(lipgloss.DefaultRenderer(), colorEnabled)
}

// NewStylesFor creates Styles bound to w. When colorEnabled is set, colors
// are emitted even if w is not a terminal.
func NewStylesFor(w io.Writer, colorEnabled bool) *Styles {
	renderer := lipgloss.NewRenderer(w)
	switch {
	case !colorEnabled:
		renderer.SetColorProfile(termenv.Ascii)
	case renderer.ColorProfile() == termenv.Ascii:
		renderer.SetColorProfile(termenv.ANSI256)
	}
	return newStyles(renderer, colorEnabled)
}

func newStyles(r *lipgloss.Renderer, colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles(r)
	}
	return newColorStyles(r)
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles(r *lipgloss.Renderer) *Styles {
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}
	token := func() lipgloss.Style {
		return r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	}

	return &Styles{
		Error:   color("9").Bold(true),
		Warning: color("11").Bold(true),

		FilePath: r.NewStyle().Bold(true),
		Language: color("8"),

		DiffHeader:  r.NewStyle().Bold(true),
		DiffHunk:    color("14"),
		DiffAdd:     color("10"),
		DiffRemove:  color("9"),
		DiffContext: color("8"),

		SummaryTitle: r.NewStyle().Bold(true),
		SummaryValue: r.NewStyle(),
		Success:      color("10").Bold(true),
		Failure:      color("9").Bold(true),

		Dim:  color("8"),
		Bold: r.NewStyle().Bold(true),

		tokens: map[doc.Style]lipgloss.Style{
			TokenTag:       token().Foreground(lipgloss.Color("12")),
			TokenProperty:  token().Foreground(lipgloss.Color("14")),
			TokenAttribute: token().Foreground(lipgloss.Color("10")),
			TokenComment:   token().Foreground(lipgloss.Color("8")).Italic(true),
			TokenHeading:   token().Foreground(lipgloss.Color("13")).Bold(true),
			TokenEmphasis:  token().Italic(true),
			TokenStrong:    token().Bold(true),
			TokenCode:      token().Foreground(lipgloss.Color("11")),
			TokenLink:      token().Foreground(lipgloss.Color("12")).Underline(true),
			TokenMarker:    token().Foreground(lipgloss.Color("8")),
		},
		plain: token(),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles(r *lipgloss.Renderer) *Styles {
	plain := r.NewStyle()
	return &Styles{
		Error:        plain,
		Warning:      plain,
		FilePath:     plain,
		Language:     plain,
		DiffHeader:   plain,
		DiffHunk:     plain,
		DiffAdd:      plain,
		DiffRemove:   plain,
		DiffContext:  plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		Failure:      plain,
		Dim:          plain,
		Bold:         plain,
		tokens:       map[doc.Style]lipgloss.Style{},
		plain:        plain.TabWidth(lipgloss.NoTabConversion),
	}
}

// Token returns the style for a document style tag. Unknown tags render
// unstyled.
func (s *Styles) Token(style doc.Style) lipgloss.Style {
	if st, ok := s.tokens[style]; ok {
		return st
	}
	return s.plain
}

// SetToken overrides the style used for a document style tag.
func (s *Styles) SetToken(style doc.Style, st lipgloss.Style) {
	s.tokens[style] = st
}

// RenderToken styles one token. Line breaks inside the content are kept
// outside the escape sequences so that lines are never padded.
func (s *Styles) RenderToken(tok doc.Token) string {
	st, ok := s.tokens[tok.Style]
	if !ok || tok.Content == "" {
		return tok.Content
	}

	lines := strings.Split(tok.Content, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = st.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
