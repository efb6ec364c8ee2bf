package pretty_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prettydoc/internal/ui/pretty"
	"github.com/yaklabco/prettydoc/pkg/doc"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	// With color disabled, styles should return unmodified text
	assert.Equal(t, "test", styles.Bold.Render("test"))
	assert.Equal(t, "test", styles.Error.Render("test"))
	assert.Equal(t, "<p", styles.RenderToken(doc.Token{Content: "<p", Style: pretty.TokenTag}))
}

func TestNewStylesFor_ForcedColor(t *testing.T) {
	var buf bytes.Buffer
	styles := pretty.NewStylesFor(&buf, true)

	got := styles.RenderToken(doc.Token{Content: "<p", Style: pretty.TokenTag})
	assert.Contains(t, got, "\x1b[", "forced color emits escapes even off a terminal")
	assert.Contains(t, got, "<p")

	plain := pretty.NewStylesFor(&buf, false)
	assert.Equal(t, "<p", plain.RenderToken(doc.Token{Content: "<p", Style: pretty.TokenTag}))
}

func TestStyles_RenderToken(t *testing.T) {
	var buf bytes.Buffer
	styles := pretty.NewStylesFor(&buf, true)

	t.Run("unknown style is unstyled", func(t *testing.T) {
		tok := doc.Token{Content: "x\ty", Style: "mystery"}
		assert.Equal(t, "x\ty", styles.RenderToken(tok))
	})

	t.Run("empty content", func(t *testing.T) {
		assert.Empty(t, styles.RenderToken(doc.Token{Style: pretty.TokenCode}))
	})

	t.Run("multi-line content keeps bare newlines", func(t *testing.T) {
		got := styles.RenderToken(doc.Token{Content: "a\n\nbb", Style: pretty.TokenCode})

		lines := strings.Split(got, "\n")
		require.Len(t, lines, 3)
		assert.Empty(t, lines[1])
		assert.Equal(t, "a", stripANSI(lines[0]))
		assert.Equal(t, "bb", stripANSI(lines[2]))
	})

	t.Run("override", func(t *testing.T) {
		custom := pretty.NewStylesFor(&buf, true)
		custom.SetToken("custom", lipgloss.NewStyle())
		assert.Equal(t, "z", stripANSI(custom.RenderToken(doc.Token{Content: "z", Style: "custom"})))
	})
}

func TestStyles_Token(t *testing.T) {
	styles := pretty.NewStyles(true)

	for _, style := range []doc.Style{
		pretty.TokenTag, pretty.TokenProperty, pretty.TokenAttribute, pretty.TokenComment,
		pretty.TokenHeading, pretty.TokenEmphasis, pretty.TokenStrong, pretty.TokenCode,
		pretty.TokenLink, pretty.TokenMarker, "unknown",
	} {
		assert.Equal(t, "x", stripANSI(styles.Token(style).Render("x")), string(style))
	}
}

// stripANSI removes CSI escape sequences.
func stripANSI(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			continue
		}
		out.WriteByte(s[i])
	}
	return out.String()
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf), "always mode should return true")
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout), "never mode should return false")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "auto mode with non-TTY should return false")
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	// Even with a TTY, NO_COLOR should disable colors
	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout), "auto mode with NO_COLOR set should return false")
}

func TestIsColorEnabled_DefaultsToAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode with non-TTY should return false (auto behavior)")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "unknown mode with non-TTY should return false (auto behavior)")
}
