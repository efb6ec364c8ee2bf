package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prettydoc/internal/ui/pretty"
	"github.com/yaklabco/prettydoc/pkg/doc"
	"github.com/yaklabco/prettydoc/pkg/htmldoc"
	"github.com/yaklabco/prettydoc/pkg/render"
)

func sampleTokens() []doc.Token {
	img := htmldoc.Element("img", []htmldoc.Attr{{Key: "alt", Value: "a<b"}})
	return htmldoc.Pretty(80, img)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    render.Format
		wantErr bool
	}{
		{"", render.FormatText, false},
		{"text", render.FormatText, false},
		{"ANSI", render.FormatANSI, false},
		{"html", render.FormatHTML, false},
		{"json", render.FormatJSON, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		got, err := render.ParseFormat(tt.name)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
			continue
		}
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	assert.Len(t, render.Formats(), 4)
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := render.New(render.Options{Format: "svg"})
	assert.Error(t, err)
}

func TestTextRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, render.Render(&buf, render.FormatText, sampleTokens()))
	assert.Equal(t, `<img alt="a&lt;b"/>`, buf.String())
}

func TestANSIRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r, err := render.New(render.Options{Format: render.FormatANSI, Styles: pretty.NewStylesFor(&buf, true)})
	require.NoError(t, err)
	require.NoError(t, r.Render(&buf, sampleTokens()))

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "<img")

	var plain bytes.Buffer
	r, err = render.New(render.Options{Format: render.FormatANSI, Styles: pretty.NewStylesFor(&plain, false)})
	require.NoError(t, err)
	require.NoError(t, r.Render(&plain, sampleTokens()))
	assert.Equal(t, `<img alt="a&lt;b"/>`, plain.String(), "no color leaves the text")
}

func TestHTMLRenderer(t *testing.T) {
	t.Parallel()

	tokens := []doc.Token{
		{Content: "<p", Style: htmldoc.StyleTag},
		{Content: "\n  "},
		{Content: "a & b"},
		{Content: ""},
	}

	var buf bytes.Buffer
	require.NoError(t, render.Render(&buf, render.FormatHTML, tokens))
	assert.Equal(t, "<pre><span class=\"pd-tag\">&lt;p</span>\n  a &amp; b</pre>\n", buf.String())

	buf.Reset()
	r, err := render.New(render.Options{Format: render.FormatHTML, ClassPrefix: "x-"})
	require.NoError(t, err)
	require.NoError(t, r.Render(&buf, tokens[:1]))
	assert.Equal(t, "<pre><span class=\"x-tag\">&lt;p</span></pre>\n", buf.String())
}

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, render.Render(&buf, render.FormatJSON, sampleTokens()))

	var decoded []doc.Token
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleTokens(), decoded)
	assert.True(t, strings.Contains(buf.String(), `"style": "tag"`))

	buf.Reset()
	require.NoError(t, render.Render(&buf, render.FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}
