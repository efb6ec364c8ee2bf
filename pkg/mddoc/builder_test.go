package mddoc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prettydoc/pkg/doc"
	"github.com/yaklabco/prettydoc/pkg/mddoc"
)

func format(t *testing.T, flavor, src string, width int) string {
	t.Helper()

	d, err := mddoc.New(flavor).Build(context.Background(), []byte(src), width)
	require.NoError(t, err)

	return doc.String(width, d)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		width int
		want  string
	}{
		{
			name:  "paragraph reflow",
			src:   "The quick brown fox jumps over the lazy dog.\n",
			width: 20,
			want:  "The quick brown fox\njumps over the lazy\ndog.",
		},
		{
			name:  "paragraph joins short lines",
			src:   "one\ntwo\nthree\n",
			width: 80,
			want:  "one two three",
		},
		{
			name:  "setext heading becomes atx",
			src:   "Title\n=====\n\nSome text.\n",
			width: 80,
			want:  "# Title\n\nSome text.",
		},
		{
			name:  "inline markup",
			src:   "Some *very important* and **bold** `code  span` words.\n",
			width: 80,
			want:  "Some *very important* and **bold** `code  span` words.",
		},
		{
			name:  "link",
			src:   "See [the docs](https://x.io \"Title\") now.\n",
			width: 80,
			want:  "See [the docs](https://x.io \"Title\") now.",
		},
		{
			name:  "autolink",
			src:   "Visit <https://example.com> today.\n",
			width: 80,
			want:  "Visit <https://example.com> today.",
		},
		{
			name:  "hard break",
			src:   "line one\\\nline two\n",
			width: 80,
			want:  "line one\\\nline two",
		},
		{
			name:  "no block marker at line start",
			src:   "a b - c\n",
			width: 4,
			want:  "a\nb -\nc",
		},
		{
			name:  "tight list",
			src:   "- one\n- two\n  - nested\n",
			width: 80,
			want:  "- one\n- two\n  - nested",
		},
		{
			name:  "loose list",
			src:   "- a\n\n- b\n",
			width: 80,
			want:  "- a\n\n- b",
		},
		{
			name:  "ordered list keeps start and delimiter",
			src:   "3) x\n4) y\n",
			width: 80,
			want:  "3) x\n4) y",
		},
		{
			name:  "list item wraps under marker",
			src:   "1. alpha beta gamma\n",
			width: 12,
			want:  "1. alpha\n   beta\n   gamma",
		},
		{
			name:  "fenced code",
			src:   "```go\nfunc main() {}\n```\n",
			width: 5,
			want:  "```go\nfunc main() {}\n```",
		},
		{
			name:  "tilde fence",
			src:   "~~~\nx\n~~~\n",
			width: 80,
			want:  "~~~\nx\n~~~",
		},
		{
			name:  "indented code becomes fenced",
			src:   "    x := 1\n",
			width: 80,
			want:  "```\nx := 1\n```",
		},
		{
			name:  "blockquote",
			src:   "> quoted text that wraps\n",
			width: 12,
			want:  "> quoted\n> text that\n> wraps",
		},
		{
			name:  "blockquote with two paragraphs",
			src:   "> a\n>\n> b\n",
			width: 80,
			want:  "> a\n>\n> b",
		},
		{
			name:  "thematic break",
			src:   "a\n\n***\n\nb\n",
			width: 80,
			want:  "a\n\n---\n\nb",
		},
		{
			name:  "html block",
			src:   "<div>\n  kept   as is\n</div>\n",
			width: 5,
			want:  "<div>\n  kept   as is\n</div>",
		},
		{
			name:  "empty document",
			src:   "",
			width: 80,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, format(t, mddoc.FlavorCommonMark, tt.src, tt.width))
		})
	}
}

func TestBuild_GFM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "table",
			src:  "| a | bb |\n|---|:-:|\n| ccc | d |\n",
			want: "| a   | bb  |\n| --- | :-: |\n| ccc |  d  |",
		},
		{
			name: "strikethrough",
			src:  "~~gone~~ text\n",
			want: "~~gone~~ text",
		},
		{
			name: "task list",
			src:  "- [x] done\n- [ ] todo\n",
			want: "- [x] done\n- [ ] todo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, format(t, mddoc.FlavorGFM, tt.src, 80))
		})
	}
}

func TestBuild_Styles(t *testing.T) {
	t.Parallel()

	d, err := mddoc.New(mddoc.FlavorCommonMark).Build(context.Background(), []byte("# Hi *you*\n"), 80)
	require.NoError(t, err)

	assert.Equal(t, []doc.Token{
		{Content: "#", Style: mddoc.StyleMarker},
		{Content: " "},
		{Content: "Hi", Style: mddoc.StyleHeading},
		{Content: " "},
		{Content: "*", Style: mddoc.StyleMarker},
		{Content: "you", Style: mddoc.StyleEmphasis},
		{Content: "*", Style: mddoc.StyleMarker},
	}, doc.Pretty(80, d))
}

func TestBuild_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mddoc.New(mddoc.FlavorGFM).Build(ctx, []byte("text"), 80)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Flavor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mddoc.FlavorGFM, mddoc.New("gfm").Flavor())
	assert.Equal(t, mddoc.FlavorCommonMark, mddoc.New("unknown").Flavor())
}
