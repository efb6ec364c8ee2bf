package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prettydoc/pkg/diff"
	"github.com/yaklabco/prettydoc/pkg/reporter"
	"github.com/yaklabco/prettydoc/pkg/runner"
)

const workDir = "/work"

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "case and space ignored", input: " JSON ", want: reporter.FormatJSON},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, reporter.FormatDiff.IsValid())
	assert.True(t, reporter.FormatSummary.IsValid())
	assert.False(t, reporter.Format("").IsValid())
	assert.False(t, reporter.Format("xml").IsValid())
}

func TestFormatNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text, table, json, diff, summary", reporter.FormatNames())
	for _, f := range reporter.Formats() {
		assert.True(t, f.IsValid(), f)
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
}

// sampleResult builds a run with one unchanged, one unformatted, one
// rewritten and one failed file.
func sampleResult() *runner.Result {
	unformatted := diff.Compute(filepath.Join(workDir, "b.md"), []byte("a\nb\n"), []byte("a\nc\n"))
	written := diff.Compute(filepath.Join(workDir, "docs", "c.html"), []byte("<p>\n</p>\n"), []byte("<p></p>\n"))

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: filepath.Join(workDir, "a.md"), Language: "markdown"},
			{Path: filepath.Join(workDir, "b.md"), Language: "markdown", Diff: unformatted, Changed: true},
			{
				Path: filepath.Join(workDir, "docs", "c.html"), Language: "html",
				Diff: written, Changed: true, Written: true,
			},
			{Path: filepath.Join(workDir, "d.pdoc"), Language: "pdoc", Error: errors.New("pdoc: unexpected token")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 4,
			FilesProcessed:  3,
			FilesUnchanged:  1,
			FilesChanged:    2,
			FilesWritten:    1,
			FilesErrored:    1,
			LinesAdded:      2,
			LinesRemoved:    3,
		},
	}
}

func report(t *testing.T, format reporter.Format, mutate func(*reporter.Options)) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts := reporter.Options{
		Writer:      &buf,
		Format:      format,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  workDir,
	}
	if mutate != nil {
		mutate(&opts)
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	n, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	return buf.String(), n
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatText, nil)
	assert.Equal(t, 2, n)

	assert.Contains(t, out, "  b.md  unformatted  +1 -1  [markdown]\n")
	assert.Contains(t, out, "  docs/c.html  reformatted  +1 -2  [html]\n")
	assert.Contains(t, out, "  d.pdoc  error  pdoc: unexpected token  [pdoc]\n")
	assert.NotContains(t, out, "a.md")
	assert.Contains(t, out, "1 of 2 changed files reformatted (+2 -3 lines), 1 error, 3 files checked\n")
}

func TestTextReporter_Verbose(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.FormatText, func(o *reporter.Options) {
		o.Verbose = true
		o.ShowSummary = false
	})

	assert.Contains(t, out, "  a.md  unchanged  [markdown]\n")
	assert.NotContains(t, out, "files checked")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	n, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "No files to format.\n", buf.String())
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatTable, nil)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 7)
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "STATUS")

	errorRow := -1
	for i, line := range lines {
		if strings.Contains(line, "d.pdoc") {
			errorRow = i
		}
	}
	require.Positive(t, errorRow)
	assert.True(t, strings.HasPrefix(lines[errorRow-1], "-"), "error rows follow a light separator")
	assert.Contains(t, out, "3 files checked | 2 changed | 1 written | 1 errors")
	assert.NotContains(t, out, "a.md")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatJSON, nil)
	assert.Equal(t, 2, n)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "1.0.0", decoded.Version)
	require.Len(t, decoded.Files, 4)

	assert.Equal(t, "unchanged", decoded.Files[0].Status)
	assert.Equal(t, "unformatted", decoded.Files[1].Status)
	assert.Equal(t, 1, decoded.Files[1].Additions)
	assert.Empty(t, decoded.Files[1].Diff)
	assert.Equal(t, "reformatted", decoded.Files[2].Status)
	assert.True(t, decoded.Files[2].Written)
	assert.Equal(t, "pdoc: unexpected token", decoded.Files[3].Error)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked:   3,
		FilesUnchanged: 1,
		FilesChanged:   2,
		FilesWritten:   1,
		FilesErrored:   1,
		LinesAdded:     2,
		LinesRemoved:   3,
	}, decoded.Summary)
}

func TestJSONReporter_CompactVerbose(t *testing.T) {
	t.Parallel()

	out, _ := report(t, reporter.FormatJSON, func(o *reporter.Options) {
		o.Compact = true
		o.Verbose = true
	})

	assert.Equal(t, 1, strings.Count(out, "\n"), "compact output is a single line")

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded.Files[1].Diff, "-b\n+c\n")
}

func TestJSONReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := reporter.NewJSONReporter(reporter.Options{Writer: &buf}).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, buf.String(), `"files": []`)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatDiff, nil)
	assert.Equal(t, 2, n)

	assert.Contains(t, out, "diff --git a/b.md b/b.md\n--- a/b.md\n+++ b/b.md\n")
	assert.Contains(t, out, "@@ -1,2 +1,2 @@\n a\n-b\n+c\n")
	assert.Contains(t, out, "diff --git a/docs/c.html b/docs/c.html\n")
	assert.Contains(t, out, "d.pdoc: error: pdoc: unexpected token\n")
	assert.NotContains(t, out, "a.md")
	assert.True(t, strings.HasSuffix(out, "2 files changed, 2 insertions(+), 3 deletions(-)\n"))
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, n := report(t, reporter.FormatSummary, nil)
	assert.Equal(t, 2, n)

	assert.Contains(t, out, "Languages")
	htmlRow := strings.Index(out, "html ")
	mdRow := strings.Index(out, "markdown ")
	require.NotEqual(t, -1, htmlRow)
	require.NotEqual(t, -1, mdRow)
	assert.Less(t, htmlRow, mdRow, "languages are sorted")
	assert.NotContains(t, out, "pdoc ", "failed files are not counted per language")

	assert.Contains(t, out, "Files checked:")
	assert.Contains(t, out, "Formatting failed for some files\n")
}
