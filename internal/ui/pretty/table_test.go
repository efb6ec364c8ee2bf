package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prettydoc/internal/ui/pretty"
	"github.com/yaklabco/prettydoc/pkg/diff"
	"github.com/yaklabco/prettydoc/pkg/runner"
)

func TestOutcomeToTableRow(t *testing.T) {
	row := pretty.OutcomeToTableRow("docs/a.md", &runner.FileOutcome{
		Language:   "markdown",
		Changed:    true,
		Written:    true,
		BackupPath: "docs/a.md.prettydoc.bak",
		Diff:       diff.Compute("a.md", []byte("x\n"), []byte("y\n")),
	})

	assert.Equal(t, pretty.TableRow{
		File:     "docs/a.md",
		Language: "markdown",
		Status:   pretty.StatusReformatted,
		Changes:  "+1 -1",
		Detail:   "backup: docs/a.md.prettydoc.bak",
	}, row)
}

func TestTableFormatter_FormatTable(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 80)

	assert.Empty(t, formatter.FormatTable(nil))

	out := formatter.FormatTable([]pretty.TableRow{
		{File: "a.md", Language: "markdown", Status: pretty.StatusUnchanged},
		{File: "b.html", Language: "html", Status: pretty.StatusUnformatted, Changes: "+3 -2"},
		{File: "c.go", Status: pretty.StatusError, Detail: errors.New(strings.Repeat("long ", 30)).Error()},
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "STATUS")
	assert.True(t, strings.HasPrefix(lines[1], "====="))
	assert.Contains(t, lines[3], "+3 -2")
	assert.True(t, strings.HasPrefix(lines[4], "-----"), "errors are set apart")
	assert.True(t, strings.HasSuffix(lines[5], "..."), "long details are truncated")
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 80)
	}
}

func TestTableFormatter_FormatTableSummary(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 0)

	got := formatter.FormatTableSummary(runner.Stats{FilesProcessed: 4, FilesChanged: 2, FilesWritten: 1, FilesErrored: 1}, "12ms")
	assert.Equal(t, " 4 files checked | 2 changed | 1 written | 1 errors | 12ms", got)
}
