package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/prettydoc/internal/ui/pretty"
	"github.com/yaklabco/prettydoc/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats results as a table with one row per file.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStylesFor(opts.Writer, colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		}
		return 0, nil
	}

	var rows, errorRows []pretty.TableRow
	for i := range result.Files {
		outcome := &result.Files[i]
		row := pretty.OutcomeToTableRow(r.opts.displayPath(outcome.Path), outcome)
		switch {
		case row.Status == pretty.StatusError:
			errorRows = append(errorRows, row)
		case row.Status == pretty.StatusUnchanged && !r.opts.Verbose:
		default:
			rows = append(rows, row)
		}
	}
	rows = append(rows, errorRows...)

	if len(rows) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("All files formatted."))
			fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf("%d files checked", result.Stats.FilesProcessed)))
		}
		return 0, nil
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(rows))
	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
	}

	return changedFiles(result), nil
}

// getTerminalWidth returns the width of w when it is a terminal.
func getTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
