package reporter

import (
	"bufio"
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/prettydoc/internal/ui/pretty"
	"github.com/yaklabco/prettydoc/pkg/runner"
)

// Summary table layout.
const (
	langColWidth = 12
	numColWidth  = 10
	tableWidth   = langColWidth + 4*(numColWidth+1)
)

// languageTotals aggregates outcomes of one language.
type languageTotals struct {
	files, changed, added, removed int
}

// SummaryReporter writes a per-language table followed by run totals.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStylesFor(opts.Writer, colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		return 0, nil
	}

	byLang := make(map[string]*languageTotals)
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			continue
		}
		lang := outcome.Language
		totals, ok := byLang[lang]
		if !ok {
			totals = &languageTotals{}
			byLang[lang] = totals
		}
		totals.files++
		if outcome.Changed {
			totals.changed++
		}
		if outcome.Diff != nil {
			totals.added += outcome.Diff.Additions
			totals.removed += outcome.Diff.Deletions
		}
	}

	if len(byLang) > 0 {
		r.renderLanguageTable(byLang)
	}
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return changedFiles(result), nil
}

func (r *SummaryReporter) renderLanguageTable(byLang map[string]*languageTotals) {
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Languages"))
	fmt.Fprintln(r.bw, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))

	fmt.Fprintf(r.bw, "%s %s %s %s %s\n",
		r.styles.Bold.Render(runewidth.FillRight("Language", langColWidth)),
		r.styles.Bold.Render(runewidth.FillLeft("Files", numColWidth)),
		r.styles.Bold.Render(runewidth.FillLeft("Changed", numColWidth)),
		r.styles.Bold.Render(runewidth.FillLeft("Added", numColWidth)),
		r.styles.Bold.Render(runewidth.FillLeft("Removed", numColWidth)),
	)
	fmt.Fprintln(r.bw, r.styles.Dim.Render(strings.Repeat("─", tableWidth)))

	for _, lang := range slices.Sorted(maps.Keys(byLang)) {
		totals := byLang[lang]
		changed := runewidth.FillLeft(strconv.Itoa(totals.changed), numColWidth)
		if totals.changed > 0 {
			changed = r.styles.Warning.Render(changed)
		}
		fmt.Fprintf(r.bw, "%s %s %s %s %s\n",
			runewidth.FillRight(lang, langColWidth),
			runewidth.FillLeft(strconv.Itoa(totals.files), numColWidth),
			changed,
			r.styles.DiffAdd.Render(runewidth.FillLeft(strconv.Itoa(totals.added), numColWidth)),
			r.styles.DiffRemove.Render(runewidth.FillLeft(strconv.Itoa(totals.removed), numColWidth)),
		)
	}
}
