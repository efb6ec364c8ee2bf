package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/prettydoc/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, LANG, STATUS, CHANGES, DETAIL
	minFileWidth     = 20
	minLangWidth     = 8
	minStatusWidth   = 11
	minChangesWidth  = 9
	minDetailWidth   = 10
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single file in the outcome table.
type TableRow struct {
	File     string
	Language string
	Status   string
	Changes  string
	Detail   string
}

// OutcomeToTableRow converts a file outcome to a table row, displaying the
// file as path.
func OutcomeToTableRow(path string, outcome *runner.FileOutcome) TableRow {
	row := TableRow{
		File:     path,
		Language: outcome.Language,
		Status:   Status(outcome),
	}
	if outcome.Diff != nil && (outcome.Diff.Additions > 0 || outcome.Diff.Deletions > 0) {
		row.Changes = fmt.Sprintf("+%d -%d", outcome.Diff.Additions, outcome.Diff.Deletions)
	}
	switch {
	case outcome.Error != nil:
		row.Detail = outcome.Error.Error()
	case outcome.BackupPath != "":
		row.Detail = "backup: " + outcome.BackupPath
	case outcome.SkipReason != "":
		row.Detail = outcome.SkipReason
	}
	return row
}

// TableFormatter formats file outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	file    int
	lang    int
	status  int
	changes int
	detail  int
}

func (w columnWidths) total() int {
	return w.file + w.lang + w.status + w.changes + w.detail + tablePadding*tableColumnCount
}

// FormatTable formats rows as a styled table. Rows in error are separated
// from the rest by a light rule.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	inErrors := false
	for _, row := range rows {
		if row.Status == StatusError && !inErrors {
			inErrors = true
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths determines column widths from content, then shrinks
// the detail and file columns to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:    minFileWidth,
		lang:    minLangWidth,
		status:  minStatusWidth,
		changes: minChangesWidth,
		detail:  minDetailWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, runewidth.StringWidth(row.File))
		widths.lang = max(widths.lang, runewidth.StringWidth(row.Language))
		widths.changes = max(widths.changes, runewidth.StringWidth(row.Changes))
		widths.detail = max(widths.detail, runewidth.StringWidth(row.Detail))
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.detail = max(minDetailWidth, widths.detail-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := " " + pad("FILE", widths.file) + "  " +
		pad("LANG", widths.lang) + "  " +
		pad("STATUS", widths.status) + "  " +
		pad("CHANGES", widths.changes) + "  " +
		pad("DETAIL", widths.detail)
	return t.styles.Bold.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.Dim.Render(strings.Repeat(char, widths.total()))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	file := pad(truncateFilePath(row.File, widths.file), widths.file)
	lang := pad(row.Language, widths.lang)
	status := t.statusStyle(row.Status).Render(pad(row.Status, widths.status))
	changes := pad(row.Changes, widths.changes)
	detail := runewidth.Truncate(row.Detail, widths.detail, "...")

	return strings.TrimRight(" "+file+"  "+lang+"  "+status+"  "+changes+"  "+detail, " ")
}

func (t *TableFormatter) statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusError:
		return t.styles.Error
	case StatusUnformatted:
		return t.styles.Warning
	case StatusReformatted:
		return t.styles.Success
	default:
		return t.styles.Dim
	}
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d files checked", stats.FilesProcessed)}

	if stats.FilesChanged > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d changed", stats.FilesChanged)))
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, t.styles.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", stats.FilesErrored)))
	}
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// pad right-pads s with spaces to width terminal cells.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if runewidth.StringWidth(path) <= maxLen {
		return path
	}
	runes := []rune(path)
	for len(runes) > 0 && runewidth.StringWidth(string(runes))+3 > maxLen {
		runes = runes[1:]
	}
	if maxLen <= 3 {
		return string(runes)
	}
	return "..." + string(runes)
}
