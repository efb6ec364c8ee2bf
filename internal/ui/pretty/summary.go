package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/prettydoc/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files reformatted (+10 -4 lines), 1 error, 5 files checked".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("All files formatted") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed,
				plural(stats.FilesProcessed, wordFile, wordFiles))) + "\n"
	}

	var parts []string

	if stats.FilesChanged > 0 {
		lines := s.Dim.Render(fmt.Sprintf(" (+%d -%d lines)", stats.LinesAdded, stats.LinesRemoved))
		switch {
		case stats.FilesWritten == stats.FilesChanged:
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s reformatted",
				stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles)))+lines)
		case stats.FilesWritten > 0:
			parts = append(parts, s.Warning.Render(fmt.Sprintf("%d of %d changed %s reformatted",
				stats.FilesWritten, stats.FilesChanged, plural(stats.FilesChanged, wordFile, wordFiles)))+lines)
		default:
			parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s formatting",
				stats.FilesChanged, plural(stats.FilesChanged, "file needs", "files need")))+lines)
		}
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s",
			stats.FilesErrored, plural(stats.FilesErrored, "error", "errors"))))
	}

	parts = append(parts, fmt.Sprintf("%d %s checked", stats.FilesProcessed,
		plural(stats.FilesProcessed, wordFile, wordFiles)))

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, value int) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":"))
		builder.WriteString(style(strconv.Itoa(value)))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", s.SummaryValue.Render, stats.FilesProcessed)
	row("Unchanged", s.SummaryValue.Render, stats.FilesUnchanged)
	if stats.FilesChanged > 0 {
		row("Changed", s.Warning.Render, stats.FilesChanged)
	}
	if stats.FilesWritten > 0 {
		row("Written", s.Success.Render, stats.FilesWritten)
	}
	if stats.FilesSkipped > 0 {
		row("Skipped", s.Dim.Render, stats.FilesSkipped)
	}
	if stats.FilesErrored > 0 {
		row("Errors", s.Failure.Render, stats.FilesErrored)
	}

	if stats.LinesAdded > 0 || stats.LinesRemoved > 0 {
		builder.WriteString("\n")
		row("Lines added", s.DiffAdd.Render, stats.LinesAdded)
		row("Lines removed", s.DiffRemove.Render, stats.LinesRemoved)
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed for some files"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Warning.Render("Some files need formatting"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
