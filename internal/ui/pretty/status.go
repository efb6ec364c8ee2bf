package pretty

import (
	"fmt"

	"github.com/yaklabco/prettydoc/pkg/runner"
)

// Status labels for per-file output.
const (
	StatusUnchanged   = "unchanged"
	StatusReformatted = "reformatted"
	StatusUnformatted = "unformatted"
	StatusSkipped     = "skipped"
	StatusError       = "error"
)

// Status returns the status label of a file outcome.
func Status(outcome *runner.FileOutcome) string {
	switch {
	case outcome.Error != nil:
		return StatusError
	case outcome.Skipped:
		return StatusSkipped
	case outcome.Written:
		return StatusReformatted
	case outcome.Changed:
		return StatusUnformatted
	default:
		return StatusUnchanged
	}
}

// FormatStatus returns a styled status label.
func (s *Styles) FormatStatus(status string) string {
	switch status {
	case StatusError:
		return s.Error.Render(status)
	case StatusUnformatted:
		return s.Warning.Render(status)
	case StatusReformatted:
		return s.Success.Render(status)
	default:
		return s.Dim.Render(status)
	}
}

// FormatOutcome formats one file outcome for terminal output, displaying
// the file as path.
func (s *Styles) FormatOutcome(path string, outcome *runner.FileOutcome) string {
	status := Status(outcome)
	line := fmt.Sprintf("  %s  %s", s.FilePath.Render(path), s.FormatStatus(status))

	switch status {
	case StatusError:
		line += "  " + outcome.Error.Error()
	case StatusSkipped:
		if outcome.SkipReason != "" {
			line += s.Dim.Render("  (" + outcome.SkipReason + ")")
		}
	case StatusReformatted, StatusUnformatted:
		if outcome.Diff != nil {
			line += "  " + s.DiffAdd.Render(fmt.Sprintf("+%d", outcome.Diff.Additions)) +
				" " + s.DiffRemove.Render(fmt.Sprintf("-%d", outcome.Diff.Deletions))
		}
	}

	if outcome.Language != "" {
		line += s.Language.Render("  [" + outcome.Language + "]")
	}
	return line + "\n"
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path, language string) string {
	header := s.FilePath.Render(path)
	if language != "" {
		header += s.Dim.Render(" (" + language + ")")
	}
	return header
}
