package runner

import (
	"github.com/yaklabco/prettydoc/pkg/diff"
	"github.com/yaklabco/prettydoc/pkg/format"
)

// FileOutcome is the result of formatting one file.
type FileOutcome struct {
	// Path is the file path that was processed, or "-" for standard input.
	Path string

	// Language is the detected or configured input language.
	Language string

	// Original is the content before formatting.
	Original []byte

	// Formatted holds the layout and formatted bytes. Nil on error.
	Formatted *format.Result

	// Diff is the change from Original to the formatted output, nil when
	// the file is already formatted.
	Diff *diff.Patch

	// Changed is set when formatting changes the content.
	Changed bool

	// Written is set when the formatted content replaced the file.
	Written bool

	// BackupPath is the backup created before writing, if any.
	BackupPath string

	// Skipped is set when the file was left alone, with SkipReason saying
	// why.
	Skipped    bool
	SkipReason string

	// Error is set if the file could not be processed.
	Error error
}

// Output returns the formatted bytes, or nil when formatting failed.
func (o *FileOutcome) Output() []byte {
	if o.Formatted == nil {
		return nil
	}
	return o.Formatted.Output
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files formatted without error.
	FilesProcessed int

	// FilesUnchanged is the number of files already formatted.
	FilesUnchanged int

	// FilesChanged is the number of files whose formatting differs.
	FilesChanged int

	// FilesWritten is the number of changed files rewritten in place.
	FilesWritten int

	// FilesSkipped is the number of files left alone, e.g. because they
	// were modified while being formatted.
	FilesSkipped int

	// FilesErrored is the number of files that could not be formatted.
	FilesErrored int

	// LinesAdded and LinesRemoved total the diff line counts.
	LinesAdded   int
	LinesRemoved int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, sorted by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file could not be formatted.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Unformatted returns the number of files that differ from their formatted
// form and were not rewritten.
func (r *Result) Unformatted() int {
	if r == nil {
		return 0
	}
	return r.Stats.FilesChanged - r.Stats.FilesWritten
}

// NewResult builds a result from outcomes produced outside Run, such as
// standard input formatted with FormatInput.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Skipped {
		r.Stats.FilesSkipped++
	}

	if !outcome.Changed {
		r.Stats.FilesUnchanged++
		return
	}

	r.Stats.FilesChanged++
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Diff != nil {
		r.Stats.LinesAdded += outcome.Diff.Additions
		r.Stats.LinesRemoved += outcome.Diff.Deletions
	}
}
