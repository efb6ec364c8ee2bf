package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/prettydoc/internal/ui/pretty"
	"github.com/yaklabco/prettydoc/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string `json:"path"`
	Language   string `json:"language,omitempty"`
	Status     string `json:"status"`
	Changed    bool   `json:"changed"`
	Written    bool   `json:"written,omitempty"`
	Additions  int    `json:"additions"`
	Deletions  int    `json:"deletions"`
	BackupPath string `json:"backupPath,omitempty"`
	SkipReason string `json:"skipReason,omitempty"`
	Error      string `json:"error,omitempty"`
	Diff       string `json:"diff,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked   int `json:"filesChecked"`
	FilesUnchanged int `json:"filesUnchanged"`
	FilesChanged   int `json:"filesChanged"`
	FilesWritten   int `json:"filesWritten"`
	FilesSkipped   int `json:"filesSkipped"`
	FilesErrored   int `json:"filesErrored"`
	LinesAdded     int `json:"linesAdded"`
	LinesRemoved   int `json:"linesRemoved"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for i := range result.Files {
		outcome := &result.Files[i]
		fileResult := JSONFileResult{
			Path:       outcome.Path,
			Language:   outcome.Language,
			Status:     pretty.Status(outcome),
			Changed:    outcome.Changed,
			Written:    outcome.Written,
			BackupPath: outcome.BackupPath,
			SkipReason: outcome.SkipReason,
		}
		if outcome.Error != nil {
			fileResult.Error = outcome.Error.Error()
		}
		if outcome.Diff.HasChanges() {
			fileResult.Additions = outcome.Diff.Additions
			fileResult.Deletions = outcome.Diff.Deletions
			if r.opts.Verbose {
				fileResult.Diff = outcome.Diff.FullString()
			}
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:   stats.FilesProcessed,
		FilesUnchanged: stats.FilesUnchanged,
		FilesChanged:   stats.FilesChanged,
		FilesWritten:   stats.FilesWritten,
		FilesSkipped:   stats.FilesSkipped,
		FilesErrored:   stats.FilesErrored,
		LinesAdded:     stats.LinesAdded,
		LinesRemoved:   stats.LinesRemoved,
	}

	return output
}
