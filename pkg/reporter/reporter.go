// Package reporter writes the outcome of a formatting run.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/prettydoc/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes output for the given result. It returns the number of
	// files whose formatting changed and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// changedFiles counts outcomes whose formatting changed.
func changedFiles(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesChanged
}
