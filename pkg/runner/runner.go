package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/prettydoc/internal/logging"
	"github.com/yaklabco/prettydoc/pkg/diff"
	"github.com/yaklabco/prettydoc/pkg/format"
	"github.com/yaklabco/prettydoc/pkg/fsutil"
)

// StdinPath names standard input in outcomes.
const StdinPath = "-"

// Runner formats files with a format.Engine.
type Runner struct {
	// Engine formats each file.
	Engine *format.Engine
}

// New creates a new Runner with the given engine.
func New(engine *format.Engine) *Runner {
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and formats them concurrently.
// Outcomes are returned sorted by path whatever order the workers finish
// in. Per-file failures are recorded in the outcomes, not returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.FormatFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// FormatFile formats a single file, rewriting it when opts.Write is set
// and the content changed. A file modified on disk while it was being
// formatted is skipped rather than overwritten.
func (r *Runner) FormatFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	r.format(ctx, &outcome, path, content)
	if outcome.Error != nil || !outcome.Changed || !opts.Write {
		return outcome
	}

	replaced, err := fsutil.Replace(ctx, snap, outcome.Output(), opts.effectiveBackup())
	switch {
	case errors.Is(err, fsutil.ErrModified):
		outcome.Skipped = true
		outcome.SkipReason = "modified while formatting"
	case err != nil:
		outcome.Error = fmt.Errorf("write %s: %w", path, err)
	default:
		outcome.Written = true
		outcome.BackupPath = replaced.BackupPath
	}
	return outcome
}

// FormatInput formats content that did not come from a file, such as
// standard input. Name drives language detection and may be empty.
func (r *Runner) FormatInput(ctx context.Context, name string, content []byte) FileOutcome {
	if name == "" {
		name = StdinPath
	}
	outcome := FileOutcome{Path: name}
	r.format(ctx, &outcome, name, content)
	return outcome
}

func (r *Runner) format(ctx context.Context, outcome *FileOutcome, path string, content []byte) {
	outcome.Original = content

	logger := logging.FromContext(ctx)

	result, err := r.Engine.Format(ctx, format.Request{Path: path, Content: content})
	if err != nil {
		logger.Debug("format failed", logging.FieldPath, path, logging.FieldError, err)
		outcome.Error = err
		return
	}

	outcome.Language = result.Language
	outcome.Formatted = result
	if !bytes.Equal(content, result.Output) {
		outcome.Changed = true
		outcome.Diff = diff.Compute(path, content, result.Output)
	}
	logger.Debug("formatted",
		logging.FieldPath, path,
		logging.FieldLanguage, result.Language,
		logging.FieldChanged, outcome.Changed,
	)
}
