package cli

import "github.com/yaklabco/prettydoc/pkg/runner"

// Exit codes for prettydoc.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitUnformatted indicates --check found files that need formatting.
	ExitUnformatted = 1

	// ExitFormatErrors indicates some files could not be formatted.
	ExitFormatErrors = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of a run. Unformatted files
// only fail the run in check mode.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() || len(result.Errors) > 0 {
		return ExitFormatErrors
	}

	if check && result.Unformatted() > 0 {
		return ExitUnformatted
	}

	return ExitSuccess
}
