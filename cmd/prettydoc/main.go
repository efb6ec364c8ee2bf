// Package main is the entry point for the prettydoc CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/prettydoc/internal/cli"
	"github.com/yaklabco/prettydoc/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, cli.ErrUnformatted):
			// The check report already listed the files.
			return cli.ExitUnformatted
		case errors.Is(err, cli.ErrFormatFailed):
			return cli.ExitFormatErrors
		}
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
		return 1
	}

	return cli.ExitSuccess
}
