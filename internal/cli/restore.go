package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/prettydoc/internal/logging"
	"github.com/yaklabco/prettydoc/pkg/fsutil"
	"github.com/yaklabco/prettydoc/pkg/runner"
)

func newRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Restore files from backups made by fmt --write",
		Long: `Restore files from the sidecar backups fmt --write creates when
backups are enabled. Directories are searched for formattable files that
have a backup. Each restored backup is removed.

Examples:
  prettydoc restore README.md   Restore one file
  prettydoc restore docs/       Restore every backed-up file under docs`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runRestore(ctx, args)
		},
	}

	return cmd
}

func runRestore(ctx context.Context, args []string) error {
	logger := logging.NewInteractive()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	files, err := runner.Discover(ctx, runner.Options{
		Paths:      args,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	restored := 0
	for _, path := range files {
		if !fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
			continue
		}
		ok, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
		if err != nil {
			return fmt.Errorf("restore %s: %w", path, err)
		}
		if ok {
			restored++
			logger.Info("restored", logging.FieldPath, path)
		}
	}

	if restored == 0 {
		logger.Info("no backups found")
		return nil
	}

	logger.Info("restore complete", logging.FieldFiles, restored)
	return nil
}
