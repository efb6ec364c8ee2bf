package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/prettydoc/internal/configloader"
	"github.com/yaklabco/prettydoc/internal/logging"
	"github.com/yaklabco/prettydoc/pkg/config"
)

type migrateFlags struct {
	force  bool
	dryRun bool
	output string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [prettierrc]",
		Short: "Convert a Prettier configuration to prettydoc format",
		Long: `Convert a Prettier configuration (.prettierrc, .prettierrc.json,
.prettierrc.yaml, .prettierrc.toml and friends) into a prettydoc config.

printWidth becomes the line width and tabWidth the HTML indent. Overrides
matching Markdown or HTML files become per-language settings. Options that
only affect other languages are reported and dropped.

Without an argument the current directory is searched. JavaScript configs
(prettier.config.js, .prettierrc.mjs) must be migrated by hand.

Examples:
  prettydoc migrate
  prettydoc migrate .prettierrc.json
  prettydoc migrate --output .prettydoc.toml
  prettydoc migrate --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runMigrate(cmd, input, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing output file")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "print the converted config instead of writing it")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".prettydoc.yml", "output file; the extension picks YAML or TOML")

	return cmd
}

func runMigrate(cmd *cobra.Command, input string, flags *migrateFlags) error {
	logger := logging.NewInteractive()

	input, err := migrateInput(input)
	if err != nil {
		return err
	}
	if !configloader.CanMigrate(input) {
		return fmt.Errorf("migration not supported: %s", configloader.GetMigrationWarning(input))
	}

	output, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if !flags.dryRun {
		if _, statErr := os.Stat(output); statErr == nil && !flags.force {
			return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
		}
	}

	result, err := configloader.ConvertPrettierConfig(input)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning, logging.FieldInput, input)
	}

	header := configloader.GenerateMigrationHeader(input)

	if flags.dryRun {
		content, encErr := result.Config.Encode(config.FileFormatFor(output), header)
		if encErr != nil {
			return fmt.Errorf("encode config: %w", encErr)
		}
		if _, writeErr := cmd.OutOrStdout().Write(content); writeErr != nil {
			return fmt.Errorf("write output: %w", writeErr)
		}
		return nil
	}

	if err := configloader.WriteConfig(result.Config, output, header); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	logger.Info("migrated", logging.FieldInput, input, logging.FieldOutput, flags.output)
	if len(result.Warnings) > 0 {
		logger.Warn("some Prettier options were dropped; review the new config")
	}

	return nil
}

// migrateInput returns the Prettier config to convert, searching the
// working directory when none was named.
func migrateInput(input string) (string, error) {
	if input != "" {
		if _, err := os.Stat(input); err != nil {
			return "", fmt.Errorf("input file does not exist: %s", input)
		}
		return input, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	found := configloader.FindPrettierConfig(cwd)
	if found == "" {
		return "", errors.New("no Prettier configuration file found in current directory")
	}
	logging.NewInteractive().Info("found Prettier config", logging.FieldPath, found)
	return found, nil
}
