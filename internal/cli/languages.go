package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/prettydoc/internal/configloader"
	"github.com/yaklabco/prettydoc/internal/logging"
	"github.com/yaklabco/prettydoc/pkg/format"
	"github.com/yaklabco/prettydoc/pkg/langdetect"
)

// languageInfo describes one input language for display.
type languageInfo struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Aliases    []string `json:"aliases,omitempty"`
	Width      int      `json:"width"`
}

func newLanguagesCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported input languages",
		Long: `List the input languages prettydoc can format, with the file
extensions mapped to each, the aliases accepted by --lang, and the
effective line width after configuration is applied.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLanguages(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	return cmd
}

func runLanguages(cmd *cobra.Command, jsonOutput bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:     workDir,
		ExplicitPath:   configPath,
		IgnorePrettier: true,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	engine := format.NewEngine(loadResult.Config)
	infos := collectLanguages(engine)

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("encode languages: %w", err)
		}
		return nil
	}

	logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.InfoLevel)

	for _, info := range infos {
		keyvals := []any{
			logging.FieldExtensions, strings.Join(info.Extensions, " "),
			logging.FieldWidth, info.Width,
		}
		if len(info.Aliases) > 0 {
			keyvals = append(keyvals, logging.FieldAliases, strings.Join(info.Aliases, " "))
		}
		logger.Info(info.Name, keyvals...)
	}

	return nil
}

// collectLanguages describes every language registered in engine, merging
// built-in and configured extensions.
func collectLanguages(engine *format.Engine) []languageInfo {
	cfg := engine.Config()

	infos := make([]languageInfo, 0, len(engine.Languages()))
	for _, name := range engine.Languages() {
		exts := langdetect.Extensions(name)
		for _, ext := range cfg.Languages[name].Extensions {
			if !slices.Contains(exts, ext) {
				exts = append(exts, ext)
			}
		}
		slices.Sort(exts)

		infos = append(infos, languageInfo{
			Name:       name,
			Extensions: exts,
			Aliases:    configloader.LanguageAliases(name),
			Width:      engine.Width(name),
		})
	}
	return infos
}
