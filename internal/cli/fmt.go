package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/prettydoc/internal/configloader"
	"github.com/yaklabco/prettydoc/internal/logging"
	"github.com/yaklabco/prettydoc/internal/ui/pretty"
	"github.com/yaklabco/prettydoc/pkg/config"
	"github.com/yaklabco/prettydoc/pkg/format"
	"github.com/yaklabco/prettydoc/pkg/fsutil"
	"github.com/yaklabco/prettydoc/pkg/langdetect"
	"github.com/yaklabco/prettydoc/pkg/render"
	"github.com/yaklabco/prettydoc/pkg/reporter"
	"github.com/yaklabco/prettydoc/pkg/runner"
)

// ErrUnformatted is returned by fmt --check when files need formatting.
var ErrUnformatted = errors.New("files are not formatted")

// ErrFormatFailed is returned when some files could not be formatted.
var ErrFormatFailed = errors.New("some files could not be formatted")

type fmtFlags struct {
	width         int
	language      string
	output        string
	report        string
	ignore        []string
	stdinFilename string
	verbose       bool
	compact       bool
	vendored      bool
}

func newFmtCommand() *cobra.Command {
	var cfg config.Config
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:     "fmt [paths...]",
		Aliases: []string{"format"},
		Short:   "Format Markdown and HTML files",
		Long:    fmtLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, &cfg, flags)
		},
	}

	addFmtFlags(cmd, &cfg, flags)

	return cmd
}

const fmtLongDescription = `Format Markdown, HTML and prettydoc expression files.

With no flags, formatted content is written to standard output. With
--write, changed files are rewritten in place. With --check, files that
would change are reported and the command fails. With --diff, unified
diffs of the pending changes are shown.

When no paths are given and standard input is not a terminal, or when
the only path is "-", standard input is formatted.

Examples:
  prettydoc fmt README.md                 # Print formatted README
  prettydoc fmt --width 60 docs/          # Format a tree at 60 columns
  prettydoc fmt --write .                 # Rewrite files in place
  prettydoc fmt --check --report table .  # CI check with a table report
  prettydoc fmt --diff docs/guide.md      # Show pending changes
  cat page.html | prettydoc fmt --lang html --output ansi`

func addFmtFlags(cmd *cobra.Command, cfg *config.Config, flags *fmtFlags) {
	cmd.Flags().IntVarP(&flags.width, "width", "W", 0, "maximum line width (0 = configured or terminal width)")
	cmd.Flags().StringVarP(&flags.language, "lang", "l", "", "input language: auto, markdown, html, pdoc")
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "rewrite changed files in place")
	cmd.Flags().BoolVarP(&cfg.Diff, "diff", "d", false, "show unified diffs instead of formatted content")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "report files that are not formatted and exit non-zero")
	cmd.Flags().StringVar(&flags.output, "output", "", "formatted content format: text, ansi, html, json")
	cmd.Flags().StringVar(&flags.report, "report", "", "report format: "+reporter.FormatNames())
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().StringVar(&flags.stdinFilename, "stdin-filename", "",
		"file name used to detect the language of standard input")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "include unchanged files in reports")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact report output")
	cmd.Flags().BoolVar(&flags.vendored, "include-vendored", false, "descend into vendor and node_modules directories")
}

// cliConfig maps flags onto a partial config that overrides loaded
// settings. Unset flags leave the zero value so they do not override.
func cliConfig(cmd *cobra.Command, cfg *config.Config, flags *fmtFlags) (*config.Config, error) {
	cli := *cfg
	cli.Width = flags.width
	cli.Ignore = flags.ignore

	if flags.language != "" {
		lang, ok := configloader.NormalizeLanguage(flags.language)
		if !ok {
			return nil, fmt.Errorf("unknown language %q", flags.language)
		}
		cli.Language = lang
	}

	if flags.output != "" {
		f, err := render.ParseFormat(flags.output)
		if err != nil {
			return nil, err
		}
		cli.Output = config.OutputFormat(f)
	}

	switch {
	case flags.report != "":
		f, err := reporter.ParseFormat(flags.report)
		if err != nil {
			return nil, err
		}
		cli.Report = config.ReportFormat(f)
	case cmd.Flags().Changed("diff"):
		cli.Report = config.ReportDiff
	}

	return &cli, nil
}

func runFmt(cmd *cobra.Command, args []string, cfg *config.Config, flags *fmtFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cli, err := cliConfig(cmd, cfg, flags)
	if err != nil {
		return err
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
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	if finalCfg.Width <= 0 {
		finalCfg.Width = terminalWidth(cmd.OutOrStdout())
	}

	logger.Debug("configuration loaded",
		logging.FieldWidth, finalCfg.Width,
		logging.FieldLanguage, finalCfg.Language,
		logging.FieldWrite, finalCfg.Write,
		logging.FieldCheck, finalCfg.Check,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldFormat, finalCfg.Output,
	)

	ctx = logging.WithLogger(ctx, logger.With(logging.FieldWidth, finalCfg.Width))
	fmtRunner := runner.New(format.NewEngine(finalCfg))

	if readsStdin(cmd, args) {
		return runFmtStdin(ctx, cmd, fmtRunner, finalCfg, flags)
	}

	backup := fsutil.BackupModeNone
	if finalCfg.ShouldBackup() {
		backup, err = fsutil.ParseBackupMode(finalCfg.Backups.Mode)
		if err != nil {
			return err
		}
	}

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		Extensions:      extensionsFor(finalCfg),
		ExcludeGlobs:    finalCfg.Ignore,
		IncludeVendored: flags.vendored,
		Jobs:            finalCfg.Jobs,
		Write:           finalCfg.Write,
		Backup:          backup,
	}

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldBackup, runOpts.Backup,
	)

	start := time.Now()
	result, err := fmtRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("format run failed"), err)
	}

	logger.Debug("format run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDuration, time.Since(start),
	)

	if finalCfg.Write || finalCfg.Check || finalCfg.Diff {
		if err := report(ctx, cmd, result, finalCfg, flags, workDir); err != nil {
			return err
		}
	} else if err := printFormatted(cmd, result, finalCfg); err != nil {
		return err
	}

	return errorForExitCode(ExitCodeFromResult(result, finalCfg.Check))
}

func runFmtStdin(ctx context.Context, cmd *cobra.Command, r *runner.Runner, cfg *config.Config, flags *fmtFlags) error {
	if cfg.Write {
		return errors.New("cannot --write standard input")
	}

	content, err := fsutil.ReadAll(ctx, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read standard input: %w", err)
	}

	outcome := r.FormatInput(ctx, flags.stdinFilename, content)
	if outcome.Error != nil {
		return outcome.Error
	}

	result := runner.NewResult(outcome)

	if cfg.Check || cfg.Diff {
		if err := report(ctx, cmd, result, cfg, flags, ""); err != nil {
			return err
		}
		return errorForExitCode(ExitCodeFromResult(result, cfg.Check))
	}

	return renderTokens(cmd.OutOrStdout(), cmd, cfg, outcome.Formatted)
}

func report(
	ctx context.Context,
	cmd *cobra.Command,
	result *runner.Result,
	cfg *config.Config,
	flags *fmtFlags,
	workDir string,
) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	reportFormat, err := reporter.ParseFormat(string(cfg.Report))
	if err != nil {
		return fmt.Errorf("invalid report format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      reportFormat,
		Color:       colorMode,
		ShowSummary: true,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logging.Default().Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	return nil
}

// printFormatted writes each formatted file to the command output. Files
// are preceded by a header when more than one was formatted.
func printFormatted(cmd *cobra.Command, result *runner.Result, cfg *config.Config) error {
	logger := logging.Default()
	out := cmd.OutOrStdout()

	formatted := 0
	for i := range result.Files {
		if result.Files[i].Formatted != nil {
			formatted++
		}
	}

	var styles *pretty.Styles
	if formatted > 1 {
		colorMode, _ := cmd.Flags().GetString("color")
		styles = pretty.NewStylesFor(out, pretty.IsColorEnabled(colorMode, out))
	}

	for i := range result.Files {
		outcome := &result.Files[i]
		if outcome.Error != nil {
			logger.Error("format failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
			continue
		}
		if outcome.Formatted == nil {
			continue
		}

		if styles != nil {
			if _, err := fmt.Fprintln(out, styles.FormatFileHeader(outcome.Path, outcome.Language)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		if err := renderTokens(out, cmd, cfg, outcome.Formatted); err != nil {
			return err
		}
	}

	return nil
}

func renderTokens(w io.Writer, cmd *cobra.Command, cfg *config.Config, res *format.Result) error {
	f, err := render.ParseFormat(string(cfg.Output))
	if err != nil {
		return err
	}

	// Plain text output uses the engine's finished bytes so trailing
	// whitespace trimming and the final newline match written files.
	if f == render.FormatText {
		if _, err := w.Write(res.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	opts := render.Options{Format: f}
	if f == render.FormatANSI {
		colorMode, _ := cmd.Flags().GetString("color")
		opts.Styles = pretty.NewStylesFor(w, colorMode != "never")
	}

	renderer, err := render.New(opts)
	if err != nil {
		return err
	}
	if err := renderer.Render(w, res.Tokens); err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	return nil
}

func errorForExitCode(code int) error {
	switch code {
	case ExitUnformatted:
		return ErrUnformatted
	case ExitFormatErrors:
		return ErrFormatFailed
	default:
		return nil
	}
}

// readsStdin reports whether fmt formats standard input: the only path is
// "-", or there are no paths and input is piped.
func readsStdin(cmd *cobra.Command, args []string) bool {
	if len(args) == 1 && args[0] == runner.StdinPath {
		return true
	}
	if len(args) > 0 {
		return false
	}
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	return !term.IsTerminal(int(in.Fd())) && isPipe(in)
}

func isPipe(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeNamedPipe != 0 || info.Mode().IsRegular()
}

// terminalWidth returns the width of w when it is a terminal, and
// config.DefaultWidth otherwise.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return config.DefaultWidth
}

// extensionsFor returns the built-in extensions plus those configured per
// language.
func extensionsFor(cfg *config.Config) []string {
	exts := langdetect.AllExtensions()
	for _, name := range cfg.LanguageNames() {
		for _, ext := range cfg.Languages[name].Extensions {
			if !slices.Contains(exts, ext) {
				exts = append(exts, ext)
			}
		}
	}
	return exts
}
