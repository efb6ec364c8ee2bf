package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/prettydoc/internal/ui/pretty"
	"github.com/yaklabco/prettydoc/pkg/doc"
	"github.com/yaklabco/prettydoc/pkg/dsl"
	"github.com/yaklabco/prettydoc/pkg/fsutil"
	"github.com/yaklabco/prettydoc/pkg/render"
)

// defaultShowWidths are the narrow and wide widths a document is shown at.
//
//nolint:gochecknoglobals // Default flag value.
var defaultShowWidths = []int{1, 30}

type showFlags struct {
	widths   []int
	file     string
	output   string
	builtins bool
	quiet    bool
}

func newShowCommand() *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show [expression]",
		Short: "Lay out a document expression at several widths",
		Long: `Evaluate a document expression and print its layout at each width.

Expressions build documents from string literals and builtin functions.
Adjacent terms are concatenated; "let" binds a name for later statements.
Run with --builtins to list the available functions.

Examples:
  prettydoc show 'group("hello" line "world")'
  prettydoc show --width 10 --width 40 'fill(words("a b c d e f g"))'
  prettydoc show --file layout.pdoc --output ansi`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, flags)
		},
	}

	cmd.Flags().IntSliceVarP(&flags.widths, "width", "W", defaultShowWidths, "widths to lay out at (repeatable)")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "read the expression from a file (- for standard input)")
	cmd.Flags().StringVar(&flags.output, "output", "text", "output format: text, ansi, html, json")
	cmd.Flags().BoolVar(&flags.builtins, "builtins", false, "list builtin functions and exit")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "omit the width header before each layout")

	return cmd
}

func runShow(cmd *cobra.Command, args []string, flags *showFlags) error {
	out := cmd.OutOrStdout()

	if flags.builtins {
		for _, name := range dsl.Builtins() {
			if _, err := fmt.Fprintln(out, name); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	name, src, err := showSource(ctx, cmd, args, flags)
	if err != nil {
		return err
	}

	program, err := dsl.Parse(name, src)
	if err != nil {
		return fmt.Errorf("parse expression: %w", err)
	}
	d, err := dsl.Compile(program)
	if err != nil {
		return fmt.Errorf("evaluate expression: %w", err)
	}

	f, err := render.ParseFormat(flags.output)
	if err != nil {
		return err
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStylesFor(out, pretty.IsColorEnabled(colorMode, out))

	opts := render.Options{Format: f}
	if f == render.FormatANSI {
		opts.Styles = pretty.NewStylesFor(out, colorMode != "never")
	}
	renderer, err := render.New(opts)
	if err != nil {
		return err
	}

	for i, width := range flags.widths {
		if err := showAt(out, renderer, styles, d, width, i > 0, flags.quiet); err != nil {
			return err
		}
	}

	return nil
}

func showAt(w io.Writer, renderer render.Renderer, styles *pretty.Styles, d doc.Doc, width int, sep, quiet bool) error {
	if !quiet {
		if sep {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		header := fmt.Sprintf("width %d", width)
		if _, err := fmt.Fprintln(w, styles.Dim.Render(header+" "+strings.Repeat("-", max(width-len(header)-1, 3)))); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if err := renderer.Render(w, doc.Pretty(width, d)); err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// showSource returns the expression source and the name used in parse
// errors.
func showSource(ctx context.Context, cmd *cobra.Command, args []string, flags *showFlags) (string, string, error) {
	switch {
	case flags.file != "" && len(args) > 0:
		return "", "", errors.New("give an expression or --file, not both")
	case flags.file == "-":
		content, err := fsutil.ReadAll(ctx, cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read standard input: %w", err)
		}
		return "<stdin>", string(content), nil
	case flags.file != "":
		content, _, err := fsutil.Read(ctx, flags.file)
		if err != nil {
			return "", "", err
		}
		return flags.file, string(content), nil
	case len(args) == 1:
		return "", args[0], nil
	default:
		return "", "", errors.New("no expression given")
	}
}
