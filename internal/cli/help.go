package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/prettydoc/internal/ui/pretty"
	"github.com/yaklabco/prettydoc/pkg/doc"
)

// maxHelpWidth caps reflowed help text on wide terminals.
const maxHelpWidth = 100

// HelpStyles holds the styles used by command help.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	FlagType   lipgloss.Style
	Example    lipgloss.Style
}

// NewHelpStyles derives help styles from the shared output palette so help
// and formatted output use the same colors.
func NewHelpStyles(styles *pretty.Styles) *HelpStyles {
	return &HelpStyles{
		Command:    styles.Bold,
		Heading:    styles.Token(pretty.TokenHeading),
		Subcommand: styles.Token(pretty.TokenTag),
		Flag:       styles.Token(pretty.TokenProperty),
		FlagType:   styles.Dim,
		Example:    styles.Token(pretty.TokenCode),
	}
}

// HelpFormatter renders Cobra help with styled headings and flags.
// Descriptions are reflowed to the terminal width.
type HelpFormatter struct {
	styles *HelpStyles
	width  int
}

// NewHelpFormatter creates a help formatter for writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	styles := pretty.NewStylesFor(writer, pretty.IsColorEnabled(colorMode, writer))
	return &HelpFormatter{
		styles: NewHelpStyles(styles),
		width:  min(terminalWidth(writer), maxHelpWidth),
	}
}

const usageTemplate = `{{heading "Usage:"}}
{{- if .Runnable}}
  {{command .UseLine}}{{end}}
{{- if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}
{{- if .Aliases}}

{{heading "Aliases:"}}
  {{join .Aliases ", "}}{{end}}
{{- if .HasExample}}

{{heading "Examples:"}}
{{example .Example}}{{end}}
{{- if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{subcommand .Name .NamePadding}} {{.Short}}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags}}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags}}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{command .CommandPath}} [command] --help" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{reflow .}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.RenderedUsage}}{{end}}`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading": h.styles.Heading.Render,
		"command": h.styles.Command.Render,
		"example": h.styles.Example.Render,
		"subcommand": func(name string, padding int) string {
			return h.styles.Subcommand.Render(name) + strings.Repeat(" ", max(padding-len(name), 0))
		},
		"flags":  h.flagUsages,
		"join":   strings.Join,
		"reflow": h.reflow,
	}
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		var sb strings.Builder
		if err := usage.Execute(&sb, c); err != nil {
			c.PrintErrln(err)
			return
		}
		data := struct {
			*cobra.Command
			RenderedUsage string
		}{c, sb.String()}
		if err := help.Execute(c.OutOrStdout(), data); err != nil {
			c.PrintErrln(err)
		}
	})
}

// reflow fills each paragraph of text to the formatter width. Indented
// lines, such as example invocations, are kept as written.
func (h *HelpFormatter) reflow(text string) string {
	paragraphs := strings.Split(strings.TrimSpace(text), "\n\n")
	out := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		out = append(out, h.reflowParagraph(para))
	}
	return strings.Join(out, "\n\n")
}

func (h *HelpFormatter) reflowParagraph(para string) string {
	lines := strings.Split(para, "\n")
	var parts []doc.Doc
	var words []string

	flush := func() {
		if len(words) > 0 {
			parts = append(parts, doc.Fill(doc.Words(strings.Join(words, " "), "")))
			words = nil
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, " ") || strings.HasSuffix(line, ":") {
			flush()
			parts = append(parts, doc.Verbatim(strings.TrimRight(line, " \t"), ""))
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	flush()

	return doc.String(h.width, doc.Join(doc.Line(), parts))
}

// flagUsages styles pflag's usage listing one line at a time.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	usages := strings.TrimRight(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}
	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles a line shaped like "  -w, --write type   description".
// Lines without a two-space gap are continuation text and pass through.
func (h *HelpFormatter) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	gap := strings.Index(body, "  ")
	if body == "" || gap < 0 || !strings.HasPrefix(body, "-") {
		return strings.TrimRight(line, " ")
	}
	spec, desc := body[:gap], strings.TrimLeft(body[gap:], " ")
	pad := len(body) - len(desc) - len(spec)

	tokens := strings.Fields(spec)
	for i, tok := range tokens {
		if name, ok := strings.CutSuffix(tok, ","); ok && strings.HasPrefix(name, "-") {
			tokens[i] = h.styles.Flag.Render(name) + ","
			continue
		}
		if strings.HasPrefix(tok, "-") {
			tokens[i] = h.styles.Flag.Render(tok)
			continue
		}
		tokens[i] = h.styles.FlagType.Render(tok)
	}

	return indent + strings.Join(tokens, " ") + strings.Repeat(" ", pad) + desc
}
