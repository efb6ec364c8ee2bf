package cli_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/prettydoc/internal/cli"
	"github.com/yaklabco/prettydoc/pkg/runner"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "prettydoc" {
		t.Errorf("expected Use to be 'prettydoc', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedSubcommands := []string{"fmt", "show", "languages", "init", "migrate", "restore", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestFmtCommandFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	fmtCmd, _, err := cmd.Find([]string{"fmt"})
	if err != nil {
		t.Fatalf("fmt command not found: %v", err)
	}

	expectedFlags := []string{
		"width",
		"lang",
		"write",
		"diff",
		"check",
		"output",
		"report",
		"jobs",
		"ignore",
		"no-backups",
		"stdin-filename",
	}

	for _, flagName := range expectedFlags {
		flag := fmtCmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected flag %q to exist on fmt command", flagName)
		}
	}
}

func TestFmtCommandAlias(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	subCmd, _, err := cmd.Find([]string{"format"})
	if err != nil {
		t.Fatalf("format alias not found: %v", err)
	}
	if subCmd.Name() != "fmt" {
		t.Errorf("expected alias to resolve to fmt, got %q", subCmd.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	expectedFlags := []string{"debug", "config", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"prettydoc", "1.2.3", "abc123", "2024-01-01"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected version output to contain %q, got %q", want, out.String())
		}
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "dev"})
	cmd.SetArgs([]string{"fmt", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	help := out.String()
	for _, want := range []string{"Usage:", "Aliases:", "format", "Flags:", "Global Flags:", "--write", "--config"} {
		if !strings.Contains(help, want) {
			t.Errorf("expected help to contain %q, got:\n%s", want, help)
		}
	}
	for _, line := range strings.Split(help, "\n") {
		if strings.HasSuffix(line, " ") {
			t.Errorf("help line has trailing space: %q", line)
		}
	}
}

func TestFmtCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	fmtCmd, _, err := cmd.Find([]string{"fmt"})
	if err != nil {
		t.Fatalf("fmt command not found: %v", err)
	}

	err = fmtCmd.Args(fmtCmd, []string{"file1.md", "file2.html", "docs/"})
	if err != nil {
		t.Errorf("fmt command should accept arbitrary args, got error: %v", err)
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	unformatted := runner.NewResult(runner.FileOutcome{Path: "a.md", Changed: true})
	written := runner.NewResult(runner.FileOutcome{Path: "a.md", Changed: true, Written: true})
	failed := runner.NewResult(runner.FileOutcome{Path: "a.md", Error: errors.New("html: unexpected end of input")})

	tests := []struct {
		name   string
		result *runner.Result
		check  bool
		want   int
	}{
		{name: "nil result", result: nil, want: cli.ExitSuccess},
		{name: "unformatted without check", result: unformatted, want: cli.ExitSuccess},
		{name: "unformatted with check", result: unformatted, check: true, want: cli.ExitUnformatted},
		{name: "written with check", result: written, check: true, want: cli.ExitSuccess},
		{name: "errors", result: failed, want: cli.ExitFormatErrors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCodeFromResult(tt.result, tt.check); got != tt.want {
				t.Errorf("ExitCodeFromResult() = %d, want %d", got, tt.want)
			}
		})
	}
}
