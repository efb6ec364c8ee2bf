package configloader

import (
	"testing"

	"github.com/yaklabco/prettydoc/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantField string
		wantWarn  bool
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{name: "negative width", mutate: func(c *config.Config) { c.Width = -1 }, wantField: "width"},
		{name: "unknown language", mutate: func(c *config.Config) { c.Language = "rst" }, wantField: "language"},
		{name: "unknown output", mutate: func(c *config.Config) { c.Output = "pdf" }, wantField: "output"},
		{name: "unknown report", mutate: func(c *config.Config) { c.Report = "sarif" }, wantField: "report"},
		{name: "unknown flavor", mutate: func(c *config.Config) { c.Markdown.Flavor = "mdx" }, wantField: "markdown.flavor"},
		{name: "negative indent", mutate: func(c *config.Config) { c.HTML.Indent = -2 }, wantField: "html.indent"},
		{name: "negative jobs", mutate: func(c *config.Config) { c.Jobs = -1 }, wantField: "jobs"},
		{name: "bad backup mode", mutate: func(c *config.Config) { c.Backups.Mode = "copy" }, wantField: "backups.mode"},
		{name: "bad glob", mutate: func(c *config.Config) { c.Ignore = []string{"[a"} }, wantField: "ignore[0]"},
		{
			name: "extension without dot",
			mutate: func(c *config.Config) {
				c.Languages["html"] = config.LanguageConfig{Extensions: []string{"vue"}}
			},
			wantField: "languages.html.extensions[0]",
		},
		{
			name: "extension claimed twice",
			mutate: func(c *config.Config) {
				c.Languages["html"] = config.LanguageConfig{Extensions: []string{".tpl"}}
				c.Languages["markdown"] = config.LanguageConfig{Extensions: []string{".TPL"}}
			},
			wantField: "languages.markdown.extensions[0]",
		},
		{
			name: "unknown language key warns",
			mutate: func(c *config.Config) {
				c.Languages["rst"] = config.LanguageConfig{Width: 60}
			},
			wantWarn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)
			result := Validate(cfg)

			if tt.wantField == "" {
				if !result.Valid() {
					t.Fatalf("expected valid config, got %v", result.AllMessages())
				}
			} else {
				if result.Valid() {
					t.Fatalf("expected error on %s", tt.wantField)
				}
				if result.Errors[0].Field != tt.wantField {
					t.Errorf("expected field %q, got %q", tt.wantField, result.Errors[0].Field)
				}
			}

			if result.HasWarnings() != tt.wantWarn {
				t.Errorf("HasWarnings() = %v, want %v", result.HasWarnings(), tt.wantWarn)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "width", Message: "width must be >= 0", FilePath: ".prettydoc.yml", Line: 3}
	if got := err.Error(); got != ".prettydoc.yml:3: width: width must be >= 0" {
		t.Errorf("Error() = %q", got)
	}

	err = &ValidationError{Message: "bad"}
	if got := err.Error(); got != "bad" {
		t.Errorf("Error() = %q", got)
	}
}
