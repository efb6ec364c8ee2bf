// Package config defines core configuration types for prettydoc.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import "slices"

// DefaultWidth is the line width used when nothing else is configured.
const DefaultWidth = 80

// DefaultIndent is the HTML child indentation used when nothing else is
// configured.
const DefaultIndent = 2

// LanguageAuto selects the input language from the file name and content.
const LanguageAuto = "auto"

// Input languages understood by the formatter.
const (
	LanguageHTML     = "html"
	LanguageMarkdown = "markdown"
	LanguageDoc      = "pdoc"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat specifies how formatted tokens are written.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputANSI OutputFormat = "ansi"
	OutputHTML OutputFormat = "html"
	OutputJSON OutputFormat = "json"
)

// ReportFormat specifies how run results are reported by fmt --check,
// --write and --diff.
type ReportFormat string

const (
	ReportText    ReportFormat = "text"
	ReportTable   ReportFormat = "table"
	ReportJSON    ReportFormat = "json"
	ReportDiff    ReportFormat = "diff"
	ReportSummary ReportFormat = "summary"
)

// LanguageConfig overrides settings for one input language.
type LanguageConfig struct {
	// Width overrides the global width when non-zero.
	Width int `yaml:"width,omitempty" toml:"width,omitempty"`

	// Extensions adds file extensions (with leading dot) mapped to the
	// language.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`
}

// MarkdownConfig controls the Markdown producer.
type MarkdownConfig struct {
	Flavor Flavor `yaml:"flavor" toml:"flavor"`
}

// HTMLConfig controls the HTML producer.
type HTMLConfig struct {
	Indent int `yaml:"indent" toml:"indent"`
}

// BackupsConfig controls backup behavior when rewriting files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for prettydoc.
type Config struct {
	// Width is the maximum line width. Zero means the terminal width when
	// writing to a terminal and DefaultWidth otherwise.
	Width int `yaml:"width" toml:"width"`

	// Language forces the input language, or "auto" to detect it.
	Language string `yaml:"language" toml:"language"`

	// Output is the token output format for formatted content.
	Output OutputFormat `yaml:"output" toml:"output"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Languages holds per-language overrides keyed by language name.
	Languages map[string]LanguageConfig `yaml:"languages,omitempty" toml:"languages,omitempty"`

	Markdown MarkdownConfig `yaml:"markdown" toml:"markdown"`
	HTML     HTMLConfig     `yaml:"html" toml:"html"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `yaml:"-" toml:"-"`

	// Diff reports unified diffs instead of formatted content.
	Diff bool `yaml:"-" toml:"-"`

	// Check reports files whose formatting would change.
	Check bool `yaml:"-" toml:"-"`

	// Report is the run report format.
	Report ReportFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:     DefaultWidth,
		Language:  LanguageAuto,
		Output:    OutputText,
		Languages: make(map[string]LanguageConfig),
		Markdown:  MarkdownConfig{Flavor: FlavorCommonMark},
		HTML:      HTMLConfig{Indent: DefaultIndent},
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Report: ReportText,
		Jobs:   0, // 0 means use NumCPU
	}
}

// Languages returns the built-in language names in a stable order.
func Languages() []string {
	return []string{LanguageHTML, LanguageMarkdown, LanguageDoc}
}

// IsLanguage reports whether name is a built-in language.
func IsLanguage(name string) bool {
	return slices.Contains(Languages(), name)
}

// WidthFor returns the effective width for lang: the language override
// when set, the global width otherwise.
func (c *Config) WidthFor(lang string) int {
	if c == nil {
		return DefaultWidth
	}
	if lc, ok := c.Languages[lang]; ok && lc.Width > 0 {
		return lc.Width
	}
	return c.Width
}

// ShouldBackup reports whether backups are created when writing.
func (c *Config) ShouldBackup() bool {
	return c != nil && c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != "none"
}
