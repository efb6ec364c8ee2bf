package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/prettydoc/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "languages.markdown.width").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown languages).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// knownOutputs lists valid token output values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownOutputs = map[config.OutputFormat]bool{
	config.OutputText: true,
	config.OutputANSI: true,
	config.OutputHTML: true,
	config.OutputJSON: true,
}

// knownReports lists valid report format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownReports = map[config.ReportFormat]bool{
	config.ReportText:    true,
	config.ReportTable:   true,
	config.ReportJSON:    true,
	config.ReportDiff:    true,
	config.ReportSummary: true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}
	addError := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.Width < 0 {
		addError("width", cfg.Width, "width must be >= 0 (0 means terminal width)")
	}

	if cfg.Language != "" && cfg.Language != config.LanguageAuto && !config.IsLanguage(cfg.Language) {
		addError("language", cfg.Language, "invalid language %q; must be one of: auto, %s",
			cfg.Language, strings.Join(config.Languages(), ", "))
	}

	if cfg.Output != "" && !knownOutputs[cfg.Output] {
		addError("output", cfg.Output, "invalid output %q; must be one of: text, ansi, html, json", cfg.Output)
	}

	if cfg.Report != "" && !knownReports[cfg.Report] {
		addError("report", cfg.Report,
			"invalid report format %q; must be one of: text, table, json, diff, summary", cfg.Report)
	}

	if cfg.Markdown.Flavor != "" && !knownFlavors[cfg.Markdown.Flavor] {
		addError("markdown.flavor", cfg.Markdown.Flavor,
			"invalid flavor %q; must be one of: commonmark, gfm", cfg.Markdown.Flavor)
	}

	if cfg.HTML.Indent < 0 {
		addError("html.indent", cfg.HTML.Indent, "indent must be >= 0")
	}

	if cfg.Jobs < 0 {
		addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateLanguages(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateLanguages checks per-language overrides.
func validateLanguages(cfg *config.Config, result *ValidationResult) {
	owners := make(map[string]string)

	names := make([]string, 0, len(cfg.Languages))
	for name := range cfg.Languages {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		lc := cfg.Languages[name]
		field := "languages." + name

		if !config.IsLanguage(name) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   name,
				Message: fmt.Sprintf("unknown language %q; it will be ignored", name),
			})
		}

		if lc.Width < 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field + ".width",
				Value:   lc.Width,
				Message: "width must be >= 0",
			})
		}

		for i, ext := range lc.Extensions {
			extField := fmt.Sprintf("%s.extensions[%d]", field, i)
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				result.Errors = append(result.Errors, ValidationError{
					Field:   extField,
					Value:   ext,
					Message: fmt.Sprintf("extension %q must start with a dot", ext),
				})
				continue
			}

			key := strings.ToLower(ext)
			if owner, ok := owners[key]; ok && owner != name {
				result.Errors = append(result.Errors, ValidationError{
					Field:   extField,
					Value:   ext,
					Message: fmt.Sprintf("extension %q is already mapped to %s", ext, owner),
				})
				continue
			}
			owners[key] = name
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidOutput returns true if the token output format is valid.
func IsValidOutput(f config.OutputFormat) bool {
	return knownOutputs[f]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
