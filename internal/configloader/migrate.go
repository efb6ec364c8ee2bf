package configloader

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/prettydoc/pkg/config"
	"github.com/yaklabco/prettydoc/pkg/langdetect"
)

// MigrationResult contains the result of converting a Prettier config.
type MigrationResult struct {
	// Config is the converted prettydoc configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original Prettier config.
	SourcePath string
}

// prettierParsers maps Prettier parser names to prettydoc languages.
//
//nolint:gochecknoglobals // Read-only lookup table.
var prettierParsers = map[string]string{
	"markdown": config.LanguageMarkdown,
	"mdx":      config.LanguageMarkdown,
	"html":     config.LanguageHTML,
	"vue":      config.LanguageHTML,
	"angular":  config.LanguageHTML,
	"lwc":      config.LanguageHTML,
}

// ignoredPrettierOptions only affect languages prettydoc does not format.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ignoredPrettierOptions = map[string]bool{
	"semi":                         true,
	"singleQuote":                  true,
	"jsxSingleQuote":               true,
	"quoteProps":                   true,
	"trailingComma":                true,
	"bracketSpacing":               true,
	"bracketSameLine":              true,
	"jsxBracketSameLine":           true,
	"arrowParens":                  true,
	"objectWrap":                   true,
	"experimentalTernaries":        true,
	"experimentalOperatorPosition": true,
	"vueIndentScriptAndStyle":      true,
	"embeddedLanguageFormatting":   true,
	"singleAttributePerLine":       true,
	"endOfLine":                    true,
	"insertPragma":                 true,
	"requirePragma":                true,
	"rangeStart":                   true,
	"rangeEnd":                     true,
	"filepath":                     true,
	"$schema":                      true,
}

// ConvertPrettierConfig converts a Prettier config file to prettydoc format.
func ConvertPrettierConfig(path string) (*MigrationResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot convert JavaScript config file %q; please create a prettydoc config manually", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	raw, err := parsePrettierConfig(path, content)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{
		SourcePath: path,
		Config:     config.NewConfig(),
	}

	var ignored []string
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		value := raw[key]
		switch {
		case key == "overrides":
			convertOverrides(result, value)
		case key == "plugins":
			result.Warnings = append(result.Warnings, "'plugins' are not supported; skipping")
		case ignoredPrettierOptions[key]:
			if key != "$schema" {
				ignored = append(ignored, key)
			}
		default:
			convertOption(result, "", key, value)
		}
	}

	if len(ignored) > 0 {
		result.Warnings = append(result.Warnings,
			"ignored options that only apply to other languages: "+strings.Join(ignored, ", "))
	}

	return result, nil
}

// parsePrettierConfig decodes a Prettier config into a generic map.
func parsePrettierConfig(path string, content []byte) (map[string]any, error) {
	var raw map[string]any

	switch DetectConfigFormat(path, content) {
	case "json":
		if err := parseJSONC(content, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unrecognized config format for %q", path)
	}

	if raw == nil {
		raw = make(map[string]any)
	}
	return raw, nil
}

// convertOption maps one Prettier option. When lang is set the option
// comes from an override and applies to that language only.
func convertOption(result *MigrationResult, lang, key string, value any) {
	cfg := result.Config
	scope := ""
	if lang != "" {
		scope = " (" + lang + ")"
	}

	switch key {
	case "printWidth":
		width, ok := toInt(value)
		if !ok || width < 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid printWidth %v%s; skipping", value, scope))
			return
		}
		if lang == "" {
			cfg.Width = width
			return
		}
		lc := cfg.Languages[lang]
		lc.Width = width
		cfg.Languages[lang] = lc

	case "tabWidth":
		indent, ok := toInt(value)
		if !ok || indent < 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid tabWidth %v%s; skipping", value, scope))
			return
		}
		if lang != "" && lang != config.LanguageHTML {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("tabWidth%s only applies to HTML indentation; skipping", scope))
			return
		}
		cfg.HTML.Indent = indent

	case "useTabs":
		if b, ok := value.(bool); ok && b {
			result.Warnings = append(result.Warnings, "useTabs is not supported; HTML is indented with spaces")
		}

	case "proseWrap":
		if s, ok := value.(string); ok && s != "always" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("proseWrap %q is not supported; Markdown paragraphs are always reflowed", s))
		}

	case "htmlWhitespaceSensitivity":
		result.Warnings = append(result.Warnings,
			"htmlWhitespaceSensitivity is not supported; text whitespace is always collapsed")

	case "parser":
		// Handled by the override that contains it.

	default:
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown option %q%s; skipping", key, scope))
	}
}

// convertOverrides maps Prettier overrides onto per-language settings.
// Each override applies to the languages its file patterns select, or to
// the language of its parser option.
func convertOverrides(result *MigrationResult, value any) {
	var overrides []any
	switch v := value.(type) {
	case []any:
		overrides = v
	case []map[string]any:
		for _, item := range v {
			overrides = append(overrides, item)
		}
	default:
		result.Warnings = append(result.Warnings, "'overrides' must be a list; skipping")
		return
	}

	for i, item := range overrides {
		override, ok := item.(map[string]any)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("overrides[%d] is not an object; skipping", i))
			continue
		}

		options, _ := override["options"].(map[string]any)
		patterns := toStrings(override["files"])
		parserLang := ""
		if parser, ok := options["parser"].(string); ok {
			parserLang = prettierParsers[parser]
		}

		langs := overrideLanguages(result, patterns, parserLang)
		if len(langs) == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("overrides[%d] does not select a supported language; skipping", i))
			continue
		}

		for _, lang := range langs {
			for _, key := range slices.Sorted(maps.Keys(options)) {
				convertOption(result, lang, key, options[key])
			}
		}
	}
}

// overrideLanguages returns the languages selected by an override. With a
// parser language, file extensions that would not otherwise map to it are
// registered as extra extensions of that language.
func overrideLanguages(result *MigrationResult, patterns []string, parserLang string) []string {
	var langs []string
	for _, pattern := range patterns {
		ext := strings.ToLower(filepath.Ext(pattern))
		detected := ""
		if ext != "" && !strings.ContainsAny(ext, "*?[{") {
			detected = langdetect.ByExtension("file" + ext)
		}

		lang := detected
		if parserLang != "" {
			lang = parserLang
			if detected != parserLang && ext != "" && !strings.ContainsAny(ext, "*?[{") {
				lc := result.Config.Languages[parserLang]
				if !slices.Contains(lc.Extensions, ext) {
					lc.Extensions = append(lc.Extensions, ext)
				}
				result.Config.Languages[parserLang] = lc
			}
		}

		if lang != "" && !slices.Contains(langs, lang) {
			langs = append(langs, lang)
		}
	}

	if len(langs) == 0 && parserLang != "" {
		langs = append(langs, parserLang)
	}
	return langs
}

// toInt converts a decoded number to int.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// toStrings converts a string or list of strings.
func toStrings(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	default:
		return nil
	}
}

// parseJSONC parses JSON with comments (JSONC format).
// It strips comments before parsing.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	stripped := stripJSONComments(content)
	if err := json.Unmarshal(stripped, target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes JavaScript-style comments from JSON content.
func stripJSONComments(content []byte) []byte {
	result := make([]byte, 0, len(content))
	inString := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inString {
			result = append(result, char)
			switch {
			case char == '\\' && idx+1 < len(content):
				idx++
				result = append(result, content[idx])
			case char == '"':
				inString = false
			}
			continue
		}

		if char == '/' && idx+1 < len(content) {
			switch content[idx+1] {
			case '/':
				for idx < len(content) && content[idx] != '\n' {
					idx++
				}
				if idx < len(content) {
					result = append(result, '\n')
				}
				continue
			case '*':
				idx += 2
				for idx+1 < len(content) && (content[idx] != '*' || content[idx+1] != '/') {
					idx++
				}
				idx++
				continue
			}
		}

		if char == '"' {
			inString = true
		}
		result = append(result, char)
	}

	return result
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# prettydoc configuration
# Migrated from: %s
# See: https://github.com/yaklabco/prettydoc
`, filepath.Base(sourcePath))
}

// CanMigrate returns true if the config file can be migrated.
// JavaScript config files cannot be migrated.
func CanMigrate(path string) bool {
	return !IsJavaScriptConfig(path)
}

// GetMigrationWarning returns a warning message for files that cannot be migrated.
func GetMigrationWarning(path string) string {
	if IsJavaScriptConfig(path) {
		return fmt.Sprintf("JavaScript config file (%s) cannot be converted automatically; "+
			"please create a .prettydoc.yml file manually or run 'prettydoc init'", filepath.Base(path))
	}
	return ""
}
