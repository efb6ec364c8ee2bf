package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/prettydoc/pkg/config"
)

// languageAliases maps alternative language names, as used by editors and
// other formatters, to the built-in language names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var languageAliases = map[string]string{
	"md":        config.LanguageMarkdown,
	"mdown":     config.LanguageMarkdown,
	"mkd":       config.LanguageMarkdown,
	"gfm":       config.LanguageMarkdown,
	"htm":       config.LanguageHTML,
	"xhtml":     config.LanguageHTML,
	"doc":       config.LanguageDoc,
	"prettydoc": config.LanguageDoc,
}

// NormalizeLanguage resolves a language name or alias to its canonical
// name. Matching is case-insensitive. The second result is false when name
// is neither a built-in language nor an alias.
func NormalizeLanguage(name string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == config.LanguageAuto || config.IsLanguage(lower) {
		return lower, true
	}
	if canonical, ok := languageAliases[lower]; ok {
		return canonical, true
	}
	return name, false
}

// LanguageAliases returns the aliases of a canonical language, sorted.
func LanguageAliases(lang string) []string {
	var aliases []string
	for alias, canonical := range languageAliases {
		if canonical == lang {
			aliases = append(aliases, alias)
		}
	}
	slices.Sort(aliases)
	return aliases
}

// normalizeLanguageKeys rewrites the configured language and the keys of
// the per-language overrides to canonical names. When two keys refer to
// the same language, the canonical spelling wins and a warning is
// recorded.
func normalizeLanguageKeys(cfg *config.Config, result *LoadResult) {
	if canonical, ok := NormalizeLanguage(cfg.Language); ok {
		cfg.Language = canonical
	}

	if len(cfg.Languages) == 0 {
		return
	}

	normalized := make(map[string]config.LanguageConfig, len(cfg.Languages))
	seen := make(map[string]string)

	keys := slices.Sorted(maps.Keys(cfg.Languages))
	for _, key := range keys {
		canonical, ok := NormalizeLanguage(key)
		if !ok {
			normalized[key] = cfg.Languages[key]
			continue
		}

		if original, exists := seen[canonical]; exists {
			kept := original
			if key == canonical {
				kept = key
			}
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate language configuration: %q and %q both refer to %s; using %q",
					original, key, canonical, kept))
			if kept == original {
				continue
			}
		}

		seen[canonical] = key
		normalized[canonical] = cfg.Languages[key]
	}

	cfg.Languages = normalized
}
