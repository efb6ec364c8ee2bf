package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/prettydoc/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Language != "" {
		result.Language = override.Language
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Report != "" {
		result.Report = override.Report
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Markdown.Flavor != "" {
		result.Markdown.Flavor = override.Markdown.Flavor
	}
	if override.HTML.Indent != 0 {
		result.HTML.Indent = override.HTML.Indent
	}

	// false is the zero value, so a later source can only switch these on.
	if override.Write {
		result.Write = true
	}
	if override.Diff {
		result.Diff = true
	}
	if override.Check {
		result.Check = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Languages = mergeLanguages(base.Languages, override.Languages)

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return &result
}

// mergeLanguages performs deep merge of per-language settings.
func mergeLanguages(base, override map[string]config.LanguageConfig) map[string]config.LanguageConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.LanguageConfig, len(base)+len(override))
	maps.Copy(result, base)

	for name, lc := range override {
		if existing, ok := result[name]; ok {
			result[name] = mergeLanguageConfig(existing, lc)
		} else {
			result[name] = lc
		}
	}

	return result
}

// mergeLanguageConfig merges individual language settings.
func mergeLanguageConfig(base, override config.LanguageConfig) config.LanguageConfig {
	result := base

	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
