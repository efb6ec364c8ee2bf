package configloader

import (
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/prettydoc/pkg/config"
)

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadFromEnv(cfg, envFrom(map[string]string{
		"PRETTYDOC_WIDTH":           "72",
		"PRETTYDOC_LANGUAGE":        "markdown",
		"PRETTYDOC_OUTPUT":          "ansi",
		"PRETTYDOC_FLAVOR":          "gfm",
		"PRETTYDOC_HTML_INDENT":     "4",
		"PRETTYDOC_JOBS":            "3",
		"PRETTYDOC_REPORT":          "json",
		"PRETTYDOC_IGNORE":          " vendor/** , ,dist/** ",
		"PRETTYDOC_BACKUPS_ENABLED": "1",
		"PRETTYDOC_BACKUPS_MODE":    "none",
		"PRETTYDOC_NO_BACKUPS":      "true",
	}))
	if err != nil {
		t.Fatalf("loadFromEnv() error = %v", err)
	}

	if cfg.Width != 72 || cfg.HTML.Indent != 4 || cfg.Jobs != 3 {
		t.Errorf("unexpected ints: width=%d indent=%d jobs=%d", cfg.Width, cfg.HTML.Indent, cfg.Jobs)
	}
	if cfg.Language != "markdown" || cfg.Output != config.OutputANSI || cfg.Report != config.ReportJSON {
		t.Errorf("unexpected strings: %q %q %q", cfg.Language, cfg.Output, cfg.Report)
	}
	if cfg.Markdown.Flavor != config.FlavorGFM {
		t.Errorf("expected gfm, got %q", cfg.Markdown.Flavor)
	}
	if !slices.Equal(cfg.Ignore, []string{"vendor/**", "dist/**"}) {
		t.Errorf("unexpected ignore %v", cfg.Ignore)
	}
	if !cfg.Backups.Enabled || cfg.Backups.Mode != "none" || !cfg.NoBackups {
		t.Errorf("unexpected backups %+v no_backups=%v", cfg.Backups, cfg.NoBackups)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"PRETTYDOC_WIDTH":      "wide",
		"PRETTYDOC_NO_BACKUPS": "maybe",
	}

	for key, value := range tests {
		err := loadFromEnv(config.NewConfig(), envFrom(map[string]string{key: value}))
		if err == nil || !strings.Contains(err.Error(), key) {
			t.Errorf("expected error naming %s, got %v", key, err)
		}
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("markdown.flavor"); got != "PRETTYDOC_FLAVOR" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(unknown) = %q", got)
	}

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Errorf("expected %d variables, got %d", len(envMappings), len(vars))
	}
	if vars["PRETTYDOC_WIDTH"] == "" {
		t.Error("expected a description for PRETTYDOC_WIDTH")
	}
}
