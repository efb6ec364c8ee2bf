package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/prettydoc/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, config.DefaultWidth, cfg.Width)
	assert.Equal(t, config.LanguageAuto, cfg.Language)
	assert.Equal(t, config.OutputText, cfg.Output)
	assert.Equal(t, config.FlavorCommonMark, cfg.Markdown.Flavor)
	assert.Equal(t, config.DefaultIndent, cfg.HTML.Indent)
	assert.NotNil(t, cfg.Languages)
	assert.False(t, cfg.ShouldBackup())
}

func TestConfig_WidthFor(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Width = 100
	cfg.Languages[config.LanguageMarkdown] = config.LanguageConfig{Width: 72}
	cfg.Languages[config.LanguageHTML] = config.LanguageConfig{Extensions: []string{".vue"}}

	assert.Equal(t, 72, cfg.WidthFor(config.LanguageMarkdown))
	assert.Equal(t, 100, cfg.WidthFor(config.LanguageHTML), "zero override falls back to global")
	assert.Equal(t, 100, cfg.WidthFor(config.LanguageDoc))

	var nilCfg *config.Config
	assert.Equal(t, config.DefaultWidth, nilCfg.WidthFor(config.LanguageDoc))
}

func TestConfig_ShouldBackup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		backups config.BackupsConfig
		noBak   bool
		want    bool
	}{
		{"enabled sidecar", config.BackupsConfig{Enabled: true, Mode: "sidecar"}, false, true},
		{"disabled", config.BackupsConfig{Enabled: false, Mode: "sidecar"}, false, false},
		{"mode none", config.BackupsConfig{Enabled: true, Mode: "none"}, false, false},
		{"cli opt-out", config.BackupsConfig{Enabled: true, Mode: "sidecar"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Backups = tt.backups
			cfg.NoBackups = tt.noBak
			assert.Equal(t, tt.want, cfg.ShouldBackup())
		})
	}
}

func TestIsLanguage(t *testing.T) {
	t.Parallel()

	for _, name := range config.Languages() {
		assert.True(t, config.IsLanguage(name), name)
	}
	assert.False(t, config.IsLanguage(config.LanguageAuto))
	assert.False(t, config.IsLanguage("xml"))
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`
width: 60
language: markdown
ignore:
  - "vendor/**"
languages:
  html:
    width: 100
    extensions: [".vue"]
markdown:
  flavor: gfm
html:
  indent: 4
`))
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Width)
	assert.Equal(t, config.LanguageMarkdown, cfg.Language)
	assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
	assert.Equal(t, config.FlavorGFM, cfg.Markdown.Flavor)
	assert.Equal(t, 4, cfg.HTML.Indent)
	require.Contains(t, cfg.Languages, "html")
	assert.Equal(t, 100, cfg.Languages["html"].Width)
	assert.Equal(t, []string{".vue"}, cfg.Languages["html"].Extensions)
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("width: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestFromTOML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromTOML([]byte(`
width = 60
output = "ansi"

[markdown]
flavor = "gfm"

[languages.markdown]
width = 72
`))
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Width)
	assert.Equal(t, config.OutputANSI, cfg.Output)
	assert.Equal(t, config.FlavorGFM, cfg.Markdown.Flavor)
	assert.Equal(t, 72, cfg.WidthFor(config.LanguageMarkdown))
}

func TestFromTOML_UnknownKey(t *testing.T) {
	t.Parallel()

	_, err := config.FromTOML([]byte("widht = 60\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestEncode_DecodesBack(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Width = 66
	original.Ignore = []string{"dist/**"}
	original.Languages[config.LanguageHTML] = config.LanguageConfig{Width: 120}
	original.Write = true

	for _, format := range []config.FileFormat{config.FileFormatYAML, config.FileFormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			data, err := original.Encode(format, config.DefaultTemplateHeader())
			require.NoError(t, err)
			assert.Contains(t, string(data), "# prettydoc configuration")
			assert.NotContains(t, string(data), "write", "CLI-only fields are not persisted")

			decoded, err := config.Decode(format, data)
			require.NoError(t, err)
			assert.Equal(t, 66, decoded.Width)
			assert.Equal(t, []string{"dist/**"}, decoded.Ignore)
			assert.Equal(t, 120, decoded.WidthFor(config.LanguageHTML))
			assert.False(t, decoded.Write)
		})
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		assert.Nil(t, cfg.Clone())
	})

	t.Run("deep copies slices and maps", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		original.Ignore = []string{"a/**"}
		original.Languages["html"] = config.LanguageConfig{Extensions: []string{".vue"}}
		original.Check = true
		original.Jobs = 3

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.True(t, clone.Check)
		assert.Equal(t, 3, clone.Jobs)

		clone.Ignore[0] = "changed"
		clone.Languages["html"].Extensions[0] = ".changed"
		clone.Languages["markdown"] = config.LanguageConfig{Width: 1}

		assert.Equal(t, "a/**", original.Ignore[0])
		assert.Equal(t, ".vue", original.Languages["html"].Extensions[0])
		assert.NotContains(t, original.Languages, "markdown")
	})
}

func TestFileFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.FileFormatTOML, config.FileFormatFor("/etc/prettydoc/config.TOML"))
	assert.Equal(t, config.FileFormatYAML, config.FileFormatFor(".prettydoc.yml"))
	assert.Equal(t, config.FileFormatYAML, config.FileFormatFor("config"))
	assert.Equal(t, ".toml", config.FileFormatTOML.Extension())
	assert.Equal(t, ".yml", config.FileFormatYAML.Extension())

	format, err := config.ParseFileFormat("TOML")
	require.NoError(t, err)
	assert.Equal(t, config.FileFormatTOML, format)

	_, err = config.ParseFileFormat("json")
	require.Error(t, err)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts config.TemplateOptions
	}{
		{"minimal yaml", config.TemplateOptions{Format: config.FileFormatYAML}},
		{"minimal toml", config.TemplateOptions{Format: config.FileFormatTOML}},
		{"full yaml", config.TemplateOptions{Format: config.FileFormatYAML, Full: true}},
		{"full toml", config.TemplateOptions{Format: config.FileFormatTOML, Full: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := config.GenerateTemplate(tt.opts)
			require.NoError(t, err)

			cfg, err := config.Decode(tt.opts.Format, content)
			require.NoError(t, err, "template must parse as its own format")
			assert.Equal(t, config.DefaultWidth, cfg.Width)
			assert.Equal(t, config.FlavorCommonMark, cfg.Markdown.Flavor)
			assert.Equal(t, config.DefaultIndent, cfg.HTML.Indent)
		})
	}

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
	require.Error(t, err)
}
