package config

import "fmt"

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value instead of a
	// commented minimal file.
	Full bool

	// Format is the output format.
	Format FileFormat
}

// DefaultTemplateHeader returns the header for generated configs.
func DefaultTemplateHeader() string {
	return `# prettydoc configuration
# See: https://github.com/yaklabco/prettydoc`
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Full {
		content, err := NewConfig().Encode(opts.Format, DefaultTemplateHeader())
		if err != nil {
			return nil, fmt.Errorf("generate template: %w", err)
		}
		return content, nil
	}

	switch opts.Format {
	case FileFormatTOML:
		return []byte(minimalTOML), nil
	case FileFormatYAML, "":
		return []byte(minimalYAML), nil
	default:
		return nil, fmt.Errorf("generate template: unknown format %q", opts.Format)
	}
}

//nolint:gochecknoglobals // Read-only template text.
var minimalYAML = DefaultTemplateHeader() + `

# Maximum line width (0 = terminal width, or 80 when not a terminal)
width: 80

# Input language: auto, html, markdown or pdoc
language: auto

# Token output: text, ansi, html or json
# output: text

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Per-language overrides
# languages:
#   markdown:
#     width: 72
#   html:
#     extensions: [".vue"]

markdown:
  # commonmark or gfm
  flavor: commonmark

html:
  indent: 2

# Keep a .prettydoc.bak copy of files rewritten by fmt --write
# backups:
#   enabled: true
#   mode: sidecar
`

//nolint:gochecknoglobals // Read-only template text.
var minimalTOML = DefaultTemplateHeader() + `

# Maximum line width (0 = terminal width, or 80 when not a terminal)
width = 80

# Input language: auto, html, markdown or pdoc
language = "auto"

# Token output: text, ansi, html or json
# output = "text"

# File patterns to ignore (glob patterns)
# ignore = ["vendor/**", "node_modules/**"]

[markdown]
# commonmark or gfm
flavor = "commonmark"

[html]
indent = 2

# Per-language overrides
# [languages.markdown]
# width = 72

# Keep a .prettydoc.bak copy of files rewritten by fmt --write
# [backups]
# enabled = true
# mode = "sidecar"
`
