package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation used when encoding YAML.
const yamlIndent = 2

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode serializes the configuration in the given format, prefixed by
// header when it is not empty.
func (c *Config) Encode(format FileFormat, header string) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case FileFormatTOML:
		body, err = c.ToTOML()
	default:
		body, err = c.ToYAML()
	}
	if err != nil {
		return nil, err
	}

	if header == "" {
		return body, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg.normalized(), nil
}

// FromTOML parses a configuration from TOML bytes. Keys that do not map to
// a configuration field are reported as an error.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
	}
	return cfg.normalized(), nil
}

// Decode parses data in the given format.
func Decode(format FileFormat, data []byte) (*Config, error) {
	if format == FileFormatTOML {
		return FromTOML(data)
	}
	return FromYAML(data)
}

func (c *Config) normalized() *Config {
	if c.Languages == nil {
		c.Languages = make(map[string]LanguageConfig)
	}
	return c
}

// Clone creates a deep copy of the configuration, CLI-only fields
// included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	if c.Languages != nil {
		clone.Languages = make(map[string]LanguageConfig, len(c.Languages))
		for name, lc := range c.Languages {
			lc.Extensions = slices.Clone(lc.Extensions)
			clone.Languages[name] = lc
		}
	}
	return &clone
}

// LanguageNames returns the configured language override names, sorted.
func (c *Config) LanguageNames() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.Languages))
}
