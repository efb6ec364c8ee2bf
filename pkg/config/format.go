package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileFormat is the serialization format of a configuration file.
type FileFormat string

const (
	FileFormatYAML FileFormat = "yaml"
	FileFormatTOML FileFormat = "toml"
)

// FileFormatFor returns the format implied by the extension of path.
// Unknown extensions are treated as YAML.
func FileFormatFor(path string) FileFormat {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FileFormatTOML
	}
	return FileFormatYAML
}

// ParseFileFormat parses a format name as accepted by the init command.
func ParseFileFormat(name string) (FileFormat, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml", "":
		return FileFormatYAML, nil
	case "toml":
		return FileFormatTOML, nil
	default:
		return "", fmt.Errorf("unknown config format %q; valid formats: yaml, toml", name)
	}
}

// Extension returns the file extension used for f, with leading dot.
func (f FileFormat) Extension() string {
	if f == FileFormatTOML {
		return ".toml"
	}
	return ".yml"
}
