// Package structured parses TOML, JSON, YAML and HCL documents, and process
// environment variables, into one format-agnostic value tree.
//
// Every tree produced here is built only from nil, bool, int64, float64,
// string, []any and map[string]any, so the same logical document yields
// reflect.DeepEqual values whatever format it was written in.
package structured

import (
	"fmt"
	"strings"

	terrors "github.com/conneroisu/tera/internal/errors"
)

// Format is a structured-data file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// DefaultPathMarker is the path argument that selects a format's default file.
const DefaultPathMarker = "."

// Formats lists every supported file format.
func Formats() []Format {
	return []Format{FormatTOML, FormatJSON, FormatYAML, FormatHCL}
}

// ParseFormat looks up a format by name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hcl":
		return FormatHCL, nil
	default:
		return "", terrors.NewValidationError(terrors.ErrCodeUnknownFormat,
			fmt.Sprintf("unknown context format %q (supported: toml, json, yaml, hcl)", name))
	}
}

// DefaultPath is the file read when the path argument is DefaultPathMarker.
func (f Format) DefaultPath() string {
	switch f {
	case FormatTOML:
		return ".tera.toml"
	case FormatJSON:
		return ".tera.json"
	case FormatYAML:
		return ".tera.yml"
	case FormatHCL:
		return ".tera.hcl"
	default:
		return ""
	}
}

// Label is the human-readable format name used in diagnostics.
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

// ResolvePath maps DefaultPathMarker to the format's default file and returns
// any other path unchanged.
func ResolvePath(f Format, path string) string {
	if path == DefaultPathMarker {
		return f.DefaultPath()
	}
	return path
}
