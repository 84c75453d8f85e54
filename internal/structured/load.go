package structured

import (
	"errors"

	"github.com/spf13/afero"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/source"
)

// Load resolves path for format, reads the file from fsys and parses it.
// Errors carry the resolved path.
func Load(fsys afero.Fs, format Format, path string) (any, error) {
	resolved := ResolvePath(format, path)

	text, err := source.ReadFile(fsys, resolved)
	if err != nil {
		return nil, annotate(err, format, resolved)
	}

	value, err := parseNamed(format, text, resolved)
	if err != nil {
		return nil, annotate(err, format, resolved)
	}

	return value, nil
}

func annotate(err error, format Format, path string) error {
	var te *terrors.ToolError
	if errors.As(err, &te) {
		if te.FilePath == "" {
			te.FilePath = path
		}
		te.WithContext("format", string(format))
	}
	return err
}
