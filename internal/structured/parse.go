package structured

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	terrors "github.com/conneroisu/tera/internal/errors"
)

// Parse decodes text in the given format into a canonical value tree.
func Parse(format Format, text string) (any, error) {
	return parseNamed(format, text, "<input>")
}

func parseNamed(format Format, text, filename string) (any, error) {
	var (
		raw any
		err error
	)

	switch format {
	case FormatTOML:
		raw, err = parseTOML(text)
	case FormatJSON:
		raw, err = parseJSON(text)
	case FormatYAML:
		raw, err = parseYAML(text)
	case FormatHCL:
		// HCL values are built canonical, no Normalize pass needed
		return parseHCL(text, filename)
	default:
		return nil, terrors.NewValidationError(terrors.ErrCodeUnknownFormat,
			fmt.Sprintf("unknown context format %q", format))
	}
	if err != nil {
		return nil, err
	}

	return Normalize(raw)
}

func parseTOML(text string) (any, error) {
	doc := map[string]any{}
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		perr := terrors.NewParseError(terrors.ErrCodeParseFailed, "invalid TOML", err)
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return doc, nil
}

func parseJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, jsonError(text, err)
	}

	// A second value means trailing garbage after the document
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, jsonError(text, err)
	}

	return doc, nil
}

func jsonError(text string, err error) error {
	perr := terrors.NewParseError(terrors.ErrCodeParseFailed, "invalid JSON", err)

	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		perr.Line, perr.Column = offsetToPosition(text, serr.Offset)
	}
	return perr
}

// offsetToPosition converts a byte offset into a 1-based line and column.
func offsetToPosition(text string, offset int64) (int, int) {
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	prefix := []byte(text[:offset])
	line := bytes.Count(prefix, []byte("\n")) + 1
	col := len(prefix) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}

func parseYAML(text string) (any, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, terrors.NewParseError(terrors.ErrCodeParseFailed, "invalid YAML", err)
	}

	// Only a single document is accepted
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("multiple YAML documents in one file")
		}
		return nil, terrors.NewParseError(terrors.ErrCodeParseFailed, "invalid YAML", err)
	}

	return doc, nil
}
