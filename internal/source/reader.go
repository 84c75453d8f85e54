// Package source obtains raw template text from a file, an inline argument or
// standard input, and decodes text files consistently for every other reader
// in the tool.
package source

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	terrors "github.com/conneroisu/tera/internal/errors"
)

// Kind identifies where a template comes from.
type Kind int

const (
	KindStdin Kind = iota
	KindFile
	KindInline
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindInline:
		return "inline"
	case KindStdin:
		return "stdin"
	default:
		return "unknown"
	}
}

// Template is a tagged template source. Only the field matching Kind is meaningful.
type Template struct {
	Kind Kind
	Path string
	Text string
}

// File returns a template source reading from path.
func File(path string) Template { return Template{Kind: KindFile, Path: path} }

// Inline returns a template source holding text.
func Inline(text string) Template { return Template{Kind: KindInline, Text: text} }

// Stdin returns a template source reading standard input to EOF.
func Stdin() Template { return Template{Kind: KindStdin} }

// Reader reads templates. Files go through Fs; standard input is read from Stdin.
type Reader struct {
	Fs    afero.Fs
	Stdin io.Reader
}

// NewReader creates a reader. A nil fs means the OS filesystem.
func NewReader(fsys afero.Fs, stdin io.Reader) *Reader {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Reader{Fs: fsys, Stdin: stdin}
}

// ReadTemplate returns the template text for src.
func (r *Reader) ReadTemplate(src Template) (string, error) {
	switch src.Kind {
	case KindInline:
		return src.Text, nil
	case KindFile:
		return ReadFile(r.Fs, src.Path)
	case KindStdin:
		return r.readStdin()
	default:
		return "", terrors.NewValidationError(terrors.ErrCodeInternalError,
			fmt.Sprintf("unknown template source kind %d", src.Kind))
	}
}

func (r *Reader) readStdin() (string, error) {
	if r.Stdin == nil {
		return "", terrors.NewInputError(terrors.ErrCodeReadFailed, "standard input is not available", nil).
			WithPath("<stdin>")
	}

	raw, err := io.ReadAll(r.Stdin)
	if err != nil {
		return "", terrors.NewInputError(terrors.ErrCodeReadFailed, "failed to read standard input", err).
			WithPath("<stdin>")
	}

	text, ok := DecodeText(raw)
	if !ok {
		return "", terrors.NewInputError(terrors.ErrCodeReadFailed, "standard input is not valid UTF-8", nil).
			WithPath("<stdin>")
	}

	return text, nil
}

// ReadFile reads a whole text file from fsys.
func ReadFile(fsys afero.Fs, path string) (string, error) {
	raw, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", terrors.NewInputError(terrors.ErrCodeFileNotFound, "file not found", err).WithPath(path)
		}
		return "", terrors.NewInputError(terrors.ErrCodeReadFailed, "failed to read file", err).WithPath(path)
	}

	text, ok := DecodeText(raw)
	if !ok {
		return "", terrors.NewInputError(terrors.ErrCodeInvalidEncoding, "file is not valid UTF-8", nil).WithPath(path)
	}

	return text, nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// DecodeText converts raw bytes to a string. Input with a byte-order mark is
// decoded according to it (the mark itself is dropped); input without one must
// already be valid UTF-8. Malformed input is rejected, never replaced.
func DecodeText(raw []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(raw, bomUTF16BE):
		if !validUTF16(raw[len(bomUTF16BE):], binary.BigEndian) {
			return "", false
		}
	case bytes.HasPrefix(raw, bomUTF16LE):
		if !validUTF16(raw[len(bomUTF16LE):], binary.LittleEndian) {
			return "", false
		}
	default:
		raw = bytes.TrimPrefix(raw, bomUTF8)
		if !utf8.Valid(raw) {
			return "", false
		}
		return string(raw), true
	}

	decoder := transform.Chain(unicode.BOMOverride(unicode.UTF8.NewDecoder()), encoding.UTF8Validator)
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

// validUTF16 reports whether payload is a whole number of code units with
// every surrogate correctly paired.
func validUTF16(payload []byte, order binary.ByteOrder) bool {
	if len(payload)%2 != 0 {
		return false
	}
	for i := 0; i < len(payload); i += 2 {
		u := order.Uint16(payload[i:])
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+4 > len(payload) {
				return false
			}
			next := order.Uint16(payload[i+2:])
			if next < 0xDC00 || next > 0xDFFF {
				return false
			}
			i += 2
		case u >= 0xDC00 && u <= 0xDFFF:
			return false
		}
	}
	return true
}
