// Package output delivers rendered text to standard output or to a file.
package output

import (
	"io"
	"strings"

	"github.com/natefinch/atomic"

	terrors "github.com/conneroisu/tera/internal/errors"
)

// Writer is a destination for the rendered text.
type Writer interface {
	Write(text string) error
	String() string
}

type streamWriter struct {
	w io.Writer
}

// Stdout returns a Writer that copies the text verbatim to w, with no
// trailing newline added.
func Stdout(w io.Writer) Writer {
	return &streamWriter{w: w}
}

func (s *streamWriter) Write(text string) error {
	if _, err := io.WriteString(s.w, text); err != nil {
		return terrors.NewOutputError(terrors.ErrCodeWriteFailed, "failed to write output", err).
			WithPath("<stdout>")
	}
	return nil
}

func (s *streamWriter) String() string { return "<stdout>" }

type fileWriter struct {
	path string
}

// File returns a Writer that replaces path atomically, so readers never see
// a partially written file.
func File(path string) Writer {
	return &fileWriter{path: path}
}

func (f *fileWriter) Write(text string) error {
	if err := atomic.WriteFile(f.path, strings.NewReader(text)); err != nil {
		return terrors.NewOutputError(terrors.ErrCodeWriteFailed, "failed to write output file", err).
			WithPath(f.path)
	}
	return nil
}

func (f *fileWriter) String() string { return f.path }

// For picks the destination: a file when path is set, otherwise stdout.
func For(path string, stdout io.Writer) Writer {
	if path == "" {
		return Stdout(stdout)
	}
	return File(path)
}
