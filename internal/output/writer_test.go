package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	terrors "github.com/conneroisu/tera/internal/errors"
)

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestStdoutWritesVerbatim(t *testing.T) {
	var buf bytes.Buffer
	w := Stdout(&buf)

	require.NoError(t, w.Write("a;b;\n"))
	require.NoError(t, w.Write("no newline"))
	assert.Equal(t, "a;b;\nno newline", buf.String())
	assert.Equal(t, "<stdout>", w.String())
}

func TestStdoutFailure(t *testing.T) {
	err := Stdout(brokenWriter{}).Write("x")
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeWriteFailed))
	assert.Equal(t, terrors.ExitOutputErr, terrors.ExitCode(err))
}

func TestFileWritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	w := File(path)
	require.NoError(t, w.Write("<p>new</p>"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>new</p>", string(got))
	assert.Equal(t, path, w.String())
}

func TestFileFailureCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.txt")

	err := File(path).Write("x")
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeWriteFailed))

	var te *terrors.ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, path, te.FilePath)
}

func TestFor(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "<stdout>", For("", &buf).String())
	assert.Equal(t, "out.txt", For("out.txt", &buf).String())
}
