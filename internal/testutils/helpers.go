// Package testutils provides fixtures shared by tera's tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// CreateTempProject creates a temporary directory holding files, keyed by
// slash-separated relative path, and returns its path.
func CreateTempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for name, content := range files {
		path := filepath.Join(tempDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return tempDir
}

// MemFs returns an in-memory filesystem holding files.
func MemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()

	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	return fs
}

// AssertFileContent checks that path exists and holds exactly want.
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, string(got))
}
