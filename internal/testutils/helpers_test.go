package testutils

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTempProject(t *testing.T) {
	dir := CreateTempProject(t, map[string]string{
		".tera.toml":     "a = 1\n",
		"nested/page.j2": "{{ c.a }}",
	})

	AssertFileContent(t, filepath.Join(dir, ".tera.toml"), "a = 1\n")
	AssertFileContent(t, filepath.Join(dir, "nested", "page.j2"), "{{ c.a }}")
}

func TestMemFs(t *testing.T) {
	fs := MemFs(t, map[string]string{"data.json": `{"a": 1}`})

	got, err := afero.ReadFile(fs, "data.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, string(got))

	exists, err := afero.Exists(fs, "other.json")
	require.NoError(t, err)
	assert.False(t, exists)
}
