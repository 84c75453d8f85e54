package renderctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/structured"
)

func TestBuildWithRootKey(t *testing.T) {
	value := map[string]any{"a": int64(42), "nested": map[string]any{"b": "x"}}

	ctx, err := Build(value, "c")
	require.NoError(t, err)

	assert.Len(t, ctx, 1)
	assert.Equal(t, value, ctx["c"])
}

func TestBuildWithRootKeyNestsAnyShape(t *testing.T) {
	testCases := []struct {
		name  string
		value any
		want  any
	}{
		{"sequence", []any{"a", "b"}, []any{"a", "b"}},
		{"scalar", "text", "text"},
		{"nil becomes empty mapping", nil, map[string]any{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, err := Build(tc.value, "data")
			require.NoError(t, err)
			assert.Equal(t, Context{"data": tc.want}, ctx)
		})
	}
}

func TestBuildFlatten(t *testing.T) {
	value := map[string]any{"name": "x", "count": int64(3)}

	ctx, err := Build(value, "")
	require.NoError(t, err)
	assert.Equal(t, Context{"name": "x", "count": int64(3)}, ctx)

	// the context is a copy; mutating it leaves the parsed value alone
	ctx["extra"] = true
	assert.NotContains(t, value, "extra")
}

func TestBuildFlattenNil(t *testing.T) {
	ctx, err := Build(nil, "")
	require.NoError(t, err)
	assert.Empty(t, ctx)
}

func TestBuildFlattenRejectsNonMapping(t *testing.T) {
	for _, value := range []any{[]any{"a"}, "scalar", int64(1), true} {
		_, err := Build(value, "")
		require.Error(t, err)
		assert.True(t, terrors.HasCode(err, terrors.ErrCodeNotAMapping), "value %v: %v", value, err)
		assert.Contains(t, err.Error(), structured.TypeName(value))
	}
}

func TestBuildFromEnvironment(t *testing.T) {
	env := structured.Environ([]string{"FOO=bar", "HOME=/home/tera"})

	nested, err := Build(env, "c")
	require.NoError(t, err)
	assert.Equal(t, "bar", nested["c"].(map[string]any)["FOO"])

	flat, err := Build(env, "")
	require.NoError(t, err)
	assert.Equal(t, "bar", flat["FOO"])
	assert.Equal(t, "/home/tera", flat["HOME"])
}

func TestEmpty(t *testing.T) {
	assert.Equal(t, Context{}, Empty(""))
	assert.Equal(t, Context{"c": map[string]any{}}, Empty("c"))
}
