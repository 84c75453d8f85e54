package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/renderctx"
)

func TestNew(t *testing.T) {
	engine, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEngine, engine.Name())

	engine, err = New("Handlebars")
	require.NoError(t, err)
	assert.Equal(t, "handlebars", engine.Name())

	_, err = New("mustache")
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeUnknownEngine))
	assert.Contains(t, err.Error(), "handlebars, pongo2")
}

func TestPongo2Render(t *testing.T) {
	engine := NewPongo2Engine()

	testCases := []struct {
		name       string
		template   string
		ctx        renderctx.Context
		autoescape bool
		want       string
	}{
		{
			name:     "root key lookup",
			template: "{{ c.a }}",
			ctx:      renderctx.Context{"c": map[string]any{"a": int64(42)}},
			want:     "42",
		},
		{
			name:     "flattened variable",
			template: "{{ name }}",
			ctx:      renderctx.Context{"name": "x"},
			want:     "x",
		},
		{
			name:       "autoescape on",
			template:   "{{ c.v }}",
			ctx:        renderctx.Context{"c": map[string]any{"v": "<b>"}},
			autoescape: true,
			want:       "&lt;b&gt;",
		},
		{
			name:     "autoescape off",
			template: "{{ c.v }}",
			ctx:      renderctx.Context{"c": map[string]any{"v": "<b>"}},
			want:     "<b>",
		},
		{
			name:     "loop over sequence keeps trailing newline",
			template: "{% for t in c.tags %}{{ t }};{% endfor %}\n",
			ctx:      renderctx.Context{"c": map[string]any{"tags": []any{"a", "b"}}},
			want:     "a;b;\n",
		},
		{
			name:     "no context",
			template: "plain text",
			ctx:      renderctx.Context{},
			want:     "plain text",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Render(engine, tc.template, tc.ctx, tc.autoescape)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPongo2RenderErrors(t *testing.T) {
	engine := NewPongo2Engine()

	t.Run("syntax error reports position", func(t *testing.T) {
		_, err := Render(engine, "line one\n{% nosuchtag %}", nil, false)
		require.Error(t, err)
		assert.True(t, terrors.HasCode(err, terrors.ErrCodeRenderFailed))
		assert.True(t, terrors.IsRenderError(err))

		var te *terrors.ToolError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, 2, te.Line)
	})

	t.Run("unclosed tag", func(t *testing.T) {
		_, err := Render(engine, "{% for x in c %}", renderctx.Context{"c": []any{}}, false)
		require.Error(t, err)
		assert.True(t, terrors.IsRenderError(err))
	})

	t.Run("undefined variable renders empty", func(t *testing.T) {
		out, err := Render(engine, "[{{ missing }}]", renderctx.Context{}, false)
		require.NoError(t, err)
		assert.Equal(t, "[]", out)
	})
}

func TestPongo2DropsUnaddressableNames(t *testing.T) {
	ctx := renderctx.Context{"not-an-identifier": "v", "PATH": "/bin", "a.b": 1}

	out, err := Render(NewPongo2Engine(), "{{ PATH }}", ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "/bin", out)
	assert.Equal(t, map[string]any{"PATH": "/bin"}, map[string]any(addressable(ctx)))
}

func TestPongo2AutoescapeDoesNotLeak(t *testing.T) {
	engine := NewPongo2Engine()
	ctx := renderctx.Context{"v": "<i>"}

	off, err := Render(engine, "{{ v }}", ctx, false)
	require.NoError(t, err)
	on, err := Render(engine, "{{ v }}", ctx, true)
	require.NoError(t, err)
	offAgain, err := Render(engine, "{{ v }}", ctx, false)
	require.NoError(t, err)

	assert.Equal(t, "<i>", off)
	assert.Equal(t, "&lt;i&gt;", on)
	assert.Equal(t, "<i>", offAgain)
}

func TestHandlebarsRender(t *testing.T) {
	engine := NewHandlebarsEngine()
	ctx := renderctx.Context{"c": map[string]any{
		"v":    "<b>",
		"tags": []any{"x", "y"},
	}}

	escaped, err := Render(engine, "{{ c.v }}", ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;", escaped)

	raw, err := Render(engine, "{{ c.v }}", ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "<b>", raw)

	list, err := Render(engine, "{{#each c.tags}}{{this}},{{/each}}", ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "x,y,", list)

	_, err = Render(engine, "{{#if c.v}}unclosed", ctx, false)
	require.Error(t, err)
	assert.True(t, terrors.HasCode(err, terrors.ErrCodeRenderFailed))
}

func TestMarkSafeLeavesNonStrings(t *testing.T) {
	in := map[string]any{"n": int64(1), "b": true, "nil": nil}
	assert.Equal(t, in, markSafe(in))
}
