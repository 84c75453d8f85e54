package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/source"
	"github.com/conneroisu/tera/internal/structured"
)

func strPtr(s string) *string { return &s }

func defaultSettings() *Settings {
	return &Settings{RootKey: DefaultRootKey, Engine: "pongo2", LogLevel: "warn", LogFormat: "text"}
}

func TestResolveTemplateSources(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
		want source.Template
	}{
		{"stdin when nothing given", Options{}, source.Stdin()},
		{"file", Options{TemplateFile: strPtr("page.html")}, source.File("page.html")},
		{"inline", Options{TemplateInline: strPtr("{{ c.a }}")}, source.Inline("{{ c.a }}")},
		{"empty inline is still inline", Options{TemplateInline: strPtr("")}, source.Inline("")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolved, err := Resolve(tc.opts, defaultSettings())
			require.NoError(t, err)
			assert.Equal(t, tc.want, resolved.Template)
		})
	}
}

func TestResolveContextSources(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
		want ContextSource
	}{
		{"none", Options{}, NoContext()},
		{"env", Options{ContextEnv: true}, EnvContext()},
		{"toml default marker", Options{ContextFiles: map[structured.Format]string{structured.FormatTOML: "."}},
			FileContext(structured.FormatTOML, ".")},
		{"empty path means default", Options{ContextFiles: map[structured.Format]string{structured.FormatYAML: ""}},
			FileContext(structured.FormatYAML, ".")},
		{"explicit json path", Options{ContextFiles: map[structured.Format]string{structured.FormatJSON: "data.json"}},
			FileContext(structured.FormatJSON, "data.json")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolved, err := Resolve(tc.opts, defaultSettings())
			require.NoError(t, err)
			assert.Equal(t, tc.want, resolved.Context)
		})
	}
}

func TestResolveRejectsConflicts(t *testing.T) {
	testCases := []struct {
		name string
		opts Options
	}{
		{"two template sources", Options{TemplateFile: strPtr("a.html"), TemplateInline: strPtr("x")}},
		{"two context files", Options{ContextFiles: map[structured.Format]string{
			structured.FormatTOML: ".", structured.FormatJSON: ".",
		}}},
		{"file and env", Options{
			ContextFiles: map[structured.Format]string{structured.FormatYAML: "a.yml"},
			ContextEnv:   true,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(tc.opts, defaultSettings())
			require.Error(t, err)
			assert.True(t, terrors.HasCode(err, terrors.ErrCodeConflictingSources), "got %v", err)
			assert.True(t, terrors.IsValidationError(err))
		})
	}
}

func TestResolveCarriesSettings(t *testing.T) {
	settings := defaultSettings()
	settings.Autoescape = true
	settings.Engine = "handlebars"

	resolved, err := Resolve(Options{Output: "out.html"}, settings)
	require.NoError(t, err)
	assert.Equal(t, "c", resolved.RootKey)
	assert.True(t, resolved.Autoescape)
	assert.Equal(t, "handlebars", resolved.Engine)
	assert.Equal(t, "out.html", resolved.Output)

	settings.Flatten = true
	resolved, err = Resolve(Options{}, settings)
	require.NoError(t, err)
	assert.Equal(t, "", resolved.RootKey)
}

func TestResolvedValidate(t *testing.T) {
	testCases := []struct {
		name     string
		resolved Resolved
		code     string
	}{
		{"empty template path", Resolved{Template: source.File("")}, terrors.ErrCodeConfigInvalid},
		{"unknown template kind", Resolved{Template: source.Template{Kind: source.Kind(9)}}, terrors.ErrCodeConfigInvalid},
		{"empty context path", Resolved{Context: FileContext(structured.FormatJSON, "")}, terrors.ErrCodeConfigInvalid},
		{"unknown format", Resolved{Context: FileContext(structured.Format("ini"), "a.ini")}, terrors.ErrCodeUnknownFormat},
		{"invalid root key", Resolved{RootKey: "a.b"}, terrors.ErrCodeInvalidRootKey},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.resolved.Validate()
			require.Error(t, err)
			assert.True(t, terrors.HasCode(err, tc.code), "got %v", err)
		})
	}

	ok := Resolved{Template: source.Stdin(), Context: EnvContext(), RootKey: "c"}
	assert.NoError(t, ok.Validate())
}

func TestContextSourceString(t *testing.T) {
	assert.Equal(t, "toml:.tera.toml", FileContext(structured.FormatTOML, ".").String())
	assert.Equal(t, "json:data.json", FileContext(structured.FormatJSON, "data.json").String())
	assert.Equal(t, "env", EnvContext().String())
	assert.Equal(t, "none", NoContext().String())
}
