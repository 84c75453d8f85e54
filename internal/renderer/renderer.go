// Package renderer evaluates one template against a context through a
// pluggable template engine.
//
// Every call is a one-shot evaluation: templates are parsed, executed and
// discarded, with no cache and no named-template registry.
package renderer

import (
	"fmt"
	"sort"
	"strings"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/renderctx"
)

// Engine renders a template string with a context.
type Engine interface {
	// Name identifies the engine on the command line.
	Name() string
	// Render evaluates template against ctx. With autoescape set, values
	// substituted into the output are HTML-escaped.
	Render(template string, ctx renderctx.Context, autoescape bool) (string, error)
}

// DefaultEngine is used when no engine is configured.
const DefaultEngine = "pongo2"

var engines = map[string]func() Engine{
	"pongo2":     func() Engine { return NewPongo2Engine() },
	"handlebars": func() Engine { return NewHandlebarsEngine() },
}

// Engines lists the available engine names.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the engine registered under name. An empty name selects the default.
func New(name string) (Engine, error) {
	if name == "" {
		name = DefaultEngine
	}
	factory, ok := engines[strings.ToLower(name)]
	if !ok {
		return nil, terrors.NewValidationError(terrors.ErrCodeUnknownEngine,
			fmt.Sprintf("unknown template engine %q (supported: %s)", name, strings.Join(Engines(), ", ")))
	}
	return factory(), nil
}

// Render runs template through engine and normalizes its failures to
// ERR_RENDER_FAILED errors.
func Render(engine Engine, template string, ctx renderctx.Context, autoescape bool) (string, error) {
	if ctx == nil {
		ctx = renderctx.Context{}
	}

	out, err := engine.Render(template, ctx, autoescape)
	if err != nil {
		if terrors.IsRenderError(err) {
			return "", err
		}
		return "", terrors.NewRenderError(terrors.ErrCodeRenderFailed,
			fmt.Sprintf("%s template failed", engine.Name()), err)
	}
	return out, nil
}
