package renderer

import (
	"errors"
	"regexp"
	"sync"

	"github.com/flosch/pongo2/v6"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/renderctx"
)

// pongo2 keeps its autoescape switch in a package variable.
var pongo2Mu sync.Mutex

// pongo2 refuses to execute with a top-level key outside this set.
var pongo2Identifier = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Pongo2Engine renders Django/Jinja-style templates with pongo2.
type Pongo2Engine struct {
	set *pongo2.TemplateSet
}

// NewPongo2Engine creates a pongo2 engine. Includes resolve against the
// working directory.
func NewPongo2Engine() *Pongo2Engine {
	return &Pongo2Engine{set: pongo2.NewSet("tera", pongo2.DefaultLoader)}
}

// Name implements Engine.
func (e *Pongo2Engine) Name() string { return "pongo2" }

// Render implements Engine.
func (e *Pongo2Engine) Render(template string, ctx renderctx.Context, autoescape bool) (string, error) {
	pongo2Mu.Lock()
	defer pongo2Mu.Unlock()

	pongo2.SetAutoescape(autoescape)
	defer pongo2.SetAutoescape(true)

	tpl, err := e.set.FromString(template)
	if err != nil {
		return "", pongo2Error("template syntax error", err)
	}

	out, err := tpl.Execute(addressable(ctx))
	if err != nil {
		return "", pongo2Error("template evaluation failed", err)
	}

	return out, nil
}

// addressable drops top-level names a template could never reference, such as
// environment variables with dots or parentheses in their names.
func addressable(ctx renderctx.Context) pongo2.Context {
	out := make(pongo2.Context, len(ctx))
	for k, v := range ctx {
		if pongo2Identifier.MatchString(k) {
			out[k] = v
		}
	}
	return out
}

func pongo2Error(message string, err error) error {
	rerr := terrors.NewRenderError(terrors.ErrCodeRenderFailed, message, err)

	var perr *pongo2.Error
	if errors.As(err, &perr) {
		rerr.Line = perr.Line
		rerr.Column = perr.Column
		if perr.Sender != "" {
			rerr.WithContext("sender", perr.Sender)
		}
	}
	return rerr
}
