package renderer

import (
	"github.com/aymerick/raymond"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/renderctx"
)

// HandlebarsEngine renders Handlebars templates with raymond.
type HandlebarsEngine struct{}

// NewHandlebarsEngine creates a handlebars engine.
func NewHandlebarsEngine() *HandlebarsEngine {
	return &HandlebarsEngine{}
}

// Name implements Engine.
func (e *HandlebarsEngine) Name() string { return "handlebars" }

// Render implements Engine. Handlebars always escapes "{{ }}" output, so with
// autoescape off every string in the context is marked safe first.
func (e *HandlebarsEngine) Render(template string, ctx renderctx.Context, autoescape bool) (string, error) {
	tpl, err := raymond.Parse(template)
	if err != nil {
		return "", terrors.NewRenderError(terrors.ErrCodeRenderFailed, "template syntax error", err)
	}

	var data any = ctx.Map()
	if !autoescape {
		data = markSafe(data)
	}

	out, err := tpl.Exec(data)
	if err != nil {
		return "", terrors.NewRenderError(terrors.ErrCodeRenderFailed, "template evaluation failed", err)
	}
	return out, nil
}

func markSafe(v any) any {
	switch val := v.(type) {
	case string:
		return raymond.SafeString(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = markSafe(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = markSafe(item)
		}
		return out
	default:
		return v
	}
}
