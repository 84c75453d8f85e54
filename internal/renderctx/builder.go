// Package renderctx turns a parsed structured value into the variables a
// template sees, either nested under one root key or flattened one level.
package renderctx

import (
	"fmt"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/structured"
)

// Context maps template variable names to canonical structured values.
type Context map[string]any

// Build composes the template context for value.
//
// With a root key the context holds exactly {rootKey: value}; a nil value is
// stored as an empty mapping. Without one ("" root key) the entries of a
// mapping value become top-level variables, a nil value yields an empty
// context, and any other value is an ERR_NOT_A_MAPPING error.
func Build(value any, rootKey string) (Context, error) {
	if rootKey != "" {
		if value == nil {
			value = map[string]any{}
		}
		return Context{rootKey: value}, nil
	}

	switch v := value.(type) {
	case nil:
		return Context{}, nil
	case map[string]any:
		ctx := make(Context, len(v))
		for k, item := range v {
			ctx[k] = item
		}
		return ctx, nil
	default:
		return nil, terrors.NewParseError(terrors.ErrCodeNotAMapping,
			fmt.Sprintf("top-level value is a %s, not a mapping; set a root key to nest it", structured.TypeName(value)), nil)
	}
}

// Empty returns the context used when no context source is configured.
func Empty(rootKey string) Context {
	ctx, _ := Build(nil, rootKey)
	return ctx
}

// Map returns the context as a plain map for engines that want one.
func (c Context) Map() map[string]any {
	return map[string]any(c)
}
