package structured

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	terrors "github.com/conneroisu/tera/internal/errors"
)

// parseHCL reads the top-level attributes of an HCL body. Blocks, variable
// references and function calls are rejected: the document is data, not config.
func parseHCL(text, filename string) (any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(text), filename)
	if diags.HasErrors() {
		return nil, hclError(diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, hclError(diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := make(map[string]any, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, hclError(diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, terrors.NewParseError(terrors.ErrCodeParseFailed,
				fmt.Sprintf("invalid HCL attribute %q", name), err)
		}
		doc[name] = native
	}

	return doc, nil
}

func hclError(diags hcl.Diagnostics) error {
	perr := terrors.NewParseError(terrors.ErrCodeParseFailed, "invalid HCL", diags)
	for _, d := range diags {
		if d.Severity == hcl.DiagError && d.Subject != nil {
			perr.Line = d.Subject.Start.Line
			perr.Column = d.Subject.Start.Column
			break
		}
	}
	return perr
}

// ctyToNative converts a cty value into the canonical value tree.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		return bigFloatToNative(v.AsBigFloat()), nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		items := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			items = append(items, native)
		}
		return items, nil

	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			m[key.AsString()] = native
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

func bigFloatToNative(f *big.Float) any {
	if f.IsInt() {
		if i, acc := f.Int64(); acc == big.Exact {
			return i
		}
	}
	out, _ := f.Float64()
	return out
}
