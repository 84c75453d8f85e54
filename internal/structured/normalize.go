package structured

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	terrors "github.com/conneroisu/tera/internal/errors"
)

// Normalize converts a decoder's output into the canonical value tree.
// Mapping keys that are not strings produce an ERR_NON_STRING_KEY error naming
// the offending key.
func Normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil, bool, string, int64, float64:
		return val, nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case uint:
		return normalizeUint(uint64(val)), nil
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	case uint64:
		return normalizeUint(val), nil
	case float32:
		return float64(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, terrors.NewParseError(terrors.ErrCodeParseFailed,
				fmt.Sprintf("number %s is out of range", val.String()), err)
		}
		return f, nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			key, ok := k.(string)
			if !ok {
				return nil, nonStringKey(k)
			}
			n, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	case fmt.Stringer:
		// TOML local dates and times
		return val.String(), nil
	default:
		return nil, terrors.NewParseError(terrors.ErrCodeParseFailed,
			fmt.Sprintf("unsupported value of type %T", v), nil)
	}
}

func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

func nonStringKey(key any) error {
	return terrors.NewParseError(terrors.ErrCodeNonStringKey,
		fmt.Sprintf("mapping key %s is not a string", RenderKey(key)), nil).
		WithContext("key", key)
}

// RenderKey formats a mapping key for diagnostics.
func RenderKey(key any) string {
	switch k := key.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", k)
	default:
		return fmt.Sprintf("%v", k)
	}
}

// TypeName names the variant of a canonical value.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int64, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "sequence"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
