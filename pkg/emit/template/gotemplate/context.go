package gotemplate

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// toContext flattens data into a pongo2.Context. Maps pass through with their
// values normalized; anything else takes a trip through JSON so templates see
// plain maps, slices, and scalars regardless of the Go types behind them.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return contextFromMap(map[string]any(v))
	case map[string]any:
		return contextFromMap(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		decoded := map[string]any{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, err
		}
		return contextFromMap(decoded)
	}
}

func contextFromMap(in map[string]any) (pongo2.Context, error) {
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		normalized, err := normalize(value)
		if err != nil {
			return nil, err
		}
		out[key] = normalized
	}
	return out, nil
}

// normalize rewrites nested values into JSON-shaped maps and slices. Scalars
// and functions pass through untouched so globals can expose helpers.
func normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case pongo2.Context:
		return normalizeMap(map[string]any(v))
	case map[string]any:
		return normalizeMap(v)
	case []any:
		return normalizeSlice(v)
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return v, nil
	default:
		if rv := reflect.ValueOf(value); rv.IsValid() && rv.Kind() == reflect.Func {
			return value, nil
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, err
		}
		switch d := decoded.(type) {
		case map[string]any:
			return normalizeMap(d)
		case []any:
			return normalizeSlice(d)
		default:
			return d, nil
		}
	}
}

func normalizeMap(in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for key, value := range in {
		normalized, err := normalize(value)
		if err != nil {
			return nil, err
		}
		out[key] = normalized
	}
	return out, nil
}

func normalizeSlice(in []any) ([]any, error) {
	out := make([]any, 0, len(in))
	for _, value := range in {
		normalized, err := normalize(value)
		if err != nil {
			return nil, err
		}
		out = append(out, normalized)
	}
	return out, nil
}
