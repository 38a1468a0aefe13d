package cast

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-modelschema/pkg/schema"
)

// Storage layouts for temporal tags. Reads additionally accept RFC 3339.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

func registerBuiltins(r *Registry) {
	reads := map[string]Func{
		schema.CastString:    readString,
		schema.CastInteger:   readInteger,
		schema.CastFloat:     readFloat,
		schema.CastBoolean:   readBoolean,
		schema.CastObject:    readObject,
		schema.CastArray:     readArray,
		schema.CastDate:      readDate,
		schema.CastDateTime:  readDateTime,
		schema.CastTimestamp: readTimestamp,
		schema.CastUUID:      readUUID,
	}
	writes := map[string]Func{
		schema.CastObject:    writeStructured,
		schema.CastArray:     writeStructured,
		schema.CastDate:      writeDate,
		schema.CastDateTime:  writeDateTime,
		schema.CastTimestamp: writeTimestamp,
		schema.CastHTML:      writeHTML,
	}

	for tag, fn := range reads {
		r.read[tag] = fn
	}
	for tag, fn := range writes {
		r.write[tag] = fn
	}
}

func readString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func readInteger(value any) (any, error) {
	return toInt64(value)
}

func readFloat(value any) (any, error) {
	return toFloat64(value)
}

func readBoolean(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes", "on":
			return true, nil
		case "0", "f", "false", "n", "no", "off", "":
			return false, nil
		}
		return nil, fmt.Errorf("cast: %q is not a boolean", v)
	default:
		n, err := toFloat64(value)
		if err != nil {
			return nil, fmt.Errorf("cast: %v is not a boolean", value)
		}
		return n != 0, nil
	}
}

func readObject(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case string, []byte:
		decoded, err := decodeJSON(v)
		if err != nil {
			return nil, err
		}
		out, ok := decoded.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cast: object value decodes to %T, not an object", decoded)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cast: cannot read %T as object", value)
	}
}

func readArray(value any) (any, error) {
	switch v := value.(type) {
	case []any, map[string]any:
		return v, nil
	case string, []byte:
		decoded, err := decodeJSON(v)
		if err != nil {
			return nil, err
		}
		switch decoded.(type) {
		case []any, map[string]any:
			return decoded, nil
		default:
			return nil, fmt.Errorf("cast: array value decodes to %T, not a structure", decoded)
		}
	default:
		return nil, fmt.Errorf("cast: cannot read %T as array", value)
	}
}

func readDate(value any) (any, error) {
	parsed, err := toTime(value)
	if err != nil {
		return nil, err
	}
	year, month, day := parsed.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, parsed.Location()), nil
}

func readDateTime(value any) (any, error) {
	return toTime(value)
}

func readTimestamp(value any) (any, error) {
	if t, ok := value.(time.Time); ok {
		return t.Unix(), nil
	}
	return toInt64(value)
}

func readUUID(value any) (any, error) {
	switch v := value.(type) {
	case uuid.UUID:
		return v.String(), nil
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("cast: parse uuid %q: %w", v, err)
		}
		return parsed.String(), nil
	case []byte:
		if len(v) == 16 {
			parsed, err := uuid.FromBytes(v)
			if err != nil {
				return nil, fmt.Errorf("cast: parse uuid bytes: %w", err)
			}
			return parsed.String(), nil
		}
		return readUUID(string(v))
	default:
		return nil, fmt.Errorf("cast: cannot read %T as uuid", value)
	}
}

// writeStructured serializes native structures to a JSON storage string.
// Values that are already serialized pass through when they hold valid JSON.
func writeStructured(value any) (any, error) {
	switch v := value.(type) {
	case string:
		if json.Valid([]byte(v)) {
			return v, nil
		}
		return nil, fmt.Errorf("cast: string is not valid JSON")
	case []byte:
		if json.Valid(v) {
			return string(v), nil
		}
		return nil, fmt.Errorf("cast: bytes are not valid JSON")
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cast: serialize structured value: %w", err)
		}
		return string(encoded), nil
	}
}

func writeDate(value any) (any, error) {
	parsed, err := toTime(value)
	if err != nil {
		return nil, err
	}
	return parsed.Format(DateLayout), nil
}

func writeDateTime(value any) (any, error) {
	parsed, err := toTime(value)
	if err != nil {
		return nil, err
	}
	return parsed.Format(DateTimeLayout), nil
}

func writeTimestamp(value any) (any, error) {
	if t, ok := value.(time.Time); ok {
		return t.Unix(), nil
	}
	return toInt64(value)
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("cast: %d overflows int64", v)
		}
		return int64(v), nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		trimmed := strings.TrimSpace(v)
		parsed, err := strconv.ParseInt(trimmed, 10, 64)
		if err == nil {
			return parsed, nil
		}
		f, ferr := strconv.ParseFloat(trimmed, 64)
		if ferr == nil {
			return int64(f), nil
		}
		return 0, fmt.Errorf("cast: %q is not an integer", v)
	case []byte:
		return toInt64(string(v))
	default:
		return 0, fmt.Errorf("cast: cannot read %T as integer", value)
	}
}

func toFloat64(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := toInt64(v)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("cast: %q is not a number", v)
		}
		return parsed, nil
	case []byte:
		return toFloat64(string(v))
	default:
		return 0, fmt.Errorf("cast: cannot read %T as float", value)
	}
}

func toTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		for _, layout := range []string{DateTimeLayout, DateLayout, time.RFC3339Nano, time.RFC3339} {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("cast: %q is not a recognized date or datetime", v)
	case []byte:
		return toTime(string(v))
	case int, int32, int64, uint, uint32, uint64:
		seconds, err := toInt64(v)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(seconds, 0).UTC(), nil
	case float64:
		return time.Unix(int64(v), 0).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("cast: cannot read %T as time", value)
	}
}

func decodeJSON(value any) (any, error) {
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return nil, fmt.Errorf("cast: cannot decode %T as JSON", value)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("cast: decode JSON: %w", err)
	}
	return decoded, nil
}
