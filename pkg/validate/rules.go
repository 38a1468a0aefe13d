package validate

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// checkFunc evaluates one rule against a field value. present distinguishes
// a nil value from an absent key.
type checkFunc func(data map[string]any, field string, value any, present bool, params []string) bool

var checks = map[string]checkFunc{
	"required":   checkRequired,
	"string":     checkString,
	"integer":    checkInteger,
	"numeric":    checkNumeric,
	"boolean":    checkBoolean,
	"date":       checkDate,
	"array":      checkArray,
	"object":     checkObject,
	"timestamp":  checkTimestamp,
	"uuid":       checkUUID,
	"min":        checkMin,
	"max":        checkMax,
	"size":       checkSize,
	"between":    checkBetween,
	"in":         checkIn,
	"not_in":     checkNotIn,
	"email":      checkEmail,
	"url":        checkURL,
	"regex":      checkRegex,
	"alpha":      checkAlpha,
	"alpha_num":  checkAlphaNum,
	"alpha_dash": checkAlphaDash,
	"same":       checkSame,
	"different":  checkDifferent,
	"confirmed":  checkConfirmed,
	"gt":         comparison(func(v, p float64) bool { return v > p }),
	"gte":        comparison(func(v, p float64) bool { return v >= p }),
	"lt":         comparison(func(v, p float64) bool { return v < p }),
	"lte":        comparison(func(v, p float64) bool { return v <= p }),
}

var (
	emailPattern     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	alphaPattern     = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumPattern  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
}

func checkRequired(_ map[string]any, _ string, value any, present bool, _ []string) bool {
	if !present || value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) != ""
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Slice, reflect.Map, reflect.Array:
			return rv.Len() > 0
		}
		return true
	}
}

func checkString(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	switch value.(type) {
	case string, []byte:
		return true
	default:
		return false
	}
}

func checkInteger(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return v == float64(int64(v))
	case float32:
		return float64(v) == float64(int64(v))
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return err == nil
	default:
		return false
	}
}

func checkNumeric(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	_, ok := numericValue(value)
	return ok
}

func checkBoolean(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	switch v := value.(type) {
	case bool:
		return true
	case int, int64:
		n, _ := numericValue(v)
		return n == 0 || n == 1
	case float64:
		return v == 0 || v == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "false", "1", "0", "yes", "no":
			return true
		}
		return false
	default:
		return false
	}
}

func checkDate(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	switch v := value.(type) {
	case time.Time:
		return true
	case string:
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// checkArray accepts native slices and maps plus serialized JSON structures,
// since validation runs over storage-form attribute bags.
func checkArray(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	switch v := value.(type) {
	case string:
		return decodesToStructure(v)
	case []byte:
		return decodesToStructure(string(v))
	default:
		switch reflect.ValueOf(value).Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return true
		}
		return false
	}
}

func checkObject(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	switch v := value.(type) {
	case string:
		var decoded map[string]any
		return json.Unmarshal([]byte(v), &decoded) == nil
	case []byte:
		var decoded map[string]any
		return json.Unmarshal(v, &decoded) == nil
	default:
		return reflect.ValueOf(value).Kind() == reflect.Map
	}
}

func checkTimestamp(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	switch v := value.(type) {
	case time.Time:
		return true
	case int, int32, int64, uint, uint32, uint64:
		return true
	case float64:
		return v == float64(int64(v))
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return err == nil
	default:
		return false
	}
}

func checkUUID(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func checkMin(_ map[string]any, _ string, value any, _ bool, params []string) bool {
	limit, ok := paramFloat(params, 0)
	if !ok {
		return true
	}
	size, ok := sizeOf(value)
	if !ok {
		return false
	}
	return size >= limit
}

func checkMax(_ map[string]any, _ string, value any, _ bool, params []string) bool {
	limit, ok := paramFloat(params, 0)
	if !ok {
		return true
	}
	size, ok := sizeOf(value)
	if !ok {
		return false
	}
	return size <= limit
}

func checkSize(_ map[string]any, _ string, value any, _ bool, params []string) bool {
	want, ok := paramFloat(params, 0)
	if !ok {
		return true
	}
	size, ok := sizeOf(value)
	if !ok {
		return false
	}
	return size == want
}

func checkBetween(_ map[string]any, _ string, value any, _ bool, params []string) bool {
	low, okLow := paramFloat(params, 0)
	high, okHigh := paramFloat(params, 1)
	if !okLow || !okHigh {
		return true
	}
	size, ok := sizeOf(value)
	if !ok {
		return false
	}
	return size >= low && size <= high
}

func checkIn(_ map[string]any, _ string, value any, _ bool, params []string) bool {
	needle := stringify(value)
	for _, param := range params {
		if needle == param {
			return true
		}
	}
	return false
}

func checkNotIn(data map[string]any, field string, value any, present bool, params []string) bool {
	return !checkIn(data, field, value, present, params)
}

func checkEmail(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return emailPattern.MatchString(s)
}

func checkURL(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func checkRegex(_ map[string]any, _ string, value any, _ bool, params []string) bool {
	if len(params) == 0 {
		return true
	}
	pattern, err := regexp.Compile(params[0])
	if err != nil {
		return false
	}
	return pattern.MatchString(stringify(value))
}

func checkAlpha(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	s, ok := value.(string)
	return ok && alphaPattern.MatchString(s)
}

func checkAlphaNum(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	s, ok := value.(string)
	return ok && alphaNumPattern.MatchString(s)
}

func checkAlphaDash(_ map[string]any, _ string, value any, _ bool, _ []string) bool {
	s, ok := value.(string)
	return ok && alphaDashPattern.MatchString(s)
}

func checkSame(data map[string]any, _ string, value any, _ bool, params []string) bool {
	if len(params) == 0 {
		return true
	}
	other, ok := data[params[0]]
	if !ok {
		return false
	}
	return reflect.DeepEqual(value, other)
}

func checkDifferent(data map[string]any, field string, value any, present bool, params []string) bool {
	if len(params) == 0 {
		return true
	}
	if _, ok := data[params[0]]; !ok {
		return true
	}
	return !checkSame(data, field, value, present, params)
}

func checkConfirmed(data map[string]any, field string, value any, _ bool, _ []string) bool {
	confirmation, ok := data[field+"_confirmation"]
	if !ok {
		return false
	}
	return reflect.DeepEqual(value, confirmation)
}

func comparison(compare func(value, param float64) bool) checkFunc {
	return func(_ map[string]any, _ string, value any, _ bool, params []string) bool {
		limit, ok := paramFloat(params, 0)
		if !ok {
			return true
		}
		n, ok := numericValue(value)
		if !ok {
			return false
		}
		return compare(n, limit)
	}
}

// sizeOf measures a value the way Laravel's size rules do: numeric values by
// magnitude, strings by rune count, collections by element count.
func sizeOf(value any) (float64, bool) {
	if n, ok := numericValueStrict(value); ok {
		return n, true
	}
	switch v := value.(type) {
	case string:
		return float64(utf8.RuneCountInString(v)), true
	case []byte:
		return float64(utf8.RuneCount(v)), true
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return float64(rv.Len()), true
		}
		return 0, false
	}
}

// numericValue accepts numbers and numeric strings.
func numericValue(value any) (float64, bool) {
	if n, ok := numericValueStrict(value); ok {
		return n, true
	}
	if s, ok := value.(string); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

// numericValueStrict accepts only genuine numeric types.
func numericValueStrict(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func paramFloat(params []string, idx int) (float64, bool) {
	if idx >= len(params) {
		return 0, false
	}
	n, err := strconv.ParseFloat(params[idx], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		if n, ok := numericValueStrict(value); ok {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

func decodesToStructure(raw string) bool {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return false
	}
	switch decoded.(type) {
	case []any, map[string]any:
		return true
	default:
		return false
	}
}
