package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelschema/pkg/openapi"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

func (p *Parser) fieldFromProperty(ref *openapi3.SchemaRef, required bool) (schema.Field, error) {
	if ref == nil {
		return schema.Field{}, nil
	}
	if ref.Value == nil {
		// Unresolved reference: the payload still lands in storage, so
		// treat it as a structured blob.
		return schema.Field{Cast: schema.CastObject}, nil
	}
	value := ref.Value

	tag := castFromSchema(value)
	if override := extString(value.Extensions, openapi.CastExtension); override != "" {
		tag = override
	}

	field := schema.Field{
		Cast:        tag,
		Default:     value.Default,
		Rules:       rulesFromSchema(value, required),
		Guarded:     value.ReadOnly,
		Hidden:      value.WriteOnly,
		Fillable:    extBool(value.Extensions, openapi.FillableExtension),
		Label:       strings.TrimSpace(value.Title),
		Description: strings.TrimSpace(value.Description),
	}
	return field, nil
}

// castFromSchema maps an OpenAPI type/format pair onto a cast tag.
func castFromSchema(value *openapi3.Schema) string {
	switch schemaType(value.Type) {
	case "integer":
		return schema.CastInteger
	case "number":
		return schema.CastFloat
	case "boolean":
		return schema.CastBoolean
	case "object":
		return schema.CastObject
	case "array":
		return schema.CastArray
	case "string":
		switch value.Format {
		case "date":
			return schema.CastDate
		case "date-time":
			return schema.CastDateTime
		case "uuid":
			return schema.CastUUID
		default:
			return schema.CastString
		}
	default:
		return ""
	}
}

// rulesFromSchema derives a pipe-joined rule list from the schema's
// constraints.
func rulesFromSchema(value *openapi3.Schema, required bool) string {
	var rules []string

	if required {
		rules = append(rules, "required")
	}
	if value.Nullable {
		rules = append(rules, "nullable")
	}

	switch schemaType(value.Type) {
	case "string":
		if value.MinLength > 0 {
			rules = append(rules, "min:"+strconv.FormatUint(value.MinLength, 10))
		}
		if value.MaxLength != nil {
			rules = append(rules, "max:"+strconv.FormatUint(*value.MaxLength, 10))
		}
		switch value.Format {
		case "email":
			rules = append(rules, "email")
		case "uri", "url":
			rules = append(rules, "url")
		}
	case "integer", "number":
		if value.Min != nil {
			name := "gte"
			if value.ExclusiveMin {
				name = "gt"
			}
			rules = append(rules, name+":"+formatNumber(*value.Min))
		}
		if value.Max != nil {
			name := "lte"
			if value.ExclusiveMax {
				name = "lt"
			}
			rules = append(rules, name+":"+formatNumber(*value.Max))
		}
	}

	if len(value.Enum) > 0 {
		if list := enumList(value.Enum); list != "" {
			rules = append(rules, "in:"+list)
		}
	}
	// Patterns containing the rule separator cannot ride along in a
	// pipe-joined list and are dropped.
	if value.Pattern != "" && !strings.Contains(value.Pattern, "|") {
		rules = append(rules, "regex:"+value.Pattern)
	}

	if extra := extString(value.Extensions, openapi.RulesExtension); extra != "" {
		rules = append(rules, extra)
	}

	return strings.Join(rules, "|")
}

func enumList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		switch v := value.(type) {
		case string:
			if strings.ContainsAny(v, ",|") {
				continue
			}
			parts = append(parts, v)
		case float64:
			parts = append(parts, formatNumber(v))
		case int:
			parts = append(parts, strconv.Itoa(v))
		case bool:
			parts = append(parts, strconv.FormatBool(v))
		default:
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	return strings.Join(parts, ",")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func extString(extensions map[string]any, key string) string {
	if len(extensions) == 0 {
		return ""
	}
	if value, ok := extensions[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func extBool(extensions map[string]any, key string) bool {
	if len(extensions) == 0 {
		return false
	}
	value, ok := extensions[key].(bool)
	return ok && value
}
