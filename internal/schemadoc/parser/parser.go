package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

// Parser implements schemadoc.Parser for the native definition format: a
// document with a top-level "models" map, encoded as YAML or JSON.
type Parser struct {
	options schemadoc.ParserOptions
}

var _ schemadoc.Parser = (*Parser)(nil)

// New builds a native format parser honoring the supplied options.
func New(options schemadoc.ParserOptions) schemadoc.Parser {
	return &Parser{options: options}
}

type documentPayload struct {
	Models map[string]modelPayload `json:"models" yaml:"models"`
}

type modelPayload struct {
	Table      string                  `json:"table" yaml:"table"`
	PrimaryKey string                  `json:"primary_key" yaml:"primary_key"`
	Meta       metaPayload             `json:"meta" yaml:"meta"`
	Fields     map[string]fieldPayload `json:"fields" yaml:"fields"`
}

type metaPayload struct {
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

type fieldPayload struct {
	Cast        string `json:"cast" yaml:"cast"`
	Default     any    `json:"default" yaml:"default"`
	Rules       string `json:"rules" yaml:"rules"`
	Guarded     bool   `json:"guarded" yaml:"guarded"`
	Fillable    bool   `json:"fillable" yaml:"fillable"`
	Hidden      bool   `json:"hidden" yaml:"hidden"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// Definitions parses the document into schema definitions keyed by model
// name.
func (p *Parser) Definitions(ctx context.Context, doc schemadoc.Document) (map[string]schema.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("schemadoc parser: document payload is empty")
	}

	payload, err := decodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("schemadoc parser: parse %s: %w", locationOrInline(doc), err)
	}
	if len(payload.Models) == 0 {
		return nil, fmt.Errorf("schemadoc parser: %s does not declare any models", locationOrInline(doc))
	}

	definitions := make(map[string]schema.Definition, len(payload.Models))
	for _, name := range sortedModelNames(payload.Models) {
		def, err := p.buildDefinition(name, payload.Models[name])
		if err != nil {
			return nil, fmt.Errorf("schemadoc parser: %s: %w", locationOrInline(doc), err)
		}
		definitions[name] = def
	}

	return definitions, nil
}

// decodeDocument attempts JSON first so JSON payloads keep their exact error
// positions, then falls back to YAML, which also accepts JSON-ish input.
func decodeDocument(raw []byte) (documentPayload, error) {
	var payload documentPayload

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return documentPayload{}, fmt.Errorf("decode json: %w", err)
		}
		return payload, nil
	}

	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return documentPayload{}, fmt.Errorf("decode yaml: %w", err)
	}
	return payload, nil
}

func (p *Parser) buildDefinition(name string, payload modelPayload) (schema.Definition, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return schema.Definition{}, errors.New("model with an empty name")
	}
	if len(payload.Fields) == 0 {
		return schema.Definition{}, fmt.Errorf("model %q declares no fields", trimmedName)
	}

	fields := make(map[string]schema.Field, len(payload.Fields))
	for fieldName, fp := range payload.Fields {
		fieldName = strings.TrimSpace(fieldName)
		if fieldName == "" {
			return schema.Definition{}, fmt.Errorf("model %q declares a field with an empty name", trimmedName)
		}

		tag := strings.TrimSpace(fp.Cast)
		if p.options.StrictCasts && tag != "" && !cast.Default().HasRead(tag) {
			return schema.Definition{}, fmt.Errorf("model %q field %q uses unknown cast %q", trimmedName, fieldName, tag)
		}

		fields[fieldName] = schema.Field{
			Cast:        tag,
			Default:     fp.Default,
			Rules:       strings.TrimSpace(fp.Rules),
			Guarded:     fp.Guarded,
			Fillable:    fp.Fillable,
			Hidden:      fp.Hidden,
			Label:       strings.TrimSpace(fp.Label),
			Description: strings.TrimSpace(fp.Description),
		}
	}

	def := schema.New(trimmedName, fields)
	if table := strings.TrimSpace(payload.Table); table != "" {
		def.Table = table
	}
	pk := strings.TrimSpace(payload.PrimaryKey)
	if pk == "" {
		pk = p.options.DefaultPrimaryKey
	}
	if pk != "" && pk != def.PrimaryKey {
		def.PrimaryKey = pk
		def.PrimaryKeyCast = schema.CastInteger
		if field, ok := def.Fields[pk]; ok && field.Cast != "" {
			def.PrimaryKeyCast = field.Cast
		}
	}
	def.Meta = schema.Meta{
		Label:       strings.TrimSpace(payload.Meta.Label),
		Description: strings.TrimSpace(payload.Meta.Description),
	}

	if err := def.Validate(); err != nil {
		return schema.Definition{}, err
	}
	return def, nil
}

func sortedModelNames(models map[string]modelPayload) []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func locationOrInline(doc schemadoc.Document) string {
	if location := doc.Location(); location != "" {
		return location
	}
	return "document"
}
