package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelschema/pkg/openapi"
	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

// Parser implements schemadoc.Parser for OpenAPI documents using kin-openapi.
// Component schemas become model definitions; paths are ignored.
type Parser struct {
	options schemadoc.ParserOptions
}

var _ schemadoc.Parser = (*Parser)(nil)

// New builds an OpenAPI parser honoring the supplied options.
func New(options schemadoc.ParserOptions) schemadoc.Parser {
	return &Parser{options: options}
}

// Definitions converts the document's component schemas into model
// definitions keyed by schema name. Non-object schemas are skipped.
func (p *Parser) Definitions(ctx context.Context, doc schemadoc.Document) (map[string]schema.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: true,
	}

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi parser: validate: %w", err)
	}

	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi parser: document does not declare component schemas")
	}

	definitions := make(map[string]schema.Definition)
	for _, name := range sortedSchemaNames(spec.Components.Schemas) {
		def, ok, err := p.buildDefinition(name, spec.Components.Schemas[name])
		if err != nil {
			return nil, fmt.Errorf("openapi parser: schema %q: %w", name, err)
		}
		if !ok {
			continue
		}
		definitions[name] = def
	}

	if len(definitions) == 0 {
		return nil, errors.New("openapi parser: no object schemas found")
	}

	return definitions, nil
}

func (p *Parser) buildDefinition(name string, ref *openapi3.SchemaRef) (schema.Definition, bool, error) {
	if ref == nil || ref.Value == nil {
		return schema.Definition{}, false, nil
	}
	value := ref.Value
	if kind := schemaType(value.Type); kind != "" && kind != "object" {
		return schema.Definition{}, false, nil
	}
	if len(value.Properties) == 0 {
		return schema.Definition{}, false, nil
	}

	requiredSet := make(map[string]bool, len(value.Required))
	for _, field := range value.Required {
		requiredSet[field] = true
	}

	fields := make(map[string]schema.Field, len(value.Properties))
	for propName, prop := range value.Properties {
		field, err := p.fieldFromProperty(prop, requiredSet[propName])
		if err != nil {
			return schema.Definition{}, false, fmt.Errorf("property %q: %w", propName, err)
		}
		fields[propName] = field
	}

	def := schema.New(name, fields)
	if table := extString(value.Extensions, openapi.TableExtension); table != "" {
		def.Table = table
	}
	pk := extString(value.Extensions, openapi.PrimaryKeyExtension)
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
		Label:       strings.TrimSpace(value.Title),
		Description: strings.TrimSpace(value.Description),
	}

	if err := def.Validate(); err != nil {
		return schema.Definition{}, false, err
	}
	return def, true, nil
}

func sortedSchemaNames(schemas openapi3.Schemas) []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
