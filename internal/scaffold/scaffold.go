package scaffold

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelschema/pkg/schema"
)

// Document mirrors the native schema document format so the authored model
// parses back through the standard pipeline.
type Document struct {
	Models map[string]Model `yaml:"models"`
}

type Model struct {
	Table      string           `yaml:"table,omitempty"`
	PrimaryKey string           `yaml:"primary_key,omitempty"`
	Fields     map[string]Field `yaml:"fields"`
}

type Field struct {
	Cast     string `yaml:"cast"`
	Default  any    `yaml:"default,omitempty"`
	Rules    string `yaml:"rules,omitempty"`
	Guarded  bool   `yaml:"guarded,omitempty"`
	Fillable bool   `yaml:"fillable,omitempty"`
	Hidden   bool   `yaml:"hidden,omitempty"`
}

// Marshal serializes the document as YAML.
func (d Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

var (
	modelNamePattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
	attributeNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

var castChoices = []string{
	schema.CastString,
	schema.CastInteger,
	schema.CastFloat,
	schema.CastBoolean,
	schema.CastObject,
	schema.CastArray,
	schema.CastDate,
	schema.CastDateTime,
	schema.CastTimestamp,
	schema.CastUUID,
	schema.CastHTML,
}

var flagChoices = []string{"guarded", "fillable", "hidden"}

// Flow drives the interactive model authoring session.
type Flow struct {
	driver PromptDriver
}

// New constructs a flow over the given prompt driver. A nil driver falls back
// to the interactive survey implementation.
func New(driver PromptDriver) *Flow {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Flow{driver: driver}
}

// Run prompts for one model declaration and returns it as a schema document.
// The collected definition is validated before the document is returned.
func (f *Flow) Run(ctx context.Context) (Document, error) {
	name, err := f.modelName(ctx)
	if err != nil {
		return Document{}, err
	}

	table, err := f.driver.Input(ctx, InputConfig{
		Message: "Storage table",
		Default: schema.TableName(name),
		Help:    "Leave the suggested value to follow the naming convention.",
	})
	if err != nil {
		return Document{}, err
	}
	table = strings.TrimSpace(table)
	if table == schema.TableName(name) {
		table = ""
	}

	fields, err := f.collectFields(ctx)
	if err != nil {
		return Document{}, err
	}

	primaryKey, err := f.primaryKey(ctx, fields)
	if err != nil {
		return Document{}, err
	}

	model := Model{
		Table:      table,
		PrimaryKey: primaryKey,
		Fields:     fields,
	}
	if err := validateModel(name, model); err != nil {
		return Document{}, err
	}

	return Document{Models: map[string]Model{name: model}}, nil
}

func (f *Flow) modelName(ctx context.Context) (string, error) {
	for {
		name, err := f.driver.Input(ctx, InputConfig{
			Message:   "Model name",
			Help:      "PascalCase, e.g. Article.",
			Validator: validateModelName,
		})
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if validateModelName(name) == nil {
			return name, nil
		}
		if err := f.driver.Info(ctx, "Model names start with a letter and contain only letters and digits."); err != nil {
			return "", err
		}
	}
}

func (f *Flow) collectFields(ctx context.Context) (map[string]Field, error) {
	fields := make(map[string]Field)
	for {
		name, err := f.driver.Input(ctx, InputConfig{
			Message: "Attribute name",
			Help:    "Leave empty to finish.",
		})
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(name)
		if name == "" {
			if len(fields) == 0 {
				if err := f.driver.Info(ctx, "Declare at least one attribute."); err != nil {
					return nil, err
				}
				continue
			}
			done, err := f.driver.Confirm(ctx, ConfirmConfig{
				Message: "Finish declaring attributes?",
				Default: true,
			})
			if err != nil {
				return nil, err
			}
			if done {
				return fields, nil
			}
			continue
		}
		if !attributeNamePattern.MatchString(name) {
			if err := f.driver.Info(ctx, "Attribute names are snake_case and start with a letter."); err != nil {
				return nil, err
			}
			continue
		}
		if _, exists := fields[name]; exists {
			if err := f.driver.Info(ctx, fmt.Sprintf("Attribute %q is already declared.", name)); err != nil {
				return nil, err
			}
			continue
		}

		field, err := f.fieldDetails(ctx)
		if err != nil {
			return nil, err
		}
		fields[name] = field
	}
}

func (f *Flow) fieldDetails(ctx context.Context) (Field, error) {
	castIdx, err := f.driver.Select(ctx, SelectConfig{
		Message:      "Cast tag",
		Options:      castChoices,
		DefaultIndex: 0,
		PageSize:     len(castChoices),
	})
	if err != nil {
		return Field{}, err
	}
	if castIdx < 0 || castIdx >= len(castChoices) {
		castIdx = 0
	}

	rules, err := f.driver.Input(ctx, InputConfig{
		Message: "Validation rules",
		Help:    "Pipe-joined, e.g. required|min:2. Leave empty for none.",
	})
	if err != nil {
		return Field{}, err
	}

	rawDefault, err := f.driver.Input(ctx, InputConfig{
		Message: "Default value",
		Help:    "JSON literal or plain text. Leave empty for none.",
	})
	if err != nil {
		return Field{}, err
	}

	flagIdx, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message: "Access flags",
		Options: flagChoices,
	})
	if err != nil {
		return Field{}, err
	}

	field := Field{
		Cast:    castChoices[castIdx],
		Rules:   strings.TrimSpace(rules),
		Default: parseDefault(rawDefault),
	}
	for _, idx := range flagIdx {
		if idx < 0 || idx >= len(flagChoices) {
			continue
		}
		switch flagChoices[idx] {
		case "guarded":
			field.Guarded = true
		case "fillable":
			field.Fillable = true
		case "hidden":
			field.Hidden = true
		}
	}
	return field, nil
}

func (f *Flow) primaryKey(ctx context.Context, fields map[string]Field) (string, error) {
	if _, ok := fields["id"]; ok {
		return "", nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:  "Primary key attribute",
		Options:  names,
		PageSize: len(names),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(names) {
		idx = 0
	}
	return names[idx], nil
}

func validateModelName(value string) error {
	if !modelNamePattern.MatchString(strings.TrimSpace(value)) {
		return fmt.Errorf("model names start with a letter and contain only letters and digits")
	}
	return nil
}

// parseDefault decodes JSON literals so booleans and numbers come through
// typed; anything else stays a plain string.
func parseDefault(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err == nil {
		return value
	}
	return trimmed
}

// validateModel rebuilds the declaration as a definition so authoring errors
// surface before the document is written.
func validateModel(name string, model Model) error {
	fields := make(map[string]schema.Field, len(model.Fields))
	for fieldName, field := range model.Fields {
		fields[fieldName] = schema.Field{
			Cast:     field.Cast,
			Default:  field.Default,
			Rules:    field.Rules,
			Guarded:  field.Guarded,
			Fillable: field.Fillable,
			Hidden:   field.Hidden,
		}
	}

	def := schema.New(name, fields)
	if model.Table != "" {
		def.Table = model.Table
	}
	if model.PrimaryKey != "" {
		def.PrimaryKey = model.PrimaryKey
		if field, ok := def.Field(model.PrimaryKey); ok && field.Cast != "" {
			def.PrimaryKeyCast = field.Cast
		}
	}

	if err := def.Validate(); err != nil {
		return fmt.Errorf("scaffold: invalid definition: %w", err)
	}
	return nil
}
