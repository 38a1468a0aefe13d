package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-modelschema/pkg/schema"
)

// DefinitionOverride patches a single attribute of a named model after
// parsing and decoration. Callers use it for code-level tweaks that do not
// warrant an overlay document.
type DefinitionOverride struct {
	// Model and Field locate the attribute to patch.
	Model string
	Field string

	// Rules replaces the declared rule list when set. AppendRules adds to it.
	Rules       string
	AppendRules string

	// Cast replaces the declared cast tag when set.
	Cast schema.CastTag

	// Default replaces the declared default when non-nil.
	Default any

	// Guarded, Fillable, and Hidden override access flags when non-nil.
	Guarded  *bool
	Fillable *bool
	Hidden   *bool

	// Label and Description override presentation details when set.
	Label       string
	Description string
}

// WithDefinitionOverrides registers overrides that run after decorators.
// Overrides are scoped per model and fail generation when their target
// attribute does not exist.
func WithDefinitionOverrides(overrides []DefinitionOverride) Option {
	cloned := cloneDefinitionOverrides(overrides)
	return func(o *Orchestrator) {
		if len(cloned) == 0 || o == nil {
			return
		}
		if o.overrides == nil {
			o.overrides = make(map[string][]DefinitionOverride)
		}
		for _, override := range cloned {
			o.overrides[override.Model] = append(o.overrides[override.Model], override)
		}
	}
}

func cloneDefinitionOverrides(overrides []DefinitionOverride) []DefinitionOverride {
	valid := make([]DefinitionOverride, 0, len(overrides))
	for _, override := range overrides {
		override.Model = strings.TrimSpace(override.Model)
		override.Field = strings.TrimSpace(override.Field)
		if override.Model == "" || override.Field == "" {
			continue
		}
		valid = append(valid, override)
	}
	return valid
}

func (o *Orchestrator) applyOverrides(definitions map[string]schema.Definition) error {
	if len(o.overrides) == 0 || len(definitions) == 0 {
		return nil
	}
	for _, name := range sortedModelNames(definitions) {
		overrides, ok := o.overrides[name]
		if !ok {
			continue
		}
		def := definitions[name]
		for _, override := range overrides {
			if err := applyOverride(&def, override); err != nil {
				return fmt.Errorf("orchestrator: override %s.%s: %w", override.Model, override.Field, err)
			}
		}
		definitions[name] = def
	}
	return nil
}

func applyOverride(def *schema.Definition, override DefinitionOverride) error {
	field, ok := def.Field(override.Field)
	if !ok {
		return errors.New("attribute not declared")
	}

	if override.Cast != "" {
		field.Cast = override.Cast
	}
	if override.Rules != "" {
		field.Rules = override.Rules
	}
	if override.AppendRules != "" {
		if field.Rules == "" {
			field.Rules = override.AppendRules
		} else {
			field.Rules = field.Rules + "|" + override.AppendRules
		}
	}
	if override.Default != nil {
		field.Default = override.Default
	}
	if override.Guarded != nil {
		field.Guarded = *override.Guarded
	}
	if override.Fillable != nil {
		field.Fillable = *override.Fillable
	}
	if override.Hidden != nil {
		field.Hidden = *override.Hidden
	}
	if override.Label != "" {
		field.Label = override.Label
	}
	if override.Description != "" {
		field.Description = override.Description
	}

	def.Fields[override.Field] = field

	// A code-level override may retype the primary key attribute.
	if override.Field == def.PrimaryKey && override.Cast != "" {
		def.PrimaryKeyCast = override.Cast
	}

	return def.Validate()
}
