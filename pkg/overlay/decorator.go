package overlay

import (
	"strings"

	"github.com/goliatone/go-modelschema/pkg/schema"
)

// Decorator applies overlay overrides to parsed definitions.
type Decorator struct {
	store *Store
}

// NewDecorator wraps a store in a Decorator. A nil or empty store yields a
// decorator that changes nothing.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate adjusts the supplied definition in place. When no matching overlay
// is found the definition is left untouched.
func (d *Decorator) Decorate(def *schema.Definition) error {
	if d == nil || d.store == nil || d.store.Empty() || def == nil {
		return nil
	}

	model, ok := d.store.Model(def.Name)
	if !ok {
		return nil
	}

	if model.Table != "" {
		def.Table = model.Table
	}
	if model.Meta.Label != "" {
		def.Meta.Label = model.Meta.Label
	}
	if model.Meta.Description != "" {
		def.Meta.Description = model.Meta.Description
	}

	for name, cfg := range model.Fields {
		field := def.Fields[name]
		applyFieldConfig(&field, cfg)
		if def.Fields == nil {
			def.Fields = make(map[string]schema.Field)
		}
		def.Fields[name] = field
	}

	// An overlay may retype the primary key attribute.
	if field, ok := def.Fields[def.PrimaryKey]; ok && field.Cast != "" {
		def.PrimaryKeyCast = field.Cast
	}

	return def.Validate()
}

// DecorateAll applies the store to every definition in the map.
func (d *Decorator) DecorateAll(defs map[string]schema.Definition) error {
	if d == nil || d.store == nil || d.store.Empty() {
		return nil
	}
	for name, def := range defs {
		if err := d.Decorate(&def); err != nil {
			return err
		}
		defs[name] = def
	}
	return nil
}

func applyFieldConfig(field *schema.Field, cfg FieldConfig) {
	if cast := strings.TrimSpace(cfg.Cast); cast != "" {
		field.Cast = cast
	}
	if cfg.Default != nil {
		field.Default = cfg.Default
	}
	if rules := strings.TrimSpace(cfg.Rules); rules != "" {
		field.Rules = rules
	}
	if extra := strings.TrimSpace(cfg.AppendRules); extra != "" {
		if field.Rules == "" {
			field.Rules = extra
		} else {
			field.Rules = field.Rules + "|" + extra
		}
	}
	if cfg.Guarded != nil {
		field.Guarded = *cfg.Guarded
	}
	if cfg.Fillable != nil {
		field.Fillable = *cfg.Fillable
	}
	if cfg.Hidden != nil {
		field.Hidden = *cfg.Hidden
	}
	if label := strings.TrimSpace(cfg.Label); label != "" {
		field.Label = label
	}
	if description := strings.TrimSpace(cfg.Description); description != "" {
		field.Description = description
	}
}
