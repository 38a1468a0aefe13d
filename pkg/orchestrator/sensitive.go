package orchestrator

import (
	"strings"

	"github.com/goliatone/go-modelschema/pkg/schema"
)

// SensitiveFieldsDecorator guards and hides attributes whose names follow
// secret-bearing conventions. Documents that forget to flag a password or
// token column still get safe defaults for it.
type SensitiveFieldsDecorator struct {
	suffixes []string
	exact    []string
}

// NewSensitiveFieldsDecorator constructs the decorator with the built-in
// name conventions. Additional names extend the exact-match list.
func NewSensitiveFieldsDecorator(names ...string) *SensitiveFieldsDecorator {
	return &SensitiveFieldsDecorator{
		suffixes: []string{"_token", "_secret", "_key", "_hash"},
		exact:    append([]string{"password", "secret", "token", "api_key"}, names...),
	}
}

// Decorate flags matching attributes as guarded and hidden. Attributes the
// document explicitly marked fillable keep their declared access.
func (d *SensitiveFieldsDecorator) Decorate(def *schema.Definition) error {
	if def == nil || len(def.Fields) == 0 {
		return nil
	}
	for _, name := range def.FieldNames() {
		if !d.matches(name) {
			continue
		}
		field := def.Fields[name]
		if field.Fillable {
			continue
		}
		field.Guarded = true
		field.Hidden = true
		def.Fields[name] = field
	}
	return nil
}

func (d *SensitiveFieldsDecorator) matches(name string) bool {
	lowered := strings.ToLower(name)
	for _, candidate := range d.exact {
		if lowered == candidate {
			return true
		}
	}
	for _, suffix := range d.suffixes {
		if strings.HasSuffix(lowered, suffix) {
			return true
		}
	}
	return false
}
