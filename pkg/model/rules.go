package model

import (
	"strings"

	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/validate"
)

// AttributeRules derives the validation rule string for every declared
// attribute except the primary key. Persisted records get a "sometimes"
// prefix so untouched attributes stay optional; the rule derived from the
// cast tag and any declared rules follow, pipe-joined.
func (r *Record) AttributeRules() validate.Rules {
	rules := make(validate.Rules)
	for _, name := range r.def.FieldNames() {
		if name == r.def.PrimaryKey {
			continue
		}

		field := r.def.Fields[name]
		var list []string
		if r.exists {
			list = append(list, "sometimes")
		}
		if derived := derivedRule(field.Cast); derived != "" {
			list = append(list, derived)
		}
		if declared := strings.TrimSpace(field.Rules); declared != "" {
			list = append(list, declared)
		}
		if len(list) == 0 {
			continue
		}
		rules[name] = strings.Join(list, "|")
	}
	return rules
}

// derivedRule maps a resolved cast tag to its validation rule. Most tags
// validate under their own name; the exceptions follow the fixed mapping.
func derivedRule(tag string) string {
	canonical := cast.Canonical(tag)
	switch canonical {
	case "":
		return ""
	case schema.CastFloat:
		return "numeric"
	case schema.CastDateTime:
		return "date"
	case schema.CastHTML:
		return "string"
	default:
		return canonical
	}
}

// SavingValidation validates the pending change-set against the derived
// rules, retaining the validator so failures can be inspected afterwards.
func (r *Record) SavingValidation() bool {
	validator := validate.Make(r.Dirty(), r.AttributeRules())
	r.validator = validator
	return validator.Passes()
}

// Validator returns the validator retained by the last SavingValidation
// call, or nil before any validation has run.
func (r *Record) Validator() *validate.Validator {
	return r.validator
}

// InvalidAttributes returns the per-field failure messages from the last
// validation run. Empty before any validation.
func (r *Record) InvalidAttributes() map[string][]string {
	if r.validator == nil {
		return map[string][]string{}
	}
	return r.validator.Errors().Messages()
}

// InvalidMessage returns every failure message from the last validation
// run. Empty before any validation.
func (r *Record) InvalidMessage() []string {
	if r.validator == nil {
		return nil
	}
	return r.validator.Errors().All()
}
