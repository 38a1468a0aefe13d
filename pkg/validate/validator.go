package validate

import (
	"sort"
	"strings"
)

// Rules maps field names to pipe-delimited rule strings.
type Rules = map[string]string

// Validator checks a data map against per-field rule strings. Construction
// is cheap; evaluation runs once on the first Passes/Fails/Errors call.
type Validator struct {
	data  map[string]any
	rules Rules

	evaluated bool
	bag       *MessageBag
}

// Make builds a validator for data against rules.
func Make(data map[string]any, rules Rules) *Validator {
	return &Validator{
		data:  data,
		rules: rules,
		bag:   NewMessageBag(),
	}
}

// Passes evaluates the rules (once) and reports success.
func (v *Validator) Passes() bool {
	v.evaluate()
	return v.bag.IsEmpty()
}

// Fails evaluates the rules (once) and reports failure.
func (v *Validator) Fails() bool {
	return !v.Passes()
}

// Errors returns the message bag. Empty until evaluation has run.
func (v *Validator) Errors() *MessageBag {
	if v == nil {
		return NewMessageBag()
	}
	v.evaluate()
	return v.bag
}

func (v *Validator) evaluate() {
	if v == nil || v.evaluated {
		return
	}
	v.evaluated = true

	for _, field := range sortedFields(v.rules) {
		v.checkField(field, v.rules[field])
	}
}

func (v *Validator) checkField(field, ruleString string) {
	parsed := parseRules(ruleString)
	if len(parsed) == 0 {
		return
	}

	value, present := v.data[field]

	if hasRule(parsed, "sometimes") && !present {
		return
	}
	if hasRule(parsed, "nullable") && present && value == nil {
		return
	}

	for _, rule := range parsed {
		switch rule.name {
		case "sometimes", "nullable", "":
			continue
		}

		check, known := checks[rule.name]
		if !known {
			// Unknown rule names are skipped, mirroring unknown
			// cast tags.
			continue
		}

		if rule.name != "required" && (!present || value == nil) {
			continue
		}

		if !check(v.data, field, value, present, rule.params) {
			v.bag.Add(field, messageFor(field, rule))
		}
	}
}

type rule struct {
	name   string
	params []string
}

// parseRules splits a pipe-delimited rule string. The regex rule keeps its
// parameter raw since patterns may contain commas.
func parseRules(ruleString string) []rule {
	trimmed := strings.TrimSpace(ruleString)
	if trimmed == "" {
		return nil
	}

	parts := strings.Split(trimmed, "|")
	out := make([]rule, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, raw, hasParams := strings.Cut(part, ":")
		entry := rule{name: strings.ToLower(strings.TrimSpace(name))}
		if hasParams {
			if entry.name == "regex" {
				entry.params = []string{raw}
			} else {
				for _, param := range strings.Split(raw, ",") {
					entry.params = append(entry.params, strings.TrimSpace(param))
				}
			}
		}
		out = append(out, entry)
	}
	return out
}

func hasRule(rules []rule, name string) bool {
	for _, r := range rules {
		if r.name == name {
			return true
		}
	}
	return false
}

func sortedFields(rules Rules) []string {
	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
