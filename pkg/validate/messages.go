package validate

import (
	"fmt"
	"strings"
)

var messageTemplates = map[string]string{
	"required":   "The %s field is required.",
	"string":     "The %s must be a string.",
	"integer":    "The %s must be an integer.",
	"numeric":    "The %s must be a number.",
	"boolean":    "The %s field must be true or false.",
	"date":       "The %s is not a valid date.",
	"array":      "The %s must be an array.",
	"object":     "The %s must be an object.",
	"timestamp":  "The %s must be a unix timestamp.",
	"uuid":       "The %s must be a valid UUID.",
	"min":        "The %s must be at least %s.",
	"max":        "The %s may not be greater than %s.",
	"size":       "The %s must be %s.",
	"between":    "The %s must be between %s and %s.",
	"in":         "The selected %s is invalid.",
	"not_in":     "The selected %s is invalid.",
	"email":      "The %s must be a valid email address.",
	"url":        "The %s format is invalid.",
	"regex":      "The %s format is invalid.",
	"alpha":      "The %s may only contain letters.",
	"alpha_num":  "The %s may only contain letters and numbers.",
	"alpha_dash": "The %s may only contain letters, numbers, dashes and underscores.",
	"same":       "The %s and %s must match.",
	"different":  "The %s and %s must be different.",
	"confirmed":  "The %s confirmation does not match.",
	"gt":         "The %s must be greater than %s.",
	"gte":        "The %s must be greater than or equal to %s.",
	"lt":         "The %s must be less than %s.",
	"lte":        "The %s must be less than or equal to %s.",
}

func messageFor(field string, r rule) string {
	label := attributeLabel(field)

	template, ok := messageTemplates[r.name]
	if !ok {
		return fmt.Sprintf("The %s is invalid.", label)
	}

	args := []any{label}
	needed := strings.Count(template, "%s") - 1
	for idx := 0; idx < needed; idx++ {
		if idx < len(r.params) {
			param := r.params[idx]
			// Comparison targets read better as labels than raw keys.
			if r.name == "same" || r.name == "different" {
				param = attributeLabel(param)
			}
			args = append(args, param)
		} else {
			args = append(args, "")
		}
	}
	return fmt.Sprintf(template, args...)
}

func attributeLabel(field string) string {
	return strings.ReplaceAll(strings.TrimSpace(field), "_", " ")
}
