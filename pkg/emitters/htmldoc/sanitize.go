package htmldoc

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// sanitizeDescription reduces field and model descriptions to plain text plus
// a small inline allowlist so authored markup survives without scripts or
// block structure.
func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
	if cleaned == "" {
		return ""
	}
	return cleaned
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("a", "em", "strong", "code", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		descriptionPolicy = policy
	})
	return descriptionPolicy
}
