package cast

import (
	"fmt"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

// htmlWritePolicy builds the sanitizer lazily. UGC covers the common
// user-authored markup surface: formatting, links, lists, images.
func htmlWritePolicy() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		htmlPolicy = bluemonday.UGCPolicy()
	})
	return htmlPolicy
}

// writeHTML sanitizes markup before it reaches storage. Script elements,
// event handlers, and unsafe URL schemes are stripped rather than rejected.
func writeHTML(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return htmlWritePolicy().Sanitize(v), nil
	case []byte:
		return string(htmlWritePolicy().SanitizeBytes(v)), nil
	default:
		return nil, fmt.Errorf("cast: cannot sanitize %T as html", value)
	}
}
