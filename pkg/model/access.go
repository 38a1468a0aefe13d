package model

import "strings"

// IsValidAttribute reports whether key names a declared schema attribute.
func (r *Record) IsValidAttribute(key string) bool {
	return r.def.Has(key)
}

// HasWriteAccess decides whether value may be written to key. Precedence:
// the guarded list blocks first (while the guard is active), then the
// field's Authorize hook, then the definition's fallback authorizer, and
// finally the write is allowed. Dotted paths are judged by their head
// attribute.
func (r *Record) HasWriteAccess(key string, value any) bool {
	if head, _, dotted := strings.Cut(key, "."); dotted {
		key = head
	}

	field, declared := r.def.Field(key)

	if r.guarded && declared && field.Guarded {
		return false
	}
	if declared && field.Authorize != nil {
		return field.Authorize(r, value)
	}
	if r.def.FallbackAuthorize != nil {
		return r.def.FallbackAuthorize(r, value)
	}
	return true
}
