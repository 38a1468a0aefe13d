package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

// Set writes value to key. Resolution order: the field's Assign override,
// then write-direction casting, then dotted-path routing into a nested JSON
// attribute, then plain assignment. Writes denied by HasWriteAccess are
// silently dropped; the error return covers malformed values only.
func (r *Record) Set(key string, value any) error {
	return r.set(key, value, false)
}

func (r *Record) set(key string, value any, bypassGuard bool) error {
	if key == "" {
		return fmt.Errorf("model: attribute key is required")
	}
	if !bypassGuard && !r.HasWriteAccess(key, value) {
		return nil
	}

	if field, ok := r.def.Field(key); ok && field.Assign != nil {
		if err := field.Assign(r, value); err != nil {
			return fmt.Errorf("model: assign %q: %w", key, err)
		}
		return nil
	}

	if strings.Contains(key, ".") {
		return r.setNestedPath(key, value)
	}

	stored := value
	if field, ok := r.def.Field(key); ok && field.Cast != "" {
		converted, err := r.casts.Write(field.Cast, value)
		if err != nil {
			return fmt.Errorf("model: cast %q for storage: %w", key, err)
		}
		stored = converted
	}

	r.attributes[key] = stored
	return nil
}

// setNestedPath routes "head.rest..." keys into the JSON structure stored
// under the head attribute, creating intermediate objects as needed.
func (r *Record) setNestedPath(key string, value any) error {
	head, rest, _ := strings.Cut(key, ".")
	if head == "" || rest == "" {
		return fmt.Errorf("model: malformed attribute path %q", key)
	}

	tag := schema.CastObject
	if field, ok := r.def.Field(head); ok {
		if field.Cast != "" && !structuredTag(field.Cast) {
			return fmt.Errorf("model: attribute %q does not hold structured data", head)
		}
		if field.Cast != "" {
			tag = field.Cast
		}
	}

	root, err := r.nestedRoot(head)
	if err != nil {
		return err
	}

	node := root
	segments := strings.Split(rest, ".")
	for _, segment := range segments[:len(segments)-1] {
		if segment == "" {
			return fmt.Errorf("model: malformed attribute path %q", key)
		}
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}

	leaf := segments[len(segments)-1]
	if leaf == "" {
		return fmt.Errorf("model: malformed attribute path %q", key)
	}
	node[leaf] = value

	stored, err := r.casts.Write(tag, root)
	if err != nil {
		return fmt.Errorf("model: cast %q for storage: %w", head, err)
	}
	r.attributes[head] = stored
	return nil
}

func (r *Record) nestedRoot(head string) (map[string]any, error) {
	raw, ok := r.attributes[head]
	if !ok || raw == nil {
		return make(map[string]any), nil
	}

	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case string, []byte:
		decoded, err := r.casts.Read(schema.CastObject, v)
		if err != nil {
			return nil, fmt.Errorf("model: attribute %q: %w", head, err)
		}
		root, ok := decoded.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("model: attribute %q holds %T, not an object", head, decoded)
		}
		return root, nil
	default:
		return nil, fmt.Errorf("model: attribute %q holds %T, not an object", head, raw)
	}
}

func structuredTag(tag string) bool {
	switch cast.Canonical(tag) {
	case schema.CastObject, schema.CastArray:
		return true
	default:
		return false
	}
}
