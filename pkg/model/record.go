package model

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/validate"
)

// Record holds one model instance: raw attribute values in storage form, the
// original snapshot they are diffed against, and the persistence flags that
// drive guarding, defaults, and rule derivation.
type Record struct {
	def   schema.Definition
	casts *cast.Registry

	attributes map[string]any
	original   map[string]any

	exists  bool
	guarded bool

	validator *validate.Validator
}

// Option configures a Record during construction.
type Option func(*Record)

// WithCasts overrides the cast registry. Records default to cast.Default().
func WithCasts(registry *cast.Registry) Option {
	return func(r *Record) {
		if registry != nil {
			r.casts = registry
		}
	}
}

// Unguarded disables the mass-assignment guard from the start.
func Unguarded() Option {
	return func(r *Record) {
		r.guarded = false
	}
}

// New builds an empty, unsaved record for def. The guard starts enabled.
func New(def schema.Definition, options ...Option) *Record {
	r := &Record{
		def:        def,
		casts:      cast.Default(),
		attributes: make(map[string]any),
		original:   make(map[string]any),
		guarded:    true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// FromStorage builds a persisted record from a storage-form attribute map,
// as a repository would after scanning a row. The snapshot starts clean.
func FromStorage(def schema.Definition, attributes map[string]any, options ...Option) *Record {
	r := New(def, options...)
	for key, value := range attributes {
		r.attributes[key] = value
		r.original[key] = value
	}
	r.exists = true
	return r
}

// Definition returns the schema declaration backing the record.
func (r *Record) Definition() schema.Definition {
	return r.def
}

// Attribute returns the raw stored value for name and whether it is set.
// It satisfies schema.AttributeReader for capability hooks.
func (r *Record) Attribute(name string) (any, bool) {
	value, ok := r.attributes[name]
	return value, ok
}

// PutAttribute writes a raw value into the bag, bypassing guard checks and
// cast dispatch. It satisfies schema.AttributeWriter for setter overrides.
func (r *Record) PutAttribute(name string, value any) {
	r.attributes[name] = value
}

// Persisted reports whether the record has been saved to storage.
func (r *Record) Persisted() bool {
	return r.exists
}

// MarkPersisted flags the record as saved. Repositories call it after a
// successful insert.
func (r *Record) MarkPersisted() {
	r.exists = true
}

// Guarded reports whether the mass-assignment guard is active.
func (r *Record) Guarded() bool {
	return r.guarded
}

// SetGuarded toggles the mass-assignment guard for this record only.
func (r *Record) SetGuarded(guarded bool) {
	r.guarded = guarded
}

// Dirty returns the attributes that differ from the original snapshot.
func (r *Record) Dirty() map[string]any {
	out := make(map[string]any)
	for key, value := range r.attributes {
		origin, ok := r.original[key]
		if !ok || !reflect.DeepEqual(origin, value) {
			out[key] = value
		}
	}
	return out
}

// IsDirty reports whether any of the named attributes changed since the last
// sync. With no arguments it reports whether anything changed.
func (r *Record) IsDirty(keys ...string) bool {
	dirty := r.Dirty()
	if len(keys) == 0 {
		return len(dirty) > 0
	}
	for _, key := range keys {
		if _, ok := dirty[key]; ok {
			return true
		}
	}
	return false
}

// SyncOriginal snapshots the current attributes as the clean state.
func (r *Record) SyncOriginal() {
	r.original = make(map[string]any, len(r.attributes))
	for key, value := range r.attributes {
		r.original[key] = value
	}
}

// Get returns the attribute value cast to its native form, or nil when the
// attribute is unset.
func (r *Record) Get(key string) any {
	value, ok := r.attributes[key]
	if !ok {
		return nil
	}
	return r.CastAttribute(key, value)
}

// CastAttribute applies the read-direction cast for key's declared tag. nil
// passes through, unknown tags pass through, and values the handler cannot
// interpret come back unchanged.
func (r *Record) CastAttribute(key string, value any) any {
	if value == nil {
		return nil
	}
	field, ok := r.def.Field(key)
	if !ok || field.Cast == "" {
		return value
	}
	out, err := r.casts.Read(field.Cast, value)
	if err != nil {
		return value
	}
	return out
}

// AttributeNames returns the sorted keys currently present in the bag.
func (r *Record) AttributeNames() []string {
	names := make([]string, 0, len(r.attributes))
	for name := range r.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Public returns the serializable view of the record: every attribute cast
// to native form, minus those the schema marks hidden.
func (r *Record) Public() map[string]any {
	out := make(map[string]any)
	for _, name := range r.AttributeNames() {
		if field, ok := r.def.Field(name); ok && field.Hidden {
			continue
		}
		out[name] = r.Get(name)
	}
	return out
}

// MarshalJSON encodes the public view of the record.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Public())
}
