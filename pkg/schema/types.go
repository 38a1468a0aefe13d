package schema

// CastTag names the logical type of an attribute. Tags select the casting
// behavior applied when an attribute crosses the storage boundary and the
// base rule used during validation-rule derivation. Unknown tags are legal:
// values carrying them pass through uncast.
type CastTag = string

// Canonical cast tags. Aliases (int, bool, real, double, json, collection)
// resolve to these via cast.Canonical.
const (
	CastString    CastTag = "string"
	CastInteger   CastTag = "integer"
	CastFloat     CastTag = "float"
	CastBoolean   CastTag = "boolean"
	CastObject    CastTag = "object"
	CastArray     CastTag = "array"
	CastDate      CastTag = "date"
	CastDateTime  CastTag = "datetime"
	CastTimestamp CastTag = "timestamp"
	CastUUID      CastTag = "uuid"
	CastHTML      CastTag = "html"
)

// AttributeReader is the read-only view of a record handed to authorization
// hooks. Implementations report raw attribute values in storage form.
type AttributeReader interface {
	// Attribute returns the raw stored value for name and whether it is set.
	Attribute(name string) (any, bool)
	// Persisted reports whether the record has been saved to storage.
	Persisted() bool
}

// AttributeWriter extends AttributeReader with direct bag access for setter
// overrides. PutAttribute writes the raw value without guard or cast checks;
// overrides that want casting apply it themselves before writing.
type AttributeWriter interface {
	AttributeReader
	PutAttribute(name string, value any)
}

// AuthorizeFunc decides whether value may be written to an attribute. It is
// consulted after the guarded-list check and before the definition fallback.
type AuthorizeFunc func(rec AttributeReader, value any) bool

// AssignFunc replaces the default write path for an attribute. When set, it
// runs instead of write-direction casting and plain assignment.
type AssignFunc func(rec AttributeWriter, value any) error

// Field describes a single declared attribute.
type Field struct {
	// Cast selects casting behavior and the derived validation rule.
	Cast CastTag
	// Default is assigned to new records that have no pending value for the
	// attribute. Stored values are written through the write-direction cast.
	Default any
	// Rules carries explicitly declared validation rules in pipe form, e.g.
	// "required|min:2|max:255".
	Rules string
	// Guarded blocks writes while the record guard is active.
	Guarded bool
	// Fillable marks the attribute as mass-assignable. When any field on a
	// definition is fillable, mass assignment is restricted to that set.
	Fillable bool
	// Hidden excludes the attribute from serialized output.
	Hidden bool
	// Label and Description feed generated documentation.
	Label       string
	Description string

	// Authorize and Assign form the field's capability table, resolved at
	// registration time rather than discovered by name at call time.
	Authorize AuthorizeFunc `json:"-" yaml:"-"`
	Assign    AssignFunc    `json:"-" yaml:"-"`
}

// Clone returns a copy of the field. Capability hooks are shared, not copied.
func (f Field) Clone() Field {
	out := f
	out.Default = cloneValue(f.Default)
	return out
}

// HasDefault reports whether the field declares a default value.
func (f Field) HasDefault() bool {
	return f.Default != nil
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, entry := range v {
			out[key] = cloneValue(entry)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for idx, entry := range v {
			out[idx] = cloneValue(entry)
		}
		return out
	default:
		return v
	}
}
