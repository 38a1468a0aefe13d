package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Meta carries presentation details used by generated documentation.
type Meta struct {
	Label       string
	Description string
}

// Definition is the static declaration for one model: its storage table, its
// primary key, and the schema for every declared attribute.
type Definition struct {
	// Name identifies the model. Registries and overlays key on it.
	Name string
	// Table is the storage table name.
	Table string
	// PrimaryKey names the key attribute; PrimaryKeyCast its cast tag.
	PrimaryKey     string
	PrimaryKeyCast CastTag
	// Fields maps attribute names to their declarations.
	Fields map[string]Field
	// Meta feeds generated documentation.
	Meta Meta

	// FallbackAuthorize, when set, is consulted for writes to attributes
	// that declare no Authorize hook of their own.
	FallbackAuthorize AuthorizeFunc `json:"-" yaml:"-"`
}

// New builds a definition with defaults applied: table falls back to a
// snake-cased plural of the name, primary key to "id" cast as integer.
func New(name string, fields map[string]Field) Definition {
	def := Definition{
		Name:   strings.TrimSpace(name),
		Fields: fields,
	}
	def.applyConventions()
	return def
}

func (d *Definition) applyConventions() {
	if d.Table == "" && d.Name != "" {
		d.Table = TableName(d.Name)
	}
	if d.PrimaryKey == "" {
		d.PrimaryKey = "id"
	}
	if d.PrimaryKeyCast == "" {
		d.PrimaryKeyCast = CastInteger
		if field, ok := d.Fields[d.PrimaryKey]; ok && field.Cast != "" {
			d.PrimaryKeyCast = field.Cast
		}
	}
}

// TableName derives the conventional storage table for a model name:
// snake_case plus a naive plural ("BlogPost" -> "blog_posts").
func TableName(model string) string {
	snake := toSnake(model)
	if snake == "" {
		return ""
	}
	switch {
	case strings.HasSuffix(snake, "s"), strings.HasSuffix(snake, "x"), strings.HasSuffix(snake, "z"):
		return snake + "es"
	case strings.HasSuffix(snake, "y") && len(snake) > 1 && !isVowel(snake[len(snake)-2]):
		return snake[:len(snake)-1] + "ies"
	default:
		return snake + "s"
	}
}

func toSnake(in string) string {
	var out strings.Builder
	for idx, r := range in {
		if r >= 'A' && r <= 'Z' {
			if idx > 0 {
				out.WriteByte('_')
			}
			out.WriteRune(r - 'A' + 'a')
			continue
		}
		if r == ' ' || r == '-' {
			out.WriteByte('_')
			continue
		}
		out.WriteRune(r)
	}
	return strings.Trim(out.String(), "_")
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

// Field returns the declaration for name.
func (d Definition) Field(name string) (Field, bool) {
	field, ok := d.Fields[name]
	return field, ok
}

// Has reports whether name is a declared attribute.
func (d Definition) Has(name string) bool {
	_, ok := d.Fields[name]
	return ok
}

// FieldNames returns the declared attribute names in sorted order.
func (d Definition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GuardedNames returns the sorted names of guarded attributes.
func (d Definition) GuardedNames() []string {
	var names []string
	for name, field := range d.Fields {
		if field.Guarded {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FillableNames returns the sorted names of fillable attributes. An empty
// result means the definition declares no whitelist and mass assignment is
// limited by the guarded list alone.
func (d Definition) FillableNames() []string {
	var names []string
	for name, field := range d.Fields {
		if field.Fillable {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Defaults returns the declared defaults keyed by attribute name.
func (d Definition) Defaults() map[string]any {
	out := make(map[string]any)
	for name, field := range d.Fields {
		if field.HasDefault() {
			out[name] = cloneValue(field.Default)
		}
	}
	return out
}

// RegisterAuthorizer attaches an authorization hook to a declared field.
// Parsed definitions use this to bind capabilities that documents cannot
// express.
func (d *Definition) RegisterAuthorizer(field string, fn AuthorizeFunc) error {
	entry, ok := d.Fields[field]
	if !ok {
		return fmt.Errorf("schema: model %q has no field %q", d.Name, field)
	}
	entry.Authorize = fn
	d.Fields[field] = entry
	return nil
}

// RegisterAssigner attaches a setter override to a declared field.
func (d *Definition) RegisterAssigner(field string, fn AssignFunc) error {
	entry, ok := d.Fields[field]
	if !ok {
		return fmt.Errorf("schema: model %q has no field %q", d.Name, field)
	}
	entry.Assign = fn
	d.Fields[field] = entry
	return nil
}

// Validate checks the declaration for structural problems: missing name or
// table, an empty field set, or defaults that cannot survive a trip through
// JSON storage.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("schema: definition requires a model name")
	}
	if strings.TrimSpace(d.Table) == "" {
		return fmt.Errorf("schema: model %q requires a table name", d.Name)
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("schema: model %q declares no fields", d.Name)
	}
	if strings.TrimSpace(d.PrimaryKey) == "" {
		return fmt.Errorf("schema: model %q requires a primary key", d.Name)
	}
	for _, name := range d.FieldNames() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("schema: model %q declares a field with an empty name", d.Name)
		}
		field := d.Fields[name]
		if field.HasDefault() {
			if _, err := json.Marshal(field.Default); err != nil {
				return fmt.Errorf("schema: model %q field %q default is not storable: %w", d.Name, name, err)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the definition. Capability hooks are shared.
func (d Definition) Clone() Definition {
	out := d
	out.Fields = make(map[string]Field, len(d.Fields))
	for name, field := range d.Fields {
		out.Fields[name] = field.Clone()
	}
	return out
}
