package sqlddl

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/emit"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

type Option func(*config)

type config struct {
	ifNotExists bool
}

// WithIfNotExists toggles the IF NOT EXISTS clause. Enabled by default so the
// statements can run repeatedly during migrations.
func WithIfNotExists(enabled bool) Option {
	return func(cfg *config) {
		cfg.ifNotExists = enabled
	}
}

type Emitter struct {
	ifNotExists bool
}

var _ emit.Emitter = (*Emitter)(nil)

// New constructs the SQL emitter applying any provided options.
func New(options ...Option) (*Emitter, error) {
	cfg := config{ifNotExists: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Emitter{ifNotExists: cfg.ifNotExists}, nil
}

func (e *Emitter) Name() string {
	return "sql"
}

func (e *Emitter) ContentType() string {
	return "application/sql"
}

// Emit renders a CREATE TABLE statement for the definition. The primary key
// column comes first, remaining columns follow in sorted attribute order so
// the output is stable across runs.
func (e *Emitter) Emit(_ context.Context, def schema.Definition, options emit.Options) ([]byte, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("sqlddl: %w", err)
	}

	var b strings.Builder
	if options.Heading != "" {
		fmt.Fprintf(&b, "-- %s\n", options.Heading)
	}
	b.WriteString("CREATE TABLE ")
	if e.ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(def.Table)
	b.WriteString(" (\n")

	columns := e.columns(def)
	for idx, column := range columns {
		b.WriteString("    ")
		b.WriteString(column)
		if idx < len(columns)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}

	b.WriteString(");\n")
	return []byte(b.String()), nil
}

func (e *Emitter) columns(def schema.Definition) []string {
	columns := make([]string, 0, len(def.Fields)+1)
	columns = append(columns, primaryColumn(def))
	for _, name := range def.FieldNames() {
		if name == def.PrimaryKey {
			continue
		}
		field, _ := def.Field(name)
		columns = append(columns, column(name, field))
	}
	return columns
}

func primaryColumn(def schema.Definition) string {
	if cast.Canonical(def.PrimaryKeyCast) == schema.CastInteger {
		return def.PrimaryKey + " INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return def.PrimaryKey + " " + columnType(def.PrimaryKeyCast) + " PRIMARY KEY"
}

func column(name string, field schema.Field) string {
	parts := []string{name, columnType(field.Cast)}
	if hasRule(field.Rules, "required") {
		parts = append(parts, "NOT NULL")
	}
	if hasRule(field.Rules, "unique") {
		parts = append(parts, "UNIQUE")
	}
	if literal, ok := defaultLiteral(field.Default); ok {
		parts = append(parts, "DEFAULT "+literal)
	}
	return strings.Join(parts, " ")
}

// columnType maps a cast tag onto the SQLite column affinity its storage form
// needs. Unknown tags pass through storage untouched, so TEXT is the safe
// landing spot for them.
func columnType(tag schema.CastTag) string {
	switch cast.Canonical(tag) {
	case schema.CastInteger, schema.CastTimestamp, schema.CastBoolean:
		return "INTEGER"
	case schema.CastFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

func hasRule(rules, name string) bool {
	if rules == "" {
		return false
	}
	for _, part := range strings.Split(rules, "|") {
		if part == name {
			return true
		}
	}
	return false
}

// defaultLiteral renders a declared default as a SQL literal. Structured
// defaults are stored as JSON text, matching the write-direction cast.
func defaultLiteral(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	case string:
		return quoteString(v), true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return quoteString(string(data)), true
	}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
