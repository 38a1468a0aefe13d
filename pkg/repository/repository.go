package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/emit"
	"github.com/goliatone/go-modelschema/pkg/emitters/sqlddl"
	"github.com/goliatone/go-modelschema/pkg/model"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

// ErrNotFound reports that no row matched the requested primary key.
var ErrNotFound = errors.New("repository: record not found")

// ValidationError carries the messages collected when saving validation
// rejects a record.
type ValidationError struct {
	Model    string
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("repository: %s failed validation", e.Model)
	}
	return fmt.Sprintf("repository: %s failed validation: %s", e.Model, strings.Join(e.Messages, "; "))
}

type Option func(*Repository)

// WithLogger attaches a logger. Repositories without one operate silently.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithRecordOptions forwards options to every record the repository builds,
// e.g. a custom cast registry.
func WithRecordOptions(options ...model.Option) Option {
	return func(r *Repository) {
		r.recordOptions = append(r.recordOptions, options...)
	}
}

// Repository persists records of one model definition.
type Repository struct {
	db            *sql.DB
	def           schema.Definition
	ddl           *sqlddl.Emitter
	logger        *zap.SugaredLogger
	recordOptions []model.Option
}

// New binds a repository to a database handle and a model definition.
func New(db *sql.DB, def schema.Definition, options ...Option) (*Repository, error) {
	if db == nil {
		return nil, errors.New("repository: database handle is nil")
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}
	ddl, err := sqlddl.New()
	if err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}

	r := &Repository{
		db:  db,
		def: def.Clone(),
		ddl: ddl,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Definition returns the bound model definition.
func (r *Repository) Definition() schema.Definition {
	return r.def.Clone()
}

// NewRecord builds an empty record for the bound definition.
func (r *Repository) NewRecord() *model.Record {
	return model.New(r.def, r.recordOptions...)
}

// Migrate creates the storage table from the definition's DDL.
func (r *Repository) Migrate(ctx context.Context) error {
	ddl, err := r.ddl.Emit(ctx, r.def, emit.Options{})
	if err != nil {
		return fmt.Errorf("repository: emit migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("repository: migrate %s: %w", r.def.Table, err)
	}
	if r.logger != nil {
		r.logger.Debugw("Migrated storage table", "model", r.def.Name, "table", r.def.Table)
	}
	return nil
}

// Save validates the record, then inserts it when new or updates its dirty
// attributes when persisted. Defaults are applied to new records before
// validation; those system writes bypass the guard.
func (r *Repository) Save(ctx context.Context, rec *model.Record) error {
	if rec == nil {
		return errors.New("repository: record is nil")
	}

	if !rec.Persisted() {
		if err := rec.ApplyDefaults(true); err != nil {
			return fmt.Errorf("repository: apply defaults: %w", err)
		}
	}

	if !rec.SavingValidation() {
		return &ValidationError{Model: r.def.Name, Messages: rec.InvalidMessage()}
	}

	if rec.Persisted() {
		return r.update(ctx, rec)
	}
	return r.insert(ctx, rec)
}

func (r *Repository) insert(ctx context.Context, rec *model.Record) error {
	// Text keys cannot come from LastInsertId, so unset uuid and string
	// primary keys receive a generated uuid before the INSERT.
	switch cast.Canonical(r.def.PrimaryKeyCast) {
	case schema.CastUUID, schema.CastString:
		if _, ok := rec.Attribute(r.def.PrimaryKey); !ok {
			rec.PutAttribute(r.def.PrimaryKey, uuid.NewString())
		}
	}

	names := rec.AttributeNames()
	var result sql.Result
	var err error
	if len(names) == 0 {
		result, err = r.db.ExecContext(ctx, "INSERT INTO "+r.def.Table+" DEFAULT VALUES")
	} else {
		values := make([]any, 0, len(names))
		for _, name := range names {
			value, _ := rec.Attribute(name)
			values = append(values, value)
		}
		query := "INSERT INTO " + r.def.Table +
			" (" + strings.Join(names, ", ") + ") VALUES (" + placeholders(len(names)) + ")"
		result, err = r.db.ExecContext(ctx, query, values...)
	}
	if err != nil {
		return fmt.Errorf("repository: insert into %s: %w", r.def.Table, err)
	}

	if _, ok := rec.Attribute(r.def.PrimaryKey); !ok {
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("repository: read generated key: %w", err)
		}
		rec.PutAttribute(r.def.PrimaryKey, id)
	}

	rec.MarkPersisted()
	rec.SyncOriginal()

	if r.logger != nil {
		id, _ := rec.Attribute(r.def.PrimaryKey)
		r.logger.Debugw("Inserted record", "model", r.def.Name, "id", id)
	}
	return nil
}

func (r *Repository) update(ctx context.Context, rec *model.Record) error {
	dirty := rec.Dirty()
	delete(dirty, r.def.PrimaryKey)
	if len(dirty) == 0 {
		return nil
	}

	id, ok := rec.Attribute(r.def.PrimaryKey)
	if !ok {
		return errors.New("repository: update requires a primary key value")
	}

	names := sortedKeys(dirty)
	assignments := make([]string, 0, len(names))
	values := make([]any, 0, len(names)+1)
	for _, name := range names {
		assignments = append(assignments, name+" = ?")
		values = append(values, dirty[name])
	}
	values = append(values, id)

	query := "UPDATE " + r.def.Table + " SET " + strings.Join(assignments, ", ") +
		" WHERE " + r.def.PrimaryKey + " = ?"
	if _, err := r.db.ExecContext(ctx, query, values...); err != nil {
		return fmt.Errorf("repository: update %s: %w", r.def.Table, err)
	}

	rec.SyncOriginal()

	if r.logger != nil {
		r.logger.Debugw("Updated record", "model", r.def.Name, "id", id, "columns", names)
	}
	return nil
}

// Find loads one record by primary key.
func (r *Repository) Find(ctx context.Context, id any) (*model.Record, error) {
	columns := r.columns()
	query := "SELECT " + strings.Join(columns, ", ") + " FROM " + r.def.Table +
		" WHERE " + r.def.PrimaryKey + " = ?"

	row := r.db.QueryRowContext(ctx, query, id)
	attrs, err := scanRow(row, columns)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repository: %s %v: %w", r.def.Name, id, ErrNotFound)
		}
		return nil, fmt.Errorf("repository: find in %s: %w", r.def.Table, err)
	}

	return model.FromStorage(r.def, attrs, r.recordOptions...), nil
}

// Exists reports whether a row with the given primary key is stored.
func (r *Repository) Exists(ctx context.Context, id any) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM " + r.def.Table + " WHERE " + r.def.PrimaryKey + " = ?)"
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("repository: exists in %s: %w", r.def.Table, err)
	}
	return exists, nil
}

// Delete removes one record by primary key.
func (r *Repository) Delete(ctx context.Context, id any) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM "+r.def.Table+" WHERE "+r.def.PrimaryKey+" = ?", id)
	if err != nil {
		return fmt.Errorf("repository: delete from %s: %w", r.def.Table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: delete from %s: %w", r.def.Table, err)
	}
	if affected == 0 {
		return fmt.Errorf("repository: %s %v: %w", r.def.Name, id, ErrNotFound)
	}
	if r.logger != nil {
		r.logger.Debugw("Deleted record", "model", r.def.Name, "id", id)
	}
	return nil
}

// All loads every stored record ordered by primary key.
func (r *Repository) All(ctx context.Context) ([]*model.Record, error) {
	columns := r.columns()
	query := "SELECT " + strings.Join(columns, ", ") + " FROM " + r.def.Table +
		" ORDER BY " + r.def.PrimaryKey

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: list %s: %w", r.def.Table, err)
	}
	defer rows.Close()

	var records []*model.Record
	for rows.Next() {
		attrs, err := scanRow(rows, columns)
		if err != nil {
			return nil, fmt.Errorf("repository: list %s: %w", r.def.Table, err)
		}
		records = append(records, model.FromStorage(r.def, attrs, r.recordOptions...))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: list %s: %w", r.def.Table, err)
	}
	return records, nil
}

// columns lists the storage columns, primary key first.
func (r *Repository) columns() []string {
	names := r.def.FieldNames()
	columns := make([]string, 0, len(names)+1)
	columns = append(columns, r.def.PrimaryKey)
	for _, name := range names {
		if name == r.def.PrimaryKey {
			continue
		}
		columns = append(columns, name)
	}
	return columns
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRow reads one row into storage-form attributes. NULL columns stay
// absent so the record treats them as unset.
func scanRow(row scanner, columns []string) (map[string]any, error) {
	values := make([]any, len(columns))
	dests := make([]any, len(columns))
	for idx := range values {
		dests[idx] = &values[idx]
	}
	if err := row.Scan(dests...); err != nil {
		return nil, err
	}

	attrs := make(map[string]any, len(columns))
	for idx, name := range columns {
		switch v := values[idx].(type) {
		case nil:
			continue
		case []byte:
			attrs[name] = string(v)
		default:
			attrs[name] = v
		}
	}
	return attrs, nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
