package sqlddl_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-modelschema/pkg/emit"
	"github.com/goliatone/go-modelschema/pkg/emitters/sqlddl"
	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/testsupport"
)

func articleDefinition() schema.Definition {
	return schema.New("Article", map[string]schema.Field{
		"id":           {Cast: schema.CastInteger},
		"title":        {Cast: schema.CastString, Rules: "required|min:2|max:255"},
		"slug":         {Cast: schema.CastString, Rules: "required|unique"},
		"published":    {Cast: schema.CastBoolean, Default: false},
		"published_at": {Cast: schema.CastDateTime},
		"views":        {Cast: schema.CastInteger, Default: 0},
		"metadata":     {Cast: schema.CastObject, Default: map[string]any{"visibility": "public"}},
		"secret_token": {Cast: schema.CastString, Guarded: true, Hidden: true},
	})
}

func TestEmitCreateTable(t *testing.T) {
	emitter, err := sqlddl.New()
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}

	output, err := emitter.Emit(testsupport.Context(), articleDefinition(), emit.Options{})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	want := strings.Join([]string{
		"CREATE TABLE IF NOT EXISTS articles (",
		"    id INTEGER PRIMARY KEY AUTOINCREMENT,",
		"    metadata TEXT DEFAULT '{\"visibility\":\"public\"}',",
		"    published INTEGER DEFAULT 0,",
		"    published_at TEXT,",
		"    secret_token TEXT,",
		"    slug TEXT NOT NULL UNIQUE,",
		"    title TEXT NOT NULL,",
		"    views INTEGER DEFAULT 0",
		");",
		"",
	}, "\n")
	if diff := testsupport.CompareGolden(want, string(output)); diff != "" {
		t.Fatalf("ddl mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitTextPrimaryKey(t *testing.T) {
	def := schema.New("Session", map[string]schema.Field{
		"token":      {Cast: schema.CastUUID},
		"expires_at": {Cast: schema.CastDateTime, Rules: "required"},
	})
	def.PrimaryKey = "token"
	def.PrimaryKeyCast = schema.CastUUID

	emitter, err := sqlddl.New()
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}

	output, err := emitter.Emit(testsupport.Context(), def, emit.Options{})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	want := strings.Join([]string{
		"CREATE TABLE IF NOT EXISTS sessions (",
		"    token TEXT PRIMARY KEY,",
		"    expires_at TEXT NOT NULL",
		");",
		"",
	}, "\n")
	if diff := testsupport.CompareGolden(want, string(output)); diff != "" {
		t.Fatalf("ddl mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitHeadingComment(t *testing.T) {
	emitter, err := sqlddl.New()
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}

	output, err := emitter.Emit(testsupport.Context(), articleDefinition(), emit.Options{Heading: "articles storage"})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.HasPrefix(string(output), "-- articles storage\nCREATE TABLE") {
		t.Fatalf("expected heading comment, got:\n%s", output)
	}
}

func TestEmitWithoutIfNotExists(t *testing.T) {
	emitter, err := sqlddl.New(sqlddl.WithIfNotExists(false))
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}

	output, err := emitter.Emit(testsupport.Context(), articleDefinition(), emit.Options{})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if !strings.HasPrefix(string(output), "CREATE TABLE articles (") {
		t.Fatalf("expected plain CREATE TABLE, got:\n%s", output)
	}
}

func TestEmitRejectsInvalidDefinition(t *testing.T) {
	emitter, err := sqlddl.New()
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}

	if _, err := emitter.Emit(testsupport.Context(), schema.Definition{}, emit.Options{}); err == nil {
		t.Fatalf("expected invalid definition to be rejected")
	}
}
