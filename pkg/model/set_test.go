package model_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelschema/pkg/model"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

func TestSetAppliesWriteCasts(t *testing.T) {
	rec := model.New(articleDefinition())

	published := time.Date(2024, 3, 9, 17, 30, 5, 0, time.UTC)
	if err := rec.Set("published_at", published); err != nil {
		t.Fatalf("set published_at: %v", err)
	}
	if got, _ := rec.Attribute("published_at"); got != "2024-03-09 17:30:05" {
		t.Fatalf("datetime not stored in storage form: %v", got)
	}

	if err := rec.Set("metadata", map[string]any{"visibility": "private"}); err != nil {
		t.Fatalf("set metadata: %v", err)
	}
	if got, _ := rec.Attribute("metadata"); got != `{"visibility":"private"}` {
		t.Fatalf("object not serialized for storage: %v", got)
	}

	if err := rec.Set("title", "Plain"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if got, _ := rec.Attribute("title"); got != "Plain" {
		t.Fatalf("tags without write entries should store as-is: %v", got)
	}
}

func TestSetAssignOverrideWins(t *testing.T) {
	def := articleDefinition()
	if err := def.RegisterAssigner("title", func(rec schema.AttributeWriter, value any) error {
		rec.PutAttribute("title", strings.ToUpper(value.(string)))
		return nil
	}); err != nil {
		t.Fatalf("register assigner: %v", err)
	}

	rec := model.New(def)
	if err := rec.Set("title", "hello"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := rec.Attribute("title"); got != "HELLO" {
		t.Fatalf("assign override not applied, got %v", got)
	}
}

func TestSetDottedPathWritesNestedJSON(t *testing.T) {
	rec := model.New(articleDefinition())

	if err := rec.Set("metadata.visibility", "private"); err != nil {
		t.Fatalf("set nested: %v", err)
	}
	if err := rec.Set("metadata.flags.featured", true); err != nil {
		t.Fatalf("set deep nested: %v", err)
	}

	meta, ok := rec.Get("metadata").(map[string]any)
	if !ok {
		t.Fatalf("metadata = %v", rec.Get("metadata"))
	}
	want := map[string]any{
		"visibility": "private",
		"flags":      map[string]any{"featured": true},
	}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Fatalf("nested metadata mismatch (-want +got):\n%s", diff)
	}

	raw, _ := rec.Attribute("metadata")
	if _, isString := raw.(string); !isString {
		t.Fatalf("nested writes should re-serialize to storage form, got %T", raw)
	}
}

func TestSetDottedPathMergesExistingStorageValue(t *testing.T) {
	rec := model.FromStorage(articleDefinition(), map[string]any{
		"metadata": `{"visibility":"public","owner":"ada"}`,
	})
	rec.SetGuarded(false)

	if err := rec.Set("metadata.visibility", "private"); err != nil {
		t.Fatalf("set nested: %v", err)
	}

	meta := rec.Get("metadata").(map[string]any)
	if meta["visibility"] != "private" || meta["owner"] != "ada" {
		t.Fatalf("nested merge lost data: %v", meta)
	}
}

func TestSetDottedPathRejectsScalarAttributes(t *testing.T) {
	rec := model.New(articleDefinition())

	err := rec.Set("title.nested", "x")
	if err == nil || !strings.Contains(err.Error(), "structured") {
		t.Fatalf("expected structured-data error, got %v", err)
	}
}

func TestSetPlainAssignmentForUndeclaredKeys(t *testing.T) {
	rec := model.New(articleDefinition())

	if err := rec.Set("ad_hoc", 123); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := rec.Attribute("ad_hoc"); got != 123 {
		t.Fatalf("plain assignment failed: %v", got)
	}
}

func TestSetMalformedValuesError(t *testing.T) {
	rec := model.New(articleDefinition())

	if err := rec.Set("published_at", "not a date"); err == nil {
		t.Fatal("expected cast error for malformed datetime")
	}
	if err := rec.Set("metadata", "not json"); err == nil {
		t.Fatal("expected cast error for malformed object payload")
	}
	if err := rec.Set("", "x"); err == nil {
		t.Fatal("expected error for empty key")
	}
}
