package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelschema/pkg/model"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

func articleDefinition() schema.Definition {
	return schema.New("Article", map[string]schema.Field{
		"id":           {Cast: schema.CastInteger, Guarded: true},
		"title":        {Cast: schema.CastString, Rules: "required|min:2|max:255"},
		"views":        {Cast: schema.CastInteger, Default: int64(0)},
		"rating":       {Cast: "double"},
		"published":    {Cast: schema.CastBoolean, Default: false},
		"metadata":     {Cast: schema.CastObject, Default: map[string]any{"visibility": "public"}},
		"tags":         {Cast: "json"},
		"published_at": {Cast: schema.CastDateTime},
		"secret_token": {Cast: schema.CastString, Hidden: true, Guarded: true},
	})
}

func TestFromStorageStartsClean(t *testing.T) {
	rec := model.FromStorage(articleDefinition(), map[string]any{
		"id":    int64(7),
		"title": "Hello",
	})

	if !rec.Persisted() {
		t.Fatal("storage records should be persisted")
	}
	if rec.IsDirty() {
		t.Fatalf("fresh storage record should be clean, dirty: %v", rec.Dirty())
	}
}

func TestDirtyTracksChanges(t *testing.T) {
	rec := model.FromStorage(articleDefinition(), map[string]any{
		"id":    int64(7),
		"title": "Hello",
	})
	rec.SetGuarded(false)

	if err := rec.Set("title", "Updated"); err != nil {
		t.Fatalf("set: %v", err)
	}

	dirty := rec.Dirty()
	if diff := cmp.Diff(map[string]any{"title": "Updated"}, dirty); diff != "" {
		t.Fatalf("dirty mismatch (-want +got):\n%s", diff)
	}
	if !rec.IsDirty("title") || rec.IsDirty("id") {
		t.Fatal("IsDirty reported the wrong attributes")
	}

	rec.SyncOriginal()
	if rec.IsDirty() {
		t.Fatal("sync should clear the dirty set")
	}
}

func TestGetAppliesReadCasts(t *testing.T) {
	rec := model.FromStorage(articleDefinition(), map[string]any{
		"views":        "42",
		"rating":       "4.5",
		"published":    int64(1),
		"metadata":     `{"visibility":"public"}`,
		"published_at": "2024-03-09 17:30:05",
	})

	if got := rec.Get("views"); got != int64(42) {
		t.Fatalf("views = %v (%T)", got, got)
	}
	if got := rec.Get("rating"); got != 4.5 {
		t.Fatalf("rating = %v", got)
	}
	if got := rec.Get("published"); got != true {
		t.Fatalf("published = %v", got)
	}
	meta, ok := rec.Get("metadata").(map[string]any)
	if !ok || meta["visibility"] != "public" {
		t.Fatalf("metadata = %v", rec.Get("metadata"))
	}
	at, ok := rec.Get("published_at").(time.Time)
	if !ok || at.Hour() != 17 {
		t.Fatalf("published_at = %v", rec.Get("published_at"))
	}
	if got := rec.Get("missing"); got != nil {
		t.Fatalf("unset attribute should read nil, got %v", got)
	}
}

func TestCastAttributeNilAlwaysNil(t *testing.T) {
	rec := model.New(articleDefinition())

	for _, key := range []string{"views", "rating", "published", "metadata", "tags", "published_at", "title"} {
		if got := rec.CastAttribute(key, nil); got != nil {
			t.Fatalf("CastAttribute(%q, nil) = %v", key, got)
		}
	}
}

func TestCastAttributeUnknownTagPassesThrough(t *testing.T) {
	def := schema.New("Widget", map[string]schema.Field{
		"id":    {Cast: schema.CastInteger},
		"shape": {Cast: "polygon"},
	})
	rec := model.New(def)

	if got := rec.CastAttribute("shape", "hexagon"); got != "hexagon" {
		t.Fatalf("unknown tag should pass through, got %v", got)
	}
}

func TestPublicHidesHiddenAttributes(t *testing.T) {
	rec := model.FromStorage(articleDefinition(), map[string]any{
		"id":           int64(7),
		"title":        "Hello",
		"secret_token": "abc123",
	})

	public := rec.Public()
	if _, ok := public["secret_token"]; ok {
		t.Fatal("hidden attribute leaked into public view")
	}
	if public["title"] != "Hello" {
		t.Fatalf("public title = %v", public["title"])
	}

	encoded, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["secret_token"]; ok {
		t.Fatal("hidden attribute leaked into JSON")
	}
}
