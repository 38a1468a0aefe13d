package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelschema/pkg/model"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

func TestApplyDefaultsPopulatesNewRecords(t *testing.T) {
	rec := model.New(articleDefinition())
	if err := rec.Set("title", "Hello"); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := rec.ApplyDefaults(true); err != nil {
		t.Fatalf("apply defaults: %v", err)
	}

	if got, _ := rec.Attribute("views"); got != int64(0) {
		t.Fatalf("views default missing: %v", got)
	}
	if got, _ := rec.Attribute("published"); got != false {
		t.Fatalf("published default missing: %v", got)
	}
	if got, _ := rec.Attribute("metadata"); got != `{"visibility":"public"}` {
		t.Fatalf("metadata default not stored in storage form: %v", got)
	}
	if got, _ := rec.Attribute("title"); got != "Hello" {
		t.Fatalf("pending change overwritten: %v", got)
	}
}

func TestApplyDefaultsSkipsPendingChanges(t *testing.T) {
	rec := model.New(articleDefinition())
	if err := rec.Set("views", int64(10)); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := rec.ApplyDefaults(true); err != nil {
		t.Fatalf("apply defaults: %v", err)
	}

	if got, _ := rec.Attribute("views"); got != int64(10) {
		t.Fatalf("default overwrote a pending change: %v", got)
	}
}

func TestApplyDefaultsIdempotent(t *testing.T) {
	rec := model.New(articleDefinition())
	if err := rec.ApplyDefaults(true); err != nil {
		t.Fatalf("apply defaults: %v", err)
	}
	first := rec.Dirty()

	if err := rec.ApplyDefaults(true); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if diff := cmp.Diff(first, rec.Dirty()); diff != "" {
		t.Fatalf("second call changed the record (-want +got):\n%s", diff)
	}
}

func TestApplyDefaultsNoopOnPersistedRecords(t *testing.T) {
	rec := model.FromStorage(articleDefinition(), map[string]any{"title": "Saved"})

	if err := rec.ApplyDefaults(true); err != nil {
		t.Fatalf("apply defaults: %v", err)
	}
	if rec.IsDirty() {
		t.Fatalf("persisted record should stay untouched, dirty: %v", rec.Dirty())
	}
}

func TestApplyDefaultsHonorsGuardWithoutBypass(t *testing.T) {
	def := schema.New("Token", map[string]schema.Field{
		"id":     {Cast: schema.CastInteger},
		"secret": {Cast: schema.CastString, Default: "generated", Guarded: true},
	})
	rec := model.New(def)

	if err := rec.ApplyDefaults(false); err != nil {
		t.Fatalf("apply defaults: %v", err)
	}
	if _, ok := rec.Attribute("secret"); ok {
		t.Fatal("guarded default written without bypass")
	}

	if err := rec.ApplyDefaults(true); err != nil {
		t.Fatalf("apply defaults with bypass: %v", err)
	}
	if got, _ := rec.Attribute("secret"); got != "generated" {
		t.Fatalf("bypass should populate guarded defaults: %v", got)
	}
}

func TestFillHonorsFillableWhitelist(t *testing.T) {
	def := schema.New("Profile", map[string]schema.Field{
		"id":    {Cast: schema.CastInteger},
		"name":  {Cast: schema.CastString, Fillable: true},
		"email": {Cast: schema.CastString, Fillable: true},
		"role":  {Cast: schema.CastString},
	})
	rec := model.New(def)

	if err := rec.Fill(map[string]any{
		"name":  "Ada",
		"email": "ada@example.com",
		"role":  "admin",
		"extra": "nope",
	}, false); err != nil {
		t.Fatalf("fill: %v", err)
	}

	if got, _ := rec.Attribute("name"); got != "Ada" {
		t.Fatalf("fillable attribute missing: %v", got)
	}
	if _, ok := rec.Attribute("role"); ok {
		t.Fatal("non-fillable attribute assigned while whitelist active")
	}
	if _, ok := rec.Attribute("extra"); ok {
		t.Fatal("undeclared attribute assigned while whitelist active")
	}
}

func TestFillWithoutWhitelistUsesGuard(t *testing.T) {
	rec := model.New(articleDefinition())

	if err := rec.Fill(map[string]any{
		"title":        "Hello",
		"secret_token": "stolen",
	}, false); err != nil {
		t.Fatalf("fill: %v", err)
	}

	if got, _ := rec.Attribute("title"); got != "Hello" {
		t.Fatalf("unguarded attribute should fill: %v", got)
	}
	if _, ok := rec.Attribute("secret_token"); ok {
		t.Fatal("guarded attribute filled without bypass")
	}
}
