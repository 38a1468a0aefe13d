package validate_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelschema/pkg/validate"
)

func TestPassesWithValidData(t *testing.T) {
	v := validate.Make(map[string]any{
		"name":  "Alice",
		"email": "alice@example.com",
		"age":   int64(30),
	}, validate.Rules{
		"name":  "required|string|min:2|max:100",
		"email": "required|email",
		"age":   "integer|gte:18",
	})

	if v.Fails() {
		t.Fatalf("expected pass, got failures: %v", v.Errors().All())
	}
}

func TestRequiredFailsOnMissingAndEmpty(t *testing.T) {
	v := validate.Make(map[string]any{"title": "  "}, validate.Rules{
		"title": "required",
		"body":  "required",
	})

	if v.Passes() {
		t.Fatal("expected failure")
	}
	bag := v.Errors()
	if !bag.Has("title") || !bag.Has("body") {
		t.Fatalf("expected messages for title and body, got %v", bag.Messages())
	}
	if got := bag.First("title"); got != "The title field is required." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestSometimesSkipsAbsentFields(t *testing.T) {
	v := validate.Make(map[string]any{}, validate.Rules{
		"title": "sometimes|string|min:2",
	})

	if v.Fails() {
		t.Fatalf("sometimes should skip absent fields: %v", v.Errors().All())
	}

	present := validate.Make(map[string]any{"title": "x"}, validate.Rules{
		"title": "sometimes|string|min:2",
	})
	if present.Passes() {
		t.Fatal("present field should still validate")
	}
}

func TestNullableStopsProcessing(t *testing.T) {
	v := validate.Make(map[string]any{"nickname": nil}, validate.Rules{
		"nickname": "nullable|string|min:3",
	})

	if v.Fails() {
		t.Fatalf("nullable nil should pass: %v", v.Errors().All())
	}
}

func TestTypeRules(t *testing.T) {
	cases := []struct {
		name  string
		rules string
		value any
		ok    bool
	}{
		{"string ok", "string", "hello", true},
		{"string fail", "string", int64(1), false},
		{"integer ok", "integer", int64(5), true},
		{"integer from string", "integer", "17", true},
		{"integer fail", "integer", "17.5", false},
		{"numeric ok", "numeric", "17.5", true},
		{"numeric fail", "numeric", "seventeen", false},
		{"boolean ok", "boolean", true, true},
		{"boolean one", "boolean", int64(1), true},
		{"boolean fail", "boolean", int64(7), false},
		{"date ok", "date", "2024-03-09 17:30:05", true},
		{"date plain", "date", "2024-03-09", true},
		{"date fail", "date", "not a date", false},
		{"uuid ok", "uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"uuid fail", "uuid", "nope", false},
		{"timestamp ok", "timestamp", int64(1700000000), true},
		{"timestamp fail", "timestamp", "later", false},
		{"array native", "array", []any{1, 2}, true},
		{"array json string", "array", `[1,2]`, true},
		{"array fail", "array", "plain", false},
		{"object native", "object", map[string]any{"a": 1}, true},
		{"object json string", "object", `{"a":1}`, true},
		{"object fail", "object", `[1]`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := validate.Make(map[string]any{"field": tc.value}, validate.Rules{"field": tc.rules})
			if got := v.Passes(); got != tc.ok {
				t.Fatalf("rules %q value %v: passes=%v want %v (%v)", tc.rules, tc.value, got, tc.ok, v.Errors().All())
			}
		})
	}
}

func TestSizeRulesMeasureByKind(t *testing.T) {
	cases := []struct {
		name  string
		rules string
		value any
		ok    bool
	}{
		{"string min by length", "min:3", "ab", false},
		{"string max by length", "max:3", "abcd", false},
		{"string between", "between:2,4", "abc", true},
		{"numeric min by value", "min:10", int64(12), true},
		{"numeric max by value", "max:10", 10.5, false},
		{"slice size by count", "size:2", []any{"a", "b"}, true},
		{"gt", "gt:5", int64(6), true},
		{"lte fail", "lte:5", "7", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := validate.Make(map[string]any{"field": tc.value}, validate.Rules{"field": tc.rules})
			if got := v.Passes(); got != tc.ok {
				t.Fatalf("rules %q value %v: passes=%v want %v", tc.rules, tc.value, got, tc.ok)
			}
		})
	}
}

func TestMembershipAndComparisonRules(t *testing.T) {
	data := map[string]any{
		"status":                "draft",
		"role":                  "admin",
		"password":              "secret123",
		"password_confirmation": "secret123",
		"old_password":          "secret123",
		"website":               "https://example.com",
		"slug":                  "my-post_1",
	}

	v := validate.Make(data, validate.Rules{
		"status":   "in:draft,published",
		"role":     "not_in:guest,banned",
		"password": "confirmed|same:old_password",
		"website":  "url",
		"slug":     "alpha_dash|regex:^[a-z0-9_-]+$",
	})
	if v.Fails() {
		t.Fatalf("expected pass: %v", v.Errors().All())
	}

	bad := validate.Make(map[string]any{
		"status":   "archived",
		"password": "secret123",
	}, validate.Rules{
		"status":   "in:draft,published",
		"password": "confirmed",
	})
	if bad.Passes() {
		t.Fatal("expected failure")
	}
	if got := bad.Errors().First("status"); got != "The selected status is invalid." {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := bad.Errors().First("password"); got != "The password confirmation does not match." {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestUnknownRuleNamesAreSkipped(t *testing.T) {
	v := validate.Make(map[string]any{"point": "1,2"}, validate.Rules{
		"point": "point|required",
	})
	if v.Fails() {
		t.Fatalf("unknown rule should be skipped: %v", v.Errors().All())
	}
}

func TestMessageParamsRendered(t *testing.T) {
	v := validate.Make(map[string]any{"display_name": "a"}, validate.Rules{
		"display_name": "min:2",
	})
	v.Passes()

	want := "The display name must be at least 2."
	if got := v.Errors().First("display_name"); got != want {
		t.Fatalf("message mismatch: got %q want %q", got, want)
	}
}

func TestMessageBag(t *testing.T) {
	bag := validate.NewMessageBag()
	if !bag.IsEmpty() {
		t.Fatal("new bag should be empty")
	}

	bag.Add("email", "The email must be a valid email address.")
	bag.Add("email", "The email field is required.")
	bag.Add("age", "The age must be an integer.")

	if bag.Count() != 3 {
		t.Fatalf("count = %d, want 3", bag.Count())
	}
	if !bag.Has("email") || bag.Has("name") {
		t.Fatal("Has reported wrong fields")
	}

	wantAll := []string{
		"The age must be an integer.",
		"The email must be a valid email address.",
		"The email field is required.",
	}
	if diff := cmp.Diff(wantAll, bag.All()); diff != "" {
		t.Fatalf("All mismatch (-want +got):\n%s", diff)
	}

	encoded, err := json.Marshal(bag)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(encoded), `"age":["The age must be an integer."]`) {
		t.Fatalf("unexpected JSON: %s", encoded)
	}

	messages := bag.Messages()
	messages["email"] = nil
	if !bag.Has("email") {
		t.Fatal("Messages should return a copy")
	}
}

func TestErrorsEmptyBeforeFailureEvaluated(t *testing.T) {
	v := validate.Make(map[string]any{"name": "ok"}, validate.Rules{"name": "required"})
	if !v.Errors().IsEmpty() {
		t.Fatal("expected empty bag for passing data")
	}
}
