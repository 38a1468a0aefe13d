package cast_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"int":        "integer",
		"Integer":    "integer",
		"bool":       "boolean",
		"real":       "float",
		"double":     "float",
		"json":       "array",
		"collection": "array",
		" datetime ": "datetime",
		"custom":     "custom",
	}
	for tag, want := range cases {
		if got := cast.Canonical(tag); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", tag, got, want)
		}
	}
}

func TestReadNilPassesThrough(t *testing.T) {
	registry := cast.NewRegistry()
	for _, tag := range registry.Tags() {
		got, err := registry.Read(tag, nil)
		if err != nil {
			t.Fatalf("read %s nil: %v", tag, err)
		}
		if got != nil {
			t.Fatalf("read %s nil yielded %v", tag, got)
		}
	}
}

func TestReadUnknownTagPassesThrough(t *testing.T) {
	registry := cast.NewRegistry()

	got, err := registry.Read("point", "1,2")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "1,2" {
		t.Fatalf("unknown tag should not cast, got %v", got)
	}
}

func TestWriteWithoutEntryStoresAsIs(t *testing.T) {
	registry := cast.NewRegistry()

	for tag, value := range map[string]any{
		schema.CastString:  "hello",
		schema.CastInteger: int64(42),
		schema.CastBoolean: true,
	} {
		got, err := registry.Write(tag, value)
		if err != nil {
			t.Fatalf("write %s: %v", tag, err)
		}
		if got != value {
			t.Fatalf("write %s changed value: %v", tag, got)
		}
	}
}

func TestReadScalars(t *testing.T) {
	registry := cast.NewRegistry()

	cases := []struct {
		tag   string
		value any
		want  any
	}{
		{schema.CastInteger, "42", int64(42)},
		{schema.CastInteger, float64(7), int64(7)},
		{"int", int32(3), int64(3)},
		{schema.CastFloat, "3.5", 3.5},
		{"double", int64(2), 2.0},
		{schema.CastBoolean, int64(1), true},
		{schema.CastBoolean, "false", false},
		{"bool", "yes", true},
		{schema.CastString, int64(9), "9"},
		{schema.CastTimestamp, "1700000000", int64(1700000000)},
	}

	for _, tc := range cases {
		got, err := registry.Read(tc.tag, tc.value)
		if err != nil {
			t.Fatalf("read %s %v: %v", tc.tag, tc.value, err)
		}
		if got != tc.want {
			t.Errorf("read %s %v = %v (%T), want %v (%T)", tc.tag, tc.value, got, got, tc.want, tc.want)
		}
	}
}

func TestReadStructured(t *testing.T) {
	registry := cast.NewRegistry()

	obj, err := registry.Read(schema.CastObject, `{"name":"ada","tags":["a","b"]}`)
	if err != nil {
		t.Fatalf("read object: %v", err)
	}
	want := map[string]any{"name": "ada", "tags": []any{"a", "b"}}
	if diff := cmp.Diff(want, obj); diff != "" {
		t.Fatalf("object mismatch (-want +got):\n%s", diff)
	}

	arr, err := registry.Read("json", `[1,2,3]`)
	if err != nil {
		t.Fatalf("read array: %v", err)
	}
	if diff := cmp.Diff([]any{1.0, 2.0, 3.0}, arr); diff != "" {
		t.Fatalf("array mismatch (-want +got):\n%s", diff)
	}

	if _, err := registry.Read(schema.CastObject, `[1,2]`); err == nil {
		t.Fatal("expected error reading array JSON as object")
	}
}

func TestReadTemporal(t *testing.T) {
	registry := cast.NewRegistry()

	date, err := registry.Read(schema.CastDate, "2024-03-09")
	if err != nil {
		t.Fatalf("read date: %v", err)
	}
	parsedDate, ok := date.(time.Time)
	if !ok {
		t.Fatalf("date cast yielded %T", date)
	}
	if parsedDate.Hour() != 0 || parsedDate.Format(cast.DateLayout) != "2024-03-09" {
		t.Fatalf("unexpected date value: %v", parsedDate)
	}

	dt, err := registry.Read(schema.CastDateTime, "2024-03-09 17:30:05")
	if err != nil {
		t.Fatalf("read datetime: %v", err)
	}
	parsedDT := dt.(time.Time)
	if parsedDT.Format(cast.DateTimeLayout) != "2024-03-09 17:30:05" {
		t.Fatalf("unexpected datetime value: %v", parsedDT)
	}

	rfc, err := registry.Read(schema.CastDateTime, "2024-03-09T17:30:05Z")
	if err != nil {
		t.Fatalf("read RFC 3339 datetime: %v", err)
	}
	if !rfc.(time.Time).Equal(time.Date(2024, 3, 9, 17, 30, 5, 0, time.UTC)) {
		t.Fatalf("unexpected RFC 3339 value: %v", rfc)
	}
}

func TestRoundTripStorageEquality(t *testing.T) {
	registry := cast.NewRegistry()

	cases := []struct {
		tag     string
		storage any
	}{
		{schema.CastDate, "2024-03-09"},
		{schema.CastDateTime, "2024-03-09 17:30:05"},
		{schema.CastObject, `{"a":1,"b":"two"}`},
		{schema.CastArray, `["x","y"]`},
		{schema.CastTimestamp, int64(1700000000)},
	}

	for _, tc := range cases {
		native, err := registry.Read(tc.tag, tc.storage)
		if err != nil {
			t.Fatalf("read %s: %v", tc.tag, err)
		}
		back, err := registry.Write(tc.tag, native)
		if err != nil {
			t.Fatalf("write %s: %v", tc.tag, err)
		}
		if back != tc.storage {
			t.Errorf("round trip %s: %v -> %v", tc.tag, tc.storage, back)
		}
	}
}

func TestWriteStructuredPassesValidJSONStrings(t *testing.T) {
	registry := cast.NewRegistry()

	got, err := registry.Write(schema.CastObject, `{"a":1}`)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if got != `{"a":1}` {
		t.Fatalf("serialized input should pass through, got %v", got)
	}

	if _, err := registry.Write(schema.CastObject, "not json"); err == nil {
		t.Fatal("expected error for invalid JSON string")
	}
}

func TestReadUUID(t *testing.T) {
	registry := cast.NewRegistry()

	got, err := registry.Read(schema.CastUUID, "6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
	if err != nil {
		t.Fatalf("read uuid: %v", err)
	}
	if got != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Fatalf("uuid not normalized: %v", got)
	}

	if _, err := registry.Read(schema.CastUUID, "not-a-uuid"); err == nil {
		t.Fatal("expected error for malformed uuid")
	}
}

func TestWriteHTMLSanitizes(t *testing.T) {
	registry := cast.NewRegistry()

	got, err := registry.Write(schema.CastHTML, `<p>hello</p><script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("write html: %v", err)
	}
	out := got.(string)
	if strings.Contains(out, "script") {
		t.Fatalf("script survived sanitization: %q", out)
	}
	if !strings.Contains(out, "<p>hello</p>") {
		t.Fatalf("benign markup stripped: %q", out)
	}
}

func TestRegisterCustomTag(t *testing.T) {
	registry := cast.NewRegistry()

	if err := registry.RegisterRead("csv", func(value any) (any, error) {
		return strings.Split(value.(string), ","), nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := registry.Read("csv", "a,b,c")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("csv mismatch (-want +got):\n%s", diff)
	}

	err = registry.RegisterRead("csv", func(value any) (any, error) { return value, nil })
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate registration error, got %v", err)
	}
}
