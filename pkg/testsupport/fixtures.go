package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

// Context hands tests a plain background context.
func Context() context.Context {
	return context.Background()
}

// LoadDocument reads a fixture from disk and wraps it in a schemadoc.Document
// with a file source. Failures end the test.
func LoadDocument(t *testing.T, path string) schemadoc.Document {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document %s: %v", path, err)
	}
	doc, err := schemadoc.NewDocument(schemadoc.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("wrap document %s: %v", path, err)
	}
	return doc
}

// MustLoadDefinitions loads a JSON golden file into a definition map keyed by
// model name.
func MustLoadDefinitions(t *testing.T, path string) map[string]schema.Definition {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	var out map[string]schema.Definition
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode golden %s: %v", path, err)
	}
	return out
}

// WriteGolden rewrites a golden file from value when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if !updateGoldens() {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("encode golden %s: %v", path, err)
	}
	writeGoldenBytes(t, path, payload)
}

// MustReadGoldenString returns a golden file's content as a string.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(data)
}

// CompareGolden diffs two values, returning an empty string when they match.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents. Tests
// can assert an emitter returns and writes the same payload without
// duplicating buffer setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var sink bytes.Buffer
	result, err := render(&sink)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return result, sink.String()
}

func updateGoldens() bool {
	return os.Getenv("UPDATE_GOLDENS") != ""
}

func writeGoldenBytes(t *testing.T, path string, payload []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create golden dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden %s: %v", path, err)
	}
}
