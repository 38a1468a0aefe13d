package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-modelschema/pkg/emit/template/gotemplate"
	"github.com/goliatone/go-modelschema/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var templateFixtures embed.FS

func TestEngineRendersFileTemplates(t *testing.T) {
	engine := fixtureEngine(t)

	cases := []struct {
		template string
		data     map[string]any
		golden   string
	}{
		{
			template: "title",
			data:     map[string]any{"model": "  Article  "},
			golden:   "title.golden",
		},
		{
			template: "column-label",
			data:     map[string]any{"column": "published_at"},
			golden:   "column-label.golden",
		},
	}

	for _, tc := range cases {
		t.Run(tc.template, func(t *testing.T) {
			assertGolden(t, tc.golden, func(w io.Writer) (string, error) {
				return engine.RenderTemplate(tc.template, tc.data, w)
			})
		})
	}
}

func TestEngineMergesGlobalContext(t *testing.T) {
	engine := fixtureEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"site": map[string]any{"name": "modelschema", "version": "0.1.0"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	assertGolden(t, "footer.golden", func(w io.Writer) (string, error) {
		return engine.RenderTemplate("footer", nil, w)
	})
}

func TestEngineRegistersCustomFilters(t *testing.T) {
	engine := fixtureEngine(t)
	backtick := func(input any, _ any) (any, error) {
		return fmt.Sprintf("`%v`", input), nil
	}
	if err := engine.RegisterFilter("backtick", backtick); err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("backtick", backtick); err == nil {
		t.Fatal("registering the same filter twice should fail")
	}

	assertGolden(t, "field-ref.golden", func(w io.Writer) (string, error) {
		return engine.RenderTemplate("field-ref", map[string]any{"field": "title"}, w)
	})
}

func TestEngineRenderDispatchesInlineAndNamed(t *testing.T) {
	engine := fixtureEngine(t)

	inline, err := engine.Render("{{ table }} has {{ fields }} fields", map[string]any{
		"table":  "articles",
		"fields": 3,
	})
	if err != nil {
		t.Fatalf("render inline: %v", err)
	}
	if inline != "articles has 3 fields" {
		t.Fatalf("inline render = %q", inline)
	}

	named, err := engine.Render("title", map[string]any{"model": "Tag"})
	if err != nil {
		t.Fatalf("render named: %v", err)
	}
	if !strings.HasPrefix(named, "Tag schema") {
		t.Fatalf("named render = %q, want the title template output", named)
	}
}

func TestEngineRequiresFilesystem(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("expected an error when no template filesystem is configured")
	}
}

func fixtureEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	files, err := fs.Sub(templateFixtures, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

// assertGolden renders through the writer path and checks that the returned
// string, the writer contents, and the golden file all agree.
func assertGolden(t *testing.T, golden string, render func(io.Writer) (string, error)) {
	t.Helper()

	result, written := testsupport.CaptureTemplateOutput(t, render)
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "golden", golden))
	if result != want {
		t.Fatalf("returned output = %q, want %q", result, want)
	}
	if written != result {
		t.Fatalf("writer received %q, return value was %q", written, result)
	}
}
