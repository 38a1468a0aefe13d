package orchestrator

import (
	"context"
	"testing"

	"github.com/goliatone/go-modelschema/pkg/emit"
	"github.com/goliatone/go-modelschema/pkg/schema"
	theme "github.com/goliatone/go-theme"
)

// themedEmit runs the pipeline against a stub parser with the supplied theme
// option and returns the options the emitter received.
func themedEmit(t *testing.T, themeOption Option, themeName, themeVariant string) emit.Options {
	t.Helper()

	emitter := &captureEmitter{}
	registry := emit.NewRegistry()
	registry.MustRegister(emitter)

	orch := New(
		WithParser(stubParser{definitions: map[string]schema.Definition{
			"Article": articleDefinition(),
		}}),
		WithRegistry(registry),
		WithDefaultEmitter(emitter.Name()),
		themeOption,
	)

	_, err := orch.Generate(context.Background(), Request{
		Document:     inlineDocument(t, "{}"),
		Model:        "Article",
		ThemeName:    themeName,
		ThemeVariant: themeVariant,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return emitter.options
}

func TestOrchestratorPassesThemeConfigToEmitter(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
	}
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "custom-variant",
		Manifest: manifest,
	}}

	options := themedEmit(t, WithThemeSelector(selector), "custom-theme", "custom-variant")

	if len(selector.calls) != 1 {
		t.Fatalf("selector calls = %d, want 1", len(selector.calls))
	}
	if call := selector.calls[0]; call.name != "custom-theme" || call.variant != "custom-variant" {
		t.Fatalf("selector received %+v", call)
	}

	cfg := options.Theme
	if cfg == nil {
		t.Fatal("emitter received no theme config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "custom-variant" {
		t.Fatalf("resolved %s/%s, want acme/custom-variant", cfg.Theme, cfg.Variant)
	}
	if cfg.AssetURL == nil {
		t.Fatal("missing asset resolver")
	}
	if got := cfg.Partials["docs.head"]; got != defaultThemeFallbacks()["docs.head"] {
		t.Fatalf("docs.head partial = %q, want built-in fallback", got)
	}
	if cfg.Tokens["brand"] != "#123456" {
		t.Fatalf("brand token = %q", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("--brand css var = %q", cfg.CSSVars["--brand"])
	}
}

func TestOrchestratorWithThemeProviderUsesDefaults(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Templates: map[string]string{
			"docs.head": "themes/acme/head.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{"docs.stylesheet": "doc.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Templates: map[string]string{
					"docs.footer": "themes/acme/dark/footer.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{"docs.vendor": "vendor.dark.js"},
				},
			},
		},
	}

	provider := theme.NewRegistry()
	if err := provider.Register(manifest); err != nil {
		t.Fatalf("register manifest: %v", err)
	}

	options := themedEmit(t, WithThemeProvider(provider, "acme", "dark"), "", "")

	cfg := options.Theme
	if cfg == nil {
		t.Fatal("emitter received no theme config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("resolved %s/%s, want acme/dark", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Partials["docs.head"]; got != "themes/acme/head.tmpl" {
		t.Fatalf("docs.head partial = %q, want manifest override", got)
	}
	if got := cfg.Partials["docs.footer"]; got != "themes/acme/dark/footer.tmpl" {
		t.Fatalf("docs.footer partial = %q, want variant override", got)
	}
	if cfg.Tokens["brand"] != "#654321" {
		t.Fatalf("brand token = %q, want variant value", cfg.Tokens["brand"])
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("--brand css var = %q, want variant value", cfg.CSSVars["--brand"])
	}
	if cfg.AssetURL == nil {
		t.Fatal("missing asset resolver")
	}
	if got := cfg.AssetURL("docs.vendor"); got != "/assets/themes/acme/vendor.dark.js" {
		t.Fatalf("vendor asset url = %q", got)
	}
	if got := cfg.AssetURL("docs.stylesheet"); got != "/assets/themes/acme/doc.css" {
		t.Fatalf("stylesheet asset url = %q", got)
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
