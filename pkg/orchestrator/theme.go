package orchestrator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelschema/pkg/emitters/htmldoc"
	theme "github.com/goliatone/go-theme"
)

// ThemeSelector resolves a theme name and variant into a selection. The
// go-theme registry satisfies it.
type ThemeSelector interface {
	Select(name, variant string, options ...theme.QueryOption) (*theme.Selection, error)
}

// WithThemeSelector injects the selector consulted when a request names a
// theme.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider wires a theme registry together with the default theme
// and variant applied when a request does not name one.
func WithThemeProvider(provider ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = provider
		o.themeName = name
		o.themeVariant = variant
	}
}

// defaultThemeFallbacks names the partials every themed emitter can count on
// even when a manifest overrides nothing.
func defaultThemeFallbacks() map[string]string {
	return htmldoc.DefaultPartials()
}

func (o *Orchestrator) themeConfig(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if name == "" {
		name = o.themeName
	}
	if variant == "" {
		variant = o.themeVariant
	}
	if name == "" {
		return nil, nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return rendererConfig(selection), nil
}

// rendererConfig flattens a selection into the config emitters consume.
// Variant values win over base manifest values, which win over fallbacks.
func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	partials := defaultThemeFallbacks()
	tokens := map[string]string{}
	var variant theme.Variant
	manifest := selection.Manifest
	if manifest != nil {
		for name, path := range manifest.Templates {
			partials[name] = path
		}
		for name, value := range manifest.Tokens {
			tokens[name] = value
		}
		if v, ok := manifest.Variants[selection.Variant]; ok {
			variant = v
			for name, path := range v.Templates {
				partials[name] = path
			}
			for name, value := range v.Tokens {
				tokens[name] = value
			}
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for name, value := range tokens {
		cssVars["--"+name] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(manifest, variant),
	}
}

func assetResolver(manifest *theme.Manifest, variant theme.Variant) func(string) string {
	return func(key string) string {
		if manifest == nil {
			return ""
		}
		file := variant.Assets.Files[key]
		if file == "" {
			file = manifest.Assets.Files[key]
		}
		if file == "" {
			return ""
		}
		prefix := variant.Assets.Prefix
		if prefix == "" {
			prefix = manifest.Assets.Prefix
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
}
