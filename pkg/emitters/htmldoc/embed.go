package htmldoc

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/partials/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the embedded stylesheet served alongside generated pages.
const StylesheetName = "modelschema-doc.css"

// TemplatesFS exposes the embedded page templates so callers can reuse or
// extend the built-in layout.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet bundle rooted at the asset
// directory, ready to mount behind an http.FileServer.
func AssetsFS() fs.FS {
	if sub, err := fs.Sub(embeddedAssets, "assets"); err == nil {
		return sub
	}
	return embeddedAssets
}

func defaultStylesheet() string {
	css, err := embeddedAssets.ReadFile("assets/" + StylesheetName)
	if err != nil {
		return ""
	}
	return string(css)
}
