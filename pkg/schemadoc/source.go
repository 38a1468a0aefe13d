package schemadoc

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// source is the single concrete Source implementation. The constructors
// differ only in how they normalise the location string.
type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }

func (s source) Location() string { return s.location }

// SourceFromFile builds a Source for a path on the host filesystem.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS builds a Source for an entry in the loader's fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: name}
}

// SourceFromURL parses the supplied URL string and returns a Source. It
// panics on an invalid URL to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("schemadoc: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("schemadoc: invalid URL %q: %v", raw, err))
	}
	return source{kind: SourceKindURL, location: raw}
}

// SourceFromBytes returns a Source labelling an in-memory document. The name
// only serves error messages and logging; it falls back to "inline".
func SourceFromBytes(name string) Source {
	if name == "" {
		name = "inline"
	}
	return source{kind: SourceKindBytes, location: name}
}
