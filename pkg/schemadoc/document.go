package schemadoc

import (
	"bytes"
	"errors"
)

// Source identifies where a definition document originated. Loaders operate
// on files, fs.FS entries, URLs, or pre-loaded bytes without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind names the retrieval mechanism a source expects.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindURL   SourceKind = "url"
	SourceKindBytes SourceKind = "bytes"
)

// Document pairs a raw definition payload with its origin. The bytes stay
// untouched, so the same wrapper carries native documents and OpenAPI
// documents alike; accessors hand out copies.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument wraps raw in a Document, rejecting nil sources and empty
// payloads.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schemadoc: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schemadoc: raw document is empty")
	}
	return Document{source: src, raw: bytes.Clone(raw)}, nil
}

// MustNewDocument is NewDocument for fixture setup; invalid input panics.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source reports where the payload came from.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload bytes.
func (d Document) Raw() []byte {
	return bytes.Clone(d.raw)
}

// Location returns the origin identifier, or "" for the zero Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
