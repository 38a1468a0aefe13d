package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

const blogDocument = `{
  "openapi": "3.0.0",
  "info": { "title": "Blog", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "Article": {
        "type": "object",
        "x-model-table": "posts",
        "required": ["title"],
        "properties": {
          "id": {"type": "integer", "readOnly": true},
          "title": {"type": "string", "minLength": 2, "maxLength": 255},
          "rating": {"type": "number", "minimum": 0, "maximum": 5},
          "published": {"type": "boolean", "default": false},
          "published_at": {"type": "string", "format": "date-time"},
          "metadata": {"type": "object", "x-model-fillable": true},
          "author_email": {"type": "string", "format": "email"},
          "api_secret": {"type": "string", "writeOnly": true},
          "status": {"type": "string", "enum": ["draft", "published", "archived"]}
        }
      },
      "Status": {
        "type": "string",
        "enum": ["ok", "down"]
      }
    }
  }
}`

func parseBlog(t *testing.T) map[string]schema.Definition {
	t.Helper()
	p := New(schemadoc.NewParserOptions())
	doc := schemadoc.MustNewDocument(schemadoc.SourceFromBytes("blog"), []byte(blogDocument))
	defs, err := p.Definitions(context.Background(), doc)
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}
	return defs
}

func TestDefinitionsSkipsNonObjectSchemas(t *testing.T) {
	defs := parseBlog(t)
	if len(defs) != 1 {
		t.Fatalf("expected one definition, got %d", len(defs))
	}
	if _, ok := defs["Status"]; ok {
		t.Fatal("string schema should not become a model")
	}
}

func TestDefinitionsMapsTypesToCasts(t *testing.T) {
	article := parseBlog(t)["Article"]

	cases := map[string]string{
		"id":           schema.CastInteger,
		"title":        schema.CastString,
		"rating":       schema.CastFloat,
		"published":    schema.CastBoolean,
		"published_at": schema.CastDateTime,
		"metadata":     schema.CastObject,
		"author_email": schema.CastString,
		"api_secret":   schema.CastString,
		"status":       schema.CastString,
	}
	for name, want := range cases {
		field, ok := article.Field(name)
		if !ok {
			t.Fatalf("field %q missing", name)
		}
		if field.Cast != want {
			t.Errorf("field %q cast = %q, want %q", name, field.Cast, want)
		}
	}
}

func TestDefinitionsMapsConstraintsToRules(t *testing.T) {
	article := parseBlog(t)["Article"]

	title, _ := article.Field("title")
	if title.Rules != "required|min:2|max:255" {
		t.Fatalf("title rules = %q", title.Rules)
	}
	rating, _ := article.Field("rating")
	if rating.Rules != "gte:0|lte:5" {
		t.Fatalf("rating rules = %q", rating.Rules)
	}
	email, _ := article.Field("author_email")
	if email.Rules != "email" {
		t.Fatalf("author_email rules = %q", email.Rules)
	}
	status, _ := article.Field("status")
	if status.Rules != "in:draft,published,archived" {
		t.Fatalf("status rules = %q", status.Rules)
	}
}

func TestDefinitionsMapsAccessFlags(t *testing.T) {
	article := parseBlog(t)["Article"]

	id, _ := article.Field("id")
	if !id.Guarded {
		t.Fatal("readOnly property should be guarded")
	}
	secret, _ := article.Field("api_secret")
	if !secret.Hidden {
		t.Fatal("writeOnly property should be hidden")
	}
	metadata, _ := article.Field("metadata")
	if !metadata.Fillable {
		t.Fatal("x-model-fillable should mark the field fillable")
	}
	published, _ := article.Field("published")
	if published.Default != false {
		t.Fatalf("default = %v", published.Default)
	}
}

func TestDefinitionsHonorsTableExtension(t *testing.T) {
	article := parseBlog(t)["Article"]
	if article.Table != "posts" {
		t.Fatalf("table = %q", article.Table)
	}
	if article.PrimaryKey != "id" || article.PrimaryKeyCast != schema.CastInteger {
		t.Fatalf("primary key = %q cast %q", article.PrimaryKey, article.PrimaryKeyCast)
	}
}

func TestDefinitionsPrimaryKeyExtension(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Sessions", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "Session": {
        "type": "object",
        "x-model-primary-key": "token",
        "properties": {
          "token": {"type": "string", "format": "uuid"},
          "user_id": {"type": "integer"}
        }
      }
    }
  }
}`

	p := New(schemadoc.NewParserOptions())
	doc := schemadoc.MustNewDocument(schemadoc.SourceFromBytes("sessions"), []byte(document))
	defs, err := p.Definitions(context.Background(), doc)
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}

	session := defs["Session"]
	if session.PrimaryKey != "token" {
		t.Fatalf("primary key = %q", session.PrimaryKey)
	}
	if session.PrimaryKeyCast != schema.CastUUID {
		t.Fatalf("primary key cast = %q", session.PrimaryKeyCast)
	}
}

func TestDefinitionsRequiresComponentSchemas(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Empty", "version": "1.0.0" },
  "paths": {}
}`

	p := New(schemadoc.NewParserOptions())
	doc := schemadoc.MustNewDocument(schemadoc.SourceFromBytes("empty"), []byte(document))
	_, err := p.Definitions(context.Background(), doc)
	if err == nil || !strings.Contains(err.Error(), "component schemas") {
		t.Fatalf("expected component schema error, got %v", err)
	}
}
