package modelschema_test

import (
	"context"
	"strings"
	"testing"

	modelschema "github.com/goliatone/go-modelschema"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

const articleDocument = `models:
  Article:
    fields:
      id:
        cast: integer
      title:
        cast: string
        rules: required|min:2
      published:
        cast: boolean
        default: false
`

func TestGenerateFromDocumentEmitsDDL(t *testing.T) {
	doc := schemadoc.MustNewDocument(schemadoc.SourceFromBytes("inline"), []byte(articleDocument))

	output, err := modelschema.GenerateFromDocument(context.Background(), doc, "Article", "sql")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	ddl := string(output)

	if !strings.Contains(ddl, "CREATE TABLE IF NOT EXISTS articles") {
		t.Fatalf("expected create table statement, got:\n%s", ddl)
	}
	if !strings.Contains(ddl, "title TEXT NOT NULL") {
		t.Fatalf("expected title column with constraint, got:\n%s", ddl)
	}
}

func TestGenerateFromDocumentEmitsMarkdown(t *testing.T) {
	doc := schemadoc.MustNewDocument(schemadoc.SourceFromBytes("inline"), []byte(articleDocument))

	output, err := modelschema.GenerateFromDocument(context.Background(), doc, "Article", "markdown")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(output), "# Article") {
		t.Fatalf("expected markdown heading, got:\n%s", output)
	}
}

func TestNewAppliesConventions(t *testing.T) {
	def := modelschema.New("Article", map[string]modelschema.Field{
		"id":    {Cast: "integer"},
		"title": {Cast: "string"},
	})

	if def.Table != "articles" {
		t.Fatalf("expected table articles, got %q", def.Table)
	}
	if def.PrimaryKey != "id" {
		t.Fatalf("expected primary key id, got %q", def.PrimaryKey)
	}
}

func TestNewRecordRoundTrip(t *testing.T) {
	def := modelschema.New("Article", map[string]modelschema.Field{
		"title": {Cast: "string", Rules: "required"},
	})

	rec := modelschema.NewRecord(def)
	if err := rec.Set("title", "Hello"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := rec.Get("title"); got != "Hello" {
		t.Fatalf("expected title Hello, got %v", got)
	}
	if !rec.SavingValidation() {
		t.Fatalf("expected record to validate: %v", rec.InvalidMessage())
	}
}
