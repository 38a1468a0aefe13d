package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	modelschema "github.com/goliatone/go-modelschema"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

func main() {
	var (
		schemaPath = flag.String("schema", "examples/fixtures/blog.yaml", "schema document path")
		modelName  = flag.String("model", "Article", "model to document")
		outputPath = flag.String("output", "docs/models/article.md", "markdown output path")
	)
	flag.Parse()

	if err := run(*schemaPath, *modelName, *outputPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(schemaPath, modelName, outputPath string) error {
	docs, err := modelschema.GenerateDocs(context.Background(), schemadoc.SourceFromFile(schemaPath), modelName)
	if err != nil {
		return fmt.Errorf("generate docs for %s: %w", modelName, err)
	}
	if err := os.WriteFile(outputPath, docs, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	fmt.Printf("✓ Wrote %s reference (%d bytes) to %s\n", modelName, len(docs), outputPath)
	return nil
}
