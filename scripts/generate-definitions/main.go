package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	modelschema "github.com/goliatone/go-modelschema"
	pkgopenapi "github.com/goliatone/go-modelschema/pkg/openapi"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

func main() {
	var (
		schemaPath = flag.String("schema", "internal/openapi/testdata/blog.yaml", "OpenAPI schema path")
		outputPath = flag.String("output", "internal/openapi/testdata/blog_definitions.golden.json", "output path for the definitions snapshot")
	)
	flag.Parse()

	if err := run(*schemaPath, *outputPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(schemaPath, outputPath string) error {
	adapter := pkgopenapi.NewAdapter(modelschema.NewLoader(), modelschema.NewOpenAPIParser())

	definitions, err := adapter.Definitions(context.Background(), schemadoc.SourceFromFile(schemaPath))
	if err != nil {
		return fmt.Errorf("parse definitions: %w", err)
	}

	payload, err := json.MarshalIndent(definitions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode definitions: %w", err)
	}
	payload = append(payload, '\n')

	if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	fmt.Printf("✓ Wrote definitions snapshot to %s\n", outputPath)
	return nil
}
