package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	modelschema "github.com/goliatone/go-modelschema"
	"github.com/goliatone/go-modelschema/pkg/orchestrator"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

func main() {
	source := flag.String("source", "schema.yaml", "schema document path or URL")
	format := flag.String("format", "", "document format: native or openapi (detected when empty)")
	model := flag.String("model", "", "model to emit (required when the document declares several)")
	emitter := flag.String("emitter", "markdown", "emitter to use: sql, markdown or html")
	theme := flag.String("theme", "", "theme applied to themed emitters")
	variant := flag.String("variant", "", "theme variant, e.g. light or dark")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	options, err := formatOptions(*format)
	if err != nil {
		log.Fatalf("%v", err)
	}

	gen := orchestrator.New(options...)

	req := orchestrator.Request{
		Source:       src,
		Model:        *model,
		Emitter:      *emitter,
		ThemeName:    *theme,
		ThemeVariant: *variant,
	}

	out, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate output: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
	} else {
		fmt.Println(string(out))
	}
}

func parseSource(raw string) schemadoc.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schemadoc.SourceFromURL(path)
	}
	return schemadoc.SourceFromFile(path)
}

func formatOptions(format string) ([]orchestrator.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "":
		return nil, nil
	case "native", "yaml":
		return []orchestrator.Option{orchestrator.WithParser(modelschema.NewParser())}, nil
	case "openapi":
		return []orchestrator.Option{orchestrator.WithParser(modelschema.NewOpenAPIParser())}, nil
	default:
		return nil, fmt.Errorf("unknown format: %q", format)
	}
}
