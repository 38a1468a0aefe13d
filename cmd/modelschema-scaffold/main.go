package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-modelschema/internal/scaffold"
)

func main() {
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	doc, err := scaffold.New(nil).Run(context.Background())
	switch {
	case errors.Is(err, scaffold.ErrAborted):
		fmt.Fprintln(os.Stderr, "Aborted.")
		os.Exit(1)
	case err != nil:
		log.Fatalf("Failed to author model: %v", err)
	}

	raw, err := doc.Marshal()
	if err != nil {
		log.Fatalf("Failed to encode document: %v", err)
	}

	if err := write(*output, raw); err != nil {
		log.Fatalf("Failed to write schema: %v", err)
	}
}

// write sends the document to path, or to stdout when no path was given.
// Only the confirmation note goes to stderr.
func write(path string, raw []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(raw)
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Schema written to %s\n", path)
	return nil
}
