package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/orchestrator"
	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
	"github.com/goliatone/go-modelschema/pkg/validate"
)

type violation struct {
	file     string
	location string
	message  string
}

func (v violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.file, v.location, v.message)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/fixtures/blog.yaml", "examples/fixtures/petstore.json"}
	}

	ctx := context.Background()
	gen := orchestrator.New()

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, gen, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}
	if len(violations) == 0 {
		return
	}

	lines := make([]string, len(violations))
	for i, v := range violations {
		lines[i] = v.String()
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(os.Stderr, line)
	}
	os.Exit(1)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(out, "\nLint schema documents for declaration problems.")
}

func lintFile(ctx context.Context, gen *orchestrator.Orchestrator, path string) ([]violation, error) {
	definitions, err := gen.Definitions(ctx, orchestrator.Request{
		Source: schemadoc.SourceFromFile(path),
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	var result []violation
	for _, name := range names {
		result = append(result, lintDefinition(path, definitions[name])...)
	}
	return result, nil
}

func lintDefinition(file string, def schema.Definition) []violation {
	var result []violation
	loc := "model " + def.Name

	if err := def.Validate(); err != nil {
		result = append(result, violation{file: file, location: loc, message: err.Error()})
	}

	for _, name := range def.FieldNames() {
		field, _ := def.Field(name)
		fieldLoc := loc + ", field " + name

		if field.Guarded && field.Fillable {
			result = append(result, violation{
				file:     file,
				location: fieldLoc,
				message:  "declared both guarded and fillable",
			})
		}

		if field.Cast != "" && !cast.Default().HasRead(field.Cast) {
			result = append(result, violation{
				file:     file,
				location: fieldLoc,
				message:  fmt.Sprintf("unknown cast tag %q (known: %s)", field.Cast, strings.Join(cast.Default().Tags(), ", ")),
			})
		}

		result = append(result, lintRules(file, fieldLoc, field.Rules)...)
	}

	return result
}

// numericParams maps rules to the parameter count they require, every
// parameter numeric.
var numericParams = map[string]int{
	"min":     1,
	"max":     1,
	"size":    1,
	"gt":      1,
	"gte":     1,
	"lt":      1,
	"lte":     1,
	"between": 2,
}

func lintRules(file, location, rules string) []violation {
	trimmed := strings.TrimSpace(rules)
	if trimmed == "" {
		return nil
	}

	var result []violation
	bounds := map[string]float64{}

	for _, segment := range strings.Split(trimmed, "|") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  "empty rule segment",
			})
			continue
		}

		name, raw, hasParams := strings.Cut(segment, ":")
		name = strings.ToLower(strings.TrimSpace(name))

		if !validate.KnownRule(name) {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  fmt.Sprintf("unknown rule %q (known: %s)", name, strings.Join(validate.RuleNames(), ", ")),
			})
			continue
		}

		want, numeric := numericParams[name]
		if !numeric {
			continue
		}

		var params []string
		if hasParams {
			params = strings.Split(raw, ",")
		}
		if len(params) != want {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  fmt.Sprintf("rule %q requires %d numeric parameter(s)", name, want),
			})
			continue
		}

		ok := true
		values := make([]float64, 0, want)
		for _, param := range params {
			value, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
			if err != nil {
				result = append(result, violation{
					file:     file,
					location: location,
					message:  fmt.Sprintf("rule %q parameter %q is not numeric", name, strings.TrimSpace(param)),
				})
				ok = false
				break
			}
			values = append(values, value)
		}
		if ok && len(values) == 1 {
			bounds[name] = values[0]
		}
	}

	if minVal, ok := bounds["min"]; ok {
		if maxVal, ok := bounds["max"]; ok && minVal > maxVal {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  fmt.Sprintf("min %v exceeds max %v", minVal, maxVal),
			})
		}
	}

	return result
}
