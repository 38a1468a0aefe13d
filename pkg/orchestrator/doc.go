// Package orchestrator coordinates the pipeline from schema document to
// emitted output: load, detect format, parse, decorate, emit. It applies
// sensible defaults so a single constructor call yields a working pipeline,
// while every stage stays open to dependency injection.
package orchestrator
