// Package htmldoc emits standalone HTML documentation pages for model
// definitions. Pages honor theme configuration when present: CSS variables
// derived from theme tokens, partial overrides for the page chrome, and
// asset URLs resolved through the theme's asset pipeline.
package htmldoc
