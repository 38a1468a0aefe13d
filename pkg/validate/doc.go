// Package validate implements a pipe-rule validator in the Laravel style:
// rules are expressed as pipe-separated strings per field ("required|min:2"),
// failures accumulate in a MessageBag keyed by field. The model layer feeds
// it derived rule strings; it is equally usable on its own.
package validate
