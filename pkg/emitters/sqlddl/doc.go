// Package sqlddl emits SQLite CREATE TABLE statements for model definitions.
// Column types follow the storage form of each cast: structured casts land in
// TEXT columns as JSON, booleans and timestamps in INTEGER columns.
package sqlddl
