// Package repository persists records in SQLite. Each repository binds one
// model definition: it migrates the storage table from the definition, runs
// saving validation before writes, and rebuilds records from stored rows
// through the read-direction casts.
package repository
