// Package cast implements the two-direction cast dispatch tables: read casts
// turn storage representations into native Go values, write casts turn native
// values back into their storage form. Unknown tags never fail; they simply
// skip casting.
package cast
