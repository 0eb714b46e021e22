// Package encoder renders validated argument values into the IDL's textual
// literal syntax: a parenthesized argument tuple of record/variant/vec/opt
// literals, with text double-quoted and numeric literals carrying a
// `: type` annotation.
//
// The encoder assumes its inputs already passed validation. Arity
// mismatches between field specs and supplied values are caller bugs and
// fail immediately rather than padding or truncating.
package encoder
