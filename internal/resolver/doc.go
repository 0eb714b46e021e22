// Package resolver builds the alias and method tables of an IDL source and
// expands method parameter types down to self-contained expressions.
//
// A Service is immutable once parsed: the alias table is constructed during
// Parse and only read afterwards, so a Service is safe for concurrent use.
// Alias expansion is bounded by a depth guard; cyclic or pathologically
// deep alias chains fail deterministically instead of looping.
package resolver
