// Package parser turns textual IDL type expressions into ir.TypeExpr trees.
//
// It owns all delimiter-aware scanning: comment stripping, balanced
// brace/paren matching, and top-level separator splitting. The resolver,
// validator, and encoder all route through this package so that every
// component agrees on what counts as a top-level separator versus one
// nested inside a record body or a string literal.
package parser
