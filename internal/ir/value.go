package ir

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface representing the dynamic argument values that
// flow between the form layer, the validator, and the encoder.
// Only Null, Text, Number, Bool, List, and Map implement it.
//
// There is deliberately no Float case: numbers keep their decimal literal
// text (see Number) so arbitrary magnitudes survive intact.
type Value interface {
	value() // Sealed - only these types implement it.
}

// Null represents an absent/null value (the `opt` "none" case).
type Null struct{}

func (Null) value() {}

// Text represents a string value.
type Text string

func (Text) value() {}

// Number represents a numeric value as its decimal literal text,
// e.g. "42", "-7", "100000000000000000000", "1.5".
// Keeping the text avoids float64 precision loss on big integers.
type Number string

func (Number) value() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// List represents an ordered sequence of values.
type List []Value

func (List) value() {}

// Map represents string-keyed values. Record and variant inputs arrive in
// this shape. Use SortedKeys for deterministic iteration.
type Map map[string]Value

func (Map) value() {}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings compares UTF-8 bytes, which orders some non-ASCII
// keys differently.
func (m Map) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

// compareUTF16 compares two strings by UTF-16 code units as RFC 8785
// requires for canonical key ordering.
func compareUTF16(a, b string) int {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			if ua[i] < ub[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ua) < len(ub):
		return -1
	case len(ua) > len(ub):
		return 1
	default:
		return 0
	}
}
