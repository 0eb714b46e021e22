package ir

import "strings"

// TypeExpr is a sealed interface over the structured forms of one IDL type
// expression. Only Primitive, Vector, Optional, Record, Variant, and
// AliasRef implement it.
//
// String() emits the normalized textual form; parsing a normalized
// expression and re-serializing it is the identity.
type TypeExpr interface {
	typeExpr() // Sealed - only these types implement it.
	String() string
}

// Primitive is a leaf type name: nat64, text, bool, principal, ...
type Primitive string

func (Primitive) typeExpr() {}

func (p Primitive) String() string { return string(p) }

// Vector is `vec T`.
type Vector struct {
	Elem TypeExpr
}

func (Vector) typeExpr() {}

func (v Vector) String() string { return "vec " + v.Elem.String() }

// Optional is `opt T`.
type Optional struct {
	Inner TypeExpr
}

func (Optional) typeExpr() {}

func (o Optional) String() string { return "opt " + o.Inner.String() }

// Field is one named record field with its structured type.
type Field struct {
	Name string
	Type TypeExpr
}

// Record is `record { name : type; ... }`. Field order is declaration
// order and is semantically significant: positional inputs bind by it.
type Record struct {
	Fields []Field
}

func (Record) typeExpr() {}

func (r Record) String() string {
	if len(r.Fields) == 0 {
		return "record {}"
	}
	var b strings.Builder
	b.WriteString("record { ")
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Name)
		b.WriteString(" : ")
		b.WriteString(f.Type.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Case is one variant case. Type is nil for bare cases (`variant { A }`).
type Case struct {
	Name string
	Type TypeExpr
}

// Variant is `variant { A; B : type; ... }`. Exactly one case is present
// in any value of the type.
type Variant struct {
	Cases []Case
}

func (Variant) typeExpr() {}

func (v Variant) String() string {
	if len(v.Cases) == 0 {
		return "variant {}"
	}
	var b strings.Builder
	b.WriteString("variant { ")
	for i, c := range v.Cases {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(c.Name)
		if c.Type != nil {
			b.WriteString(" : ")
			b.WriteString(c.Type.String())
		}
	}
	b.WriteString(" }")
	return b.String()
}

// AliasRef is an unresolved reference to a `type NAME = ...` declaration.
// Resolution replaces every AliasRef; a resolved tree contains none.
type AliasRef string

func (AliasRef) typeExpr() {}

func (a AliasRef) String() string { return string(a) }

// FieldSpec is a flattened field description: the field name plus its
// already-resolved type as normalized text. Ordinal position in a
// []FieldSpec is the field's positional index for array-style inputs.
type FieldSpec struct {
	Name string
	Type string
}

// FieldSpecs flattens a record's fields into textual specs for the encoder.
func (r Record) FieldSpecs() []FieldSpec {
	specs := make([]FieldSpec, len(r.Fields))
	for i, f := range r.Fields {
		specs[i] = FieldSpec{Name: f.Name, Type: f.Type.String()}
	}
	return specs
}

// HasAliasRefs reports whether any AliasRef node remains in the tree.
// Resolved argument types must return false.
func HasAliasRefs(t TypeExpr) bool {
	switch v := t.(type) {
	case AliasRef:
		return true
	case Vector:
		return HasAliasRefs(v.Elem)
	case Optional:
		return HasAliasRefs(v.Inner)
	case Record:
		for _, f := range v.Fields {
			if HasAliasRefs(f.Type) {
				return true
			}
		}
		return false
	case Variant:
		for _, c := range v.Cases {
			if c.Type != nil && HasAliasRefs(c.Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
