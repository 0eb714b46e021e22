package parser

import (
	"strings"

	"github.com/didlang/didargs/internal/ir"
)

// primitives is the set of leaf type names the grammar recognizes.
// Any other bare identifier is treated as an alias reference.
var primitives = map[string]bool{
	"nat": true, "nat8": true, "nat16": true, "nat32": true, "nat64": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"float32": true, "float64": true,
	"text": true, "bool": true, "principal": true,
	"null": true, "blob": true, "reserved": true, "empty": true,
}

// IsPrimitive reports whether name is a recognized leaf type name.
func IsPrimitive(name string) bool {
	return primitives[name]
}

// ParseType parses one type expression into an ir.TypeExpr.
// The input may contain // comments and arbitrary whitespace.
func ParseType(text string) (ir.TypeExpr, error) {
	cleaned := strings.TrimSpace(StripComments(text))
	if cleaned == "" {
		return nil, &ParseError{Expr: text, Message: "empty type expression"}
	}
	if err := EnsureBalanced(cleaned); err != nil {
		return nil, err
	}
	return parseType(cleaned)
}

// parseType assumes text is comment-free, trimmed, and balanced.
func parseType(text string) (ir.TypeExpr, error) {
	head, rest := splitHead(text)

	switch head {
	case "opt":
		if rest == "" {
			return nil, &ParseError{Expr: text, Message: "opt requires an inner type"}
		}
		inner, err := parseType(rest)
		if err != nil {
			return nil, err
		}
		return ir.Optional{Inner: inner}, nil

	case "vec":
		if rest == "" {
			return nil, &ParseError{Expr: text, Message: "vec requires an element type"}
		}
		elem, err := parseType(rest)
		if err != nil {
			return nil, err
		}
		return ir.Vector{Elem: elem}, nil

	case "record":
		body, err := BraceBody(text)
		if err != nil {
			return nil, err
		}
		fields, err := parseFieldEntries(body)
		if err != nil {
			return nil, err
		}
		return ir.Record{Fields: fields}, nil

	case "variant":
		body, err := BraceBody(text)
		if err != nil {
			return nil, err
		}
		cases, err := parseCaseEntries(body)
		if err != nil {
			return nil, err
		}
		return ir.Variant{Cases: cases}, nil
	}

	if !isIdent(text) {
		return nil, &ParseError{Expr: text, Message: "unexpected token"}
	}
	if primitives[text] {
		return ir.Primitive(text), nil
	}
	return ir.AliasRef(text), nil
}

// RecordFields extracts the ordered (name, type) pairs of a record
// expression. The outer `record` keyword and braces are optional, so both
// full expressions and bare bodies parse.
func RecordFields(text string) ([]ir.Field, error) {
	body, err := innerBody(text, "record")
	if err != nil {
		return nil, err
	}
	return parseFieldEntries(body)
}

// RecordFieldSpecs is RecordFields flattened to textual field specs for
// the encoder. Type texts come out normalized.
func RecordFieldSpecs(text string) ([]ir.FieldSpec, error) {
	fields, err := RecordFields(text)
	if err != nil {
		return nil, err
	}
	return ir.Record{Fields: fields}.FieldSpecs(), nil
}

// VariantCases extracts the ordered cases of a variant expression. The
// outer `variant` keyword and braces are optional.
func VariantCases(text string) ([]ir.Case, error) {
	body, err := innerBody(text, "variant")
	if err != nil {
		return nil, err
	}
	return parseCaseEntries(body)
}

// innerBody strips an optional leading keyword plus braces, leaving the
// raw field/case list.
func innerBody(text, keyword string) (string, error) {
	cleaned := strings.TrimSpace(StripComments(text))
	if err := EnsureBalanced(cleaned); err != nil {
		return "", err
	}
	head, _ := splitHead(cleaned)
	if head == keyword || strings.HasPrefix(cleaned, "{") {
		return BraceBody(cleaned)
	}
	return cleaned, nil
}

// parseFieldEntries splits a record body on top-level semicolons, then each
// entry on its first top-level colon. Declaration order is preserved.
func parseFieldEntries(body string) ([]ir.Field, error) {
	var fields []ir.Field
	for _, entry := range SplitTop(body, ';') {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, typeText, ok := cutTop(entry, ':')
		if !ok {
			return nil, &ParseError{Expr: entry, Message: "record field missing ':'"}
		}
		name = strings.TrimSpace(name)
		if !isIdent(name) {
			return nil, &ParseError{Expr: entry, Message: "invalid field name"}
		}
		fieldType, err := parseType(strings.TrimSpace(typeText))
		if err != nil {
			return nil, err
		}
		fields = append(fields, ir.Field{Name: name, Type: fieldType})
	}
	return fields, nil
}

// parseCaseEntries splits a variant body the same way; the payload type is
// optional per case.
func parseCaseEntries(body string) ([]ir.Case, error) {
	var cases []ir.Case
	for _, entry := range SplitTop(body, ';') {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, typeText, ok := cutTop(entry, ':')
		name = strings.TrimSpace(name)
		if !isIdent(name) {
			return nil, &ParseError{Expr: entry, Message: "invalid case name"}
		}
		if !ok {
			cases = append(cases, ir.Case{Name: name})
			continue
		}
		caseType, err := parseType(strings.TrimSpace(typeText))
		if err != nil {
			return nil, err
		}
		cases = append(cases, ir.Case{Name: name, Type: caseType})
	}
	return cases, nil
}

// splitHead returns the leading identifier of text and the trimmed
// remainder. A non-identifier first byte yields ("", text).
func splitHead(text string) (head, rest string) {
	i := 0
	for i < len(text) && isIdentByte(text[i]) {
		i++
	}
	return text[:i], strings.TrimSpace(text[i:])
}

// IsIdentifier reports whether s is a bare identifier:
// [A-Za-z_][A-Za-z0-9_]*.
func IsIdentifier(s string) bool {
	return isIdent(s)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
