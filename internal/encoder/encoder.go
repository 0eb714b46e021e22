package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/didlang/didargs/internal/ir"
	"github.com/didlang/didargs/internal/parser"
)

// ArgsFromValue renders the full argument tuple for a method. With one
// resolved type the value binds to it directly; with several, the value
// must be a positional list with one element per type.
func ArgsFromValue(argTypes []string, v ir.Value) (string, error) {
	switch len(argTypes) {
	case 0:
		return "()", nil
	case 1:
		lit, err := ValueLiteral(argTypes[0], v)
		if err != nil {
			return "", err
		}
		return "(" + lit + ")", nil
	}

	list, ok := v.(ir.List)
	if !ok {
		return "", fmt.Errorf("method takes %d arguments, value must be a list", len(argTypes))
	}
	if len(list) != len(argTypes) {
		return "", fmt.Errorf("method takes %d arguments, got %d", len(argTypes), len(list))
	}
	parts := make([]string, len(list))
	for i, t := range argTypes {
		lit, err := ValueLiteral(t, list[i])
		if err != nil {
			return "", fmt.Errorf("argument %d: %w", i, err)
		}
		parts[i] = lit
	}
	return ComposeArgs(parts), nil
}

// ComposeArgs joins pre-formatted argument literals into a call tuple.
// Blank entries are treated as absent; an all-blank or empty input yields
// the empty tuple `()`.
func ComposeArgs(values []string) string {
	var parts []string
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			parts = append(parts, t)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RecordLiteral renders one record literal from flattened field specs and
// raw per-field strings supplied in declaration order. Text fields are
// quoted, numeric fields get a `: type` suffix, bool fields pass through,
// and anything else is assumed pre-formatted by the caller.
func RecordLiteral(fields []ir.FieldSpec, raw []string) (string, error) {
	if len(fields) != len(raw) {
		return "", fmt.Errorf("record literal: %d fields but %d values", len(fields), len(raw))
	}
	entries := make([]string, len(fields))
	for i, f := range fields {
		entries[i] = f.Name + " = " + scalarLiteral(f.Type, raw[i])
	}
	return "record { " + strings.Join(entries, "; ") + " }", nil
}

// SingleRecordArg wraps RecordLiteral in an argument tuple, for methods
// taking exactly one record parameter.
func SingleRecordArg(fields []ir.FieldSpec, raw []string) (string, error) {
	rec, err := RecordLiteral(fields, raw)
	if err != nil {
		return "", err
	}
	return "(" + rec + ")", nil
}

// RecordFromValue accepts either a positional list (index -> field by
// declaration order) or a map keyed by field name or stringified index,
// and normalizes both shapes into the same RecordLiteral call. A missing
// key is only legal for opt fields, which encode as `null`.
func RecordFromValue(fields []ir.FieldSpec, v ir.Value) (string, error) {
	raw := make([]string, len(fields))

	switch val := v.(type) {
	case ir.List:
		if len(val) != len(fields) {
			return "", fmt.Errorf("record value: %d fields but %d elements", len(fields), len(val))
		}
		for i, f := range fields {
			lit, err := fieldRaw(f.Type, val[i])
			if err != nil {
				return "", fmt.Errorf("field %q: %w", f.Name, err)
			}
			raw[i] = lit
		}

	case ir.Map:
		for i, f := range fields {
			fv, ok := val[f.Name]
			if !ok {
				fv, ok = val[strconv.Itoa(i)]
			}
			if !ok {
				if strings.HasPrefix(f.Type, "opt ") {
					raw[i] = "null"
					continue
				}
				return "", fmt.Errorf("record value: missing field %q", f.Name)
			}
			lit, err := fieldRaw(f.Type, fv)
			if err != nil {
				return "", fmt.Errorf("field %q: %w", f.Name, err)
			}
			raw[i] = lit
		}

	default:
		return "", fmt.Errorf("record value must be a list or map, got %T", v)
	}

	return RecordLiteral(fields, raw)
}

// fieldRaw produces the raw string RecordLiteral expects for one field:
// plain text for text fields, digits for numerics, true/false for bools,
// and a complete literal for composite types.
func fieldRaw(typeText string, v ir.Value) (string, error) {
	switch typeText {
	case "text":
		if t, ok := v.(ir.Text); ok {
			return string(t), nil
		}
		return "", fmt.Errorf("expected text value, got %T", v)
	case "bool":
		switch b := v.(type) {
		case ir.Bool:
			if b {
				return "true", nil
			}
			return "false", nil
		case ir.Text:
			if b == "true" || b == "false" {
				return string(b), nil
			}
		}
		return "", fmt.Errorf("expected bool value, got %T", v)
	}
	if isNumericType(typeText) {
		return numberText(v)
	}
	return ValueLiteral(typeText, v)
}

// ValueLiteral renders a complete literal for one value against its
// resolved type expression.
func ValueLiteral(typeText string, v ir.Value) (string, error) {
	expr, err := parser.ParseType(typeText)
	if err != nil {
		return "", err
	}
	return valueLiteral(expr, v)
}

func valueLiteral(t ir.TypeExpr, v ir.Value) (string, error) {
	switch typ := t.(type) {
	case ir.Primitive:
		return primitiveLiteral(typ, v)

	case ir.Optional:
		if _, isNull := v.(ir.Null); isNull {
			return "null", nil
		}
		inner, err := valueLiteral(typ.Inner, v)
		if err != nil {
			return "", err
		}
		return "opt " + inner, nil

	case ir.Vector:
		list, ok := v.(ir.List)
		if !ok {
			return "", fmt.Errorf("expected list for %s, got %T", typ.String(), v)
		}
		if len(list) == 0 {
			return "vec {}", nil
		}
		elems := make([]string, len(list))
		for i, elem := range list {
			lit, err := valueLiteral(typ.Elem, elem)
			if err != nil {
				return "", fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = lit
		}
		return "vec { " + strings.Join(elems, "; ") + " }", nil

	case ir.Record:
		return RecordFromValue(typ.FieldSpecs(), v)

	case ir.Variant:
		m, ok := v.(ir.Map)
		if !ok || len(m) != 1 {
			return "", fmt.Errorf("variant value must be a single-key map")
		}
		name := m.SortedKeys()[0]
		for _, c := range typ.Cases {
			if c.Name != name {
				continue
			}
			if c.Type == nil {
				return "variant { " + name + " }", nil
			}
			payload, err := valueLiteral(c.Type, m[name])
			if err != nil {
				return "", fmt.Errorf("case %q: %w", name, err)
			}
			return "variant { " + name + " = " + payload + " }", nil
		}
		return "", fmt.Errorf("unknown variant case %q", name)

	default:
		return "", fmt.Errorf("cannot encode against unresolved type %s", t.String())
	}
}

func primitiveLiteral(p ir.Primitive, v ir.Value) (string, error) {
	name := string(p)
	switch name {
	case "text":
		t, ok := v.(ir.Text)
		if !ok {
			return "", fmt.Errorf("expected text value, got %T", v)
		}
		return strconv.Quote(string(t)), nil
	case "bool":
		b, ok := v.(ir.Bool)
		if !ok {
			return "", fmt.Errorf("expected bool value, got %T", v)
		}
		if b {
			return "true", nil
		}
		return "false", nil
	case "principal":
		t, ok := v.(ir.Text)
		if !ok {
			return "", fmt.Errorf("expected principal text, got %T", v)
		}
		return `principal "` + string(t) + `"`, nil
	case "null":
		if _, ok := v.(ir.Null); !ok {
			return "", fmt.Errorf("expected null value, got %T", v)
		}
		return "null", nil
	case "blob":
		t, ok := v.(ir.Text)
		if !ok {
			return "", fmt.Errorf("expected blob text, got %T", v)
		}
		return "blob " + strconv.Quote(string(t)), nil
	}
	if isNumericType(name) {
		digits, err := numberText(v)
		if err != nil {
			return "", err
		}
		return digits + " : " + name, nil
	}
	return "", fmt.Errorf("cannot encode primitive type %s", name)
}

// numberText accepts a Number or a decimal string (big magnitudes arrive
// as strings) and returns the bare literal digits.
func numberText(v ir.Value) (string, error) {
	switch n := v.(type) {
	case ir.Number:
		return string(n), nil
	case ir.Text:
		if string(n) == "" {
			return "", fmt.Errorf("empty numeric string")
		}
		return string(n), nil
	default:
		return "", fmt.Errorf("expected numeric value, got %T", v)
	}
}

// numericTypes are the primitives that take a `: type` literal suffix.
var numericTypes = map[string]bool{
	"nat": true, "nat8": true, "nat16": true, "nat32": true, "nat64": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"float32": true, "float64": true,
}

func isNumericType(name string) bool {
	return numericTypes[name]
}

// scalarLiteral formats one raw field string per the field's type.
// Already-quoted text passes through untouched; saved calls can round-trip
// their own output.
func scalarLiteral(typeText, raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case typeText == "text":
		if strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) && len(raw) >= 2 {
			return raw
		}
		return strconv.Quote(raw)
	case typeText == "principal":
		return `principal "` + raw + `"`
	case isNumericType(typeText):
		return raw + " : " + typeText
	default:
		return raw
	}
}
