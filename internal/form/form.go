// Package form projects already-typed form values onto a canonical JSON
// text for downstream validation and encoding. Scalars arrive as strings
// (the shape a form field produces), records as nested maps; the resolved
// argument types drive coercion, so "42" in a nat64 field becomes the JSON
// number 42 while oversized magnitudes stay as digit strings the validator
// accepts back.
package form

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/didlang/didargs/internal/ir"
	"github.com/didlang/didargs/internal/parser"
)

// maxSafeInteger is the largest integer a float64-backed JSON consumer can
// hold exactly. Larger magnitudes are emitted as digit strings.
var maxSafeInteger = big.NewInt(1<<53 - 1)

// Model holds the resolved argument types of one method.
type Model struct {
	ArgTypes []string
}

// New builds a Model from resolved argument types.
func New(argTypes []string) Model {
	return Model{ArgTypes: argTypes}
}

// BuildJSON renders the per-argument values as a JSON document: empty for
// zero-argument methods, the bare value for one argument, a positional
// array otherwise. Record fields are emitted in declared order.
func (m Model) BuildJSON(values []ir.Value) (string, error) {
	if len(values) != len(m.ArgTypes) {
		return "", fmt.Errorf("method takes %d arguments, got %d values", len(m.ArgTypes), len(values))
	}
	if len(m.ArgTypes) == 0 {
		return "", nil
	}

	var b strings.Builder
	if len(m.ArgTypes) == 1 {
		if err := m.writeValue(&b, m.ArgTypes[0], values[0]); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	b.WriteByte('[')
	for i, t := range m.ArgTypes {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := m.writeValue(&b, t, values[i]); err != nil {
			return "", fmt.Errorf("argument %d: %w", i, err)
		}
	}
	b.WriteByte(']')
	return b.String(), nil
}

func (m Model) writeValue(b *strings.Builder, typeText string, v ir.Value) error {
	expr, err := parser.ParseType(typeText)
	if err != nil {
		return err
	}
	return writeTyped(b, expr, v)
}

func writeTyped(b *strings.Builder, t ir.TypeExpr, v ir.Value) error {
	switch typ := t.(type) {
	case ir.Optional:
		if _, isNull := v.(ir.Null); isNull {
			b.WriteString("null")
			return nil
		}
		return writeTyped(b, typ.Inner, v)

	case ir.Vector:
		list, ok := v.(ir.List)
		if !ok {
			return fmt.Errorf("expected a list for %s, got %T", typ.String(), v)
		}
		b.WriteByte('[')
		for i, elem := range list {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeTyped(b, typ.Elem, elem); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		b.WriteByte(']')
		return nil

	case ir.Record:
		return writeRecord(b, typ, v)

	case ir.Variant:
		m, ok := v.(ir.Map)
		if !ok || len(m) != 1 {
			return fmt.Errorf("variant value must be a single-key map")
		}
		name := m.SortedKeys()[0]
		for _, c := range typ.Cases {
			if c.Name != name {
				continue
			}
			b.WriteByte('{')
			b.WriteString(jsonString(name))
			b.WriteByte(':')
			if c.Type == nil {
				b.WriteString("null")
			} else if err := writeTyped(b, c.Type, m[name]); err != nil {
				return fmt.Errorf("case %q: %w", name, err)
			}
			b.WriteByte('}')
			return nil
		}
		return fmt.Errorf("unknown variant case %q", name)

	case ir.Primitive:
		return writePrimitive(b, typ, v)

	default:
		return fmt.Errorf("cannot project unresolved type %s", t.String())
	}
}

// writeRecord emits a JSON object keyed by field name, in declared field
// order. Values may be positional lists or maps keyed by name or
// stringified index, mirroring the encoder's input contract.
func writeRecord(b *strings.Builder, typ ir.Record, v ir.Value) error {
	fieldValue := func(i int, name string) (ir.Value, bool) {
		switch val := v.(type) {
		case ir.List:
			if i < len(val) {
				return val[i], true
			}
			return nil, false
		case ir.Map:
			if fv, ok := val[name]; ok {
				return fv, true
			}
			fv, ok := val[strconv.Itoa(i)]
			return fv, ok
		default:
			return nil, false
		}
	}
	switch v.(type) {
	case ir.List, ir.Map:
	default:
		return fmt.Errorf("record value must be a list or map, got %T", v)
	}

	b.WriteByte('{')
	wrote := false
	for i, f := range typ.Fields {
		fv, ok := fieldValue(i, f.Name)
		if !ok {
			if _, isOpt := f.Type.(ir.Optional); isOpt {
				continue
			}
			return fmt.Errorf("missing field %q", f.Name)
		}
		if wrote {
			b.WriteByte(',')
		}
		b.WriteString(jsonString(f.Name))
		b.WriteByte(':')
		if err := writeTyped(b, f.Type, fv); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		wrote = true
	}
	b.WriteByte('}')
	return nil
}

func writePrimitive(b *strings.Builder, typ ir.Primitive, v ir.Value) error {
	name := string(typ)
	switch name {
	case "text", "principal", "blob":
		t, ok := v.(ir.Text)
		if !ok {
			return fmt.Errorf("expected text for %s, got %T", name, v)
		}
		b.WriteString(jsonString(string(t)))
		return nil

	case "bool":
		switch val := v.(type) {
		case ir.Bool:
			b.WriteString(strconv.FormatBool(bool(val)))
			return nil
		case ir.Text:
			if val == "true" || val == "false" {
				b.WriteString(string(val))
				return nil
			}
		}
		return fmt.Errorf("expected bool, got %T", v)

	case "null":
		b.WriteString("null")
		return nil

	case "float32", "float64":
		lit, err := numberLiteral(v)
		if err != nil {
			return err
		}
		if _, perr := strconv.ParseFloat(lit, 64); perr != nil {
			return fmt.Errorf("%q is not a number", lit)
		}
		b.WriteString(lit)
		return nil
	}

	// Integer primitives: bare JSON number while it fits float64 exactly,
	// digit string beyond that.
	lit, err := numberLiteral(v)
	if err != nil {
		return err
	}
	n, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return fmt.Errorf("%q is not a decimal integer", lit)
	}
	if new(big.Int).Abs(n).Cmp(maxSafeInteger) > 0 {
		b.WriteString(jsonString(lit))
	} else {
		b.WriteString(n.String())
	}
	return nil
}

func numberLiteral(v ir.Value) (string, error) {
	switch n := v.(type) {
	case ir.Number:
		return string(n), nil
	case ir.Text:
		return strings.TrimSpace(string(n)), nil
	default:
		return "", fmt.Errorf("expected a numeric value, got %T", v)
	}
}

// jsonString quotes s as a JSON string. Marshal cannot fail for a string.
func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
