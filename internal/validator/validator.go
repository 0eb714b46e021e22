// Package validator checks a loosely-typed JSON document against resolved
// argument types. All problems are collected before returning, never
// fail-fast, so a form can surface every invalid field at once. Each error
// carries the path of the offending field.
package validator

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/didlang/didargs/internal/ir"
	"github.com/didlang/didargs/internal/parser"
)

// Validation error codes (E200-E299)
const (
	ErrInvalidJSON   = "E200" // document is not valid JSON
	ErrArity         = "E201" // top-level array arity mismatch
	ErrTypeMismatch  = "E202" // value has the wrong JSON shape
	ErrMissingField  = "E203" // required record field absent
	ErrUnknownField  = "E204" // record object carries an undeclared key
	ErrVariantKeys   = "E205" // variant object must have exactly one key
	ErrUnknownCase   = "E206" // variant key matches no declared case
	ErrBadNumber     = "E207" // not a decimal integer
	ErrNumberRange   = "E208" // integer outside the type's range
	ErrUnusableType  = "E209" // resolved type failed to parse
	ErrTooManyValues = "E210" // positional record array too long
)

// FieldError is one validation problem, keyed by the path of the offending
// field so a form can render one message per input.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e FieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Path, e.Message)
}

// Result holds the outcome of validating one JSON document.
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Check validates jsonText against the resolved argument types.
// Zero types means a zero-argument method: any input is acceptable.
// With one type the JSON root binds to it directly; with several, the root
// must be an array with one element per type.
func Check(argTypes []string, jsonText string) Result {
	if len(argTypes) == 0 {
		return Result{Valid: true}
	}

	val, err := ir.FromJSON([]byte(jsonText))
	if err != nil {
		return Result{Errors: []FieldError{{
			Code:    ErrInvalidJSON,
			Message: fmt.Sprintf("Invalid JSON: %v", err),
		}}}
	}

	exprs := make([]ir.TypeExpr, len(argTypes))
	var errs []FieldError
	for i, text := range argTypes {
		expr, err := parser.ParseType(text)
		if err != nil {
			errs = append(errs, FieldError{
				Path:    argPath(i),
				Code:    ErrUnusableType,
				Message: err.Error(),
			})
			continue
		}
		exprs[i] = expr
	}
	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	if len(exprs) == 1 {
		checkValue(exprs[0], val, argPath(0), &errs)
		return result(errs)
	}

	list, ok := val.(ir.List)
	if !ok {
		return Result{Errors: []FieldError{{
			Path:    "args",
			Code:    ErrArity,
			Message: fmt.Sprintf("method takes %d arguments, expected a JSON array", len(exprs)),
		}}}
	}
	if len(list) != len(exprs) {
		return Result{Errors: []FieldError{{
			Path:    "args",
			Code:    ErrArity,
			Message: fmt.Sprintf("method takes %d arguments, got %d", len(exprs), len(list)),
		}}}
	}
	for i, expr := range exprs {
		checkValue(expr, list[i], argPath(i), &errs)
	}
	return result(errs)
}

func result(errs []FieldError) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func argPath(i int) string {
	return "args[" + strconv.Itoa(i) + "]"
}

// checkValue validates one value against one type, appending every problem
// found in the subtree to errs.
func checkValue(t ir.TypeExpr, v ir.Value, path string, errs *[]FieldError) {
	switch typ := t.(type) {
	case ir.Optional:
		if _, isNull := v.(ir.Null); isNull {
			return
		}
		checkValue(typ.Inner, v, path, errs)

	case ir.Vector:
		list, ok := v.(ir.List)
		if !ok {
			mismatch(errs, path, "expected a JSON array for "+typ.String())
			return
		}
		for i, elem := range list {
			checkValue(typ.Elem, elem, path+"["+strconv.Itoa(i)+"]", errs)
		}

	case ir.Record:
		checkRecord(typ, v, path, errs)

	case ir.Variant:
		checkVariant(typ, v, path, errs)

	case ir.Primitive:
		checkPrimitive(typ, v, path, errs)

	case ir.AliasRef:
		// Resolved inputs never contain alias references; reaching one
		// means the caller skipped resolution.
		*errs = append(*errs, FieldError{
			Path:    path,
			Code:    ErrUnusableType,
			Message: fmt.Sprintf("unresolved alias %q in argument type", string(typ)),
		})
	}
}

// checkRecord accepts a JSON object (fields matched by name) or a JSON
// array (fields matched by declared order). Undeclared object keys are
// rejected: silently ignoring them hides typos in optional field names.
func checkRecord(typ ir.Record, v ir.Value, path string, errs *[]FieldError) {
	switch val := v.(type) {
	case ir.Map:
		declared := make(map[string]bool, len(typ.Fields))
		for _, f := range typ.Fields {
			declared[f.Name] = true
			fv, ok := val[f.Name]
			if !ok {
				if _, isOpt := f.Type.(ir.Optional); isOpt {
					continue
				}
				*errs = append(*errs, FieldError{
					Path:    path + "." + f.Name,
					Code:    ErrMissingField,
					Message: "missing required field of type " + f.Type.String(),
				})
				continue
			}
			checkValue(f.Type, fv, path+"."+f.Name, errs)
		}
		for _, key := range val.SortedKeys() {
			if !declared[key] {
				*errs = append(*errs, FieldError{
					Path:    path + "." + key,
					Code:    ErrUnknownField,
					Message: "field not declared in record",
				})
			}
		}

	case ir.List:
		if len(val) > len(typ.Fields) {
			*errs = append(*errs, FieldError{
				Path:    path,
				Code:    ErrTooManyValues,
				Message: fmt.Sprintf("record has %d fields, got %d values", len(typ.Fields), len(val)),
			})
		}
		for i, f := range typ.Fields {
			fieldPath := path + "." + f.Name
			if i >= len(val) {
				if _, isOpt := f.Type.(ir.Optional); isOpt {
					continue
				}
				*errs = append(*errs, FieldError{
					Path:    fieldPath,
					Code:    ErrMissingField,
					Message: "missing required field of type " + f.Type.String(),
				})
				continue
			}
			checkValue(f.Type, val[i], fieldPath, errs)
		}

	default:
		mismatch(errs, path, "expected a JSON object or array for record")
	}
}

// checkVariant requires a JSON object with exactly one key naming a
// declared case.
func checkVariant(typ ir.Variant, v ir.Value, path string, errs *[]FieldError) {
	m, ok := v.(ir.Map)
	if !ok {
		mismatch(errs, path, "expected a single-key JSON object for "+typ.String())
		return
	}
	if len(m) != 1 {
		*errs = append(*errs, FieldError{
			Path:    path,
			Code:    ErrVariantKeys,
			Message: fmt.Sprintf("variant requires exactly one case key, got %d", len(m)),
		})
		return
	}
	name := m.SortedKeys()[0]
	for _, c := range typ.Cases {
		if c.Name != name {
			continue
		}
		if c.Type == nil {
			if _, isNull := m[name].(ir.Null); !isNull {
				mismatch(errs, path+"."+name, "case carries no payload, expected null")
			}
			return
		}
		checkValue(c.Type, m[name], path+"."+name, errs)
		return
	}
	*errs = append(*errs, FieldError{
		Path:    path + "." + name,
		Code:    ErrUnknownCase,
		Message: "variant has no case " + name,
	})
}

func checkPrimitive(typ ir.Primitive, v ir.Value, path string, errs *[]FieldError) {
	name := string(typ)
	switch name {
	case "text":
		if _, ok := v.(ir.Text); !ok {
			mismatch(errs, path, "expected a JSON string")
		}
	case "bool":
		if _, ok := v.(ir.Bool); !ok {
			mismatch(errs, path, "expected true or false")
		}
	case "principal":
		if t, ok := v.(ir.Text); !ok || t == "" {
			mismatch(errs, path, "expected a non-empty principal string")
		}
	case "null":
		if _, ok := v.(ir.Null); !ok {
			mismatch(errs, path, "expected null")
		}
	case "reserved":
		// reserved absorbs any value
	case "empty":
		mismatch(errs, path, "no value inhabits empty")
	case "float32", "float64":
		if _, ok := v.(ir.Number); !ok {
			mismatch(errs, path, "expected a JSON number")
		}
	case "blob":
		checkBlob(v, path, errs)
	default:
		checkInteger(name, v, path, errs)
	}
}

// checkBlob accepts raw text or an array of byte-sized numbers.
func checkBlob(v ir.Value, path string, errs *[]FieldError) {
	switch val := v.(type) {
	case ir.Text:
		// raw bytes as string
	case ir.List:
		for i, elem := range val {
			checkInteger("nat8", elem, path+"["+strconv.Itoa(i)+"]", errs)
		}
	default:
		mismatch(errs, path, "expected a string or byte array for blob")
	}
}

// checkInteger validates nat/int and their sized forms. The value may be a
// JSON number or a decimal-digit string; the string form exists to carry
// magnitudes beyond float64 precision, so it gets the same range checks.
func checkInteger(name string, v ir.Value, path string, errs *[]FieldError) {
	var lit string
	switch n := v.(type) {
	case ir.Number:
		lit = string(n)
	case ir.Text:
		lit = string(n)
	default:
		mismatch(errs, path, "expected a JSON number or decimal string for "+name)
		return
	}

	n, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		*errs = append(*errs, FieldError{
			Path:    path,
			Code:    ErrBadNumber,
			Message: fmt.Sprintf("%q is not a decimal integer", lit),
		})
		return
	}

	lo, hi := integerBounds(name)
	if (lo != nil && n.Cmp(lo) < 0) || (hi != nil && n.Cmp(hi) > 0) {
		*errs = append(*errs, FieldError{
			Path:    path,
			Code:    ErrNumberRange,
			Message: fmt.Sprintf("%s is out of range for %s", lit, name),
		})
	}
}

// integerBounds returns the inclusive range of an integer type; nil means
// unbounded on that side.
func integerBounds(name string) (lo, hi *big.Int) {
	base := name
	bits := 0
	for _, width := range []int{8, 16, 32, 64} {
		suffix := strconv.Itoa(width)
		if strings.HasSuffix(name, suffix) && (name == "nat"+suffix || name == "int"+suffix) {
			base = strings.TrimSuffix(name, suffix)
			bits = width
			break
		}
	}

	if base == "nat" {
		lo = big.NewInt(0)
		if bits > 0 {
			hi = new(big.Int).Lsh(big.NewInt(1), uint(bits))
			hi.Sub(hi, big.NewInt(1))
		}
		return lo, hi
	}
	if bits > 0 {
		hi = new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		lo = new(big.Int).Neg(hi)
		hi.Sub(hi, big.NewInt(1))
	}
	return lo, hi
}

func mismatch(errs *[]FieldError, path, message string) {
	*errs = append(*errs, FieldError{Path: path, Code: ErrTypeMismatch, Message: message})
}
