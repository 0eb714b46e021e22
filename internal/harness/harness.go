package harness

import (
	"fmt"
	"strings"

	"github.com/didlang/didargs/internal/encoder"
	"github.com/didlang/didargs/internal/ir"
	"github.com/didlang/didargs/internal/resolver"
	"github.com/didlang/didargs/internal/validator"
)

// Result captures every stage of one scenario execution.
type Result struct {
	Method      string
	ArgTypes    []string
	ResultTypes []string
	Valid       bool
	Errors      []string // validator.FieldError.Error() strings, in order
	Encoded     string   // set only when validation passed
}

// Run executes the full pipeline for a scenario: parse, resolve, validate,
// and (when valid) encode. A resolution failure aborts the run; validation
// failures do not, they are part of the result.
func (s *Scenario) Run() (*Result, error) {
	svc, err := resolver.Parse(s.IDL)
	if err != nil {
		return nil, fmt.Errorf("parsing IDL: %w", err)
	}

	argTypes, err := svc.ResolveArgTypes(s.Method)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", s.Method, err)
	}
	resultTypes, err := svc.ResolveResultTypes(s.Method)
	if err != nil {
		return nil, fmt.Errorf("resolving %s results: %w", s.Method, err)
	}

	result := &Result{
		Method:      s.Method,
		ArgTypes:    argTypes,
		ResultTypes: resultTypes,
	}

	check := validator.Check(argTypes, s.JSON)
	result.Valid = check.Valid
	for _, fe := range check.Errors {
		result.Errors = append(result.Errors, fe.Error())
	}
	if !check.Valid {
		return result, nil
	}

	var value ir.Value = ir.Null{}
	if len(argTypes) > 0 {
		value, err = ir.FromJSON([]byte(s.JSON))
		if err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
	}
	result.Encoded, err = encoder.ArgsFromValue(argTypes, value)
	if err != nil {
		return nil, fmt.Errorf("encoding arguments: %w", err)
	}

	return result, nil
}

// Verify checks the result against the scenario's expect clause and returns
// one description per mismatch. An empty slice means the scenario passed.
func (s *Scenario) Verify(r *Result) []string {
	var failures []string

	if r.Valid != s.Expect.Valid {
		failures = append(failures, fmt.Sprintf("valid = %v, want %v (errors: %v)", r.Valid, s.Expect.Valid, r.Errors))
	}

	if s.Expect.ArgTypes != nil && !equalStrings(r.ArgTypes, s.Expect.ArgTypes) {
		failures = append(failures, fmt.Sprintf("arg types = %v, want %v", r.ArgTypes, s.Expect.ArgTypes))
	}

	if s.Expect.Encoded != "" && r.Encoded != s.Expect.Encoded {
		failures = append(failures, fmt.Sprintf("encoded = %q, want %q", r.Encoded, s.Expect.Encoded))
	}

	for _, want := range s.Expect.Errors {
		if !containsSubstring(r.Errors, want) {
			failures = append(failures, fmt.Sprintf("no error contains %q (errors: %v)", want, r.Errors))
		}
	}

	return failures
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsSubstring(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
