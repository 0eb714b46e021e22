package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/didlang/didargs/internal/ir"
)

// snapshot converts a Result to an ir.Map so the golden bytes come out of
// the same canonical serializer the cache keys use.
func snapshot(name string, r *Result) ir.Map {
	argTypes := make(ir.List, len(r.ArgTypes))
	for i, t := range r.ArgTypes {
		argTypes[i] = ir.Text(t)
	}
	resultTypes := make(ir.List, len(r.ResultTypes))
	for i, t := range r.ResultTypes {
		resultTypes[i] = ir.Text(t)
	}
	errs := make(ir.List, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = ir.Text(e)
	}

	return ir.Map{
		"name":         ir.Text(name),
		"method":       ir.Text(r.Method),
		"arg_types":    argTypes,
		"result_types": resultTypes,
		"valid":        ir.Bool(r.Valid),
		"errors":       errs,
		"encoded":      ir.Text(r.Encoded),
	}
}

// RunWithGolden executes a scenario, verifies its expect clause, and
// compares the full pipeline snapshot against a golden file under
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := scenario.Run()
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}

	for _, failure := range scenario.Verify(result) {
		t.Errorf("scenario %s: %s", scenario.Name, failure)
	}

	data, err := ir.MarshalCanonical(snapshot(scenario.Name, result))
	if err != nil {
		t.Fatalf("scenario %s: marshal snapshot: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
}
