package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didlang/didargs/internal/ir"
	"github.com/didlang/didargs/internal/validator"
)

func TestBuildJSONZeroArgs(t *testing.T) {
	got, err := New(nil).BuildJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestBuildJSONSingleRecord(t *testing.T) {
	m := New([]string{"record { start : nat64; length : nat64 }"})

	got, err := m.BuildJSON([]ir.Value{
		ir.Map{"start": ir.Text("1"), "length": ir.Text("2")},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"start":1,"length":2}`, got)
}

func TestBuildJSONFieldOrderFollowsDeclaration(t *testing.T) {
	// Map iteration order must not leak into the output.
	m := New([]string{"record { zulu : nat8; alpha : text; mike : bool }"})

	got, err := m.BuildJSON([]ir.Value{
		ir.Map{"alpha": ir.Text("a"), "mike": ir.Bool(true), "zulu": ir.Text("9")},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"zulu":9,"alpha":"a","mike":true}`, got)
}

func TestBuildJSONMultipleArgs(t *testing.T) {
	m := New([]string{"nat64", "text"})

	got, err := m.BuildJSON([]ir.Value{ir.Text("42"), ir.Text("hi")})
	require.NoError(t, err)
	assert.Equal(t, `[42,"hi"]`, got)
}

func TestBuildJSONBigIntegersBecomeStrings(t *testing.T) {
	m := New([]string{"nat"})

	got, err := m.BuildJSON([]ir.Value{ir.Text("100000000000000000000")})
	require.NoError(t, err)
	assert.Equal(t, `"100000000000000000000"`, got)

	// Within float64-safe range stays a bare number.
	got, err = m.BuildJSON([]ir.Value{ir.Text("9007199254740991")})
	require.NoError(t, err)
	assert.Equal(t, "9007199254740991", got)
}

func TestBuildJSONOptionalAndVector(t *testing.T) {
	m := New([]string{"record { tags : vec text; note : opt text }"})

	got, err := m.BuildJSON([]ir.Value{
		ir.Map{"tags": ir.List{ir.Text("a"), ir.Text("b")}, "note": ir.Null{}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"tags":["a","b"],"note":null}`, got)

	// Omitted optional field is dropped from the object entirely.
	got, err = m.BuildJSON([]ir.Value{
		ir.Map{"tags": ir.List{}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"tags":[]}`, got)
}

func TestBuildJSONVariant(t *testing.T) {
	m := New([]string{"variant { Spawn; Disburse : record { amount : nat64 } }"})

	got, err := m.BuildJSON([]ir.Value{ir.Map{"Spawn": ir.Null{}}})
	require.NoError(t, err)
	assert.Equal(t, `{"Spawn":null}`, got)

	got, err = m.BuildJSON([]ir.Value{
		ir.Map{"Disburse": ir.Map{"amount": ir.Text("10")}},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"Disburse":{"amount":10}}`, got)
}

func TestBuildJSONPositionalRecordValue(t *testing.T) {
	m := New([]string{"record { start : nat64; length : nat64 }"})

	got, err := m.BuildJSON([]ir.Value{
		ir.List{ir.Text("1"), ir.Text("2")},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"start":1,"length":2}`, got)
}

func TestBuildJSONErrors(t *testing.T) {
	m := New([]string{"record { start : nat64 }"})

	_, err := m.BuildJSON([]ir.Value{ir.Map{"start": ir.Text("abc")}})
	assert.Error(t, err)

	_, err = m.BuildJSON([]ir.Value{ir.Map{}})
	assert.Error(t, err)

	_, err = m.BuildJSON(nil)
	assert.Error(t, err)
}

func TestBuildJSONRoundTripsThroughValidator(t *testing.T) {
	argTypes := []string{"record { start : nat64; length : nat64; note : opt text; big : nat }"}
	m := New(argTypes)

	got, err := m.BuildJSON([]ir.Value{ir.Map{
		"start":  ir.Text("0"),
		"length": ir.Text("10"),
		"big":    ir.Text("340282366920938463463374607431768211455"),
	}})
	require.NoError(t, err)

	r := validator.Check(argTypes, got)
	assert.True(t, r.Valid, "%+v", r.Errors)
}
