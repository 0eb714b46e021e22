package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didlang/didargs/internal/ir"
)

func TestComposeArgs(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"empty", nil, "()"},
		{"blank only", []string{"  "}, "()"},
		{"single", []string{"42"}, "(42)"},
		{"two", []string{"42", `"hi"`}, `(42, "hi")`},
		{"blank among values", []string{"42", "", `"hi"`}, `(42, "hi")`},
		{"trims", []string{" 42 "}, "(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeArgs(tt.values))
		})
	}
}

var pageFields = []ir.FieldSpec{
	{Name: "start", Type: "nat64"},
	{Name: "length", Type: "nat64"},
}

func TestRecordLiteral(t *testing.T) {
	got, err := RecordLiteral(pageFields, []string{"10", "25"})
	require.NoError(t, err)
	assert.Equal(t, "record { start = 10 : nat64; length = 25 : nat64 }", got)
}

func TestRecordLiteralQuotesText(t *testing.T) {
	fields := []ir.FieldSpec{
		{Name: "name", Type: "text"},
		{Name: "age", Type: "nat8"},
		{Name: "active", Type: "bool"},
	}

	got, err := RecordLiteral(fields, []string{"alice", "30", "true"})
	require.NoError(t, err)
	assert.Equal(t, `record { name = "alice"; age = 30 : nat8; active = true }`, got)
}

func TestRecordLiteralKeepsQuotedText(t *testing.T) {
	fields := []ir.FieldSpec{{Name: "name", Type: "text"}}

	got, err := RecordLiteral(fields, []string{`"alice"`})
	require.NoError(t, err)
	assert.Equal(t, `record { name = "alice" }`, got)
}

func TestRecordLiteralArityMismatch(t *testing.T) {
	_, err := RecordLiteral(pageFields, []string{"10"})
	assert.Error(t, err)

	_, err = RecordLiteral(pageFields, []string{"10", "25", "40"})
	assert.Error(t, err)
}

func TestSingleRecordArg(t *testing.T) {
	got, err := SingleRecordArg(pageFields, []string{"10", "25"})
	require.NoError(t, err)
	assert.Equal(t, "(record { start = 10 : nat64; length = 25 : nat64 })", got)
}

func TestRecordFromValuePositional(t *testing.T) {
	got, err := RecordFromValue(pageFields, ir.List{ir.Number("10"), ir.Number("25")})
	require.NoError(t, err)
	assert.Equal(t, "record { start = 10 : nat64; length = 25 : nat64 }", got)
}

func TestRecordFromValueByName(t *testing.T) {
	got, err := RecordFromValue(pageFields, ir.Map{
		"length": ir.Number("25"),
		"start":  ir.Number("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "record { start = 10 : nat64; length = 25 : nat64 }", got)
}

func TestRecordFromValueByStringifiedIndex(t *testing.T) {
	got, err := RecordFromValue(pageFields, ir.Map{
		"0": ir.Number("10"),
		"1": ir.Number("25"),
	})
	require.NoError(t, err)
	assert.Equal(t, "record { start = 10 : nat64; length = 25 : nat64 }", got)
}

func TestRecordFromValueMissingOptFieldIsNull(t *testing.T) {
	fields := []ir.FieldSpec{
		{Name: "id", Type: "nat64"},
		{Name: "page", Type: "opt record { start : nat64; length : nat64 }"},
	}

	got, err := RecordFromValue(fields, ir.Map{"id": ir.Number("7")})
	require.NoError(t, err)
	assert.Equal(t, "record { id = 7 : nat64; page = null }", got)
}

func TestRecordFromValueMissingRequiredField(t *testing.T) {
	_, err := RecordFromValue(pageFields, ir.Map{"start": ir.Number("10")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length")
}

func TestRecordFromValueWrongShape(t *testing.T) {
	_, err := RecordFromValue(pageFields, ir.Text("nope"))
	assert.Error(t, err)

	_, err = RecordFromValue(pageFields, ir.List{ir.Number("10")})
	assert.Error(t, err)
}

func TestValueLiteralComposites(t *testing.T) {
	tests := []struct {
		name     string
		typeText string
		value    ir.Value
		want     string
	}{
		{"opt none", "opt text", ir.Null{}, "null"},
		{"opt some", "opt text", ir.Text("hi"), `opt "hi"`},
		{"vec", "vec nat8", ir.List{ir.Number("1"), ir.Number("2")}, "vec { 1 : nat8; 2 : nat8 }"},
		{"vec empty", "vec nat8", ir.List{}, "vec {}"},
		{"bare variant", "variant { Spawn; Stop }", ir.Map{"Spawn": ir.Null{}}, "variant { Spawn }"},
		{
			"payload variant",
			"variant { Ok : nat64; Err : text }",
			ir.Map{"Err": ir.Text("boom")},
			`variant { Err = "boom" }`,
		},
		{"principal", "principal", ir.Text("aaaaa-aa"), `principal "aaaaa-aa"`},
		{"big nat", "nat", ir.Text("100000000000000000000"), "100000000000000000000 : nat"},
		{
			"nested record",
			"record { page : opt record { start : nat64; length : nat64 } }",
			ir.Map{"page": ir.Map{"start": ir.Number("0"), "length": ir.Number("10")}},
			"record { page = opt record { start = 0 : nat64; length = 10 : nat64 } }",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueLiteral(tt.typeText, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueLiteralRejectsMismatches(t *testing.T) {
	_, err := ValueLiteral("vec nat8", ir.Number("1"))
	assert.Error(t, err)

	_, err = ValueLiteral("variant { A; B }", ir.Map{"A": ir.Null{}, "B": ir.Null{}})
	assert.Error(t, err)

	_, err = ValueLiteral("variant { A }", ir.Map{"C": ir.Null{}})
	assert.Error(t, err)

	_, err = ValueLiteral("bool", ir.Text("yes"))
	assert.Error(t, err)
}

func TestArgsFromValue(t *testing.T) {
	got, err := ArgsFromValue(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "()", got)

	got, err = ArgsFromValue([]string{"record { start : nat64; length : nat64 }"},
		ir.Map{"start": ir.Number("10"), "length": ir.Number("25")})
	require.NoError(t, err)
	assert.Equal(t, "(record { start = 10 : nat64; length = 25 : nat64 })", got)

	got, err = ArgsFromValue([]string{"nat64", "text"}, ir.List{ir.Number("42"), ir.Text("hi")})
	require.NoError(t, err)
	assert.Equal(t, `(42 : nat64, "hi")`, got)
}

func TestArgsFromValueArity(t *testing.T) {
	_, err := ArgsFromValue([]string{"nat64", "text"}, ir.Number("42"))
	assert.Error(t, err)

	_, err = ArgsFromValue([]string{"nat64", "text"}, ir.List{ir.Number("42")})
	assert.Error(t, err)
}
