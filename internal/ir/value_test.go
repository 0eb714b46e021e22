package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	// Verify all types implement Value (compile-time check via assignment).
	var _ Value = Null{}
	var _ Value = Text("test")
	var _ Value = Number("42")
	var _ Value = Bool(true)
	var _ Value = List{Text("a"), Number("1")}
	var _ Value = Map{"key": Text("value")}
}

func TestMapSortedKeys(t *testing.T) {
	m := Map{
		"zebra":  Text("z"),
		"apple":  Text("a"),
		"banana": Text("b"),
	}

	assert.Equal(t, []string{"apple", "banana", "zebra"}, m.SortedKeys())
}

func TestMapSortedKeysUTF16Order(t *testing.T) {
	// RFC 8785 orders by UTF-16 code units: 'A' (65) < 'a' (97), and a
	// shorter string precedes its extensions.
	m := Map{
		"a":  Number("1"),
		"A":  Number("2"),
		"aa": Number("3"),
		"aA": Number("4"),
		"Aa": Number("5"),
		"AA": Number("6"),
	}

	assert.Equal(t, []string{"A", "AA", "Aa", "a", "aA", "aa"}, m.SortedKeys())
}

func TestFromJSONNumbersKeepLiteralText(t *testing.T) {
	v, err := FromJSON([]byte(`{"big": 100000000000000000001, "small": 1.5}`))
	require.NoError(t, err)

	m, ok := v.(Map)
	require.True(t, ok)
	assert.Equal(t, Number("100000000000000000001"), m["big"])
	assert.Equal(t, Number("1.5"), m["small"])
}

func TestFromJSONShapes(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Value
	}{
		{"null", `null`, Null{}},
		{"string", `"hi"`, Text("hi")},
		{"bool", `true`, Bool(true)},
		{"array", `[1, "a"]`, List{Number("1"), Text("a")}},
		{"object", `{"k": null}`, Map{"k": Null{}}},
		{"nested", `{"a": [{"b": 2}]}`, Map{"a": List{Map{"b": Number("2")}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromJSON([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestFromJSONRejectsMalformed(t *testing.T) {
	_, err := FromJSON([]byte(`{`))
	assert.Error(t, err)

	_, err = FromJSON([]byte(`1 2`))
	assert.Error(t, err)
}

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	b, err := MarshalCanonical(Map{
		"b": Number("2"),
		"a": Number("1"),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2}`, string(b))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	b, err := MarshalCanonical(Text("<a> & </a>"))
	require.NoError(t, err)
	assert.Equal(t, `"<a> & </a>"`, string(b))
}

func TestMarshalCanonicalNullAndBigNumber(t *testing.T) {
	b, err := MarshalCanonical(List{Null{}, Number("100000000000000000000"), Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, `[null,100000000000000000000,false]`, string(b))
}

func TestSourceHashStable(t *testing.T) {
	h1 := SourceHash("type T = nat;")
	h2 := SourceHash("type T = nat;")
	h3 := SourceHash("type T = nat8;")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestResolutionHashOrderSensitive(t *testing.T) {
	h1 := ResolutionHash("list_neurons", []string{"nat64", "text"})
	h2 := ResolutionHash("list_neurons", []string{"text", "nat64"})

	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h1, ResolutionHash("list_neurons", []string{"nat64", "text"}))
}
