package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didlang/didargs/internal/testutil"
)

func runEncodeCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewEncodeCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestEncodeSingleRecordArg(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runEncodeCmd(t, "text", path, "list_neurons",
		`{"limit": 10, "include_empty": true}`)
	require.NoError(t, err)

	assert.Equal(t,
		"(record { limit = 10 : nat32; start_page_at = null; include_empty = true })",
		strings.TrimSpace(output))
}

func TestEncodeMultipleArgs(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runEncodeCmd(t, "text", path, "manage_neuron",
		`[{"id": 1}, {"Spawn": null}]`)
	require.NoError(t, err)

	assert.Equal(t,
		"(record { id = 1 : nat64 }, variant { Spawn })",
		strings.TrimSpace(output))
}

func TestEncodeVariantWithPayload(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runEncodeCmd(t, "text", path, "manage_neuron",
		`[{"id": 7}, {"Disburse": {"amount": 500, "to_account": null}}]`)
	require.NoError(t, err)

	assert.Equal(t,
		"(record { id = 7 : nat64 }, variant { Disburse = record { amount = 500 : nat64; to_account = null } })",
		strings.TrimSpace(output))
}

func TestEncodeZeroArgMethod(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runEncodeCmd(t, "text", path, "get_metrics")
	require.NoError(t, err)
	assert.Equal(t, "()", strings.TrimSpace(output))
}

func TestEncodeJSON(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runEncodeCmd(t, "json", path, "list_neurons",
		`{"limit": 1, "include_empty": false}`)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result EncodeResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "list_neurons", result.Method)
	assert.Contains(t, result.Encoded, "limit = 1 : nat32")
}

func TestEncodeRejectsInvalidArguments(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runEncodeCmd(t, "text", path, "list_neurons",
		`{"limit": -1, "include_empty": true}`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, output, "✗ Validation failed")
}

func TestEncodeBigNumberFromString(t *testing.T) {
	path := testutil.WriteIDL(t, `
service : {
  burn : (record { amount : nat }) -> ();
}
`)

	output, err := runEncodeCmd(t, "text", path, "burn",
		`{"amount": "340282366920938463463374607431768211455"}`)
	require.NoError(t, err)
	assert.Equal(t,
		"(record { amount = 340282366920938463463374607431768211455 : nat })",
		strings.TrimSpace(output))
}
