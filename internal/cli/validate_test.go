package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didlang/didargs/internal/testutil"
)

func runValidateCmd(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateValidArguments(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runValidateCmd(t, "text", path, "list_neurons",
		`{"limit": 10, "include_empty": true}`)
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Arguments valid")
}

func TestValidateValidArgumentsJSON(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runValidateCmd(t, "json", path, "list_neurons",
		`{"limit": 10, "include_empty": true, "start_page_at": {"id": 5}}`)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateZeroArgMethod(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runValidateCmd(t, "text", path, "get_metrics")
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Arguments valid")
}

func TestValidateInvalidArguments(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runValidateCmd(t, "text", path, "list_neurons",
		`{"limit": "not a number"}`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, output, "✗ Validation failed")
	// Both the bad limit and the missing include_empty are reported.
	assert.Contains(t, output, "limit")
	assert.Contains(t, output, "include_empty")
}

func TestValidateInvalidArgumentsJSON(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runValidateCmd(t, "json", path, "manage_neuron",
		`[{"id": 1}, {"Spawn": null, "Disburse": null}]`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.NotEmpty(t, resp.Error.Code)
}

func TestValidateBadJSON(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	output, err := runValidateCmd(t, "text", path, "list_neurons", `{"limit":`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, output, "Invalid JSON")
}

func TestValidateJSONFromFile(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	jsonPath := filepath.Join(t.TempDir(), "args.json")
	require.NoError(t, os.WriteFile(jsonPath,
		[]byte(`{"limit": 1, "include_empty": false}`), 0644))

	output, err := runValidateCmd(t, "text", path, "list_neurons", "@"+jsonPath)
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Arguments valid")
}

func TestValidateMissingJSONFile(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	_, err := runValidateCmd(t, "text", path, "list_neurons", "@/nonexistent/args.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E005")
}

func TestValidateUnknownMethod(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	_, err := runValidateCmd(t, "text", path, "nope", `{}`)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
