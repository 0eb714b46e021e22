package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didlang/didargs/internal/testutil"
)

func TestMethodsText(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewMethodsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "list_neurons : (ListNeurons) -> (vec NeuronId) query")
	assert.Contains(t, output, "manage_neuron : (NeuronId, Command) -> (variant { Ok; Err : text })")
	assert.Contains(t, output, "get_metrics : () -> (record { neurons : nat64 }) query")
}

func TestMethodsJSON(t *testing.T) {
	path := testutil.WriteGovernanceIDL(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewMethodsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result MethodsResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.Methods, 3)
	assert.Equal(t, "get_metrics", result.Methods[0].Name)
	assert.Equal(t, []string{"query"}, result.Methods[0].Annotations)
}

func TestMethodsMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewMethodsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/service.did"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E005") // ErrCodeNotFound
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "not found")
}

func TestMethodsMalformedIDL(t *testing.T) {
	path := testutil.WriteIDL(t, "service : { broken")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewMethodsCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E010") // ErrCodeParse
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
