// Package testutil provides shared IDL fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// GovernanceIDL is a governance-style service used across test suites.
// It exercises aliases, nested records, variants, options and vectors.
const GovernanceIDL = `
// Governance canister interface (abridged).
type NeuronId = record { id : nat64 };
type AccountIdentifier = record { hash : vec nat8 };
type Command = variant {
  Spawn;
  Disburse : record { amount : nat64; to_account : opt AccountIdentifier };
};
type ListNeurons = record {
  limit : nat32;
  start_page_at : opt NeuronId;
  include_empty : bool;
};

service : {
  list_neurons : (ListNeurons) -> (vec NeuronId) query;
  manage_neuron : (NeuronId, Command) -> (variant { Ok; Err : text });
  get_metrics : () -> (record { neurons : nat64 }) query;
}
`

// WriteIDL writes src to a temporary .did file and returns its path.
func WriteIDL(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "service.did")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

// WriteGovernanceIDL writes the shared governance fixture and returns its path.
func WriteGovernanceIDL(t *testing.T) string {
	t.Helper()
	return WriteIDL(t, GovernanceIDL)
}
