package cli

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func TestClusterCreateCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/clusters", r.URL.Path)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(mmodel.Cluster{ID: "clu-1", Name: "frontier"})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"cluster", "create", "--name", "frontier", "--client-id", "agent-frontier"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "created cluster clu-1")
}

func TestClusterListCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]mmodel.Cluster{{ID: "clu-1", Name: "frontier", ClientID: "agent-frontier"}})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"cluster", "list"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "frontier")
}

func TestClusterUpdateCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		json.NewEncoder(w).Encode(mmodel.Cluster{ID: "clu-1", Name: "frontier-2"})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"cluster", "update", "clu-1", "--name", "frontier-2"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "updated cluster clu-1")
}

func TestClusterDeleteCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"cluster", "delete", "clu-1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "deleted cluster clu-1")
}
