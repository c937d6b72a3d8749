package cli

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func TestFeatureCreateCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/features", r.URL.Path)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(mmodel.Feature{ID: "feat-1", Name: "mech"})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"feature", "create", "--name", "mech", "--product-id", "prod-1", "--configuration-id", "cfg-1", "--reserved", "2"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "created feature feat-1")
}

func TestFeatureListCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]mmodel.Feature{{ID: "feat-1", Name: "mech", ProductID: "prod-1", ConfigurationID: "cfg-1", Reserved: 2}})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"feature", "list"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "mech")
}

func TestFeatureUpdateCommandDistinguishesUnsetReserved(t *testing.T) {
	var captured mmodel.UpdateFeatureInput

	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(mmodel.Feature{ID: "feat-1", Name: captured.Name})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"feature", "update", "feat-1", "--name", "renamed"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "updated feature feat-1")
	assert.Nil(t, captured.Reserved)
}

func TestFeatureUpdateCommandAppliesExplicitZeroReserved(t *testing.T) {
	var captured mmodel.UpdateFeatureInput

	f, _, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(mmodel.Feature{ID: "feat-1"})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"feature", "update", "feat-1", "--reserved", "0", "--set-reserved"})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, captured.Reserved)
	assert.Equal(t, 0, *captured.Reserved)
}

func TestFeatureDeleteCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"feature", "delete", "feat-1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "deleted feature feat-1")
}
