package cli

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func TestLicenseServerCreateCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/configurations/cfg-1/license-servers", r.URL.Path)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(mmodel.LicenseServer{ID: "ls-1", Host: "flex01"})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"license-server", "create", "--configuration-id", "cfg-1", "--host", "flex01", "--port", "27000"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "created license server ls-1")
}

func TestLicenseServerListCommandAcceptsAlias(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]mmodel.LicenseServer{{ID: "ls-1", ConfigurationID: "cfg-1", Host: "flex01", Port: 27000}})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"license-servers", "list"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "flex01")
}

func TestLicenseServerDeleteCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"license-server", "delete", "ls-1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "deleted license server ls-1")
}
