package cli

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

func TestProductCreateCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/products", r.URL.Path)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(mmodel.Product{ID: "prod-1", Name: "ansys"})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"product", "create", "--name", "ansys"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "created product prod-1")
}

func TestProductGetCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/products/prod-1", r.URL.Path)
		json.NewEncoder(w).Encode(mmodel.Product{ID: "prod-1", Name: "ansys"})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"product", "get", "prod-1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ansys")
}

func TestProductUpdateCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		json.NewEncoder(w).Encode(mmodel.Product{ID: "prod-1", Name: "ansys-renamed"})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"product", "update", "prod-1", "--name", "ansys-renamed"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "updated product prod-1")
}

func TestProductDeleteCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"product", "delete", "prod-1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "deleted product prod-1")
}
