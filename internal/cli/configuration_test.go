package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/internal/client"
	"github.com/niklasmelin/license-manager/pkg/cliio"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// seedTokenCache points HOME at a fresh temp dir and writes a token that
// loadCachedToken will accept, so tests never attempt a real Auth0 exchange.
func seedTokenCache(t *testing.T) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte("unused-test-signing-key"))
	require.NoError(t, err)

	dir := filepath.Join(home, ".cache", "license-manager")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "access_token"), []byte(signed), 0o600))
}

func testFactoryAgainst(t *testing.T, handler http.HandlerFunc) (*Factory, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	seedTokenCache(t)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	return &Factory{
		Client:    client.New(client.Config{BackendBaseURL: server.URL}),
		IOStreams: &cliio.IOStreams{Out: out, Err: errOut},
	}, out, errOut
}

func TestConfigurationCreateCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/configurations", r.URL.Path)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(mmodel.Configuration{ID: "cfg-1", Name: "flex-main"})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"configuration", "create", "--name", "flex-main", "--cluster-id", "clu-1", "--type", "flexlm", "--grace-time", "60"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "created configuration cfg-1")
}

func TestConfigurationListCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/configurations", r.URL.Path)
		json.NewEncoder(w).Encode([]mmodel.Configuration{{ID: "cfg-1", Name: "flex-main", Type: mmodel.ConfigurationTypeFlexLM, GraceTime: 60}})
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"configuration", "list"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "flex-main")
	assert.Contains(t, out.String(), "cfg-1")
}

func TestConfigurationGetCommandRendersErrorOnFailure(t *testing.T) {
	f, _, errOut := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "configuration not found", http.StatusNotFound)
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"configuration", "get", "cfg-missing"})

	assert.Error(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "run with LOG_LEVEL=debug for details")
}

func TestConfigurationDeleteCommand(t *testing.T) {
	f, out, _ := testFactoryAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/configurations/cfg-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	cmd := NewRootCommand(f)
	cmd.SetArgs([]string{"configuration", "delete", "cfg-1"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "deleted configuration cfg-1")
}
