package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHomeDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)

	return dir
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{"exp": time.Now().Add(expiresIn).Unix()}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte("unused-signing-key"))
	require.NoError(t, err)

	return signed
}

// token() prefers the disk cache over an acquireToken round trip, so a
// cached token is returned without ever reaching the (unreachable) domain.
func TestTokenPrefersCache(t *testing.T) {
	withHomeDir(t)

	want := signedToken(t, time.Hour)
	require.NoError(t, saveTokenToCache(want))

	c := New(Config{Auth0Domain: "unreachable.invalid"})

	got, err := c.token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadCachedTokenRejectsExpired(t *testing.T) {
	withHomeDir(t)

	expired := signedToken(t, -time.Minute)
	require.NoError(t, saveTokenToCache(expired))

	_, ok := loadCachedToken()
	assert.False(t, ok)
}

func TestLoadCachedTokenAcceptsFreshToken(t *testing.T) {
	withHomeDir(t)

	fresh := signedToken(t, time.Hour)
	require.NoError(t, saveTokenToCache(fresh))

	got, ok := loadCachedToken()
	require.True(t, ok)
	assert.Equal(t, fresh, got)
}

func TestSaveTokenToCacheWritesPrivateFile(t *testing.T) {
	home := withHomeDir(t)

	require.NoError(t, saveTokenToCache("some-token"))

	path := filepath.Join(home, ".cache", "license-manager", "access_token")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "some-token", string(raw))
}

func TestDoInjectsBearerToken(t *testing.T) {
	withHomeDir(t)

	token := signedToken(t, time.Hour)
	require.NoError(t, saveTokenToCache(token))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(Config{BackendBaseURL: server.URL})

	resp, err := c.Do(context.Background(), http.MethodGet, "/health", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthReturnsErrorOnNon200(t *testing.T) {
	withHomeDir(t)

	token := signedToken(t, time.Hour)
	require.NoError(t, saveTokenToCache(token))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New(Config{BackendBaseURL: server.URL})

	err := c.Health(context.Background())
	assert.Error(t, err)
}
