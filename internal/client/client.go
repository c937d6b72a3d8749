// Package client implements the shared authenticated HTTP client used by
// the agent and the operator CLI to talk to the ledger: lazy OAuth
// client-credentials token acquisition, a disk-backed token cache, and
// Authorization header injection on every request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
)

// Config carries everything the client needs to reach the identity provider
// and the ledger.
type Config struct {
	BackendBaseURL string
	Auth0Domain    string
	Auth0Audience  string
	Auth0ClientID  string
	Auth0Secret    string
	Timeout        time.Duration
}

// Client wraps *http.Client with lazy token acquisition. A single instance
// is safe for concurrent use: concurrent callers that all need a token at
// once collapse into one token request via singleflight, so a burst of
// concurrent agent tasks never triggers a redundant token fetch per caller.
type Client struct {
	cfg        Config
	httpClient *http.Client
	group      singleflight.Group
}

// New builds a Client from cfg, defaulting the HTTP timeout if unset.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: timeout}}
}

// token returns a valid bearer token, preferring the disk cache and falling
// back to an Auth0 client-credentials request.
func (c *Client) token(ctx context.Context) (string, error) {
	if token, ok := loadCachedToken(); ok {
		return token, nil
	}

	v, err, _ := c.group.Do("token", func() (any, error) {
		if token, ok := loadCachedToken(); ok {
			return token, nil
		}

		return c.acquireToken(ctx)
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// acquireToken performs the OAuth client-credentials POST against the
// configured Auth0 domain and persists the result to the disk cache.
func (c *Client) acquireToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("audience", c.cfg.Auth0Audience)
	form.Set("client_id", c.cfg.Auth0ClientID)
	form.Set("client_secret", c.cfg.Auth0Secret)
	form.Set("grant_type", "client_credentials")

	tokenURL := fmt.Sprintf("https://%s/oauth/token", c.cfg.Auth0Domain)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", lmerrors.AuthTokenError{Message: "failed to build token request", Err: err}
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", lmerrors.AuthTokenError{Message: "failed to reach identity provider", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", lmerrors.AuthTokenError{Message: "failed to read token response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", lmerrors.AuthTokenError{Message: fmt.Sprintf("identity provider returned %d: %s", resp.StatusCode, string(body))}
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.AccessToken == "" {
		return "", lmerrors.AuthTokenError{Message: "malformed token response from identity provider", Err: err}
	}

	if err := saveTokenToCache(parsed.AccessToken); err != nil {
		// A cache write failure does not invalidate the token we just
		// acquired; the next call simply reacquires.
		return parsed.AccessToken, nil
	}

	return parsed.AccessToken, nil
}

// Do issues an HTTP request against the ledger's base URL, injecting the
// bearer token and mapping connection failures to BackendConnectionError.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BackendBaseURL+path, body)
	if err != nil {
		return nil, lmerrors.BackendConnectionError{Message: "failed to build request", Err: err}
	}

	req.Header.Set("Authorization", "Bearer "+token)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, lmerrors.BackendConnectionError{Message: fmt.Sprintf("failed to connect to %s%s", c.cfg.BackendBaseURL, path), Err: err}
	}

	return resp, nil
}

// Health checks the ledger's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return lmerrors.BackendConnectionError{Message: fmt.Sprintf("ledger health check returned %d", resp.StatusCode)}
	}

	return nil
}
