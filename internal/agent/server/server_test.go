package server

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/internal/agent/reconcile"
	"github.com/niklasmelin/license-manager/pkg/mlog"
)

const testSecret = "test-loopback-secret"

func TestReconcileNowRejectsMissingToken(t *testing.T) {
	app := NewServer(mlog.NoOp(), testSecret, func(ctx context.Context) (*reconcile.Result, error) {
		t.Fatal("run should not be called without a valid token")
		return nil, nil
	})

	req := httptest.NewRequest("POST", "/reconcile-now", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestReconcileNowRejectsWrongSecret(t *testing.T) {
	app := NewServer(mlog.NoOp(), testSecret, func(ctx context.Context) (*reconcile.Result, error) {
		t.Fatal("run should not be called with a token signed under a different secret")
		return nil, nil
	})

	token, err := MintToken("a-different-secret")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/reconcile-now", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestReconcileNowRunsCycleWithValidToken(t *testing.T) {
	called := false

	app := NewServer(mlog.NoOp(), testSecret, func(ctx context.Context) (*reconcile.Result, error) {
		called = true
		return &reconcile.Result{FeaturesReported: 3}, nil
	})

	token, err := MintToken(testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/reconcile-now", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, called)
}

func TestHealthIsUnauthenticated(t *testing.T) {
	app := NewServer(mlog.NoOp(), testSecret, func(ctx context.Context) (*reconcile.Result, error) {
		return &reconcile.Result{}, nil
	})

	req := httptest.NewRequest("GET", "/health", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
