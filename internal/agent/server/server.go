// Package server exposes the agent's on-demand reconciliation trigger over
// a small loopback-trust HTTP surface, using the same fiber-based routing
// conventions as the ledger.
package server

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/niklasmelin/license-manager/internal/agent/reconcile"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mjwt"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/nethttp"
)

// tokenIssuer and tokenSubject identify the agent's self-signed loopback
// token: the same process both mints and validates it, so any fixed values
// suffice as long as mint and validate agree.
const (
	tokenIssuer  = "license-manager-agent"
	tokenSubject = "reconcile-now"
	tokenLeeway  = 5 * time.Second
)

// Runner is the subset of reconcile.Cycle's behavior the HTTP handler
// needs, declared here so the handler doesn't depend on reconcile.Config
// directly and tests can substitute a stub cycle function.
type Runner func(ctx context.Context) (*reconcile.Result, error)

// NewServer builds the agent's trigger endpoint. secret signs and verifies
// the bearer token a caller must present; MintToken (below) produces one.
func NewServer(logger mlog.Logger, secret string, run Runner) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return nethttp.WithError(c, err)
		},
	})

	app.Use(nethttp.WithHTTPLogging(logger))

	app.Post("/reconcile-now", bearerAuth(secret), func(c *fiber.Ctx) error {
		result, err := run(c.UserContext())
		if err != nil {
			logger.Errorf("on-demand reconcile failed: %v", err)
			return nethttp.WithError(c, err)
		}

		return nethttp.OK(c, result)
	})

	app.Get("/health", nethttp.Health)

	return app
}

// MintToken produces the bearer token a loopback caller holding the shared
// secret must present to trigger a cycle.
func MintToken(secret string) (string, error) {
	return mjwt.NewTimedToken(tokenSubject, tokenIssuer, secret, time.Hour)
}

// bearerAuth validates the Authorization header against the agent's own
// self-signed token, never against an external identity provider.
func bearerAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return nethttp.WithError(c, lmerrors.UnauthorizedError{
				Title:   "Missing Token",
				Message: "A bearer token must be provided in the Authorization header.",
			})
		}

		if _, err := mjwt.ValidateTimedToken(token, secret, tokenLeeway); err != nil {
			return nethttp.WithError(c, lmerrors.UnauthorizedError{
				Title:   "Invalid Token",
				Message: "The provided bearer token could not be validated.",
				Err:     err,
			})
		}

		return c.Next()
	}
}
