package nethttp

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/niklasmelin/license-manager/pkg/mlog"
)

// WithHTTPLogging logs one structured line per request: method, path,
// status code, and duration.
func WithHTTPLogging(logger mlog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		logger.Infof("%s %s -> %d (%s)", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))

		return err
	}
}

// Health reports the service as up. Readiness (database connectivity) is
// checked separately by bootstrap before the server starts accepting
// connections.
func Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
}
