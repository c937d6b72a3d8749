package nethttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestParseUUIDPathParametersAcceptsValidUUID(t *testing.T) {
	app := fiber.New()
	app.Get("/v1/clusters/:id", ParseUUIDPathParameters, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/clusters/123e4567-e89b-12d3-a456-426614174000", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestParseUUIDPathParametersRejectsInvalidUUID(t *testing.T) {
	app := fiber.New()
	app.Get("/v1/clusters/:id", ParseUUIDPathParameters, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/clusters/not-a-uuid", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestParseUUIDPathParametersIgnoresNonUUIDConventionParams(t *testing.T) {
	app := fiber.New()
	app.Get("/v1/clusters/:clusterId/bookings/by_job/:slurm_job_id", ParseUUIDPathParameters, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/clusters/123e4567-e89b-12d3-a456-426614174000/bookings/by_job/12345", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestParseUUIDPathParametersStillRejectsInvalidClusterIDAlongsideJobID(t *testing.T) {
	app := fiber.New()
	app.Get("/v1/clusters/:clusterId/bookings/by_job/:slurm_job_id", ParseUUIDPathParameters, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/clusters/not-a-uuid/bookings/by_job/12345", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
