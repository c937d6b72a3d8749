package nethttp

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type withBodyInput struct {
	Name     string `json:"name" validate:"required,max=256"`
	Reserved int    `json:"reserved" validate:"gte=0"`
}

func newWithBodyApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Post("/things", WithBody(new(withBodyInput), func(p any, c *fiber.Ctx) error {
		return OK(c, p)
	}))

	return app
}

func doWithBodyRequest(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/things", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func TestWithBodyAcceptsAWellFormedBody(t *testing.T) {
	app := newWithBodyApp(t)

	resp := doWithBodyRequest(t, app, `{"name":"abaqus","reserved":2}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWithBodyRejectsMalformedJSON(t *testing.T) {
	app := newWithBodyApp(t)

	resp := doWithBodyRequest(t, app, `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWithBodyRejectsEmptyBody(t *testing.T) {
	app := newWithBodyApp(t)

	resp := doWithBodyRequest(t, app, `{}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWithBodyRejectsUnrecognizedField(t *testing.T) {
	app := newWithBodyApp(t)

	resp := doWithBodyRequest(t, app, `{"name":"abaqus","reservd":2}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWithBodyRejectsValidationFailure(t *testing.T) {
	app := newWithBodyApp(t)

	resp := doWithBodyRequest(t, app, `{"name":"abaqus","reserved":-1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUnknownFieldsFindsKeysTheStructDropped(t *testing.T) {
	unknown := unknownFields(
		map[string]any{"name": "abaqus", "typo": true},
		&withBodyInput{Name: "abaqus"},
	)

	assert.Contains(t, unknown, "typo")
	assert.NotContains(t, unknown, "name")
}
