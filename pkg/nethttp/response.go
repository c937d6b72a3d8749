package nethttp

import "github.com/gofiber/fiber/v2"

// responseError is the wire shape every error response renders to, regardless
// of which pkg/errors kind produced it.
type responseError struct {
	Code    string            `json:"code,omitempty"`
	Title   string            `json:"title,omitempty"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// OK writes a 200 with the given payload.
func OK(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusOK).JSON(payload)
}

// Created writes a 201 with the given payload.
func Created(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusCreated).JSON(payload)
}

// NoContent writes a 204 with an empty body.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// BadRequest writes a 400 with the given error body.
func BadRequest(c *fiber.Ctx, code, title, message string, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responseError{Code: code, Title: title, Message: message, Fields: fields})
}

// Unauthorized writes a 401 with the given error body.
func Unauthorized(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(responseError{Code: code, Title: title, Message: message})
}

// Forbidden writes a 403 with the given error body.
func Forbidden(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(responseError{Code: code, Title: title, Message: message})
}

// NotFound writes a 404 with the given error body.
func NotFound(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(responseError{Code: code, Title: title, Message: message})
}

// Conflict writes a 409 with the given error body.
func Conflict(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusConflict).JSON(responseError{Code: code, Title: title, Message: message})
}

// UnprocessableEntity writes a 422 with the given error body.
func UnprocessableEntity(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(responseError{Code: code, Title: title, Message: message})
}

// InternalServerError writes a 500 with the given error body.
func InternalServerError(c *fiber.Ctx, code, title, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(responseError{Code: code, Title: title, Message: message})
}
