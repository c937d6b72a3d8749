package nethttp

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
)

// WithError maps a pkg/errors kind to its HTTP representation. Anything that
// doesn't match a known kind is treated as an internal error and its detail
// is not leaked to the caller.
func WithError(c *fiber.Ctx, err error) error {
	var (
		notFound     lmerrors.EntityNotFoundError
		conflict     lmerrors.EntityConflictError
		validation   lmerrors.ValidationError
		unauthorized lmerrors.UnauthorizedError
		forbidden    lmerrors.ForbiddenError
		unprocessable lmerrors.UnprocessableOperationError
		internal     lmerrors.InternalServerError
	)

	switch {
	case errors.As(err, &notFound):
		return NotFound(c, notFound.Code, notFound.Title, notFound.Error())
	case errors.As(err, &conflict):
		return Conflict(c, conflict.Code, conflict.Title, conflict.Error())
	case errors.As(err, &validation):
		return BadRequest(c, validation.Code, validation.Title, validation.Error(), validation.Fields)
	case errors.As(err, &unprocessable):
		return UnprocessableEntity(c, unprocessable.Code, unprocessable.Title, unprocessable.Error())
	case errors.As(err, &unauthorized):
		return Unauthorized(c, unauthorized.Code, unauthorized.Title, unauthorized.Error())
	case errors.As(err, &forbidden):
		return Forbidden(c, forbidden.Code, forbidden.Title, forbidden.Error())
	case errors.As(err, &internal):
		return InternalServerError(c, internal.Code, internal.Title, internal.Error())
	default:
		return InternalServerError(c, "", "Internal Server Error", "The server encountered an unexpected error. Please try again later.")
	}
}
