package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mjwt"
	"github.com/niklasmelin/license-manager/pkg/nethttp"
)

// claimsContextKey is the fiber Locals key the validated Claims are stashed
// under by ProtectHTTP for downstream handlers and RequireScope to read.
const claimsContextKey = "mjwt.claims"

// Middleware wraps an mjwt.Validator as fiber handlers.
type Middleware struct {
	Validator *mjwt.Validator
}

// ProtectHTTP rejects requests without a valid bearer token, and stashes the
// decoded claims in the request context on success.
func (m *Middleware) ProtectHTTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return nethttp.WithError(c, lmerrors.UnauthorizedError{
				Title:   "Missing Token",
				Message: "A bearer token must be provided in the Authorization header.",
			})
		}

		claims, err := m.Validator.Validate(c.UserContext(), tokenString)
		if err != nil {
			return nethttp.WithError(c, lmerrors.UnauthorizedError{
				Title:   "Invalid Token",
				Message: "The provided token is expired, malformed, or not signed by a trusted key.",
				Err:     err,
			})
		}

		c.Locals(claimsContextKey, claims)

		return c.Next()
	}
}

// RequireScope rejects requests whose claims don't carry at least one of the
// given permission strings. Call after ProtectHTTP.
func RequireScope(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return nethttp.WithError(c, lmerrors.UnauthorizedError{
				Title:   "Missing Token",
				Message: "A bearer token must be provided in the Authorization header.",
			})
		}

		if !claims.HasPermission(scopes...) {
			return nethttp.WithError(c, lmerrors.ForbiddenError{
				Title:   "Insufficient Privileges",
				Message: "The token does not carry the required permission for this operation.",
			})
		}

		return c.Next()
	}
}

// ClaimsFromContext retrieves the claims ProtectHTTP stashed for this request.
func ClaimsFromContext(c *fiber.Ctx) (*mjwt.Claims, bool) {
	claims, ok := c.Locals(claimsContextKey).(*mjwt.Claims)
	return claims, ok
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), "Bearer", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[1])
	}

	return ""
}
