package nethttp

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
)

// ParseUUIDPathParameters rejects the request with a 400 if any path
// parameter fails to parse as a UUID, otherwise stashes the parsed
// uuid.UUID back into c.Locals under the same parameter name. Every
// UUID-valued route parameter in this API is named "id" or ends in "Id";
// parameters that don't follow that convention (e.g. "slurm_job_id", a
// scheduler-assigned job id) are left untouched rather than rejected.
func ParseUUIDPathParameters(c *fiber.Ctx) error {
	params := c.AllParams()

	var invalid []string

	for name, value := range params {
		if !isUUIDParamName(name) {
			continue
		}

		parsed, err := uuid.Parse(value)
		if err != nil {
			invalid = append(invalid, name)
			continue
		}

		c.Locals(name, parsed)
	}

	if len(invalid) > 0 {
		return WithError(c, lmerrors.ValidationError{
			Title:   "Invalid Path Parameter",
			Message: "The following path parameters are not valid UUIDs: " + strings.Join(invalid, ", "),
		})
	}

	return c.Next()
}

// isUUIDParamName reports whether a path parameter name follows this API's
// convention for UUID-valued identifiers: exactly "id", or any name ending
// in "Id".
func isUUIDParamName(name string) bool {
	return name == "id" || strings.HasSuffix(name, "Id")
}
