package in

import "github.com/gofiber/fiber/v2"

const (
	defaultLimit = 50
	maxLimit     = 200
)

// paginationParams reads "limit" and "page" query parameters. A missing or
// out-of-range limit (<= 0 or > maxLimit) falls back to defaultLimit, and a
// missing or non-positive page falls back to 1.
func paginationParams(c *fiber.Ctx) (limit, page int) {
	limit = c.QueryInt("limit", defaultLimit)
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	page = c.QueryInt("page", 1)
	if page <= 0 {
		page = 1
	}

	return limit, page
}
