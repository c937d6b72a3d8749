package errors

import (
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes this package maps explicitly; see
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
)

// MapPgError turns a *pgconn.PgError into the matching pkg/errors kind. Every
// Postgres repository in the ledger funnels its write-path errors through
// this single function rather than re-deriving the mapping per entity.
func MapPgError(entityType string, pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgCodeUniqueViolation:
		return EntityConflictError{
			EntityType: entityType,
			Title:      "Entity Conflict",
			Code:       pgErr.Code,
			Message:    "An entity with the same unique key already exists.",
			Err:        pgErr,
		}
	case pgCodeForeignKeyViolation:
		return ValidationError{
			EntityType: entityType,
			Title:      "Invalid Reference",
			Code:       pgErr.Code,
			Message:    "The request references an entity that does not exist.",
			Err:        pgErr,
		}
	default:
		return InternalServerError{
			Title:   "Database Error",
			Code:    pgErr.Code,
			Message: "The server encountered an unexpected database error.",
			Err:     pgErr,
		}
	}
}
