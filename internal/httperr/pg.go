package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes that signal the slot index rejected a write.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsSlotIndexViolation reports whether err is the database refusing a write
// because another blocking-status appointment already holds the slot. The
// pre-insert check is advisory only; this is the authoritative signal.
func IsSlotIndexViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
}
