package store

import (
	"errors"

	"github.com/lib/pq"
)

// The original contract returned nil/zero sentinels for both a failed
// credential check and an empty result set, so callers could not tell
// "denied" from "nothing matched". These three kinds keep them apart.
var (
	// ErrUnauthorized means the claimed principal does not match the
	// stored user record (or the record is gone).
	ErrUnauthorized = errors.New("credentials do not match stored user")

	// ErrNotFound means the owner-scoped predicate matched no row.
	ErrNotFound = errors.New("no matching row for owner")

	// ErrDuplicate maps a unique-constraint violation.
	ErrDuplicate = errors.New("duplicate row")

	// ErrInvalidReference maps a foreign-key violation, typically a
	// colour_id pointing at no palette row.
	ErrInvalidReference = errors.New("referenced row does not exist")
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23503"
}
