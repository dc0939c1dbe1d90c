// Package dberr classifies low-level database driver errors so repositories
// can translate them into domain error types.
package dberr

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// pgUniqueViolation is the postgres SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation.
// Recognizes postgres error codes and the sqlite error message used by the
// in-memory test backend.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
