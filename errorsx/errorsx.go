package errorsx

import (
	"database/sql"
	"errors"
	"strings"

	"findaccommodation/api"
)

func IsUniqueConstraintError(err error) bool {
	if err != nil && (strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")) {
		return true
	}

	return false
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, api.ErrNotFound) ||
		strings.Contains(strings.ToLower(err.Error()), "not found")
}
