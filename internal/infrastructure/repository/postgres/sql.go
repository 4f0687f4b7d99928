package postgres

import (
	"database/sql"
	"errors"
	"strings"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Transaction-mode poolers can route the bind of an unnamed statement to a
// different backend than its parse; both errors below are safe to retry once.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "requires")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unnamed prepared statement does not exist") ||
		(strings.Contains(msg, "prepared statement") && strings.Contains(msg, "(26000)"))
}

// retryStale runs fn and repeats it once when the pooler lost the statement.
func retryStale(fn func() error) error {
	err := fn()
	if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
		return fn()
	}
	return err
}
