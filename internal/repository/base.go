// Package repository implements the data access layer for the application.
package repository

import (
	"strings"

	"microblog/internal/models"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; sqlite phrasing for tests.
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// storageError wraps a driver failure as STORAGE_UNAVAILABLE, passing typed
// application errors through untouched. The repository never retries; pool
// exhaustion and connection failures surface immediately to the caller.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*models.AppError); ok {
		return appErr
	}
	return models.NewStorageError(err)
}
