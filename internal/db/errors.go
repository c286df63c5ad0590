package db

import "errors"

// Domain-level database error sentinels.
var (
	// ErrNotFound is returned when a moderated record does not exist, or is
	// outside the scope the caller may see.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidColumn is returned by the query builder for identifiers that
	// are not plain lower-case column names.
	ErrInvalidColumn = errors.New("invalid column name")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
)
