package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a record with the same key already exists.
	ErrDuplicate = errors.New("persistence: duplicate")
	// ErrConstraintViolation is returned when a record fails a schema constraint.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
)
