package conference

import "errors"

var (
	// ErrNotFound is returned when a lookup by name, code, or username has no match.
	ErrNotFound = errors.New("conference: not found")
	// ErrDuplicate is returned when a create would reuse an existing key.
	ErrDuplicate = errors.New("conference: duplicate key")
	// ErrWrongType is returned when a speaker operation targets an event
	// variant that cannot carry it, such as assigning a speaker to a party.
	ErrWrongType = errors.New("conference: wrong event type")
)
