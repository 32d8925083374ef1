package application

import (
	"errors"

	"github.com/example/conference-scheduler/internal/conference"
)

// mapRegistryError translates registry sentinels into the application's
// error vocabulary so callers only match application errors.
func mapRegistryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, conference.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, conference.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, conference.ErrWrongType) {
		vErr := &ValidationError{}
		vErr.add("event", "operation does not apply to this event type")
		return vErr
	}
	return err
}
