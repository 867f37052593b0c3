package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// record does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicateID is returned when an add supplies an id that already exists
// in the target collection. Handlers should map this to HTTP 409.
var ErrDuplicateID = errors.New("duplicate id")

// ErrInvalidReference is returned when a create names a parent record
// (trip → destination, activity/expense → trip) that does not exist.
var ErrInvalidReference = errors.New("invalid reference")

// ErrDeletionBlocked is returned when the deletion policy refuses a delete.
// It is always joined with one of the reason errors below so callers can
// match either the kind or the specific reason with errors.Is.
var ErrDeletionBlocked = errors.New("deletion blocked")

// Reasons a deletion can be blocked.
var (
	// ErrHasDependents: a destination still has trips, or a trip still has
	// activities or expenses.
	ErrHasDependents = errors.New("has dependents")

	// ErrPastSchedule: the activity's scheduled time is not in the future.
	ErrPastSchedule = errors.New("scheduled time has passed")

	// ErrTooOld: the expense is more than 30 days old.
	ErrTooOld = errors.New("older than 30 days")
)

// Blocked wraps reason so that the result matches both ErrDeletionBlocked
// and reason.
func Blocked(reason error) error {
	return &blockedError{reason: reason}
}

type blockedError struct {
	reason error
}

func (e *blockedError) Error() string {
	return ErrDeletionBlocked.Error() + ": " + e.reason.Error()
}

func (e *blockedError) Unwrap() []error {
	return []error{ErrDeletionBlocked, e.reason}
}

// BlockedReason returns the reason error wrapped by a blocked deletion, or nil
// if err is not a blocked deletion.
func BlockedReason(err error) error {
	var b *blockedError
	if errors.As(err, &b) {
		return b.reason
	}
	return nil
}
