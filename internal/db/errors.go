package db

import "errors"

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the actor does not own the row.
	ErrForbidden = errors.New("permission denied")
	// ErrInvalid is returned when a write fails validation.
	ErrInvalid = errors.New("invalid input")
)

// IsRejected reports whether err is a write refused by the store, as opposed
// to an I/O or driver failure.
func IsRejected(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrInvalid)
}
