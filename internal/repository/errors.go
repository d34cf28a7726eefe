package repository

import "errors"

var (
	// ErrConflict is returned when a create collides with an existing id.
	ErrConflict = errors.New("todo already exists")

	// ErrNotFoundOrForbidden is returned when an update or delete targets a
	// todo that does not exist or is owned by another user. The two cases
	// are deliberately indistinguishable so callers cannot probe for the
	// existence of other users' records.
	ErrNotFoundOrForbidden = errors.New("todo not found")
)

// IsConflict reports whether err is an id collision.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsNotFoundOrForbidden reports whether err is a missing-or-unowned target.
func IsNotFoundOrForbidden(err error) bool {
	return errors.Is(err, ErrNotFoundOrForbidden)
}
