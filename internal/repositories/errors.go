package repositories

import "errors"

var (
	// ErrNotFound indicates the requested user does not exist, or a summary references a user that
	// does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates the username is already taken.
	ErrConflict = errors.New("record conflict")
)
