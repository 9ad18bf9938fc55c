package storage

import "errors"

// Error kinds returned by the store. Every failure is wrapped around one of
// these so callers can branch with errors.Is while keeping the cause.
var (
	ErrCreation = errors.New("create task failed")
	ErrFetch    = errors.New("fetch tasks failed")
	ErrNotFound = errors.New("task not found")
	ErrUpdate   = errors.New("update task failed")
	ErrDelete   = errors.New("delete task failed")
)

// IsStorageError reports whether err originated in the store.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrCreation) ||
		errors.Is(err, ErrFetch) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUpdate) ||
		errors.Is(err, ErrDelete)
}
