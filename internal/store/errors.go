// ABOUTME: Sentinel errors for the persistence layer.
// ABOUTME: Callers distinguish outcomes with errors.Is.
package store

import "errors"

var (
	// ErrNotFound is returned for point lookups that miss and for
	// updates against ids that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when creating or renaming an exercise
	// to a name that is already taken.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrExerciseInUse is returned when deleting an exercise that is
	// still referenced by at least one set.
	ErrExerciseInUse = errors.New("exercise in use")

	// ErrInvalidInput is returned when caller-supplied fields fail
	// validation before reaching the store.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBadImport is returned for backup documents missing the version
	// or data fields.
	ErrBadImport = errors.New("invalid backup document")
)
