package repo

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any ValidationError via errors.Is
	ErrValidation = errors.New("validation failed")
	// ErrNotFound matches any NotFoundError via errors.Is
	ErrNotFound = errors.New("not found")
)

// ValidationError rejects an operation because a required field is empty or invalid.
// The operation has no effect.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an update aimed at an id that does not exist
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ParseError reports a stored value that could not be decoded.
// Repositories recover from it by starting with an empty collection.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse stored %q: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PersistError reports a failed write to the store. The in-memory state is
// left exactly as it was before the failed call.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %q: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
