package apperr

import (
	"errors"
	"fmt"
)

// Class buckets an error into the categories the HTTP layer cares about.
type Class int

const (
	ClassValidation Class = iota + 1 // caller-fixable bad input
	ClassConflict                    // overlap, duplicate, entity in use
	ClassNotFound                    // missing entity by id
	ClassStorage                     // commit or connectivity failure
)

// Error carries a human-readable message, a class, and an optional cause.
type Error struct {
	Class   Class
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) *Error {
	return &Error{Class: ClassValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Class: ClassConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Class: ClassNotFound, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps a storage-layer failure. The cause is kept for logging but
// only the message is ever rendered to callers.
func Storage(err error, message string) *Error {
	return &Error{Class: ClassStorage, Message: message, Err: err}
}

// ClassOf extracts the class from err, or ClassStorage for anything that is
// not an *Error (unexpected failures are internal by definition).
func ClassOf(err error) Class {
	var e *Error
	if errors.As(err, &e) {
		return e.Class
	}
	return ClassStorage
}
