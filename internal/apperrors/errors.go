package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrMissingArgument indicates that a required identifier or argument is absent.
var ErrMissingArgument = errors.New("required argument missing")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a transactional write conflict (serialization failure,
// deadlock) that may succeed on retry.
var ErrConflict = errors.New("write conflict")

// ErrConcurrency indicates a write conflict that persisted after the bounded
// retry policy was exhausted. The operation had no effect.
var ErrConcurrency = errors.New("concurrent update conflict, retries exhausted")

// ErrInternal indicates an unexpected internal failure whose details should
// stay in the logs, not in the caller-facing error.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level failure with a code and a message describing
// the boundary where it occurred.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
