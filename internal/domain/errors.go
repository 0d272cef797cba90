package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrValidation marks caller errors: malformed identifiers or missing fields.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a well-formed identifier with no matching document.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks connectivity or driver failures.
	ErrStorage = errors.New("storage error")

	// ErrConnection is a storage failure caused by a missing or broken connection.
	ErrConnection = errors.New("connection error")
)

// Error is a domain error carrying its kind, the failing operation and the cause
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	} else if e.Err == nil && e.Kind != nil {
		parts = append(parts, e.Kind.Error())
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes both the kind and the underlying cause
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewValidationError creates a validation error
func NewValidationError(op, msg string) error {
	return &Error{Kind: ErrValidation, Op: op, Msg: msg}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(op, msg string) error {
	return &Error{Kind: ErrNotFound, Op: op, Msg: msg}
}

// NewStorageError wraps a driver failure
func NewStorageError(op string, err error) error {
	return &Error{Kind: ErrStorage, Op: op, Err: err}
}

// NewConnectionError wraps a connection failure. It is also a storage error.
func NewConnectionError(op string, err error) error {
	cause := ErrConnection
	if err != nil {
		cause = fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return &Error{Kind: ErrStorage, Op: op, Err: cause}
}
