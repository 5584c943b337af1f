package domain

import (
	"errors"
	"fmt"
)

// Task errors
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNotTaskOwner = errors.New("task belongs to another user")
)

// Auth errors
var (
	ErrNoCredentials      = errors.New("credentials not provided")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError reports a missing or malformed request field. It maps to a
// 400 response and is safe to show to the client.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
