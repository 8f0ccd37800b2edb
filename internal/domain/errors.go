package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no row exists for the requested id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness pre-check failure.
	ErrDuplicate = errors.New("already exists")
	// ErrValidation indicates a malformed or out-of-range payload field.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized indicates a missing, invalid or expired credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates a valid identity lacking the required role or ownership.
	ErrForbidden = errors.New("forbidden")
)

// Invalid wraps ErrValidation with a human-readable detail string.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Duplicate wraps ErrDuplicate naming the conflicting field.
func Duplicate(field string) error {
	return fmt.Errorf("%s %w", field, ErrDuplicate)
}

// Forbidden wraps ErrForbidden with a detail string.
func Forbidden(detail string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, detail)
}
