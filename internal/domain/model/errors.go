package model

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) hold for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
