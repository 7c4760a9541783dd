package models

import (
	"errors"
	"fmt"
)

// Error taxonomy. All are caller mistakes and are never retried.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("already exists")

	ErrKeywordNotFound   = fmt.Errorf("keyword %w", ErrNotFound)
	ErrReportNotFound    = fmt.Errorf("report %w", ErrNotFound)
	ErrDuplicateKeyword  = fmt.Errorf("keyword %w", ErrDuplicate)
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// Is makes errors.Is(err, ErrValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
