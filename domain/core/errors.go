package core

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every input-side failure: bad form fields,
// unreadable uploads, unknown categories. The web layer branches on it to
// pick a 4xx status.
var ErrValidation = errors.New("validation failed")

// NewValidationError reports one invalid field.
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w for %s: %s", ErrValidation, field, reason)
}

// IsValidationError reports whether err is input-side.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
