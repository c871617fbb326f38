package models

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the referenced item does not exist.
var ErrNotFound = errors.New("item not found")

// ErrInsufficientStock indicates a stock-out larger than the current quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidStatus indicates a status value outside the known states.
var ErrInvalidStatus = errors.New("invalid status")

// ErrInvalidOperationType indicates an operation type other than in/out.
var ErrInvalidOperationType = errors.New("invalid operation type")

// ValidationError reports missing or malformed request input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
