// Package domain defines the core request model, validation rules and error kinds of the proxy.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingField indicates that a required JSON key is absent from the request body.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidRequestBody indicates that the request body is not a JSON object.
	ErrInvalidRequestBody = errors.New("request body must be a JSON object")

	// ErrUpstreamUnavailable indicates that the provider could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")

	// ErrUpstreamTimeout indicates that the provider did not answer in time.
	ErrUpstreamTimeout = errors.New("upstream provider timed out")

	// ErrUpstreamMalformed indicates that the provider answered with something other than JSON.
	ErrUpstreamMalformed = errors.New("upstream provider returned malformed JSON")
)

// ValidationError describes a caller-supplied value that failed a format check.
type ValidationError struct {
	Field      string
	Value      string
	Message    string
	StatusCode int
}

// NewValidationError builds a ValidationError for the labelled field with a 400 status.
func NewValidationError(label, value string) *ValidationError {
	return &ValidationError{
		Field:      label,
		Value:      value,
		Message:    fmt.Sprintf("Invalid %s: must be a hexadecimal string", label),
		StatusCode: http.StatusBadRequest,
	}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MissingFieldError wraps ErrMissingField with the name of the absent key.
func MissingFieldError(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
