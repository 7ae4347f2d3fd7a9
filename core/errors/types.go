// ABOUTME: Custom error types for the core business logic
// ABOUTME: Covers the extraction taxonomy plus storage/validation errors

package errors

import (
	"errors"
	"fmt"
)

// InvalidURLError means the input could not be parsed into a usable URL.
type InvalidURLError struct {
	URL string
}

// Error implements the error interface
func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL: %s", e.URL)
}

// NetworkError means fetching the page failed or returned a non-2xx status.
type NetworkError struct {
	URL        string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("network error fetching %s: status %d", e.URL, e.StatusCode)
}

// Unwrap exposes the underlying transport error, if any.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ParsingError means the response body could not be decoded or parsed.
type ParsingError struct {
	URL   string
	Cause error
}

// Error implements the error interface
func (e *ParsingError) Error() string {
	return fmt.Sprintf("parsing error for %s: %v", e.URL, e.Cause)
}

// Unwrap exposes the underlying parse error, if any.
func (e *ParsingError) Unwrap() error {
	return e.Cause
}

// NoContentFoundError means every extraction strategy was exhausted
// without producing substantial article text.
type NoContentFoundError struct {
	URL string
}

// Error implements the error interface
func (e *NoContentFoundError) Error() string {
	return fmt.Sprintf("no readable content found at %s", e.URL)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsInvalidURL checks if an error is an InvalidURLError
func IsInvalidURL(err error) bool {
	var invalidErr *InvalidURLError
	return errors.As(err, &invalidErr)
}

// IsNetwork checks if an error is a NetworkError
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsParsing checks if an error is a ParsingError
func IsParsing(err error) bool {
	var parseErr *ParsingError
	return errors.As(err, &parseErr)
}

// IsNoContent checks if an error is a NoContentFoundError
func IsNoContent(err error) bool {
	var noContentErr *NoContentFoundError
	return errors.As(err, &noContentErr)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
