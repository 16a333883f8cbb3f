package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error codes surfaced to API clients
const (
	ErrCodeValidation      = "VALIDATION_FAILED"
	ErrCodeContentPolicy   = "CONTENT_POLICY_VIOLATION"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeUpstream        = "UPSTREAM_UNAVAILABLE"
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeInvalidToken    = "INVALID_TOKEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeStorage         = "STORAGE_ERROR"
)

// Error is the domain error carried through the pipeline. Handlers map its
// code to an HTTP status; the wrapped cause is logged but never sent to the
// client.
type Error struct {
	Code       string
	Message    string
	RetryAfter time.Duration     // set for RATE_LIMITED
	Fields     map[string]string // set for VALIDATION_FAILED
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a domain error wrapping an optional cause
func NewError(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// ValidationError creates a VALIDATION_FAILED error with field-level detail
func ValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: ErrCodeValidation, Message: message, Fields: fields}
}

// ContentPolicyError creates a CONTENT_POLICY_VIOLATION error
func ContentPolicyError(message string) *Error {
	return &Error{Code: ErrCodeContentPolicy, Message: message}
}

// RateLimitedError creates a RATE_LIMITED error with a retry-after hint
func RateLimitedError(retryAfter time.Duration) *Error {
	return &Error{
		Code:       ErrCodeRateLimited,
		Message:    "rate limit exceeded, please retry later",
		RetryAfter: retryAfter,
	}
}

// UpstreamError creates an UPSTREAM_UNAVAILABLE error
func UpstreamError(message string, cause error) *Error {
	return &Error{Code: ErrCodeUpstream, Message: message, cause: cause}
}

// NotFoundError creates a NOT_FOUND error
func NotFoundError(message string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: message}
}

// StorageError creates a STORAGE_ERROR wrapping the adapter failure
func StorageError(cause error) *Error {
	return &Error{Code: ErrCodeStorage, Message: "storage operation failed", cause: cause}
}

// AsError unwraps err into a *Error if one is in the chain
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// ErrorCode returns the domain code for err, or ErrCodeStorage-style
// fallback for unclassified errors
func ErrorCode(err error) string {
	if de, ok := AsError(err); ok {
		return de.Code
	}
	return ErrCodeStorage
}
