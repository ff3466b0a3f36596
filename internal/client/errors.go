package client

import (
	"errors"
	"fmt"
)

// Well-known upstream error codes
const (
	CodeNotConfigured = "api_not_configured"
	CodeRateLimited   = "api_rate_limited"
	CodeUnauthorized  = "api_unauthorized"
)

// ErrCancelled is returned when a request is superseded by a newer request
// under the same artifact id, or explicitly cancelled. It is a normal
// outcome, not a failure, and must never surface as a user-facing error.
var ErrCancelled = errors.New("request cancelled")

// ErrEmptyResult is returned when the provider answered 2xx but produced no
// usable payload. Callers treat it like a generation failure (retryable).
var ErrEmptyResult = errors.New("empty result")

// APIError is a structured failure returned by the AI provider
type APIError struct {
	Status  int
	Code    string
	Message string
	Data    map[string]interface{}
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("AI provider error (status %d, code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("AI provider error (status %d): %s", e.Status, e.Message)
}

// Retryable reports whether retrying can help. Misconfiguration and auth
// failures need changes outside this layer.
func (e *APIError) Retryable() bool {
	return e.Code != CodeNotConfigured && e.Code != CodeUnauthorized
}

// NetworkError is a transport-level failure, including client-side timeouts.
// Always retryable.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsCancelled reports whether err is a cancellation (explicit or superseded)
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
