package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned by the orchestration and task-tracking APIs, plus the
// codes flowsweep synthesizes for transport-level failures.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "conflict"
	ErrCodeRateLimited    = "rate_limited"
	ErrCodeUpstream       = "upstream_error"
	ErrCodeUnavailable    = "unavailable"
)

// APIError is a failure reported by (or on the way to) an external API.
// Retryable marks failures that a later sweep may succeed on; the sweep loop
// itself never retries within a run.
type APIError struct {
	Code      string
	Message   string
	Status    int
	Retryable bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewUnavailableError marks a transport-level failure (dial, timeout).
func NewUnavailableError(msg string) *APIError {
	return &APIError{Code: ErrCodeUnavailable, Message: msg, Retryable: true}
}

// NewAPIStatusError classifies a non-2xx HTTP response.
func NewAPIStatusError(status int, body string) *APIError {
	e := &APIError{Status: status, Message: body}
	switch {
	case status == http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case status == http.StatusConflict:
		e.Code = ErrCodeConflict
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Code = ErrCodeUnauthorized
	case status == http.StatusTooManyRequests:
		e.Code = ErrCodeRateLimited
		e.Retryable = true
	case status >= 500:
		e.Code = ErrCodeUpstream
		e.Retryable = true
	default:
		e.Code = ErrCodeInvalidRequest
	}
	return e
}

// IsNotFound reports whether err is a not-found API error. The delete action
// treats it as a permanent per-record failure: the run is already gone.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == ErrCodeNotFound
}
