package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for SmartMeet backend responses.
var (
	// ErrUnauthorised indicates the session credential is invalid or expired.
	ErrUnauthorised = errors.New("backend: unauthorised")

	// ErrForbidden indicates the user lacks permission for the resource.
	ErrForbidden = errors.New("backend: forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("backend: not found")

	// ErrRateLimited indicates the request was throttled by the backend.
	ErrRateLimited = errors.New("backend: rate limited")

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = errors.New("backend: bad request")

	// ErrServerError indicates a server-side error from the backend.
	ErrServerError = errors.New("backend: server error")
)

// WrapError converts an HTTP status code to an appropriate error.
func WrapError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorised
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusBadRequest:
		return ErrBadRequest
	default:
		if statusCode >= 500 {
			return ErrServerError
		}
		return nil
	}
}

// StatusError is a non-2xx backend response. Detail carries the backend's
// own description when the error body included one.
type StatusError struct {
	StatusCode int
	Status     string
	Detail     string
}

// Error renders the generic user-facing message, combining status and
// status text, with the backend's detail when available.
func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap maps the status code onto the error taxonomy so callers can use
// errors.Is against the sentinels.
func (e *StatusError) Unwrap() error {
	return WrapError(e.StatusCode)
}

// IsRetryable checks if the status code is potentially transient.
func IsRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}
