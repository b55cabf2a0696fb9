package bookstore

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for any non-2xx response.
// Body is the raw response text; it is never parsed.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code %d", e.Method, e.Endpoint, e.StatusCode)
}

// StatusCode returns the HTTP status of an APIError, or 0 for any other error
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports a 401 from the backend
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden reports a 403 from the backend
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// ErrorText returns the backend's error body unchanged when there is one.
// Non-2xx responses with an empty body yield fallback; transport failures
// yield transportFallback.
func ErrorText(err error, fallback, transportFallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Body != "" {
			return apiErr.Body
		}
		return fallback
	}
	return transportFallback
}
