// ABOUTME: Error classification for request failures
// ABOUTME: Maps HTTP status codes to coarse error categories and defines typed errors

package transport

import (
	"fmt"
	"net/http"
)

// Category is a coarse classification of a request failure.
type Category string

// Categories assigned by Classify.
const (
	CategoryInvalidRequest Category = "invalid_request"
	CategoryAuthentication Category = "authentication_error"
	CategoryPermission     Category = "permission_error"
	CategoryNotFound       Category = "not_found"
	CategoryConflict       Category = "conflict"
	CategoryRateLimit      Category = "rate_limit_error"
	CategoryAPI            Category = "api_error"
	CategoryUnknown        Category = "unknown_error"
)

// Classify maps an HTTP status code to an error category.
// Unrecognized codes map to CategoryUnknown.
func Classify(statusCode int) Category {
	switch statusCode {
	case http.StatusBadRequest:
		return CategoryInvalidRequest
	case http.StatusUnauthorized:
		return CategoryAuthentication
	case http.StatusForbidden:
		return CategoryPermission
	case http.StatusNotFound:
		return CategoryNotFound
	case http.StatusConflict:
		return CategoryConflict
	case http.StatusTooManyRequests:
		return CategoryRateLimit
	case http.StatusInternalServerError:
		return CategoryAPI
	default:
		return CategoryUnknown
	}
}

// StatusError is returned when the service rejects a request with a
// non-success status. It carries everything a caller needs to decide on
// retry policy; this layer never retries.
type StatusError struct {
	StatusCode int
	Operation  string
	Category   Category
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d (%s)", e.Operation, e.StatusCode, e.Category)
}

// TimeoutError is returned when a configured request timeout elapses
// before the service responds. It is deliberately distinct from
// StatusError: no response was received, so there is nothing to classify.
type TimeoutError struct {
	Operation string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: request timed out", e.Operation)
}
