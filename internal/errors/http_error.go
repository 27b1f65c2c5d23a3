package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)

// StatusFor maps a domain error to the HTTP status the API layer should
// return: validation 400, domain rule 409, not found 404, anything else 500.
// An HTTPError carries its own status.
func StatusFor(err error) int {
	var httpErr *HTTPError
	switch {
	case stderrors.As(err, &httpErr):
		return httpErr.Code
	case IsValidation(err):
		return http.StatusBadRequest
	case IsDomainRule(err):
		return http.StatusConflict
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
