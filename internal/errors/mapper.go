// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// APIError carries an HTTP status alongside a client-safe message. The
// service layer returns these for validation failures; everything else goes
// through Map at the transport boundary.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Map converts repo/infra errors into transport-friendly APIErrors.
// Keeps the service layer clean by centralizing error mapping.
func Map(err error) *APIError {
	if err == nil {
		return nil
	}

	var api *APIError
	switch {
	case errors.As(err, &api):
		return api

	case errors.Is(err, gorm.ErrRecordNotFound):
		return &APIError{Status: http.StatusNotFound, Message: "record not found"}

	case errors.Is(err, context.DeadlineExceeded):
		return &APIError{Status: http.StatusGatewayTimeout, Message: "request timed out"}

	case errors.Is(err, context.Canceled):
		return &APIError{Status: http.StatusServiceUnavailable, Message: "request was canceled"}

	default:
		// fallback: store failures surface as retryable server errors
		return &APIError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
}

// InvalidArgument creates a 400 error.
// Use this in the service layer for bad input validation.
func InvalidArgument(msg string) error {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

// Unauthorized creates a 401 error.
func Unauthorized(msg string) error {
	return &APIError{Status: http.StatusUnauthorized, Message: msg}
}

// NotFound creates a 404 error.
func NotFound(msg string) error {
	return &APIError{Status: http.StatusNotFound, Message: msg}
}

// AlreadyExists creates a 409 error.
func AlreadyExists(msg string) error {
	return &APIError{Status: http.StatusConflict, Message: msg}
}
