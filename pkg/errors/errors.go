package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for matching with errors.Is across package boundaries.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal error")
	ErrServiceUnavail = errors.New("service unavailable")
)

// AppError is an application error that knows its wire representation: a
// stable machine-readable code, a human-readable message and the HTTP status
// it maps to. It wraps one of the sentinels (or a cause) so errors.Is keeps
// working through it.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(code string, status int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Status: status, Err: cause}
}

// NotFound reports that the named resource does not exist. Maps to 404.
func NotFound(resource, id string) *AppError {
	msg := fmt.Sprintf("%s with id %s not found", resource, id)
	return newAppError("NOT_FOUND", http.StatusNotFound, msg, ErrNotFound)
}

// InvalidInput reports a request the caller can fix. Maps to 400.
func InvalidInput(message string) *AppError {
	return newAppError("INVALID_INPUT", http.StatusBadRequest, message, ErrInvalidInput)
}

// Internal wraps an unexpected failure without leaking its detail to
// clients. Maps to 500.
func Internal(err error) *AppError {
	return newAppError("INTERNAL_ERROR", http.StatusInternalServerError, "an internal error occurred", err)
}

// Unavailable reports that the request cannot be served right now. Maps
// to 503.
func Unavailable(message string) *AppError {
	return newAppError("SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, message, ErrServiceUnavail)
}

// HTTPStatus resolves any error to the status code it should produce: an
// AppError carries its own, sentinels map to theirs, everything else is a
// 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
