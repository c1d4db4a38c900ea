package reqschema

import (
	"errors"
	"net/http"
)

// HTTPError represents an HTTP error with a status code and a human-readable
// message. Validation failures translated by the pipeline carry the first
// offending field and its message; catalogue entries carry stable keys that
// response layers can map to translated text.
type HTTPError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a different message, keeping
// the status code. Used to stamp field-level detail onto catalogue entries.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// NewHTTPError creates a custom HTTP error with the given status code and message.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

// 4xx Client Errors
var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Message: "bad_request"}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Message: "unauthorized"}
	ErrForbidden           = HTTPError{Code: http.StatusForbidden, Message: "forbidden"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Message: "not_found"}
	ErrConflict            = HTTPError{Code: http.StatusConflict, Message: "conflict"}
	ErrUnprocessableEntity = HTTPError{Code: http.StatusUnprocessableEntity, Message: "unprocessable_entity"}
	ErrTooManyRequests     = HTTPError{Code: http.StatusTooManyRequests, Message: "too_many_requests"}
)

// 5xx Server Errors
var (
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Message: "internal_server_error"}
)

// Configuration errors. All of them indicate a programming mistake at route
// registration time; New logs them and wraps them in ErrInternalServerError
// so misconfiguration fails loudly at setup rather than silently per request.
var (
	// ErrFormBodyConflict is returned when both form and body schemas are configured.
	ErrFormBodyConflict = errors.New("form and body cannot be used at the same time")

	// ErrNilSchema is returned when a schema slot is configured with a nil schema.
	ErrNilSchema = errors.New("schema cannot be nil")

	// ErrErrorPolicyConflict is returned when more than one error policy is configured.
	ErrErrorPolicyConflict = errors.New("only one error policy can be configured")

	// ErrNilErrorHandler is returned when OnError is configured with a nil handler.
	ErrNilErrorHandler = errors.New("error handler cannot be nil")
)
