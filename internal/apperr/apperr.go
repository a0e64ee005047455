// Package apperr defines the closed error taxonomy of the API: the fixed
// set of error codes, their default HTTP statuses, and the Error type that
// carries them. Use-case code signals failures with these codes directly;
// translation from infrastructure faults happens in exactly one place
// (FromError), never ad hoc.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies one member of the closed error code set.
type Code string

// The full, closed set of error codes. There are no others.
const (
	CodeAuthMissingToken    Code = "AUTH_MISSING_TOKEN"
	CodeAuthInvalidToken    Code = "AUTH_INVALID_TOKEN"
	CodeTaskNotFound        Code = "TASK_NOT_FOUND"
	CodeValidationError     Code = "VALIDATION_ERROR"
	CodeParseError          Code = "PARSE_ERROR"
	CodeRouteNotFound       Code = "ROUTE_NOT_FOUND"
	CodeDatabaseUnavailable Code = "DATABASE_UNAVAILABLE"
	CodeDatabaseError       Code = "DATABASE_ERROR"
	CodeInternalError       Code = "INTERNAL_ERROR"
)

// statusForCode maps every code to its default HTTP status.
var statusForCode = map[Code]int{
	CodeAuthMissingToken:    http.StatusUnauthorized,
	CodeAuthInvalidToken:    http.StatusUnauthorized,
	CodeTaskNotFound:        http.StatusNotFound,
	CodeValidationError:     http.StatusBadRequest,
	CodeParseError:          http.StatusBadRequest,
	CodeRouteNotFound:       http.StatusNotFound,
	CodeDatabaseUnavailable: http.StatusServiceUnavailable,
	CodeDatabaseError:       http.StatusInternalServerError,
	CodeInternalError:       http.StatusInternalServerError,
}

// Status returns the default HTTP status for the code. Unknown codes
// degrade to 500, matching the taxonomy's unrecognized-fault rule.
func (c Code) Status() int {
	if status, ok := statusForCode[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is a taxonomy-coded failure. The Message is safe to return to
// clients; the wrapped cause is for logs only and is never serialized.
type Error struct {
	Code    Code
	Message string
	Details any
	err     error
}

// New creates a taxonomy error with the given code and client-safe message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a taxonomy error that records an underlying cause.
// The cause is available through errors.Unwrap but never reaches clients.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, err: err}
}

// WithDetails returns a copy of the error carrying structured details for
// the response envelope (e.g. field-level validation problems).
func (e *Error) WithDetails(details any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// Status returns the HTTP status for the error's code.
func (e *Error) Status() int {
	return e.Code.Status()
}

// As extracts an *Error from err, if err carries one anywhere in its chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
