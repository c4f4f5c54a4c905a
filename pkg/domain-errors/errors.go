// Package domainerrors defines the typed error taxonomy shared by all
// services. Handlers translate codes to HTTP statuses; services attach them at
// the point of rejection so callers never have to parse message strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeBadRequest marks malformed input (undecodable body, bad params).
	CodeBadRequest Code = "bad_request"
	// CodeValidation marks input that decoded fine but fails domain rules.
	CodeValidation Code = "validation_failed"
	// CodeUnauthorized marks requests without a resolved identity.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden marks authorization denials: wrong role, wrong ownership
	// scope, or an action absent from the role's rule table.
	CodeForbidden Code = "forbidden"
	// CodeNotFound marks lookups for unknown entity IDs.
	CodeNotFound Code = "not_found"
	// CodeInvalidTransition marks a lifecycle action that is not legal from
	// the entity's current status.
	CodeInvalidTransition Code = "invalid_transition"
	// CodeConflict marks writes that would violate a uniqueness invariant.
	CodeConflict Code = "conflict"
	// CodeInternal marks everything else; details are never surfaced.
	CodeInternal Code = "internal_error"
)

// Error carries a code, a caller-safe message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a domain error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a domain error around an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err is (or wraps) a domain error with the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for plain
// errors so unexpected failures never leak as client faults.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to the HTTP status the transport layer reports.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidTransition, CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
