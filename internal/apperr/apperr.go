// Package apperr is the closed set of error kinds the HTTP layer maps to
// status codes. Services return these; handlers never pick status codes
// themselves.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the client.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error carries a kind, the client-facing message and an optional cause.
// The cause is logged, never sent.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

// Internal wraps an unexpected failure. msg is what the client sees.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// Messages shared by the authentication flow.
const (
	MsgMissingCredentials = "Email, password, and role are required"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthenticated    = "Not authenticated"
	MsgForbidden          = "Insufficient permissions"
	MsgInternal           = "Internal server error"
)

var (
	ErrMissingCredentials = Validation(MsgMissingCredentials)
	ErrInvalidCredentials = Unauthorized(MsgInvalidCredentials)
	ErrUnauthenticated    = Unauthorized(MsgUnauthenticated)
	ErrForbidden          = Forbidden(MsgForbidden)
)

// As extracts an *Error from err. Anything else is reported as internal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(MsgInternal, err)
}
