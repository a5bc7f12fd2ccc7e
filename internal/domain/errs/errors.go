// Package errs defines the error kinds shared by the domain packages and
// mapped to HTTP status codes by the REST layer.
package errs

import (
	"errors"
)

// Error kinds
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Error is a domain error carrying a message that is safe to return to the caller.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// NotFound returns an ErrNotFound error with message
func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Forbidden returns an ErrForbidden error with message
func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// Unauthorized returns an ErrUnauthorized error with message
func Unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

// InvalidInput returns an ErrInvalidInput error with message
func InvalidInput(message string, cause error) error {
	return &Error{Kind: ErrInvalidInput, Message: message, Cause: cause}
}

// Internal returns an ErrInternal error whose message hides cause from the caller
func Internal(message string, cause error) error {
	return &Error{Kind: ErrInternal, Message: message, Cause: cause}
}

// PublicMessage returns the caller-facing message of err, or fallback when err is not an *Error.
func PublicMessage(err error, fallback string) string {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return fallback
}
