// Package common defines the error taxonomy shared by every layer of the
// service. A single tagged-variant type, AppError, replaces per-kind error
// classes: callers switch on Kind (or use the Is* helpers) instead of on
// type identity.
package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the error variants the service can surface to a client.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuthentication
	KindConflict
	KindNotFound
	KindStorage
)

// Code returns the wire-level error code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindAuthentication:
		return "AUTHENTICATION_ERROR"
	case KindConflict:
		return "CONFLICT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindStorage:
		return "STORAGE_ERROR"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// HTTPStatus returns the HTTP status the kind maps to.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the one error type that crosses component boundaries.
// Message and Details are safe for clients; Err holds the internal cause
// and is only ever logged.
type AppError struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewValidation reports malformed client input.
func NewValidation(msg string, details any) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Details: details}
}

// NewAuthentication reports a credential or token failure. Messages are kept
// deliberately uninformative so callers cannot probe which check failed.
func NewAuthentication(msg string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: msg}
}

// NewConflict reports a uniqueness violation.
func NewConflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

// NewNotFound reports an absent entity.
func NewNotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

// NewStorage wraps a persistence or connectivity failure.
func NewStorage(msg string, err error) *AppError {
	return &AppError{Kind: KindStorage, Message: msg, Err: err}
}

// NewUnexpected wraps anything that escaped categorization.
func NewUnexpected(err error) *AppError {
	return &AppError{Kind: KindUnexpected, Message: "An unexpected error occurred", Err: err}
}

// FromError coerces err into an *AppError, wrapping unknown errors as
// KindUnexpected so no raw error ever reaches a client.
func FromError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return NewUnexpected(err)
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Kind == k
}
