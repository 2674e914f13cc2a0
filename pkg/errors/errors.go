// Package errors defines the tagged error type returned by the intake
// pipeline. Every failure the handler can produce carries a Kind, and the
// HTTP boundary maps that Kind to a status code.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error by the failure category it represents.
type Kind string

const (
	// KindInvalidRequest means client-supplied data is missing or malformed.
	KindInvalidRequest Kind = "INVALID_REQUEST"
	// KindNotFound means the food database has no match for the query.
	KindNotFound Kind = "NOT_FOUND"
	// KindNutrientNotFound means the matched food lacks a usable calorie figure.
	KindNutrientNotFound Kind = "NUTRIENT_NOT_FOUND"
	// KindUpstreamUnavailable covers network, status and decode failures
	// talking to the food database.
	KindUpstreamUnavailable Kind = "UPSTREAM_UNAVAILABLE"
	// KindPersistenceFailure covers blob store connection and write errors.
	KindPersistenceFailure Kind = "PERSISTENCE_FAILURE"
	// KindUnexpected is reserved for anything not anticipated above.
	KindUnexpected Kind = "UNEXPECTED"
)

// HTTPStatus returns the status code a response for this kind must carry.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the error type returned across package boundaries.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// HTTPStatus is a shortcut for e.Kind.HTTPStatus().
func (e *AppError) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// New creates an AppError of the given kind.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap creates an AppError of the given kind around cause.
func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// Constructor functions for each kind

func NewInvalidRequest(message string) *AppError {
	return New(KindInvalidRequest, message)
}

func NewNotFound(message string) *AppError {
	return New(KindNotFound, message)
}

func NewNutrientNotFound(message string) *AppError {
	return New(KindNutrientNotFound, message)
}

func NewUpstreamUnavailable(message string, cause error) *AppError {
	return Wrap(KindUpstreamUnavailable, message, cause)
}

func NewPersistenceFailure(message string, cause error) *AppError {
	return Wrap(KindPersistenceFailure, message, cause)
}

func NewUnexpected(message string, cause error) *AppError {
	return Wrap(KindUnexpected, message, cause)
}

// As extracts the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// Message returns the human-readable text for a response body. The kind tag
// is left out; foreign errors yield their raw text.
func Message(err error) string {
	if appErr, ok := As(err); ok {
		if appErr.Cause != nil {
			return appErr.Message + ": " + appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
