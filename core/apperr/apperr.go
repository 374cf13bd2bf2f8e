// Package apperr defines the error taxonomy shared by all core operations.
// Every operation either succeeds or fails with exactly one kind; the HTTP
// layer maps kinds to status codes.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	// Internal is the default for unexpected failures (datastore errors etc.).
	Internal Kind = iota
	// InvalidArgument marks malformed pagination, IDs or request bodies.
	InvalidArgument
	// Unauthorized marks a missing, invalid or revoked credential.
	Unauthorized
	// NotFound marks a missing target resource. A parent resource owned by a
	// different user also reports NotFound, never a permission error, so the
	// API does not leak the existence of other users' resources.
	NotFound
	// Conflict marks a uniqueness violation: duplicate favorite, duplicate
	// playlist membership, duplicate playlist name.
	Conflict
)

// Error carries a kind, a caller-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err. Errors outside the taxonomy are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the caller-facing message of err, or a generic message
// for errors outside the taxonomy.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong"
}
