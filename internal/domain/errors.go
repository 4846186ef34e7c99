package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable, machine-readable category of a failure
type ErrorKind string

// Error kinds surfaced to clients alongside the message
const (
	KindValidation   ErrorKind = "validation"   // Missing or malformed input
	KindNotFound     ErrorKind = "not_found"    // Referenced entity absent
	KindUnauthorized ErrorKind = "unauthorized" // Missing or invalid credentials
	KindForbidden    ErrorKind = "forbidden"    // Authenticated but not allowed
	KindConflict     ErrorKind = "conflict"     // Uniqueness violated
	KindInternal     ErrorKind = "internal"     // Storage or other unexpected failure
)

// Error is a categorized failure returned by services
type Error struct {
	Kind    ErrorKind // Category
	Message string    // Client-facing message
	Err     error     // Underlying cause, never shown to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidation reports missing or malformed input
func NewValidation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewNotFound reports an absent entity
func NewNotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// NewUnauthorized reports missing or invalid credentials
func NewUnauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// NewForbidden reports a caller lacking the required role or ownership
func NewForbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NewConflict reports a uniqueness violation
func NewConflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NewInternal wraps an unexpected failure behind a generic message
func NewInternal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the category of err, KindInternal for uncategorized errors
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
