package api

import (
	"errors"
	"fmt"
)

// Kind classifies errors returned by the capability contracts.
type Kind int

const (
	// KindInternal is an unexpected backend or transport fault.
	KindInternal Kind = iota + 1
	// KindNotFound means the queried resource does not exist (yet).
	KindNotFound
	// KindShutdown means the engine or connection is terminating. Do not retry.
	KindShutdown
)

func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindNotFound:
		return "not found"
	case KindShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Error is the error type returned across the capability boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

var (
	// ErrInternal matches every Internal error with errors.Is.
	ErrInternal = &Error{Kind: KindInternal}
	// ErrNotFound matches every NotFound error with errors.Is.
	ErrNotFound = &Error{Kind: KindNotFound}
	// ErrShutdown matches every Shutdown error with errors.Is.
	ErrShutdown = &Error{Kind: KindShutdown}
)

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Internal wraps err as an Internal error. Errors that already carry a kind are kept.
func Internal(err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}
	return &Error{Kind: KindInternal, Err: err}
}

// NotFoundf returns a NotFound error with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Shutdown returns a Shutdown error with the given message.
func Shutdown(message string) error {
	return &Error{Kind: KindShutdown, Message: message}
}

// KindOf returns the kind carried by err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}
