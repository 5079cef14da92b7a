// Package apperr defines the error values shared across ctdp
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so that callers can react to it without
// inspecting messages.
type Kind int

const (
	Unknown Kind = iota
	Unauthorized
	Validation
	NotFound
	Persistence
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Unauthorized:
		return "unauthorized"
	case Validation:
		return "validation"
	case NotFound:
		return "not found"
	case Persistence:
		return "persistence"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a templated application error. Package-level values act as
// sentinels; Fmt and Wrap derive new errors that still match the sentinel
// through errors.Is.
type Error struct {
	Cause   error
	base    *Error
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is e or the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// Fmt formats the error message with the provided arguments.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Kind:    e.Kind,
		Cause:   e.Cause,
		base:    e.root(),
	}
}

// Wrap attaches a cause to the error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Kind:    e.Kind,
		Cause:   err,
		base:    e.root(),
	}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return Unknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
