// Package apperrors defines the error kinds surfaced by the collaboration
// core. Handlers translate kinds to HTTP status codes; services attach a
// kind to every error they return so callers can decide between retrying
// and surfacing the failure.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers.
type Kind int

const (
	// Unknown is the zero kind; errors without an explicit kind report it.
	Unknown Kind = iota
	// NotFound means the entity (group, invitation token, membership) does not exist.
	NotFound
	// Unauthorized means the actor's role does not permit the operation.
	Unauthorized
	// InvalidState means a state-machine violation, e.g. accepting a
	// non-pending invitation.
	InvalidState
	// Expired means the invitation was past its expiry at acceptance time.
	Expired
	// Conflict means a uniqueness violation, e.g. a duplicate membership.
	Conflict
	// Upstream means the data store itself failed; the cause is wrapped.
	Upstream
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NOT_FOUND"
	case Unauthorized:
		return "UNAUTHORIZED"
	case InvalidState:
		return "INVALID_STATE"
	case Expired:
		return "EXPIRED"
	case Conflict:
		return "CONFLICT"
	case Upstream:
		return "UPSTREAM"
	default:
		return "UNKNOWN"
	}
}

// Error is an error with a kind and an optional wrapped cause.
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

// New returns an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of the given kind wrapping cause. It returns nil
// when cause is nil so it can be used on the happy path.
func Wrap(kind Kind, cause error, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf reports the kind of err, unwrapping as needed. Errors that never
// passed through this package report Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
