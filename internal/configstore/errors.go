package configstore

import (
	"errors"
	"fmt"
)

// Kind classifies a store error.
type Kind string

const (
	// KindUnauthenticated means the request carried no resolvable identity.
	KindUnauthenticated Kind = "unauthenticated"
	// KindForbidden means the caller lacks the admin capability.
	KindForbidden Kind = "forbidden"
	// KindBadRequest means the input failed a validation constraint.
	KindBadRequest Kind = "bad_request"
	// KindNotFound means the caller's user record is absent (wallet settings writes only).
	KindNotFound Kind = "not_found"
	// KindInternal means the backing store failed.
	KindInternal Kind = "internal"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "authentication required"}
	ErrForbidden       = &Error{Kind: KindForbidden, Message: "admin privileges required"}
	ErrBadRequest      = &Error{Kind: KindBadRequest, Message: "bad request"}
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrInternal        = &Error{Kind: KindInternal, Message: "internal error"}
)

// Error is the structured error returned by every Store operation.
type Error struct {
	Kind    Kind
	Message string

	cause error
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}

	return string(e.Kind) + ": " + e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Cause implements the github.com/pkg/errors causer interface.
func (e *Error) Cause() error {
	return e.cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// KindOf returns the kind of err, KindInternal for errors not produced by the store.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}
