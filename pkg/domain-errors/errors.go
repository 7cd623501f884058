// Package domainerrors provides coded errors for domain and service layers.
//
// Errors carry a machine-readable Code plus a human-readable message. Services
// create them at the point of failure (New) or translate infrastructure
// errors into them (Wrap); transports map codes onto their own status space.
// Callers branch on codes via HasCode rather than string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for programmatic handling.
type Code string

const (
	// CodeValidation covers construction-time invariant violations on domain
	// values (empty name, negative id). The invalid field is named in the
	// message; the first invalid field wins.
	CodeValidation Code = "validation"

	// CodeInvalidInput covers malformed external input rejected at a trust
	// boundary before it reaches a domain constructor (unparseable id string).
	CodeInvalidInput Code = "invalid_input"

	// CodeInvariantViolation covers illegal state transitions on aggregates.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeBadRequest covers malformed requests at the transport layer
	// (unreadable JSON body, missing required field).
	CodeBadRequest Code = "bad_request"

	// CodeNotFound indicates the requested entity does not exist.
	CodeNotFound Code = "not_found"

	// CodeConflict indicates the operation lost to a concurrent writer or
	// violates a uniqueness constraint.
	CodeConflict Code = "conflict"

	// CodeUnauthorized indicates missing or invalid credentials.
	CodeUnauthorized Code = "unauthorized"

	// CodeForbidden indicates valid credentials without sufficient rights.
	CodeForbidden Code = "forbidden"

	// CodeUnavailable indicates a dependency is temporarily unreachable.
	CodeUnavailable Code = "unavailable"

	// CodeInternal covers unexpected failures that should not leak detail
	// to clients.
	CodeInternal Code = "internal"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	code Code
	msg  string
	err  error
}

// New creates a coded error with no underlying cause.
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message. The cause stays reachable via
// errors.Is / errors.As; transports expose only Message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{code: code, msg: msg, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Code returns the classification of this error.
func (e *Error) Code() Code {
	return e.code
}

// Message returns the message without the wrapped cause. Transports use this
// to avoid leaking internals in responses.
func (e *Error) Message() string {
	return e.msg
}

// Unwrap exposes the cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.err
}

// Is lets errors.Is match two coded errors by code and message, so tests can
// compare against a freshly constructed error value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == t.code && e.msg == t.msg
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.code == code {
			return true
		}
		err = de.err
	}
	return false
}

// Is is a readability alias for HasCode, for call sites that read better as
// a predicate: dErrors.Is(err, dErrors.CodeNotFound).
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in err's chain, or CodeInternal when err
// carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}
