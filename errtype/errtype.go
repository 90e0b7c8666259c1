package errtype

import (
	"errors"
	"fmt"
)

// Kind names a family of errors. Two *Error values with the same Kind match
// each other under errors.Is.
type Kind string

// Error is an error tagged with a Kind. It optionally wraps the error that
// caused it and records the stack at the point it was created.
type Error struct {
	cause   error // maybe nil
	stack   stack
	kind    Kind
	message string
	details map[string]string
}

// Constructor builds *Error values of a single Kind.
type Constructor func(message string, cause error) *Error

// Type returns a Constructor for kind. An empty message defaults to the kind
// name.
//
//	var ErrTimeout = errtype.Type("TimeoutError")
//	return ErrTimeout("took too long", lastErr)
func Type(kind Kind) Constructor {
	return func(message string, cause error) *Error {
		return newError(kind, message, cause, 1)
	}
}

// New returns an *Error of kind with no cause.
func New(kind Kind, message string) *Error {
	return newError(kind, message, nil, 1)
}

func newError(kind Kind, message string, cause error, skip int) *Error {
	if message == "" {
		message = string(kind)
	}
	return &Error{
		cause:   cause,
		stack:   capture(skip + 1),
		kind:    kind,
		message: message,
		details: make(map[string]string),
	}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if e.cause != nil {
				fmt.Fprintf(s, "%+v\n", e.cause)
			}
			fmt.Fprintf(s, "%s: %s", e.kind, e.message)
			e.stack.StackTrace().Format(s, verb)
			return
		}
		fallthrough
	case 's':
		fmt.Fprintf(s, "%s", e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind == e.kind
}

func (e *Error) StackTrace() StackTrace {
	return e.stack.StackTrace()
}

func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Message() string {
	return e.message
}

func (e *Error) Details() map[string]string {
	return e.details
}

// Detail returns the detail stored under key.
func (e *Error) Detail(key string) (string, bool) {
	v, ok := e.details[key]
	return v, ok
}

// WithDetail returns a copy of e with key set to value.
func (e *Error) WithDetail(key string, value string) *Error {
	details := make(map[string]string, len(e.details)+1)
	for k, v := range e.details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		cause:   e.cause,
		stack:   e.stack,
		kind:    e.kind,
		message: e.message,
		details: details,
	}
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		cause:   cause,
		stack:   e.stack,
		kind:    e.kind,
		message: e.message,
		details: e.details,
	}
}

// FromError returns the first *Error in err's chain, or nil.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is reports whether any error in err's chain is an *Error of kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.kind == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
