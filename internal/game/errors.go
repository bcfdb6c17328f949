package game

import (
	"errors"
	"fmt"
)

// ErrorKind classifies command failures. Validation errors are rejected
// before any mutation and are safe to retry with corrected input;
// state-machine errors indicate client/server desync; not-found errors are
// terminal for the request.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindStateMachine
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStateMachine:
		return "state"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the command failure type returned by the orchestrator.
type Error struct {
	Kind ErrorKind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

func statef(format string, args ...any) error {
	return &Error{Kind: KindStateMachine, msg: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

// IsStateMachine reports whether err is a state-machine error.
func IsStateMachine(err error) bool { return kindOf(err) == KindStateMachine }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return kindOf(err) == KindNotFound }

func kindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrorKind(-1)
}
