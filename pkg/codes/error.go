package codes

import (
	"errors"
	"fmt"
)

// Error is an error tagged with a Code.
type Error struct {
	Code  Code
	Msg   string
	Cause error
}

// New returns an *Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Newf is New with formatting.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap tags cause with code. Wrap returns nil when cause is nil.
func Wrap(cause error, code Code, msg string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Msg: msg, Cause: cause}
}

func (e *Error) Error() string {
	s := fmt.Sprintf("[%d %s] %s", int(e.Code), e.Code, e.Msg)
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// CodeOf extracts the code from err. It returns 0 for nil and
// UnknownFailure for errors that carry no code.
func CodeOf(err error) Code {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return UnknownFailure
}
