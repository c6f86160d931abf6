// Package yaerrors provides the error type shared by every package of the
// module. An Error carries a numeric code next to the cause and a textual
// traceback that grows each time the error is wrapped on its way up.
//
// Codes are HTTP statuses for local failures. Bot API failures keep the
// error_code reported by the server.
//
// Example usage:
//
//	err := yaerrors.FromError(http.StatusBadGateway, cause, "send message")
//	return err.Wrap("notify subscribers") // "502 | notify subscribers -> send message: <cause>"
package yaerrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/YaCodeDev/GoYaTgBotAPI/yalogger"
)

type Error interface {
	error
	Wrap(msg string) Error
	WrapWithLog(msg string, log yalogger.Logger) Error
	Code() int
	Unwrap() error
	UnwrapLastError() string
}

const (
	codeSeparate  = " | "
	errorSeparate = " -> "
)

type yaError struct {
	code      int
	cause     error
	traceback string
}

// FromError creates an Error from an existing cause, prefixing the traceback with wrap.
func FromError(code int, cause error, wrap string) Error {
	return &yaError{
		code:      code,
		cause:     cause,
		traceback: fmt.Sprintf("%s: %v", wrap, cause),
	}
}

// FromErrorWithLog is FromError that also logs the resulting message at Error level.
func FromErrorWithLog(code int, cause error, wrap string, log yalogger.Logger) Error {
	err := FromError(code, cause, wrap)

	log.Error(err.UnwrapLastError())

	return err
}

// FromString creates an Error whose cause is a new error with text msg.
func FromString(code int, msg string) Error {
	return &yaError{
		code:      code,
		cause:     errors.New(msg), //nolint:err113
		traceback: msg,
	}
}

// FromStringWithLog is FromString that also logs msg at Error level.
func FromStringWithLog(code int, msg string, log yalogger.Logger) Error {
	log.Error(msg)

	return FromString(code, msg)
}

// As reports whether err (or anything it wraps) is an Error.
func As(err error) (Error, bool) {
	var target Error
	if errors.As(err, &target) {
		return target, true
	}

	return nil, false
}

// HasCode reports whether err is an Error carrying the given code.
func HasCode(err error, code int) bool {
	yaErr, ok := As(err)

	return ok && yaErr.Code() == code
}

// Error returns the code and the traceback, e.g. "404 | get chat -> chat not found".
func (e *yaError) Error() string {
	safetyCheck(&e)

	return fmt.Sprintf("%d%s%s", e.code, codeSeparate, e.traceback)
}

func (e *yaError) Unwrap() error {
	safetyCheck(&e)

	return e.cause
}

// UnwrapLastError returns the outermost traceback segment.
func (e *yaError) UnwrapLastError() string {
	safetyCheck(&e)

	end := strings.Index(e.traceback, errorSeparate)
	if end == -1 {
		return e.traceback
	}

	return e.traceback[:end]
}

// Wrap prepends msg to the traceback. Call it each time the error travels
// one level up the call stack.
func (e *yaError) Wrap(msg string) Error {
	safetyCheck(&e)
	e.traceback = msg + errorSeparate + e.traceback

	return e
}

// WrapWithLog is Wrap that also logs msg at Error level.
func (e *yaError) WrapWithLog(msg string, log yalogger.Logger) Error {
	log.Error(msg)

	return e.Wrap(msg)
}

func (e *yaError) Code() int {
	safetyCheck(&e)

	return e.code
}

// safetyCheck substitutes a teapot error for a nil receiver so that methods
// on a nil *yaError never dereference nil.
func safetyCheck(err **yaError) {
	if *err == nil {
		*err = &yaError{
			code:      http.StatusTeapot,
			cause:     ErrTeapot,
			traceback: ErrTeapot.Error(),
		}
	}
}
