package repodoc

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFIG    = "config"
	EINVALID   = "invalid"
	EAUTH      = "auth"
	ENETWORK   = "network"
	ERATELIMIT = "rate_limited"
	ESCAN      = "scan"
	ENOTFOUND  = "not_found"
	EINTERNAL  = "internal"
)

// Error represents an application-specific error. Err optionally carries the
// underlying cause so that callers can still inspect it with errors.As.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("repodoc error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("repodoc error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrapf is like Errorf but records err as the cause.
func Wrapf(code string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorKind returns the name of the error category for a code, as reported
// to protocol clients.
func ErrorKind(code string) string {
	switch code {
	case ECONFIG:
		return "ConfigError"
	case EINVALID:
		return "ParseError"
	case EAUTH:
		return "AuthError"
	case ENETWORK:
		return "NetworkError"
	case ERATELIMIT:
		return "RateLimitError"
	case ESCAN:
		return "ScanError"
	case ENOTFOUND:
		return "NotFoundError"
	default:
		return "InternalError"
	}
}
