package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	// CodeValidation marks input rejected locally before any request is sent.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeBackend marks a failure status reported by the reservation backend.
	CodeBackend Code = "BACKEND_ERROR"
	// CodeTransport marks a request that never completed at the network level.
	CodeTransport Code = "TRANSPORT_ERROR"
	// CodeDecode marks a success response whose payload could not be decoded
	// into the expected shape.
	CodeDecode Code = "DECODE_ERROR"

	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// CodeForStatus maps a backend HTTP failure status onto a domain code.
func CodeForStatus(status int) Code {
	switch status {
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	default:
		return CodeBackend
	}
}

// Error carries a domain code, a user-facing message, and an optional cause.
// Backend-reported errors keep the verbatim backend message plus the HTTP
// status that produced them.
type Error struct {
	code    Code
	message string
	status  int
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

// Message returns the text a caller should surface to the user.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// HTTPStatus reports the backend status that produced the error, or zero for
// errors with no HTTP exchange behind them.
func (e *Error) HTTPStatus() int {
	if e == nil {
		return 0
	}
	return e.status
}

func (e *Error) WithStatus(status int) *Error {
	if e == nil {
		return nil
	}
	e.status = status
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts a typed *Error from an error chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether err carries the given domain code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
