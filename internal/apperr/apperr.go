package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the stable, caller-facing error code. Every component failure
// maps to exactly one code; codes never leak internals on their own.
type Code string

const (
	CodeBadRequest         Code = "BAD_REQUEST"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeEmailTaken         Code = "EMAIL_TAKEN"
	CodeUnsupportedImage   Code = "UNSUPPORTED_IMAGE"
	CodeModelUnavailable   Code = "MODEL_UNAVAILABLE"
	CodeModelRejected      Code = "MODEL_REJECTED"
	CodeMalformedAnalysis  Code = "PARSE_ERROR"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeServerError        Code = "SERVER_ERROR"
)

var statusByCode = map[Code]int{
	CodeBadRequest:         http.StatusBadRequest,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeEmailTaken:         http.StatusConflict,
	CodeUnsupportedImage:   http.StatusUnsupportedMediaType,
	CodeModelUnavailable:   http.StatusServiceUnavailable,
	CodeModelRejected:      http.StatusBadGateway,
	CodeMalformedAnalysis:  http.StatusInternalServerError,
	CodeStorageUnavailable: http.StatusServiceUnavailable,
	CodeServerError:        http.StatusInternalServerError,
}

// Error carries one outward code, a user-facing message, and the wrapped
// cause for logs. The cause is never serialized in production responses.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) HTTPStatus() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Detail returns the wrapped cause text for non-production diagnostics.
func (e *Error) Detail() string {
	if e.cause == nil {
		return ""
	}
	return e.cause.Error()
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// From extracts an *Error, or wraps anything else as SERVER_ERROR so no
// component failure escapes the taxonomy.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(CodeServerError, "Something went wrong. Please try again.", err)
}
