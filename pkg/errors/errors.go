package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the category of a client failure
type ErrorType string

const (
	ErrorTypeAuth       ErrorType = "auth"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeRequest    ErrorType = "request"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeParsing    ErrorType = "parsing"
)

// Error represents a failure with type information. Code and Body carry the
// HTTP status and response body when the failure came from a response.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Body    string
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewAuthError reports missing credentials, rejected login or a failed challenge.
func NewAuthError(message string, code int, body string) *Error {
	return &Error{Type: ErrorTypeAuth, Message: message, Code: code, Body: body}
}

// NewNotFoundError reports a 404 or a missing entity in a 2xx payload.
func NewNotFoundError(message string) *Error {
	return &Error{Type: ErrorTypeNotFound, Message: message, Code: 404}
}

// NewRequestError reports a non-2xx response or a write rejected by the server.
func NewRequestError(message string, code int, body string) *Error {
	return &Error{Type: ErrorTypeRequest, Message: message, Code: code, Body: body}
}

// NewValidationError reports bad caller arguments. No request is made.
func NewValidationError(message string) *Error {
	return &Error{Type: ErrorTypeValidation, Message: message}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(message string, err error) *Error {
	return &Error{Type: ErrorTypeNetwork, Message: message, Err: err}
}

// NewParsingError wraps a payload that could not be decoded.
func NewParsingError(message string, err error) *Error {
	return &Error{Type: ErrorTypeParsing, Message: message, Err: err}
}

// TypeOf returns the ErrorType of err, or the empty string when err is not an *Error.
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

func IsAuth(err error) bool       { return TypeOf(err) == ErrorTypeAuth }
func IsNotFound(err error) bool   { return TypeOf(err) == ErrorTypeNotFound }
func IsRequest(err error) bool    { return TypeOf(err) == ErrorTypeRequest }
func IsValidation(err error) bool { return TypeOf(err) == ErrorTypeValidation }
func IsNetwork(err error) bool    { return TypeOf(err) == ErrorTypeNetwork }

// StatusCode returns the HTTP status attached to err, or 0.
func StatusCode(err error) int {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return 0
}
