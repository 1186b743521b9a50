// Package errors provides domain-specific error types for the dovado client.
//
// This package defines structured errors with error codes, making it easier to handle
// and test the different failure modes of a router session: the router could not be
// reached, it rejected the credentials, or it answered with something unexpected.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeConnection indicates the router could not be reached or the link failed (dial, timeout, reset).
	ErrCodeConnection ErrorCode = "CONNECTION_ERROR"

	// ErrCodeAuth indicates the router rejected the credentials or hung up during login.
	ErrCodeAuth ErrorCode = "AUTH_ERROR"

	// ErrCodeProtocol indicates a response that does not match the expected command vocabulary.
	ErrCodeProtocol ErrorCode = "PROTOCOL_ERROR"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConnectionError creates a new connection error.
func NewConnectionError(message string, cause error) *Error {
	return Wrap(ErrCodeConnection, message, cause)
}

// NewAuthError creates a new authentication error.
func NewAuthError(message string, cause error) *Error {
	return Wrap(ErrCodeAuth, message, cause)
}

// NewProtocolError creates a new protocol error.
func NewProtocolError(message string, cause error) *Error {
	return Wrap(ErrCodeProtocol, message, cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsConnection reports whether err carries ErrCodeConnection.
func IsConnection(err error) bool {
	return CodeOf(err) == ErrCodeConnection
}

// IsAuth reports whether err carries ErrCodeAuth.
func IsAuth(err error) bool {
	return CodeOf(err) == ErrCodeAuth
}

// IsProtocol reports whether err carries ErrCodeProtocol.
func IsProtocol(err error) bool {
	return CodeOf(err) == ErrCodeProtocol
}

// IsConfig reports whether err carries ErrCodeConfig.
func IsConfig(err error) bool {
	return CodeOf(err) == ErrCodeConfig
}
