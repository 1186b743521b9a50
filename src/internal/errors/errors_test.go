package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      &Error{Code: ErrCodeAuth, Message: "user unknown"},
			expected: "[AUTH_ERROR] user unknown",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeConnection, "failed to connect to 192.168.0.1:6435", errors.New("connection refused")),
			expected: "[CONNECTION_ERROR] failed to connect to 192.168.0.1:6435: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeProtocol, "wrapper", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestError_Is(t *testing.T) {
	err1 := &Error{Code: ErrCodeAuth, Message: "test error"}
	err2 := &Error{Code: ErrCodeAuth, Message: "another error"}
	err3 := &Error{Code: ErrCodeConnection, Message: "network error"}

	if !err1.Is(err2) {
		t.Errorf("Expected errors with same code to match")
	}

	if err1.Is(err3) {
		t.Errorf("Expected errors with different codes to not match")
	}

	if !errors.Is(err1, New(ErrCodeAuth, "")) {
		t.Errorf("Expected errors.Is to match by code")
	}
}

func TestCodeHelpers(t *testing.T) {
	wrapped := fmt.Errorf("query info: %w", NewProtocolError("malformed line", nil))

	if CodeOf(wrapped) != ErrCodeProtocol {
		t.Errorf("CodeOf() = %q, want %q", CodeOf(wrapped), ErrCodeProtocol)
	}
	if !IsProtocol(wrapped) {
		t.Error("Expected IsProtocol to see through fmt wrapping")
	}
	if IsAuth(wrapped) || IsConnection(wrapped) || IsConfig(wrapped) {
		t.Error("Expected other helpers to report false")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Error("Expected empty code for plain errors")
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  *Error
		code ErrorCode
	}{
		{"connection", NewConnectionError("m", cause), ErrCodeConnection},
		{"auth", NewAuthError("m", cause), ErrCodeAuth},
		{"protocol", NewProtocolError("m", cause), ErrCodeProtocol},
		{"config", NewConfigError("m", cause), ErrCodeConfig},
		{"validation", NewValidationError("m", cause), ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Expected code %v, got %v", tt.code, tt.err.Code)
			}
			if tt.err.Message != "m" {
				t.Errorf("Expected message 'm', got %v", tt.err.Message)
			}
			if tt.err.Cause != cause {
				t.Errorf("Expected cause to be preserved")
			}
		})
	}
}
