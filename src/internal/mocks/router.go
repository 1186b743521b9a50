// Package mocks provides mock implementations for testing.
//
// This package should ONLY be imported in test files (_test.go).
package mocks

import (
	"context"

	"github.com/maksimkurb/dovado/src/internal/domain"
	"github.com/maksimkurb/dovado/src/internal/dovado"
)

var _ domain.RouterClient = (*MockRouterClient)(nil)

// MockRouterClient is a mock implementation of the RouterClient interface.
//
// It allows tests to provide custom behavior for each method through function fields.
// If a function field is nil, a sensible default implementation is used. Every call
// is recorded in Calls as "<method> <args>".
//
// Example usage:
//
//	mock := &MockRouterClient{
//	    StateFunc: func(ctx context.Context) (*dovado.Response, error) {
//	        return nil, errors.NewConnectionError("unreachable", nil)
//	    },
//	}
type MockRouterClient struct {
	// QueryFunc is called by Query if not nil
	QueryFunc func(ctx context.Context, command string) (*dovado.Response, error)

	// QueryRawFunc is called by QueryRaw if not nil
	QueryRawFunc func(ctx context.Context, command string) (string, error)

	// StateFunc is called by State if not nil
	StateFunc func(ctx context.Context) (*dovado.Response, error)

	// InfoFunc is called by Info if not nil
	InfoFunc func(ctx context.Context) (*dovado.Response, error)

	// ServicesFunc is called by Services if not nil
	ServicesFunc func(ctx context.Context) (*dovado.Response, error)

	// SendSMSFunc is called by SendSMS if not nil
	SendSMSFunc func(ctx context.Context, number, message string) error

	Calls []string
}

// NewMockRouterClient creates a mock router client with default behavior.
func NewMockRouterClient() *MockRouterClient {
	return &MockRouterClient{}
}

// DefaultInfo is returned by Info when InfoFunc is nil.
func DefaultInfo() *dovado.Response {
	r := dovado.NewResponse()
	r.Set("product name", "Dovado Tiny AC")
	r.Set("signal strength", "74 %")
	r.Set("traffic modem tx", "1024")
	r.Set("traffic modem rx", "4096")
	return r
}

// DefaultServices is returned by Services when ServicesFunc is nil.
func DefaultServices() *dovado.Response {
	r := dovado.NewResponse()
	r.Set("home automation", "ON")
	r.Set("sms unread", "2")
	return r
}

// Query returns a parsed response.
//
// If QueryFunc is set, it calls that function.
// Otherwise, returns DefaultInfo for "info", DefaultServices for "services"
// and an empty response for anything else.
func (m *MockRouterClient) Query(ctx context.Context, command string) (*dovado.Response, error) {
	m.Calls = append(m.Calls, "Query "+command)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, command)
	}
	switch command {
	case dovado.CmdInfo:
		return DefaultInfo(), nil
	case dovado.CmdServices:
		return DefaultServices(), nil
	}
	return dovado.NewResponse(), nil
}

// QueryRaw returns a raw response.
//
// If QueryRawFunc is set, it calls that function.
// Otherwise, returns "<command>: OK".
func (m *MockRouterClient) QueryRaw(ctx context.Context, command string) (string, error) {
	m.Calls = append(m.Calls, "QueryRaw "+command)
	if m.QueryRawFunc != nil {
		return m.QueryRawFunc(ctx, command)
	}
	return command + ": OK", nil
}

// State returns the device state.
//
// If StateFunc is set, it calls that function.
// Otherwise, returns DefaultInfo merged with DefaultServices.
func (m *MockRouterClient) State(ctx context.Context) (*dovado.Response, error) {
	m.Calls = append(m.Calls, "State")
	if m.StateFunc != nil {
		return m.StateFunc(ctx)
	}
	state := DefaultInfo()
	state.Merge(DefaultServices())
	return state, nil
}

// Info returns the "info" answer.
//
// If InfoFunc is set, it calls that function. Otherwise, returns DefaultInfo.
func (m *MockRouterClient) Info(ctx context.Context) (*dovado.Response, error) {
	m.Calls = append(m.Calls, "Info")
	if m.InfoFunc != nil {
		return m.InfoFunc(ctx)
	}
	return DefaultInfo(), nil
}

// Services returns the "services" answer.
//
// If ServicesFunc is set, it calls that function. Otherwise, returns DefaultServices.
func (m *MockRouterClient) Services(ctx context.Context) (*dovado.Response, error) {
	m.Calls = append(m.Calls, "Services")
	if m.ServicesFunc != nil {
		return m.ServicesFunc(ctx)
	}
	return DefaultServices(), nil
}

// SendSMS sends an SMS.
//
// If SendSMSFunc is set, it calls that function. Otherwise, succeeds.
func (m *MockRouterClient) SendSMS(ctx context.Context, number, message string) error {
	m.Calls = append(m.Calls, "SendSMS "+number+" "+message)
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(ctx, number, message)
	}
	return nil
}
