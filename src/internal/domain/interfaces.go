// Package domain defines core interfaces for dependency injection and abstraction.
//
// This package contains the fundamental interfaces that enable loose coupling between
// components and facilitate testing through dependency injection.
package domain

import (
	"context"

	"github.com/maksimkurb/dovado/src/internal/dovado"
)

// RouterClient defines the operations the CLI performs against a Dovado router.
//
// Every call opens its own authenticated session and logs out before returning,
// so implementations keep no connection state between calls.
type RouterClient interface {
	// Query sends command and parses the "key = value" answer.
	Query(ctx context.Context, command string) (*dovado.Response, error)

	// QueryRaw sends command and returns the answer text unparsed.
	QueryRaw(ctx context.Context, command string) (string, error)

	// State returns the "info" and "services" answers merged.
	State(ctx context.Context) (*dovado.Response, error)

	// Info returns the parsed "info" answer.
	Info(ctx context.Context) (*dovado.Response, error)

	// Services returns the parsed "services" answer.
	Services(ctx context.Context) (*dovado.Response, error)

	// SendSMS sends message to number through the router's cellular modem.
	SendSMS(ctx context.Context, number, message string) error
}
