package domain

import (
	"github.com/maksimkurb/dovado/src/internal/dovado"
)

var _ RouterClient = (*dovado.Client)(nil)

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// Usage:
//
//	deps := domain.NewAppDependencies(domain.AppConfig{
//	    Router: dovado.Config{Host: "192.168.0.1", Username: "admin", Password: "secret"},
//	})
//	state, err := deps.RouterClient().State(ctx)
type AppDependencies struct {
	routerClient RouterClient
}

// AppConfig holds configuration for creating application dependencies.
type AppConfig struct {
	// Router holds the connection parameters. Host must already be resolved.
	Router dovado.Config

	// Dialer replaces the TCP dialer when set.
	Dialer dovado.Dialer
}

// NewAppDependencies creates a new dependency container with production implementations.
func NewAppDependencies(cfg AppConfig) *AppDependencies {
	var opts []dovado.Option
	if cfg.Dialer != nil {
		opts = append(opts, dovado.WithDialer(cfg.Dialer))
	}

	return &AppDependencies{
		routerClient: dovado.NewClient(cfg.Router, opts...),
	}
}

// NewTestDependencies creates a dependency container around the given client,
// usually a mocks.MockRouterClient.
func NewTestDependencies(routerClient RouterClient) *AppDependencies {
	return &AppDependencies{
		routerClient: routerClient,
	}
}

// RouterClient returns the router client.
func (d *AppDependencies) RouterClient() RouterClient {
	return d.routerClient
}
