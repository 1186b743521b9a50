package domain

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/maksimkurb/dovado/src/internal/dovado"
)

type recordingDialer struct {
	calls int
}

func (d *recordingDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	d.calls++
	return nil, &net.OpError{Op: "dial", Net: network, Err: net.UnknownNetworkError("test")}
}

func TestNewAppDependencies(t *testing.T) {
	t.Run("Defaults applied to router config", func(t *testing.T) {
		deps := NewAppDependencies(AppConfig{
			Router: dovado.Config{Host: "192.168.0.1", Username: "admin"},
		})

		client, ok := deps.RouterClient().(*dovado.Client)
		if !ok {
			t.Fatalf("Expected *dovado.Client, got %T", deps.RouterClient())
		}
		cfg := client.Config()
		if cfg.Port != dovado.DefaultPort {
			t.Errorf("Expected default port %d, got %d", dovado.DefaultPort, cfg.Port)
		}
		if cfg.Timeout != dovado.DefaultTimeout {
			t.Errorf("Expected default timeout %v, got %v", dovado.DefaultTimeout, cfg.Timeout)
		}
	})

	t.Run("Custom dialer is used", func(t *testing.T) {
		dialer := &recordingDialer{}
		deps := NewAppDependencies(AppConfig{
			Router: dovado.Config{Host: "192.168.0.1", Username: "admin", Timeout: time.Second},
			Dialer: dialer,
		})

		if _, err := deps.RouterClient().Info(context.Background()); err == nil {
			t.Fatal("Expected dial error")
		}
		if dialer.calls != 1 {
			t.Errorf("Expected 1 dial, got %d", dialer.calls)
		}
	})
}

type stubRouterClient struct {
	RouterClient
}

func TestNewTestDependencies(t *testing.T) {
	stub := &stubRouterClient{}
	deps := NewTestDependencies(stub)

	if deps.RouterClient() != stub {
		t.Error("Expected the injected router client to be returned")
	}
}
