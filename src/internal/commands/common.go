package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maksimkurb/dovado/src/internal/config"
	"github.com/maksimkurb/dovado/src/internal/discovery"
	"github.com/maksimkurb/dovado/src/internal/domain"
	"github.com/maksimkurb/dovado/src/internal/dovado"
	apperrors "github.com/maksimkurb/dovado/src/internal/errors"
	"github.com/maksimkurb/dovado/src/internal/log"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	Context    context.Context
	ConfigPath string
	Overrides  config.Overrides
	Format     Format

	// LookupEnv reads DOVADO_* overrides; nil means no environment.
	LookupEnv func(string) (string, bool)

	Stdout io.Writer
	Stderr io.Writer

	// Deps replaces the dependencies built from the configuration when set.
	Deps *domain.AppDependencies
}

func (c *AppContext) context() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

func (c *AppContext) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *AppContext) stderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}
	return c.Stderr
}

// UsageError reports wrong command-line arguments.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsageError reports whether err was caused by wrong arguments, including -h.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue) || errors.Is(err, flag.ErrHelp)
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func parseFlags(fs *flag.FlagSet, args []string, ctx *AppContext) error {
	fs.SetOutput(ctx.stderr())
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &UsageError{Err: err}
	}
	return nil
}

// loadConfigOrFail layers the credentials file, the environment and the
// command-line overrides, then validates the result.
func loadConfigOrFail(ctx *AppContext) (*config.Config, error) {
	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if ctx.LookupEnv != nil {
		if err := cfg.ApplyEnv(ctx.LookupEnv); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}
	cfg.ApplyOverrides(ctx.Overrides)

	if err := cfg.ValidateConfig(); err != nil {
		return nil, apperrors.NewConfigError("configuration validation failed", err)
	}

	return cfg, nil
}

// loadDependencies returns ctx.Deps or builds a router client from the configuration,
// resolving the router host on the way.
func loadDependencies(ctx *AppContext) (*domain.AppDependencies, error) {
	if ctx.Deps != nil {
		return ctx.Deps, nil
	}

	cfg, err := loadConfigOrFail(ctx)
	if err != nil {
		return nil, err
	}

	resolveCtx, cancel := context.WithTimeout(ctx.context(), cfg.TimeoutDuration())
	defer cancel()

	host, err := discovery.ResolveHost(resolveCtx, cfg.Host, nil)
	if err != nil {
		return nil, err
	}
	log.Debugf("Router address: %s:%d", host, cfg.Port)

	return domain.NewAppDependencies(domain.AppConfig{
		Router: dovado.Config{
			Username: cfg.Username,
			Password: cfg.Password,
			Host:     host,
			Port:     cfg.Port,
			Timeout:  cfg.TimeoutDuration(),
		},
	}), nil
}
