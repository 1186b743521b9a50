package config

import (
	"time"

	"github.com/maksimkurb/dovado/src/internal/utils"
)

const (
	// DefaultFileName is looked up next to the executable when no path is given.
	DefaultFileName = ".credentials.conf"

	DefaultPort    = 6435
	DefaultTimeout = "5s"

	minTimeout = 100 * time.Millisecond
)

// Environment variables consulted by ApplyEnv.
const (
	EnvUsername = "DOVADO_USERNAME"
	EnvPassword = "DOVADO_PASSWORD"
	EnvHost     = "DOVADO_HOST"
	EnvPort     = "DOVADO_PORT"
	EnvTimeout  = "DOVADO_TIMEOUT"
)

type Config struct {
	// Username is the router login.
	Username string `toml:"username" json:"username" validate:"required"`
	// Password is the router password.
	Password string `toml:"password" json:"password"`
	// Host is the router address. Empty means the default gateway.
	Host string `toml:"host,omitempty" json:"host,omitempty" validate:"omitempty,hostname_or_ip"`
	// Port is the router management port (default: 6435).
	Port int `toml:"port" json:"port" validate:"min=1,max=65535"`
	// Timeout bounds the dial and every read/write, as a Go duration (default: "5s").
	Timeout string `toml:"timeout" json:"timeout" validate:"required,duration"`

	_absConfigFilePath string
}

// Overrides carries values given on the command line; zero values are ignored.
type Overrides struct {
	Username string
	Password string
	Host     string
	Port     int
	Timeout  string
}

// Default returns a configuration with only defaults filled in.
func Default() *Config {
	return &Config{
		Port:    DefaultPort,
		Timeout: DefaultTimeout,
	}
}

// DefaultConfigPath returns DefaultFileName in the directory of the running executable.
func DefaultConfigPath() string {
	return utils.GetAbsolutePath(DefaultFileName, utils.ExecutableDir())
}

// GetConfigPath returns the absolute path the configuration was loaded from.
func (c *Config) GetConfigPath() string {
	return c._absConfigFilePath
}

// TimeoutDuration returns Timeout parsed, falling back to DefaultTimeout when unset or invalid.
func (c *Config) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultTimeout)
	return d
}

// ApplyOverrides copies every non-zero override into c.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Username != "" {
		c.Username = o.Username
	}
	if o.Password != "" {
		c.Password = o.Password
	}
	if o.Host != "" {
		c.Host = o.Host
	}
	if o.Port != 0 {
		c.Port = o.Port
	}
	if o.Timeout != "" {
		c.Timeout = o.Timeout
	}
}
