package dovado

import (
	"context"
	"net"
	"strconv"
	"time"

	apperrors "github.com/maksimkurb/dovado/src/internal/errors"
	"github.com/maksimkurb/dovado/src/internal/log"
	"github.com/maksimkurb/dovado/src/internal/utils"
)

const (
	// DefaultPort is the router's management port.
	DefaultPort = 6435

	// DefaultTimeout bounds the dial and every read or write on a session.
	DefaultTimeout = 5 * time.Second
)

// Config holds the connection parameters of a router.
type Config struct {
	Username string
	Password string
	Host     string
	Port     int
	Timeout  time.Duration
}

// Address returns host:port.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Dialer opens the transport to the router. *net.Dialer implements it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Option customises a Client.
type Option func(*Client)

// WithDialer replaces the TCP dialer, e.g. with an in-memory transport in tests.
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		c.dialer = d
	}
}

// Client talks to one router. It holds only connection parameters, so it is
// safe to share; every call opens its own Session.
type Client struct {
	cfg    Config
	dialer Dialer
}

// NewClient creates a client. Zero Port and Timeout fall back to DefaultPort and DefaultTimeout.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.dialer == nil {
		c.dialer = &net.Dialer{Timeout: cfg.Timeout}
	}
	return c
}

// Config returns the effective connection parameters.
func (c *Client) Config() Config {
	return c.cfg
}

// Session connects to the router and logs in. The caller must Close the session.
func (c *Client) Session(ctx context.Context) (*Session, error) {
	if c.cfg.Host == "" {
		return nil, apperrors.NewConfigError("router host is not set", nil)
	}

	addr := c.cfg.Address()
	log.Infof("Connecting to %s@%s", c.cfg.Username, addr)

	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	conn, err := c.dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		log.Warnf("Could not communicate with %s@%s: %v", c.cfg.Username, addr, err)
		return nil, apperrors.NewConnectionError("failed to connect to "+addr, err)
	}

	s, err := newSession(conn, addr, c.cfg.Timeout)
	if err != nil {
		utils.CloseOrWarn(conn)
		return nil, err
	}

	if err := s.login(ctx, c.cfg.Username, c.cfg.Password); err != nil {
		log.Warnf("Could not communicate with %s@%s: %v", c.cfg.Username, addr, err)
		_ = s.Close()
		return nil, err
	}

	log.Debugf("Logged in to %s as %s", addr, c.cfg.Username)
	return s, nil
}

func (c *Client) withSession(ctx context.Context, fn func(s *Session) error) error {
	s, err := c.Session(ctx)
	if err != nil {
		return err
	}
	defer utils.CloseOrWarn(s)

	if err := fn(s); err != nil {
		log.Warnf("Could not communicate with %s@%s: %v", c.cfg.Username, c.cfg.Address(), err)
		return err
	}
	return nil
}

// Query runs command in a new session and parses the answer.
func (c *Client) Query(ctx context.Context, command string) (*Response, error) {
	var resp *Response
	err := c.withSession(ctx, func(s *Session) error {
		var err error
		resp, err = s.Query(ctx, command)
		return err
	})
	return resp, err
}

// QueryRaw runs command in a new session and returns the answer verbatim.
func (c *Client) QueryRaw(ctx context.Context, command string) (string, error) {
	var resp string
	err := c.withSession(ctx, func(s *Session) error {
		var err error
		resp, err = s.QueryRaw(ctx, command)
		return err
	})
	return resp, err
}

// Info returns the parsed "info" answer.
func (c *Client) Info(ctx context.Context) (*Response, error) {
	return c.Query(ctx, CmdInfo)
}

// Services returns the parsed "services" answer.
func (c *Client) Services(ctx context.Context) (*Response, error) {
	return c.Query(ctx, CmdServices)
}

// State returns the device state: "info" and "services" merged, queried in one session.
func (c *Client) State(ctx context.Context) (*Response, error) {
	var state *Response
	err := c.withSession(ctx, func(s *Session) error {
		log.Infof("Querying state")
		info, err := s.Query(ctx, CmdInfo)
		if err != nil {
			return err
		}
		services, err := s.Query(ctx, CmdServices)
		if err != nil {
			return err
		}
		info.Merge(services)
		state = info
		return nil
	})
	return state, err
}

// SendSMS sends message to number through the router's modem.
func (c *Client) SendSMS(ctx context.Context, number, message string) error {
	if err := ValidateSMS(number, message); err != nil {
		return err
	}
	return c.withSession(ctx, func(s *Session) error {
		return s.SendSMS(ctx, number, message)
	})
}
