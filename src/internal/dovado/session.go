package dovado

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/ziutek/telnet"

	apperrors "github.com/maksimkurb/dovado/src/internal/errors"
	"github.com/maksimkurb/dovado/src/internal/log"
)

// SessionState is the lifecycle position of a Session.
type SessionState int

const (
	StateDisconnected SessionState = iota
	StateConnecting
	StateAuthenticated
	StateRequestSent
	StateResponseReceived
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateRequestSent:
		return "request-sent"
	case StateResponseReceived:
		return "response-received"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

// Session is one authenticated connection to the router.
type Session struct {
	conn          *telnet.Conn
	addr          string
	timeout       time.Duration
	state         SessionState
	authenticated bool
}

func newSession(conn net.Conn, addr string, timeout time.Duration) (*Session, error) {
	tconn, err := telnet.NewConn(conn)
	if err != nil {
		return nil, apperrors.NewConnectionError("failed to start telnet session with "+addr, err)
	}
	return &Session{
		conn:    tconn,
		addr:    addr,
		timeout: timeout,
		state:   StateConnecting,
	}, nil
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	return s.state
}

// Ready reports whether the session can accept another command.
func (s *Session) Ready() bool {
	return s.authenticated && (s.state == StateAuthenticated || s.state == StateResponseReceived)
}

func (s *Session) login(ctx context.Context, username, password string) error {
	resp, err := s.send(ctx, UserCommand(username))
	if err != nil {
		return err
	}
	if !strings.Contains(resp, helloMarker) {
		s.abort()
		return apperrors.NewAuthError(fmt.Sprintf("user unknown: %s", username), nil)
	}

	resp, err = s.exchange(ctx, PassCommand(password), PassCommand("******"))
	if err != nil {
		return err
	}
	if !strings.Contains(resp, accessGrantedMarker) {
		s.abort()
		return apperrors.NewAuthError("could not authenticate", nil)
	}

	s.authenticated = true
	s.state = StateAuthenticated
	return nil
}

// QueryRaw sends cmd and returns the router's answer without parsing it.
func (s *Session) QueryRaw(ctx context.Context, cmd string) (string, error) {
	if !s.Ready() {
		return "", apperrors.NewConnectionError(fmt.Sprintf("session with %s is %s", s.addr, s.state), nil)
	}
	return s.send(ctx, cmd)
}

// Query sends cmd and parses the answer into a Response.
func (s *Session) Query(ctx context.Context, cmd string) (*Response, error) {
	raw, err := s.QueryRaw(ctx, cmd)
	if err != nil {
		return nil, err
	}
	resp, err := ParseResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", cmd, err)
	}
	return resp, nil
}

// SendSMS asks the router's modem to send message to number.
func (s *Session) SendSMS(ctx context.Context, number, message string) error {
	if err := ValidateSMS(number, message); err != nil {
		return err
	}

	resp, err := s.QueryRaw(ctx, SMSCommand(number))
	if err != nil {
		return err
	}
	if !strings.Contains(resp, smsInputMarker) {
		return apperrors.NewProtocolError(fmt.Sprintf("router refused SMS input: %q", strings.TrimSpace(resp)), nil)
	}

	if err := s.write(ctx, normalizeMessage(message)+smsEnd); err != nil {
		return err
	}
	log.Infof("SMS to %s handed over to the router", number)
	return nil
}

// Close logs out if possible and closes the connection. It is safe to call more than once.
func (s *Session) Close() error {
	if s.state == StateClosed {
		return nil
	}
	if s.Ready() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		if _, err := s.send(ctx, CmdQuit); err != nil {
			log.Debugf("Logout from %s failed: %v", s.addr, err)
		}
		cancel()
	}
	s.state = StateClosed
	return s.conn.Close()
}

func (s *Session) abort() {
	s.state = StateClosed
	_ = s.conn.Close()
}

func (s *Session) send(ctx context.Context, cmd string) (string, error) {
	return s.exchange(ctx, cmd, cmd)
}

// exchange waits for the prompt, writes cmd and reads the answer up to ETB.
// logged is what appears in the debug log instead of cmd.
func (s *Session) exchange(ctx context.Context, cmd, logged string) (string, error) {
	if strings.ContainsAny(cmd, "\r\n") {
		return "", apperrors.NewValidationError(fmt.Sprintf("command %q spans several lines", logged), nil)
	}
	if err := ctx.Err(); err != nil {
		s.abort()
		return "", apperrors.NewConnectionError("request to "+s.addr+" cancelled", err)
	}

	// A blocked read only sees the deadline, so cancellation moves it into the past.
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	skipped, err := s.readUntil(ctx, "\n")
	if err != nil {
		return "", s.fail("waiting for prompt from", err)
	}
	logTraffic("skip", skipped)

	if _, err := s.readUntil(ctx, prompt); err != nil {
		return "", s.fail("waiting for prompt from", err)
	}

	s.state = StateRequestSent
	logTraffic("send", logged)
	if err := s.write(ctx, cmd+"\n"); err != nil {
		return "", err
	}

	resp, err := s.readUntil(ctx, terminator)
	if err != nil {
		return "", s.fail("reading response from", err)
	}
	resp = strings.TrimSuffix(resp, terminator)
	logTraffic("recv", resp)

	s.state = StateResponseReceived
	return resp, nil
}

func (s *Session) readUntil(ctx context.Context, delim string) (string, error) {
	if err := s.conn.SetReadDeadline(s.deadline(ctx)); err != nil {
		return "", err
	}
	// Checked after setting the deadline so a cancellation racing with it is not lost.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := s.conn.ReadUntil(delim)
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		return string(data), ctxErr
	}
	return string(data), err
}

func (s *Session) write(ctx context.Context, text string) error {
	if err := s.conn.SetWriteDeadline(s.deadline(ctx)); err != nil {
		return s.fail("writing to", err)
	}
	if err := ctx.Err(); err != nil {
		return s.fail("writing to", err)
	}
	if _, err := s.conn.Write([]byte(text)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return s.fail("writing to", err)
	}
	return nil
}

func (s *Session) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(s.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		return ctxDeadline
	}
	return d
}

// fail closes the session and classifies err. A hang-up before login was
// acknowledged counts as rejected credentials.
func (s *Session) fail(what string, err error) error {
	s.abort()

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewConnectionError(fmt.Sprintf("request to %s cancelled", s.addr), err)
	}
	if !s.authenticated && (errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)) {
		return apperrors.NewAuthError(fmt.Sprintf("%s closed the connection before acknowledging login", s.addr), err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewConnectionError(fmt.Sprintf("timed out %s %s", what, s.addr), err)
	}
	return apperrors.NewConnectionError(fmt.Sprintf("failed %s %s", what, s.addr), err)
}

func logTraffic(what, msg string) {
	if !log.IsVerbose() {
		return
	}
	if msg = strings.TrimSpace(msg); msg != "" {
		log.Debugf("%s %s", what, strings.ReplaceAll(msg, "\n", "\\n"))
	}
}
