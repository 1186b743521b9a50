// Package dovadotest provides a scripted fake router for tests, in the spirit of net/http/httptest.
package dovadotest

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"
)

const (
	greeting = "Dovado router management\n"
	prompt   = ">> "
	etb      = "\x17"
)

// SMS is a message the fake router accepted.
type SMS struct {
	Number  string
	Message string
}

// Server is a fake router listening on 127.0.0.1.
//
// Fields must be set before the first client connects.
type Server struct {
	// Users maps usernames to passwords.
	Users map[string]string
	// Responses maps a command line to the text sent back before ETB.
	Responses map[string]string
	// HangupAfterUser closes the connection as soon as the "user" command is read.
	HangupAfterUser bool
	// RejectSMS answers "sms sendtxt" without opening SMS input.
	RejectSMS bool
	// Silent accepts connections but never sends anything.
	Silent bool

	listener net.Listener
	wg       sync.WaitGroup

	mu       sync.Mutex
	commands []string
	messages []SMS
}

// NewServer starts a fake router with one user, admin/password, and registers its shutdown with t.Cleanup.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := NewUnstartedServer(t)
	s.Start()
	return s
}

// NewUnstartedServer returns a listening fake router that does not accept
// connections until Start is called, so its fields can be configured first.
func NewUnstartedServer(t testing.TB) *Server {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("dovadotest: failed to listen: %v", err)
	}

	s := &Server{
		Users:     map[string]string{"admin": "password"},
		Responses: map[string]string{},
		listener:  l,
	}
	t.Cleanup(s.Close)
	return s
}

// Start begins accepting connections.
func (s *Server) Start() {
	s.wg.Add(1)
	go s.serve()
}

// Host returns the listening IP.
func (s *Server) Host() string {
	return s.listener.Addr().(*net.TCPAddr).IP.String()
}

// Port returns the listening port.
func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Close stops listening and waits for the accept loop to finish.
func (s *Server) Close() {
	_ = s.listener.Close()
	s.wg.Wait()
}

// Commands returns every command line received, in order. Passwords are included verbatim.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// Messages returns the SMS accepted so far.
func (s *Server) Messages() []SMS {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SMS(nil), s.messages...)
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer conn.Close()
			s.handle(conn)
		}()
	}
}

func (s *Server) record(cmd string) {
	s.mu.Lock()
	s.commands = append(s.commands, cmd)
	s.mu.Unlock()
}

func (s *Server) handle(conn net.Conn) {
	r := bufio.NewReader(conn)
	if s.Silent {
		_, _ = r.ReadString('\n')
		return
	}

	reply := func(text string) bool {
		_, err := conn.Write([]byte(text + etb + "\n" + prompt))
		return err == nil
	}

	if _, err := conn.Write([]byte(greeting + prompt)); err != nil {
		return
	}

	var user string
	authed := false
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimRight(line, "\r\n")
		s.record(cmd)

		verb, arg, _ := strings.Cut(cmd, " ")
		switch {
		case verb == "user":
			if s.HangupAfterUser {
				return
			}
			if _, ok := s.Users[arg]; !ok {
				reply("User unknown")
				continue
			}
			user = arg
			reply("Hello " + arg)
		case verb == "pass":
			if pw, ok := s.Users[user]; ok && pw == arg {
				authed = true
				reply("Access granted")
			} else {
				reply("Access denied")
			}
		case verb == "quit":
			_, _ = conn.Write([]byte("Bye" + etb))
			return
		case !authed:
			reply("Not logged in")
		case strings.HasPrefix(cmd, "sms sendtxt "):
			if s.RejectSMS {
				reply("SMS not available")
				continue
			}
			if _, err := conn.Write([]byte("Start sms input" + etb)); err != nil {
				return
			}
			body, ok := readSMSBody(r)
			if !ok {
				return
			}
			s.mu.Lock()
			s.messages = append(s.messages, SMS{Number: strings.TrimPrefix(cmd, "sms sendtxt "), Message: body})
			s.mu.Unlock()
			if _, err := conn.Write([]byte("\nSMS queued\n" + prompt)); err != nil {
				return
			}
		default:
			if resp, ok := s.Responses[cmd]; ok {
				reply(resp)
			} else {
				reply("ERROR: unknown command " + cmd)
			}
		}
	}
}

func readSMSBody(r *bufio.Reader) (string, bool) {
	var lines []string
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return "", false
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "." {
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, line)
	}
}
