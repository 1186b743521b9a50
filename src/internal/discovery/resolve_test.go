package discovery

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/miekg/dns"

	apperrors "github.com/maksimkurb/dovado/src/internal/errors"
)

// startDNSServer serves A records from records and NXDOMAIN for anything else.
func startDNSServer(t *testing.T, records map[string]string) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen packet: %v", err)
	}

	server := &dns.Server{
		PacketConn: pc,
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(r)
			ip, ok := records[r.Question[0].Name]
			if !ok {
				m.SetRcode(r, dns.RcodeNameError)
			} else {
				rr, _ := dns.NewRR(r.Question[0].Name + " 60 IN A " + ip)
				m.Answer = append(m.Answer, rr)
			}
			_ = w.WriteMsg(m)
		}),
	}

	go func() {
		_ = server.ActivateAndServe()
	}()
	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	return pc.LocalAddr().String()
}

func withGateway(t *testing.T, addr netip.Addr, err error) {
	t.Helper()
	orig := defaultGateway
	defaultGateway = func() (netip.Addr, error) { return addr, err }
	t.Cleanup(func() { defaultGateway = orig })
}

func withSystemLookup(t *testing.T, hosts map[string]string) {
	t.Helper()
	orig := systemLookup
	systemLookup = func(ctx context.Context, network, host string) ([]netip.Addr, error) {
		if ip, ok := hosts[host]; ok {
			return []netip.Addr{netip.MustParseAddr(ip)}, nil
		}
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	t.Cleanup(func() { systemLookup = orig })
}

func TestResolveHost(t *testing.T) {
	server := startDNSServer(t, map[string]string{
		"home.dovado.": "192.168.0.1",
	})
	withGateway(t, netip.MustParseAddr("10.0.0.1"), nil)

	tests := []struct {
		name    string
		host    string
		servers []string
		want    string
	}{
		{"empty host uses gateway", "", nil, "10.0.0.1"},
		{"IPv4 literal", "192.168.8.1", []string{server}, "192.168.8.1"},
		{"IPv6 literal", "fe80::1", []string{server}, "fe80::1"},
		{"resolved name", "home.dovado", []string{server}, "192.168.0.1"},
		{"fqdn", "home.dovado.", []string{server}, "192.168.0.1"},
		{"unknown name is left as is", "missing.dovado", []string{server}, "missing.dovado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveHost(context.Background(), tt.host, tt.servers)
			if err != nil {
				t.Fatalf("ResolveHost() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveHost(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}

func TestResolveHost_SkipsFailingServer(t *testing.T) {
	good := startDNSServer(t, map[string]string{"router.lan.": "192.168.1.1"})
	empty := startDNSServer(t, nil)

	got, err := ResolveHost(context.Background(), "router.lan", []string{empty, good})
	if err != nil {
		t.Fatalf("ResolveHost() error = %v", err)
	}
	if got != "192.168.1.1" {
		t.Errorf("ResolveHost() = %q, want 192.168.1.1", got)
	}
}

func TestResolveHost_NoGateway(t *testing.T) {
	withGateway(t, netip.Addr{}, ErrNoGateway)

	_, err := ResolveHost(context.Background(), "", nil)
	if !apperrors.IsConfig(err) {
		t.Errorf("ResolveHost() error = %v, want config error", err)
	}
	if !errors.Is(err, ErrNoGateway) {
		t.Errorf("ResolveHost() error = %v, want it to wrap ErrNoGateway", err)
	}
}

func TestResolveHost_SystemResolverFirst(t *testing.T) {
	withSystemLookup(t, map[string]string{"router.hosts": "10.1.1.1"})
	withGateway(t, netip.Addr{}, ErrNoGateway)

	got, err := ResolveHost(context.Background(), "router.hosts", nil)
	if err != nil {
		t.Fatalf("ResolveHost() error = %v", err)
	}
	if got != "10.1.1.1" {
		t.Errorf("ResolveHost() = %q, want the hosts entry 10.1.1.1", got)
	}
}

func TestResolveHost_BoundedByContext(t *testing.T) {
	// Bound but never served: queries to it can only time out.
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen packet: %v", err)
	}
	defer pc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	got, err := ResolveHost(ctx, "home.dovado", []string{pc.LocalAddr().String(), pc.LocalAddr().String()})
	if err != nil {
		t.Fatalf("ResolveHost() error = %v", err)
	}
	if got != "home.dovado" {
		t.Errorf("ResolveHost() = %q, want the name back unchanged", got)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("ResolveHost() took %v, want it bounded by the context", elapsed)
	}
}
