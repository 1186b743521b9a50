package discovery

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"

	apperrors "github.com/maksimkurb/dovado/src/internal/errors"
	"github.com/maksimkurb/dovado/src/internal/log"
)

const (
	resolvConfPath = "/etc/resolv.conf"
	defaultDNSPort = "53"
	queryTimeout   = 2 * time.Second
)

// Swapped in tests.
var (
	defaultGateway = DefaultGateway
	systemLookup   = net.DefaultResolver.LookupNetIP
)

// SystemServers returns the name servers from /etc/resolv.conf as host:port.
func SystemServers() ([]string, error) {
	conf, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil {
		return nil, err
	}

	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		servers = append(servers, net.JoinHostPort(s, conf.Port))
	}
	return servers, nil
}

// ResolveHost returns the address to connect to for host.
//
// An empty host means the default gateway. IP literals are returned unchanged.
// Names are looked up with an A query against servers (host:port). When servers is
// empty the system resolver is asked first, so /etc/hosts keeps precedence, then
// the resolv.conf servers and the default gateway are queried directly. A name no
// server can resolve is returned unchanged for the dialer to resolve. Lookups are
// bounded by the deadline of ctx.
func ResolveHost(ctx context.Context, host string, servers []string) (string, error) {
	if host == "" {
		gw, err := defaultGateway()
		if err != nil {
			return "", apperrors.NewConfigError("router host is not set and the default gateway is unknown", err)
		}
		log.Infof("Using default gateway %s as router host", gw)
		return gw.String(), nil
	}

	if _, err := netip.ParseAddr(host); err == nil {
		return host, nil
	}

	if len(servers) == 0 {
		if addrs, err := systemLookup(ctx, "ip4", host); err == nil && len(addrs) > 0 {
			log.Debugf("Resolved %s to %s via the system resolver", host, addrs[0])
			return addrs[0].Unmap().String(), nil
		} else if err != nil {
			log.Debugf("System resolver failed for %s: %v", host, err)
		}
		servers = fallbackServers()
	}

	req := new(dns.Msg)
	req.SetQuestion(dns.Fqdn(host), dns.TypeA)

	for _, server := range servers {
		timeout := queryTimeout
		if deadline, ok := ctx.Deadline(); ok {
			timeout = min(timeout, time.Until(deadline))
		}
		if timeout <= 0 {
			log.Debugf("No time left to resolve %s", host)
			break
		}
		client := &dns.Client{
			Net:     "udp",
			Timeout: timeout,
		}

		addr, err := lookupA(ctx, client, req, server)
		if err != nil {
			log.Debugf("Resolving %s via %s: %v", host, server, err)
			continue
		}
		log.Debugf("Resolved %s to %s via %s", host, addr, server)
		return addr.String(), nil
	}

	log.Debugf("Could not resolve %s, leaving it to the system resolver", host)
	return host, nil
}

func fallbackServers() []string {
	servers, err := SystemServers()
	if err != nil {
		log.Debugf("Failed to read %s: %v", resolvConfPath, err)
	}
	if gw, err := defaultGateway(); err == nil {
		servers = append(servers, net.JoinHostPort(gw.String(), defaultDNSPort))
	}
	return servers
}

func lookupA(ctx context.Context, client *dns.Client, req *dns.Msg, server string) (netip.Addr, error) {
	resp, _, err := client.ExchangeContext(ctx, req, server)
	if err != nil {
		return netip.Addr{}, err
	}
	if resp.Rcode != dns.RcodeSuccess {
		return netip.Addr{}, fmt.Errorf("server answered %s", dns.RcodeToString[resp.Rcode])
	}

	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			if addr, ok := netip.AddrFromSlice(a.A); ok {
				return addr.Unmap(), nil
			}
		}
	}
	return netip.Addr{}, fmt.Errorf("no A record for %s", req.Question[0].Name)
}
