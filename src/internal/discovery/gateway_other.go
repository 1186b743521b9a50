//go:build !linux

package discovery

import "net/netip"

// DefaultGateway is only implemented on Linux.
func DefaultGateway() (netip.Addr, error) {
	return netip.Addr{}, ErrUnsupported
}
