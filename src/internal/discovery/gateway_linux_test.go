//go:build linux

package discovery

import (
	"errors"
	"net"
	"net/netip"
	"testing"

	"github.com/vishvananda/netlink"
)

func mustCIDR(t *testing.T, s string) *net.IPNet {
	t.Helper()
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		t.Fatalf("ParseCIDR(%q): %v", s, err)
	}
	return n
}

func TestPickGateway(t *testing.T) {
	tests := []struct {
		name    string
		routes  []netlink.Route
		want    netip.Addr
		wantErr error
	}{
		{
			name:    "no routes",
			wantErr: ErrNoGateway,
		},
		{
			name: "default route with nil dst",
			routes: []netlink.Route{
				{Dst: mustCIDR(t, "192.168.8.0/24")},
				{Gw: net.ParseIP("192.168.8.1")},
			},
			want: netip.MustParseAddr("192.168.8.1"),
		},
		{
			name: "default route as 0.0.0.0/0",
			routes: []netlink.Route{
				{Dst: mustCIDR(t, "0.0.0.0/0"), Gw: net.ParseIP("10.0.0.1").To4()},
			},
			want: netip.MustParseAddr("10.0.0.1"),
		},
		{
			name: "multipath default route",
			routes: []netlink.Route{
				{MultiPath: []*netlink.NexthopInfo{{Gw: net.ParseIP("172.16.0.1")}}},
			},
			want: netip.MustParseAddr("172.16.0.1"),
		},
		{
			name: "only link routes",
			routes: []netlink.Route{
				{Dst: mustCIDR(t, "192.168.8.0/24"), Gw: net.ParseIP("192.168.8.254")},
			},
			wantErr: ErrNoGateway,
		},
		{
			name: "default route without gateway",
			routes: []netlink.Route{
				{Dst: nil},
			},
			wantErr: ErrNoGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickGateway(tt.routes)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("pickGateway() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("pickGateway() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("pickGateway() = %s, want %s", got, tt.want)
			}
		})
	}
}
