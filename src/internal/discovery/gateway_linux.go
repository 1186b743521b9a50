//go:build linux

package discovery

import (
	"net/netip"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/maksimkurb/dovado/src/internal/log"
)

// DefaultGateway returns the IPv4 gateway of the default route in the main table.
func DefaultGateway() (netip.Addr, error) {
	routes, err := netlink.RouteListFiltered(netlink.FAMILY_V4, &netlink.Route{Table: unix.RT_TABLE_MAIN}, netlink.RT_FILTER_TABLE)
	if err != nil {
		log.Warnf("Failed to list routes in the main table: %v", err)
		return netip.Addr{}, err
	}

	gw, err := pickGateway(routes)
	if err != nil {
		return netip.Addr{}, err
	}
	log.Debugf("Default gateway is %s", gw)
	return gw, nil
}

func pickGateway(routes []netlink.Route) (netip.Addr, error) {
	for _, route := range routes {
		if !isDefaultRoute(route) {
			continue
		}

		gw := route.Gw
		if gw == nil && len(route.MultiPath) > 0 {
			gw = route.MultiPath[0].Gw
		}
		if addr, ok := netip.AddrFromSlice(gw); ok {
			return addr.Unmap(), nil
		}
	}
	return netip.Addr{}, ErrNoGateway
}

func isDefaultRoute(route netlink.Route) bool {
	if route.Dst == nil {
		return true
	}
	ones, _ := route.Dst.Mask.Size()
	return ones == 0 && route.Dst.IP.IsUnspecified()
}
