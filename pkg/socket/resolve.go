package socket

import (
	"context"
	"fmt"
	"net/netip"

	"simplenet/pkg/config"
	"simplenet/pkg/format"

	"golang.org/x/sys/unix"
)

// Candidate is one resolved endpoint a descriptor can be set up against.
type Candidate struct {
	Family   int
	Type     int
	Protocol int
	Addr     unix.Sockaddr
}

func (c Candidate) String() string {
	if ap, ok := addrPortOf(c.Addr); ok {
		return ap.String()
	}
	return "<unknown>"
}

// resolve turns name and port into candidates matching the traits. An empty
// name means the wildcard address for passive traits and the loopback
// address otherwise. Resolution fails unless at least one candidate is found.
func resolve(ctx context.Context, lookup config.LookupIPFunc, t Traits, name string, port uint16) ([]Candidate, error) {
	addrs, err := lookupAddrs(ctx, lookup, t, name)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", format.Addr(name, int(port)), err)
	}

	var out []Candidate
	for _, addr := range addrs {
		if !familyMatches(t.Family, addr) {
			continue
		}
		sa, family := sockaddrOf(addr, port)
		out = append(out, Candidate{
			Family:   family,
			Type:     t.Type,
			Protocol: t.Protocol,
			Addr:     sa,
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("resolving %s: %w", format.Addr(name, int(port)), ErrNoAddress)
	}
	return out, nil
}

func lookupAddrs(ctx context.Context, lookup config.LookupIPFunc, t Traits, name string) ([]netip.Addr, error) {
	if name == "" {
		if t.Passive() {
			return []netip.Addr{netip.IPv4Unspecified(), netip.IPv6Unspecified()}, nil
		}
		return []netip.Addr{netip.AddrFrom4([4]byte{127, 0, 0, 1}), netip.IPv6Loopback()}, nil
	}

	if addr, err := netip.ParseAddr(name); err == nil {
		return []netip.Addr{addr.Unmap()}, nil
	}

	ips, err := lookup(ctx, t.network(), name)
	if err != nil {
		return nil, err
	}

	addrs := make([]netip.Addr, 0, len(ips))
	for _, ip := range ips {
		if addr, ok := netip.AddrFromSlice(ip); ok {
			addrs = append(addrs, addr.Unmap())
		}
	}
	return addrs, nil
}

func familyMatches(family int, addr netip.Addr) bool {
	switch family {
	case unix.AF_INET:
		return addr.Is4()
	case unix.AF_INET6:
		return addr.Is6()
	default:
		return true
	}
}
