package socket

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// FlagPassive marks traits whose addresses may be bound by a server. An
// empty host name then resolves to the wildcard address.
const FlagPassive = 0x1

// Traits bundles the constants that select the kind of socket created by a
// client or server.
type Traits struct {
	Flags    int
	Family   int
	Type     int
	Protocol int
}

// TCP returns the traits of passive-capable IPv4 stream sockets. Each call
// returns a fresh value, so callers cannot alter what other callers get.
func TCP() Traits {
	return Traits{Flags: FlagPassive, Family: unix.AF_INET, Type: unix.SOCK_STREAM, Protocol: unix.IPPROTO_TCP}
}

// UDP returns the traits of passive-capable IPv4 datagram sockets.
func UDP() Traits {
	return Traits{Flags: FlagPassive, Family: unix.AF_INET, Type: unix.SOCK_DGRAM, Protocol: unix.IPPROTO_UDP}
}

// Passive reports whether FlagPassive is set.
func (t Traits) Passive() bool {
	return t.Flags&FlagPassive != 0
}

func (t Traits) String() string {
	switch {
	case t.Type == unix.SOCK_STREAM && t.Protocol == unix.IPPROTO_TCP:
		return "tcp"
	case t.Type == unix.SOCK_DGRAM && t.Protocol == unix.IPPROTO_UDP:
		return "udp"
	default:
		return fmt.Sprintf("socket(family=%d, type=%d, protocol=%d)", t.Family, t.Type, t.Protocol)
	}
}

// network returns the resolver network matching the address family.
func (t Traits) network() string {
	switch t.Family {
	case unix.AF_INET:
		return "ip4"
	case unix.AF_INET6:
		return "ip6"
	default:
		return "ip"
	}
}
