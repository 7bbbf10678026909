package mocks

import (
	"context"
	"fmt"
	"net"
	"sync"
)

// Resolver answers forward and reverse lookups from fixed tables and counts
// the queries it saw.
type Resolver struct {
	// Hosts maps names to addresses.
	Hosts map[string][]string
	// Names maps address literals to reverse names.
	Names map[string][]string

	mu      sync.Mutex
	queries []string
}

// LookupIP implements config.LookupIPFunc. Addresses not matching network
// ("ip4", "ip6" or "ip") are dropped.
func (r *Resolver) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	r.record("A " + host)

	addrs, ok := r.Hosts[host]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}

	var ips []net.IP
	for _, a := range addrs {
		ip := net.ParseIP(a)
		if ip == nil {
			return nil, fmt.Errorf("bad address %q for %s", a, host)
		}
		is4 := ip.To4() != nil
		if (network == "ip4" && !is4) || (network == "ip6" && is4) {
			continue
		}
		ips = append(ips, ip)
	}
	return ips, nil
}

// LookupAddr implements config.LookupAddrFunc.
func (r *Resolver) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	r.record("PTR " + addr)

	names, ok := r.Names[addr]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: addr, IsNotFound: true}
	}
	return names, nil
}

// Queries returns the lookups made so far, like "A localhost" or
// "PTR 127.0.0.1".
func (r *Resolver) Queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func (r *Resolver) record(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
}
