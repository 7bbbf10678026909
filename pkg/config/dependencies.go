package config

import (
	"context"
	"io"
	"net"
	"os"
)

// Dependencies contains injectable dependencies for testing and customization.
// All fields are optional and will use default implementations if nil.
type Dependencies struct {
	LookupIP   LookupIPFunc
	LookupAddr LookupAddrFunc
	Stdin      StdinFunc
	Stdout     StdoutFunc
}

// LookupIPFunc resolves a host name to its addresses. network is one of
// "ip", "ip4" or "ip6".
type LookupIPFunc func(ctx context.Context, network, host string) ([]net.IP, error)

// LookupAddrFunc performs a reverse lookup for the given address literal.
type LookupAddrFunc func(ctx context.Context, addr string) ([]string, error)

// StdinFunc is a function that returns a reader for stdin.
// It returns an io.Reader to allow for mock implementations.
type StdinFunc func() io.Reader

// StdoutFunc is a function that returns a writer for stdout.
// It returns an io.Writer to allow for mock implementations.
type StdoutFunc func() io.Writer

// GetLookupIPFunc returns the forward lookup function from dependencies, or a default implementation.
// If deps is nil or deps.LookupIP is nil, returns net.DefaultResolver.LookupIP.
func GetLookupIPFunc(deps *Dependencies) LookupIPFunc {
	if deps != nil && deps.LookupIP != nil {
		return deps.LookupIP
	}
	return net.DefaultResolver.LookupIP
}

// GetLookupAddrFunc returns the reverse lookup function from dependencies, or a default implementation.
// If deps is nil or deps.LookupAddr is nil, returns net.DefaultResolver.LookupAddr.
func GetLookupAddrFunc(deps *Dependencies) LookupAddrFunc {
	if deps != nil && deps.LookupAddr != nil {
		return deps.LookupAddr
	}
	return net.DefaultResolver.LookupAddr
}

// GetStdinFunc returns the stdin function from dependencies, or a default implementation.
// If deps is nil or deps.Stdin is nil, returns a function that uses os.Stdin.
func GetStdinFunc(deps *Dependencies) StdinFunc {
	if deps != nil && deps.Stdin != nil {
		return deps.Stdin
	}
	return func() io.Reader {
		return os.Stdin
	}
}

// GetStdoutFunc returns the stdout function from dependencies, or a default implementation.
// If deps is nil or deps.Stdout is nil, returns a function that uses os.Stdout.
func GetStdoutFunc(deps *Dependencies) StdoutFunc {
	if deps != nil && deps.Stdout != nil {
		return deps.Stdout
	}
	return func() io.Writer {
		return os.Stdout
	}
}
