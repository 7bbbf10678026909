package socket

import (
	"context"
	"runtime"

	"simplenet/pkg/config"
	"simplenet/pkg/format"
)

// Client is a socket connected to a remote endpoint.
type Client struct {
	Socket
	traits Traits
	opts   options
}

// NewClient returns an unconnected client for the given traits.
func NewClient(traits Traits, opts ...Option) *Client {
	o := newOptions(opts)
	c := &Client{traits: traits, opts: o}
	c.logger = o.logger
	runtime.SetFinalizer(c, (*Client).release)
	return c
}

// NewTCPClient returns an unconnected stream client.
func NewTCPClient(opts ...Option) *Client {
	return NewClient(TCP(), opts...)
}

// NewUDPClient returns an unconnected datagram client.
func NewUDPClient(opts ...Option) *Client {
	return NewClient(UDP(), opts...)
}

// Traits returns the traits the client was created with.
func (c *Client) Traits() Traits {
	return c.traits
}

// Connect resolves name and port and connects to the first reachable
// candidate. For datagram clients this only fixes the default peer.
// It fails with ErrSocketExists if the client is already set up.
func (c *Client) Connect(ctx context.Context, name string, port uint16) error {
	c.logger.VerboseMsg("Connecting to %s (%s)", format.Addr(name, int(port)), c.traits)

	lookup := config.GetLookupIPFunc(c.opts.deps)
	return c.setup(ctx, "connect", c.traits, name, port, lookup, finishConnect, StateConnected)
}

func finishConnect(fd int, cand Candidate) error {
	return connectFD(fd, cand.Addr)
}

// DialTCP creates a stream client and connects it.
func DialTCP(ctx context.Context, name string, port uint16, opts ...Option) (*Client, error) {
	return dial(ctx, TCP(), name, port, opts)
}

// DialUDP creates a datagram client and connects it.
func DialUDP(ctx context.Context, name string, port uint16, opts ...Option) (*Client, error) {
	return dial(ctx, UDP(), name, port, opts)
}

func dial(ctx context.Context, traits Traits, name string, port uint16, opts []Option) (*Client, error) {
	c := NewClient(traits, opts...)
	if err := c.Connect(ctx, name, port); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}
