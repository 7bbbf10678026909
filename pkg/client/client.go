// Package client sets up the outgoing connection of the connect command.
package client

import (
	"context"
	"fmt"

	"simplenet/pkg/config"
	"simplenet/pkg/format"
	"simplenet/pkg/socket"
)

// Client owns the socket the connect command talks through.
type Client struct {
	ctx context.Context
	cfg *config.Shared

	conn *socket.Client
}

// New creates a client for the endpoint in cfg. Nothing is dialed yet.
func New(ctx context.Context, cfg *config.Shared) *Client {
	return &Client{
		ctx: ctx,
		cfg: cfg,
	}
}

// Close releases the connection. It is a no-op before Connect succeeded.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}

	c.cfg.Logger.InfoMsg("Connection to %s closed\n", c.addr())
	return c.conn.Close()
}

// GetConnection returns the connected socket, or nil before Connect.
func (c *Client) GetConnection() *socket.Client {
	return c.conn
}

// Connect resolves the endpoint and connects to it.
func (c *Client) Connect() error {
	traits, err := TraitsFor(c.cfg.Protocol)
	if err != nil {
		return err
	}

	c.cfg.Logger.InfoMsg("Connecting to %s\n", c.addr())

	conn := socket.NewClient(traits,
		socket.WithLogger(c.cfg.Logger),
		socket.WithDependencies(c.cfg.Deps),
	)
	if err := conn.Connect(c.ctx, c.cfg.Host, uint16(c.cfg.Port)); err != nil {
		_ = conn.Close()
		return fmt.Errorf("connecting to %s: %w", c.addr(), err)
	}

	if local, err := conn.LocalAddr(); err == nil {
		c.cfg.Logger.VerboseMsg("Connected from %s", local)
	}

	c.conn = conn
	return nil
}

func (c *Client) addr() string {
	return format.Transport(c.cfg.Protocol.String(), c.cfg.Host, c.cfg.Port)
}

// TraitsFor maps a configured protocol to socket traits.
func TraitsFor(p config.Protocol) (socket.Traits, error) {
	switch p {
	case config.ProtoTCP:
		return socket.TCP(), nil
	case config.ProtoUDP:
		return socket.UDP(), nil
	default:
		return socket.Traits{}, fmt.Errorf("unsupported protocol %d", p)
	}
}
