package entrypoint

import (
	"context"

	"simplenet/pkg/client"
	"simplenet/pkg/config"
	"simplenet/pkg/server"
	"simplenet/pkg/session"
)

// serverInterface defines the interface for a server that can listen, serve and be closed.
type serverInterface interface {
	Listen() error
	Serve() error
	Close() error
}

// serverFactory is a function type for creating servers.
type serverFactory func(ctx context.Context, cfg *config.Shared, lCfg *config.Listen, handle server.Handler) (serverInterface, error)

// realServerFactory returns the actual server factory used in production.
func realServerFactory() serverFactory {
	return func(ctx context.Context, cfg *config.Shared, lCfg *config.Listen, handle server.Handler) (serverInterface, error) {
		return server.New(ctx, cfg, lCfg, handle)
	}
}

// clientInterface defines the interface for a client that can connect and provide a connection.
type clientInterface interface {
	Connect() error
	Close() error
	GetConnection() session.Conn
}

// clientFactory is a function type for creating clients.
type clientFactory func(context.Context, *config.Shared) clientInterface

// realClientFactory returns the actual client factory used in production.
func realClientFactory() clientFactory {
	return func(ctx context.Context, cfg *config.Shared) clientInterface {
		return socketClient{client.New(ctx, cfg)}
	}
}

type socketClient struct {
	*client.Client
}

func (c socketClient) GetConnection() session.Conn {
	return c.Client.GetConnection()
}

// connectHandler runs the client side session over an established connection.
type connectHandler func(ctx context.Context, cfg *config.Shared, cCfg *config.Connect, conn session.Conn) error
