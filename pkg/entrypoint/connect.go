// Package entrypoint provides the entry functions of the connect and listen
// commands. They encapsulate setting up sockets and running sessions,
// separating it from CLI argument parsing.
package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"simplenet/pkg/config"
	"simplenet/pkg/log"
	"simplenet/pkg/pipeio"
	"simplenet/pkg/session"
)

// uses interfaces/factories from internal.go (DI for testing)

// Connect connects to the configured endpoint and either exchanges the
// configured lines or bridges stdin and stdout to the peer.
func Connect(ctx context.Context, cfg *config.Shared, cCfg *config.Connect) error {
	return connect(ctx, cfg, cCfg, realClientFactory(), runConnectSession)
}

func connect(
	parent context.Context,
	cfg *config.Shared,
	cCfg *config.Connect,
	newClient clientFactory,
	handle connectHandler,
) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	c := newClient(ctx, cfg)
	if err := c.Connect(); err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	var closeOnce sync.Once
	closeClient := func() { closeOnce.Do(func() { _ = c.Close() }) }
	defer closeClient()

	conn := c.GetConnection()

	errCh := make(chan error, 1)
	go func() {
		errCh <- handle(ctx, cfg, cCfg, conn)
	}()

	select {
	case <-ctx.Done():
		// wake up the session, then wait for it to unwind before closing
		cfg.Logger.VerboseMsg("Connect: context cancelled, shutting down connection")
		_ = session.NewPeer(conn, nil).Close()
		err := <-errCh
		if err == nil || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("handling after cancel: %w", err)

	case err := <-errCh:
		if err == nil {
			return nil
		}
		return fmt.Errorf("handling: %w", err)
	}
}

func runConnectSession(ctx context.Context, cfg *config.Shared, cCfg *config.Connect, conn session.Conn) error {
	var lines log.LineReadWriter
	if cfg.LogFile != "" {
		ll, err := log.NewLoggedLines(conn, cfg.LogFile)
		if err != nil {
			return fmt.Errorf("enabling transcript in %s: %w", cfg.LogFile, err)
		}
		defer ll.Close()
		lines = ll
	}

	peer := session.NewPeer(conn, lines)
	stdio := pipeio.NewStdio(config.GetStdinFunc(cfg.Deps)(), config.GetStdoutFunc(cfg.Deps)())

	if cCfg.Interactive() {
		if stdio.Interactive() {
			cfg.Logger.InfoMsg("Type lines to send, end with Ctrl-D\n")
		}
		session.Bridge(ctx, peer, stdio, cfg.Logger)
		return nil
	}

	defer stdio.Close()

	read := cCfg.Read
	if read == 0 {
		read = math.MaxInt
	}
	return session.Exchange(peer, cCfg.Send, read, stdio)
}
