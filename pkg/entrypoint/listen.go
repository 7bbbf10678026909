package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"simplenet/pkg/config"
	"simplenet/pkg/log"
	"simplenet/pkg/pipeio"
	"simplenet/pkg/server"
	"simplenet/pkg/session"
	"simplenet/pkg/socket"
)

// Listen accepts peers on the configured endpoint and answers each of them
// with a greeting and, optionally, an echo of every line.
func Listen(ctx context.Context, cfg *config.Shared, lCfg *config.Listen) error {
	return listen(ctx, cfg, lCfg, realServerFactory())
}

func listen(
	parent context.Context,
	cfg *config.Shared,
	lCfg *config.Listen,
	newServer serverFactory,
) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	s, err := newServer(ctx, cfg, lCfg, makeWorkerHandler(cfg, lCfg))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	var closeOnce sync.Once
	closeServer := func() { closeOnce.Do(func() { _ = s.Close() }) }
	defer closeServer()

	if err := s.Listen(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve() }()

	select {
	case <-ctx.Done():
		// Serve watches the same context and returns once workers are done
		err := <-errCh
		if err == nil || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("serving after cancel: %w", err)

	case err := <-errCh:
		if err == nil {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	}
}

func makeWorkerHandler(cfg *config.Shared, lCfg *config.Listen) server.Handler {
	r := &session.Responder{
		Greeting: lCfg.Greeting,
		Echo:     lCfg.Echo,
		Out:      pipeio.NewStdout(config.GetStdoutFunc(cfg.Deps)()),
		Logger:   cfg.Logger,
	}

	return func(ctx context.Context, w *socket.Worker) error {
		var lines log.LineReadWriter
		if cfg.LogFile != "" {
			ll, err := log.NewLoggedLines(w, cfg.LogFile)
			if err != nil {
				return fmt.Errorf("enabling transcript in %s: %w", cfg.LogFile, err)
			}
			defer ll.Close()
			lines = ll
		}

		return r.Serve(ctx, w, session.NewPeer(w, lines))
	}
}
