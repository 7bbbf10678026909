// Package server runs the accept loop of the listen command.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"simplenet/pkg/config"
	"simplenet/pkg/format"
	"simplenet/pkg/semaphore"
	"simplenet/pkg/socket"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"golang.org/x/sys/unix"
	"golang.org/x/time/rate"
)

// Handler serves one accepted worker. The worker is closed after it returns.
type Handler func(ctx context.Context, w *socket.Worker) error

// Server accepts peers and hands each one to a Handler in its own goroutine,
// at most MaxWorkers at a time and, if AcceptRate is set, no more than
// AcceptRate new ones per second. An accepted peer that finds no free worker
// within SlotTimeout is disconnected.
type Server struct {
	ctx  context.Context
	cfg  *config.Shared
	lcfg *config.Listen

	handle  Handler
	slots   *semaphore.WorkerSlots
	limiter *rate.Limiter
	sock    *socket.Server
}

// New creates a server for the endpoint in cfg. Only tcp can listen.
func New(ctx context.Context, cfg *config.Shared, lcfg *config.Listen, handle Handler) (*Server, error) {
	if cfg.Protocol != config.ProtoTCP {
		return nil, fmt.Errorf("cannot listen with %s, only tcp is supported", cfg.Protocol)
	}

	var limiter *rate.Limiter
	if lcfg.AcceptRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(lcfg.AcceptRate), 1)
	}

	return &Server{
		ctx:     ctx,
		cfg:     cfg,
		lcfg:    lcfg,
		handle:  handle,
		slots:   semaphore.New(lcfg.MaxWorkers, lcfg.SlotTimeout),
		limiter: limiter,
	}, nil
}

// Listen binds the endpoint and starts listening.
func (s *Server) Listen() error {
	sock := socket.NewTCPServer(
		socket.WithLogger(s.cfg.Logger),
		socket.WithDependencies(s.cfg.Deps),
	)
	if err := sock.Listen(s.ctx, s.cfg.Host, uint16(s.cfg.Port)); err != nil {
		_ = sock.Close()
		return fmt.Errorf("listening on %s: %w", format.Transport("tcp", s.cfg.Host, s.cfg.Port), err)
	}
	s.sock = sock

	if local, err := sock.LocalAddr(); err == nil {
		s.cfg.Logger.InfoMsg("Listening on %s\n", format.Transport("tcp", local.Addr().String(), int(local.Port())))
	}
	return nil
}

// Addr returns the bound address, useful after listening on port 0.
func (s *Server) Addr() (netip.AddrPort, error) {
	if s.sock == nil {
		return netip.AddrPort{}, errors.New("not listening")
	}
	return s.sock.LocalAddr()
}

// Close releases the listening socket.
func (s *Server) Close() error {
	if s.sock == nil {
		return nil
	}
	return s.sock.Close()
}

// Serve accepts peers until the context is canceled or, in once mode, the
// first peer was accepted. It returns after every handler finished.
func (s *Server) Serve() error {
	if s.sock == nil {
		return errors.New("not listening")
	}

	done := shutdownOnCancel(s.ctx, &s.sock.Socket)
	defer done()

	var wg conc.WaitGroup
	err := s.acceptLoop(&wg)

	if r := wg.WaitAndRecover(); r != nil {
		s.cfg.Logger.ErrorMsg("worker panicked: %v\n", r.Value)
		err = errors.Join(err, r.AsError())
	}
	return err
}

func (s *Server) acceptLoop(wg *conc.WaitGroup) error {
	for {
		if err := s.throttle(); err != nil {
			if s.ctx.Err() != nil {
				return nil
			}
			return err
		}

		w, err := s.sock.Accept()
		if err != nil {
			if s.ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, unix.ECONNABORTED) {
				s.cfg.Logger.ErrorMsg("Accept(): %s\n", err)
				continue
			}
			return fmt.Errorf("accepting: %w", err)
		}

		if err := s.slots.Acquire(s.ctx); err != nil {
			_ = w.Close()
			if s.ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, semaphore.ErrBusy) {
				s.cfg.Logger.ErrorMsg("Rejecting %s: %s\n", w.RemoteAddr(), err)
				continue
			}
			return fmt.Errorf("waiting for a worker slot: %w", err)
		}

		id := uuid.NewString()
		s.cfg.Logger.VerboseMsg("Worker %s: accepted %s, %d of %d workers busy", id, w.RemoteAddr(), s.slots.InUse(), s.slots.Size())

		wg.Go(func() {
			defer s.slots.Release()
			s.serve(id, w)
		})

		if s.lcfg.Once {
			return nil
		}
	}
}

// throttle blocks until the accept rate allows another peer.
func (s *Server) throttle() error {
	if s.limiter == nil {
		return nil
	}
	if err := s.limiter.Wait(s.ctx); err != nil {
		return fmt.Errorf("throttling accepts: %w", err)
	}
	return nil
}

func (s *Server) serve(id string, w *socket.Worker) {
	done := shutdownOnCancel(s.ctx, &w.Socket)
	defer func() {
		done()
		_ = w.Close()
	}()

	if err := s.handle(s.ctx, w); err != nil {
		s.cfg.Logger.ErrorMsg("Worker %s (%s): %s\n", id, w.RemoteAddr(), err)
	}
	s.cfg.Logger.VerboseMsg("Worker %s: done", id)
}

// shutdownOnCancel shuts sock down once ctx is done, which wakes up any
// goroutine blocked on it. The returned func must run before sock is closed;
// it waits for a shutdown already in progress so the descriptor is never
// reused underneath it.
func shutdownOnCancel(ctx context.Context, sock *socket.Socket) func() {
	shut := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(shut)
		_ = sock.Shutdown(socket.ShutReadWrite)
	})

	return func() {
		if !stop() {
			<-shut
		}
	}
}
