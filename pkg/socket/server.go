package socket

import (
	"context"
	"runtime"

	"simplenet/pkg/config"
	"simplenet/pkg/format"
)

// Server is a socket bound to a local address and listening for peers.
type Server struct {
	Socket
	traits Traits
	opts   options
}

// NewServer returns a server for the given traits that is not yet
// listening. Only stream traits can listen and accept.
func NewServer(traits Traits, opts ...Option) *Server {
	o := newOptions(opts)
	s := &Server{traits: traits, opts: o}
	s.logger = o.logger
	runtime.SetFinalizer(s, (*Server).release)
	return s
}

// NewTCPServer returns a stream server that is not yet listening.
func NewTCPServer(opts ...Option) *Server {
	return NewServer(TCP(), opts...)
}

// Traits returns the traits the server was created with.
func (s *Server) Traits() Traits {
	return s.traits
}

// Listen resolves name and port, sets SO_REUSEADDR, binds and starts
// listening. An empty name binds all interfaces and port 0 picks a free
// port (see LocalAddr). It fails with ErrSocketExists if the server is
// already set up.
func (s *Server) Listen(ctx context.Context, name string, port uint16) error {
	s.logger.VerboseMsg("Binding to %s (%s)", format.Addr(name, int(port)), s.traits)

	backlog := s.opts.backlog
	finish := func(fd int, cand Candidate) error {
		return listenFD(fd, cand.Addr, backlog)
	}

	lookup := config.GetLookupIPFunc(s.opts.deps)
	return s.setup(ctx, "listen", s.traits, name, port, lookup, finish, StateListening)
}

// Accept blocks until a peer connects and returns a worker owning the new
// connection. There is no timeout; use Shutdown from another goroutine to
// abort a pending Accept.
func (s *Server) Accept() (*Worker, error) {
	fd, err := s.descriptor("accept")
	if err != nil {
		return nil, err
	}

	nfd, peer, err := accept(fd)
	runtime.KeepAlive(s)
	if err != nil {
		return nil, newError("accept", KindIO, err)
	}

	w := newWorker(nfd, peer, s.opts)
	s.logger.VerboseMsg("Accepted connection from %s", w.RemoteAddr())
	return w, nil
}

// ListenTCP creates a stream server and starts listening.
func ListenTCP(ctx context.Context, name string, port uint16, opts ...Option) (*Server, error) {
	s := NewTCPServer(opts...)
	if err := s.Listen(ctx, name, port); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
