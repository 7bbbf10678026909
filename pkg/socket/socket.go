// Package socket is a small object-oriented wrapper around BSD stream and
// datagram sockets.
//
// A Client connects to a remote endpoint, a Server binds and listens on a
// local one and hands out a Worker for every accepted peer. All three share
// the Socket handle, which owns exactly one descriptor and offers raw
// Read/Write plus CRLF line framing through ReadLine/WriteLine.
//
// Every operation is synchronous and blocks the calling goroutine until the
// underlying system call returns. Only name resolution honours a context.
//
// Example usage:
//
//	srv, err := socket.ListenTCP(ctx, "localhost", 1234)
//	...
//	w, err := srv.Accept()
//	w.WriteLine("foobar")
//
//	c, err := socket.DialTCP(ctx, "localhost", 1234)
//	line, err := c.ReadLine() // "foobar"
package socket

import (
	"net/netip"
	"runtime"
	"sync"

	"simplenet/pkg/log"

	"golang.org/x/sys/unix"
)

// State is the lifecycle position of a socket handle.
type State int

const (
	StateUnconnected State = iota
	StateResolving
	StateConnected
	StateListening
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateResolving:
		return "resolving"
	case StateConnected:
		return "connected"
	case StateListening:
		return "listening"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ShutdownHow selects which half of a connection Shutdown disables.
type ShutdownHow int

const (
	ShutRead      ShutdownHow = unix.SHUT_RD
	ShutWrite     ShutdownHow = unix.SHUT_WR
	ShutReadWrite ShutdownHow = unix.SHUT_RDWR
)

// Socket owns one OS socket descriptor.
//
// The zero value is an unconnected handle without a descriptor. Handles are
// used by pointer only and must not be copied once set up: the descriptor is
// closed exactly once, by Close or, for a leaked Client, Server or Worker, by
// its finalizer.
//
// The mutex guards the descriptor and state fields, never the system calls.
// Operations keep the handle alive until their system call returns, so a
// finalizer never closes a descriptor that is in use.
// Concurrent I/O on one handle is left to the OS.
type Socket struct {
	mu     sync.Mutex
	fd     int
	valid  bool
	state  State
	logger *log.Logger
}

// Fd returns the underlying descriptor, or -1 if there is none.
func (s *Socket) Fd() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid {
		return -1
	}
	return s.fd
}

// State returns the current lifecycle state.
func (s *Socket) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// adopt hands an already set up descriptor to s.
func (s *Socket) adopt(fd int, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fd = fd
	s.valid = true
	s.state = state
}

func (s *Socket) descriptor(op string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.valid {
		return -1, newError(op, KindIO, ErrNotConnected)
	}
	return s.fd, nil
}

// Read receives up to len(p) bytes from the connected peer. With peek set the
// data is copied but stays queued, so the next Read sees it again.
// A result of 0 bytes means the peer closed the connection or sent an empty
// datagram; it is not an error.
func (s *Socket) Read(p []byte, peek bool) (int, error) {
	fd, err := s.descriptor("read")
	if err != nil {
		return 0, err
	}

	flags := 0
	if peek {
		flags = unix.MSG_PEEK
	}

	n, err := recv(fd, p, flags)
	runtime.KeepAlive(s)
	if err != nil {
		return 0, newError("read", KindIO, err)
	}
	return n, nil
}

// Write sends p to the connected peer with a single system call and returns
// the number of bytes the OS accepted, which may be less than len(p).
func (s *Socket) Write(p []byte) (int, error) {
	fd, err := s.descriptor("write")
	if err != nil {
		return 0, err
	}

	n, err := send(fd, p)
	runtime.KeepAlive(s)
	if err != nil {
		return 0, newError("write", KindIO, err)
	}
	return n, nil
}

// Shutdown disables reads, writes or both on the descriptor without
// releasing it. On Linux shutting down a listening socket wakes up a
// goroutine blocked in Accept.
func (s *Socket) Shutdown(how ShutdownHow) error {
	fd, err := s.descriptor("shutdown")
	if err != nil {
		return err
	}

	err = unix.Shutdown(fd, int(how))
	runtime.KeepAlive(s)
	if err != nil {
		return newError("shutdown", KindIO, err)
	}
	return nil
}

// LocalAddr returns the address the descriptor is bound to.
func (s *Socket) LocalAddr() (netip.AddrPort, error) {
	fd, err := s.descriptor("local address")
	if err != nil {
		return netip.AddrPort{}, err
	}

	sa, err := unix.Getsockname(fd)
	runtime.KeepAlive(s)
	if err != nil {
		return netip.AddrPort{}, newError("local address", KindIO, err)
	}

	addr, ok := addrPortOf(sa)
	if !ok {
		return netip.AddrPort{}, newError("local address", KindIO, ErrNoAddress)
	}
	return addr, nil
}

// Close releases the descriptor. It is safe to call more than once; only the
// first call closes anything. The handle is closed afterwards even if the OS
// reported an error.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateClosed
	if !s.valid {
		return nil
	}

	fd := s.fd
	s.fd = -1
	s.valid = false

	if err := unix.Close(fd); err != nil {
		return newError("close", KindTeardown, err)
	}
	return nil
}

// release is the finalizer path. Failures are logged, never returned.
func (s *Socket) release() {
	if err := s.Close(); err != nil {
		s.logger.ErrorMsg("releasing socket: %s\n", err)
	}
}
