package socket

import (
	"context"
	"errors"
	"fmt"

	"simplenet/pkg/config"

	"golang.org/x/sys/unix"
)

// finishFunc completes setup of a fresh descriptor against one candidate.
// Clients connect, servers bind and listen.
type finishFunc func(fd int, c Candidate) error

// setup resolves name and port, creates a descriptor and runs finish on it.
// Candidates are tried in resolver order and the first one that finishes
// wins. On success s owns the descriptor and is in state ready.
func (s *Socket) setup(ctx context.Context, op string, t Traits, name string, port uint16,
	lookup config.LookupIPFunc, finish finishFunc, ready State) error {
	if err := s.beginSetup(op); err != nil {
		return err
	}

	candidates, err := resolve(ctx, lookup, t, name, port)
	if err != nil {
		s.abortSetup()
		return newError(op, KindSetup, err)
	}

	var errs []error
	for _, c := range candidates {
		s.logger.VerboseMsg("%s: trying %s", op, c)

		fd, err := openSocket(c)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := finish(fd, c); err != nil {
			_ = unix.Close(fd)
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
			continue
		}

		return s.commitSetup(op, fd, ready)
	}

	s.abortSetup()
	return newError(op, KindSetup, errors.Join(errs...))
}

func (s *Socket) beginSetup(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.state == StateClosed:
		return newError(op, KindSetup, ErrClosed)
	case s.valid || s.state != StateUnconnected:
		return newError(op, KindSetup, ErrSocketExists)
	}

	s.state = StateResolving
	return nil
}

func (s *Socket) abortSetup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateResolving {
		s.state = StateUnconnected
	}
}

// commitSetup stores fd unless the handle was closed while resolving.
func (s *Socket) commitSetup(op string, fd int, ready State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateResolving {
		_ = unix.Close(fd)
		return newError(op, KindSetup, ErrClosed)
	}

	s.fd = fd
	s.valid = true
	s.state = ready
	return nil
}
