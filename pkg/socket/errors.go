package socket

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Kind tells the failing phase of a socket operation apart.
type Kind int

const (
	// KindSetup covers resolution, descriptor creation and the finishing
	// step (connect, bind, listen).
	KindSetup Kind = iota + 1
	// KindIO covers send, receive and accept failures.
	KindIO
	// KindFraming is returned when no line fits the scan window.
	KindFraming
	// KindTeardown is returned when releasing the descriptor fails.
	KindTeardown
	// KindPeer covers reverse lookups and peer address formatting.
	KindPeer
)

func (k Kind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindIO:
		return "io"
	case KindFraming:
		return "framing"
	case KindTeardown:
		return "teardown"
	case KindPeer:
		return "peer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	ErrSocketExists = errors.New("socket already exists")
	ErrClosed       = errors.New("socket closed")
	ErrNotConnected = errors.New("not connected")
	ErrLineNotFound = errors.New("line not found")
	ErrNoAddress    = errors.New("no usable address")
)

// Error is the single error type returned by this package. The wrapped
// error is usually a unix.Errno or one of the Err* sentinels, so both
// errors.Is(err, ErrSocketExists) and errors.Is(err, unix.ECONNREFUSED)
// work on it.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func newError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Err.Error()
	if errno, ok := e.Errno(); ok {
		msg += fmt.Sprintf(" (errno %d)", int(errno))
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errno returns the OS error code carried by e, if any.
func (e *Error) Errno() (unix.Errno, bool) {
	var errno unix.Errno
	if errors.As(e.Err, &errno) {
		return errno, true
	}
	return 0, false
}

// IsKind reports whether err is a socket *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var serr *Error
	return errors.As(err, &serr) && serr.Kind == kind
}
