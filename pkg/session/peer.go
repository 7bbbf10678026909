// Package session holds what happens on a connection once it is set up:
// scripted exchanges and stdio bridging for clients, greeting and echoing
// for accepted workers.
package session

import (
	"errors"
	"io"
	"time"

	"simplenet/pkg/log"
	"simplenet/pkg/socket"

	"github.com/cenkalti/backoff/v5"
)

// Conn is the part of a connected socket handle a session needs.
// *socket.Client and *socket.Worker implement it.
type Conn interface {
	ReadLine() (string, error)
	WriteLine(line string) (int, error)
	Read(p []byte, peek bool) (int, error)
	Shutdown(how socket.ShutdownHow) error
}

// partialLineWait bounds how long ReadLine waits for the rest of a line.
const partialLineWait = time.Second

// Peer turns a Conn into a pipeio.LineEndpoint. Unlike the socket it reports
// a closed peer as io.EOF and waits a little for the rest of a line that
// arrived in pieces.
type Peer struct {
	conn  Conn
	lines log.LineReadWriter
}

// NewPeer reads and writes lines through lines, or through conn itself if
// lines is nil. Use it with a *log.LoggedLines to record a transcript.
func NewPeer(conn Conn, lines log.LineReadWriter) *Peer {
	if lines == nil {
		lines = conn
	}
	return &Peer{conn: conn, lines: lines}
}

// ReadLine returns the next line, "" for an empty line and io.EOF once the
// peer closed the connection. It blocks until data arrives.
func (p *Peer) ReadLine() (string, error) {
	var (
		b        *backoff.ExponentialBackOff
		deadline time.Time
	)

	for {
		closed, err := p.closed()
		if err != nil {
			return "", err
		}
		if closed {
			return "", io.EOF
		}

		line, err := p.lines.ReadLine()
		if !errors.Is(err, socket.ErrLineNotFound) {
			return line, err
		}

		if b == nil {
			b = backoff.NewExponentialBackOff()
			b.InitialInterval = 5 * time.Millisecond
			b.MaxInterval = 100 * time.Millisecond
			deadline = time.Now().Add(partialLineWait)
		}
		sleep := b.NextBackOff()
		if sleep == backoff.Stop || time.Now().Add(sleep).After(deadline) {
			return line, err
		}
		time.Sleep(sleep)
	}
}

func (p *Peer) closed() (bool, error) {
	var b [1]byte
	n, err := p.conn.Read(b[:], true)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// WriteLine sends line terminated by CRLF.
func (p *Peer) WriteLine(line string) (int, error) {
	return p.lines.WriteLine(line)
}

// CloseWrite tells the peer no more lines will follow.
func (p *Peer) CloseWrite() error {
	return p.conn.Shutdown(socket.ShutWrite)
}

// Close shuts the connection down in both directions, waking up a pending
// ReadLine. The descriptor itself stays owned by the caller.
func (p *Peer) Close() error {
	return p.conn.Shutdown(socket.ShutReadWrite)
}
