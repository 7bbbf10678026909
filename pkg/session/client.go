package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"simplenet/pkg/log"
	"simplenet/pkg/pipeio"
)

// LineWriter receives the lines read from a peer.
type LineWriter interface {
	WriteLine(line string) (int, error)
}

// Exchange sends every line in send and half-closes the connection, then
// copies up to read lines from the peer to out. It stops early without
// error when the peer closes.
func Exchange(p *Peer, send []string, read int, out LineWriter) error {
	for _, line := range send {
		if _, err := p.WriteLine(line); err != nil {
			return fmt.Errorf("sending %q: %w", line, err)
		}
	}

	// datagram sockets have no write side to close
	_ = p.CloseWrite()

	for i := 0; i < read; i++ {
		line, err := p.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading line %d: %w", i+1, err)
		}

		if _, err := out.WriteLine(line); err != nil {
			return fmt.Errorf("printing line %d: %w", i+1, err)
		}
	}

	return nil
}

// Bridge copies stdin lines to the peer and peer lines to stdout until the
// peer closes or ctx is done. When stdin ends first the connection is
// half-closed and peer lines keep coming until the peer is done.
func Bridge(ctx context.Context, p *Peer, stdio *pipeio.Stdio, logger *log.Logger) {
	pipeio.PipeLines(ctx, stdio, p, func(err error) {
		logger.ErrorMsg("%s\n", err)
	})
}
