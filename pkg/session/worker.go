package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"simplenet/pkg/format"
	"simplenet/pkg/log"
)

// Remote identifies the client behind an accepted connection.
// *socket.Worker implements it.
type Remote interface {
	ClientIP() (string, error)
	ClientHostname(ctx context.Context) (string, error)
}

// Responder answers accepted connections.
type Responder struct {
	// Greeting is sent right after accepting, unless empty.
	Greeting string
	// Echo sends every received line back. Otherwise received lines are
	// written to Out.
	Echo   bool
	Out    LineWriter
	Logger *log.Logger
}

// Describe names the client for log lines. The reverse lookup only runs in
// verbose mode.
func (r *Responder) Describe(ctx context.Context, remote Remote) string {
	ip, err := remote.ClientIP()
	if err != nil {
		r.Logger.ErrorMsg("%s\n", err)
		return "unknown peer"
	}

	if !r.Logger.Verbose() {
		return ip
	}

	hostname, err := remote.ClientHostname(ctx)
	if err != nil {
		r.Logger.VerboseMsg("%s", err)
		return ip
	}
	return format.Peer(ip, hostname)
}

// Serve greets the peer and then handles its lines until it closes.
func (r *Responder) Serve(ctx context.Context, remote Remote, p *Peer) error {
	name := r.Describe(ctx, remote)
	r.Logger.InfoMsg("New connection from %s\n", name)
	defer r.Logger.InfoMsg("Connection from %s closed\n", name)

	if r.Greeting != "" {
		if _, err := p.WriteLine(r.Greeting); err != nil {
			return fmt.Errorf("greeting %s: %w", name, err)
		}
	}

	for {
		line, err := p.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading from %s: %w", name, err)
		}

		r.Logger.VerboseMsg("%s: %q", name, line)

		if r.Echo {
			if _, err := p.WriteLine(line); err != nil {
				return fmt.Errorf("echoing to %s: %w", name, err)
			}
			continue
		}
		if r.Out != nil {
			if _, err := r.Out.WriteLine(line); err != nil {
				return fmt.Errorf("printing line from %s: %w", name, err)
			}
		}
	}
}
