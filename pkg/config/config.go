// Package config holds the validated settings for the simplenet commands and
// the injectable dependencies used by pkg/socket.
package config

import (
	"fmt"
	"time"

	"simplenet/pkg/log"
)

// Protocol selects the socket traits used for a transport.
type Protocol int

const (
	ProtoTCP Protocol = iota + 1
	ProtoUDP
)

// String returns the URL scheme of the protocol, or "" if it is unknown.
func (p Protocol) String() string {
	switch p {
	case ProtoTCP:
		return "tcp"
	case ProtoUDP:
		return "udp"
	default:
		return ""
	}
}

// Shared contains settings common to the connect and listen commands.
type Shared struct {
	Protocol Protocol
	Host     string
	Port     int
	Verbose  bool
	LogFile  string

	Logger *log.Logger
	Deps   *Dependencies
}

func (c *Shared) Validate() []error {
	var errors []error

	if c.Protocol.String() == "" {
		errors = append(errors, fmt.Errorf("unknown protocol %d", c.Protocol))
	}

	if err := validatePort(c.Port); err != nil {
		errors = append(errors, fmt.Errorf("port: %w", err))
	}

	return errors
}

// Connect contains settings for the connect command.
type Connect struct {
	// Send lists lines written to the peer right after connecting.
	Send []string
	// Read is the number of lines printed after sending. Zero means keep
	// reading until the peer closes.
	Read int
}

func (c *Connect) Validate() []error {
	var errors []error

	if c.Read < 0 {
		errors = append(errors, fmt.Errorf("'--read' must not be negative"))
	}

	return errors
}

// Interactive reports whether stdin should be bridged to the peer.
func (c *Connect) Interactive() bool {
	return len(c.Send) == 0
}

// Listen contains settings for the listen command.
type Listen struct {
	Greeting   string
	Echo       bool
	Once       bool
	MaxWorkers int
	// AcceptRate caps accepted connections per second. Zero disables the
	// limit.
	AcceptRate float64
	// SlotTimeout is how long an accepted peer waits for a free worker
	// before it is disconnected. Zero waits as long as it takes.
	SlotTimeout time.Duration
}

func (c *Listen) Validate() []error {
	var errors []error

	if c.MaxWorkers < 1 {
		errors = append(errors, fmt.Errorf("'--max-workers' must be at least 1"))
	}

	if c.AcceptRate < 0 {
		errors = append(errors, fmt.Errorf("'--accept-rate' must not be negative"))
	}

	if c.SlotTimeout < 0 {
		errors = append(errors, fmt.Errorf("'--slot-timeout' must not be negative"))
	}

	return errors
}
