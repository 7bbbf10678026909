package socket

import (
	"simplenet/pkg/config"
	"simplenet/pkg/log"
)

// DefaultBacklog is the number of pending connections a Server lets the OS
// queue. Linux silently caps it at net.core.somaxconn.
const DefaultBacklog = 10000

// Option customizes a Client or Server.
type Option func(*options)

type options struct {
	logger  *log.Logger
	deps    *config.Dependencies
	backlog int
}

func newOptions(opts []Option) options {
	o := options{backlog: DefaultBacklog}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for verbose tracing and for reporting
// close failures of leaked handles.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDependencies replaces the name lookups, mostly for tests.
func WithDependencies(deps *config.Dependencies) Option {
	return func(o *options) {
		o.deps = deps
	}
}

// WithBacklog overrides DefaultBacklog for servers. Non-positive values are
// ignored.
func WithBacklog(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.backlog = n
		}
	}
}
