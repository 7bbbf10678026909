package shared

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simplenet/pkg/log"
)

// gracePeriod is how long sockets get to shut down after the first signal.
const gracePeriod = 5 * time.Second

// SetupSignalHandling cancels the command context on the first SIGINT,
// SIGTERM, SIGHUP or SIGQUIT. A second signal, or the grace period running
// out, exits the process.
func SetupSignalHandling(cancel context.CancelFunc, logger *log.Logger) {
	sigCh := make(chan os.Signal, 2)

	// a peer going away must surface as EPIPE, not kill the process
	signal.Ignore(syscall.SIGPIPE)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	go func() {
		s := <-sigCh
		logger.VerboseMsg("Received %s, shutting down", s)
		cancel()

		select {
		case <-sigCh:
			// map to POSIX exit code 128+sig if possible
			if ss, ok := s.(syscall.Signal); ok {
				os.Exit(128 + int(ss))
			}
			os.Exit(1)
		case <-time.After(gracePeriod):
			os.Exit(0)
		}
	}()
}
