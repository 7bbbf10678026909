package integration

import (
	"bytes"
	"context"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"simplenet/mocks"
	"simplenet/pkg/config"
	"simplenet/pkg/entrypoint"
	"simplenet/pkg/log"
)

// logBuffer collects log output from concurrent workers.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// freePort asks the OS for a port that is free right now.
func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func newShared(host string, port int, verbose bool, logs io.Writer, stdio *mocks.MockStdio, resolver *mocks.Resolver) *config.Shared {
	deps := &config.Dependencies{
		Stdin:  stdio.GetStdin,
		Stdout: stdio.GetStdout,
	}
	if resolver != nil {
		deps.LookupIP = resolver.LookupIP
		deps.LookupAddr = resolver.LookupAddr
	}

	return &config.Shared{
		Protocol: config.ProtoTCP,
		Host:     host,
		Port:     port,
		Verbose:  verbose,
		Logger:   log.NewLoggerTo(logs, verbose),
		Deps:     deps,
	}
}

// startListen runs the listen entrypoint in the background.
func startListen(ctx context.Context, cfg *config.Shared, lCfg *config.Listen) <-chan error {
	done := make(chan error, 1)
	go func() { done <- entrypoint.Listen(ctx, cfg, lCfg) }()
	return done
}

// connectWhenUp retries the connect entrypoint until the listener is up.
func connectWhenUp(t *testing.T, ctx context.Context, cfg *config.Shared, cCfg *config.Connect) error {
	t.Helper()

	var err error
	for deadline := time.Now().Add(3 * time.Second); time.Now().Before(deadline); time.Sleep(20 * time.Millisecond) {
		if err = entrypoint.Connect(ctx, cfg, cCfg); err == nil {
			return nil
		}
	}
	return err
}

func waitFor(t *testing.T, what string, done <-chan error) {
	t.Helper()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("%s error = %v", what, err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("%s did not return", what)
	}
}
