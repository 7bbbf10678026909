package session

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"simplenet/pkg/socket"
)

// connectedPair returns a loopback client and the worker accepted for it.
func connectedPair(t *testing.T) (*socket.Client, *socket.Worker) {
	t.Helper()

	ctx := context.Background()

	srv, err := socket.ListenTCP(ctx, "127.0.0.1", 0)
	if err != nil {
		t.Fatalf("ListenTCP() error = %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })

	addr, err := srv.LocalAddr()
	if err != nil {
		t.Fatalf("LocalAddr() error = %v", err)
	}

	type result struct {
		w   *socket.Worker
		err error
	}
	accepted := make(chan result, 1)
	go func() {
		w, err := srv.Accept()
		accepted <- result{w, err}
	}()

	c, err := socket.DialTCP(ctx, "127.0.0.1", addr.Port())
	if err != nil {
		t.Fatalf("DialTCP() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	select {
	case r := <-accepted:
		if r.err != nil {
			t.Fatalf("Accept() error = %v", r.err)
		}
		t.Cleanup(func() { _ = r.w.Close() })
		return c, r.w
	case <-time.After(5 * time.Second):
		t.Fatal("Accept() did not return")
	}
	return nil, nil
}

// lineSink collects written lines.
type lineSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *lineSink) WriteLine(line string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return len(line), nil
}

func (s *lineSink) get() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// fakeRemote is a Remote with fixed answers.
type fakeRemote struct {
	ip       string
	ipErr    error
	hostname string
	hostErr  error
}

func (f fakeRemote) ClientIP() (string, error) {
	return f.ip, f.ipErr
}

func (f fakeRemote) ClientHostname(ctx context.Context) (string, error) {
	return f.hostname, f.hostErr
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}
