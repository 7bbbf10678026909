package socket

import (
	"context"
	"testing"
	"time"
)

// listenLocal starts a stream server on a free loopback port.
func listenLocal(t *testing.T, opts ...Option) (*Server, uint16) {
	t.Helper()

	srv, err := ListenTCP(context.Background(), "127.0.0.1", 0, opts...)
	if err != nil {
		t.Fatalf("ListenTCP() error = %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })

	addr, err := srv.LocalAddr()
	if err != nil {
		t.Fatalf("LocalAddr() error = %v", err)
	}
	return srv, addr.Port()
}

type acceptResult struct {
	w   *Worker
	err error
}

func acceptAsync(srv *Server) <-chan acceptResult {
	ch := make(chan acceptResult, 1)
	go func() {
		w, err := srv.Accept()
		ch <- acceptResult{w: w, err: err}
	}()
	return ch
}

// connectedPair returns a connected client and the worker accepted for it.
func connectedPair(t *testing.T, opts ...Option) (*Client, *Worker) {
	t.Helper()

	srv, port := listenLocal(t, opts...)
	accepted := acceptAsync(srv)

	c, err := DialTCP(context.Background(), "127.0.0.1", port, opts...)
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
