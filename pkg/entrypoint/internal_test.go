package entrypoint

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"simplenet/pkg/config"
	"simplenet/pkg/log"
	"simplenet/pkg/server"
	"simplenet/pkg/session"
	"simplenet/pkg/socket"
)

// testConfig creates a standard test configuration.
func testConfig() *config.Shared {
	return &config.Shared{
		Protocol: config.ProtoTCP,
		Host:     "localhost",
		Port:     8080,
		Logger:   log.NewLoggerTo(&bytes.Buffer{}, false),
	}
}

// fakeConn implements session.Conn. Reads block until it is shut down.
type fakeConn struct {
	mu       sync.Mutex
	shutdown bool
	shutCh   chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{shutCh: make(chan struct{})}
}

func (f *fakeConn) ReadLine() (string, error) {
	<-f.shutCh
	return "", nil
}

func (f *fakeConn) WriteLine(line string) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeConn) Read(p []byte, peek bool) (int, error) {
	<-f.shutCh
	return 0, nil
}

func (f *fakeConn) Shutdown(how socket.ShutdownHow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.shutdown {
		f.shutdown = true
		close(f.shutCh)
	}
	return nil
}

func (f *fakeConn) isShutdown() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdown
}

// fakeClient implements clientInterface.
type fakeClient struct {
	connectErr error
	conn       *fakeConn
	closed     bool
}

func (f *fakeClient) Connect() error {
	return f.connectErr
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func (f *fakeClient) GetConnection() session.Conn {
	return f.conn
}

func newFakeConnectHandle(err error, cb func(ctx context.Context)) connectHandler {
	return func(ctx context.Context, cfg *config.Shared, cCfg *config.Connect, conn session.Conn) error {
		if cb != nil {
			cb(ctx)
		}
		return err
	}
}

// fakeServer implements serverInterface.
type fakeServer struct {
	listenErr error
	serveErr  error
	serve     func() error
	handle    server.Handler
	closed    bool
	mu        sync.Mutex
}

func (f *fakeServer) Listen() error {
	return f.listenErr
}

func (f *fakeServer) Serve() error {
	if f.serve != nil {
		return f.serve()
	}
	return f.serveErr
}

func (f *fakeServer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeServer) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
