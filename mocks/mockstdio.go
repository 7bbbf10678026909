// Package mocks provides fake terminals and resolvers for end-to-end tests.
package mocks

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// MockStdio provides stdin and stdout for a command under test.
// Stdin is a pipe the test feeds line by line; stdout is collected in a
// buffer that can be waited on.
type MockStdio struct {
	stdinReader *io.PipeReader
	stdinWriter *io.PipeWriter

	mu         sync.Mutex
	outputBuf  bytes.Buffer
	outputCond *sync.Cond
}

// NewMockStdio creates a new mock stdio.
func NewMockStdio() *MockStdio {
	stdinR, stdinW := io.Pipe()

	m := &MockStdio{
		stdinReader: stdinR,
		stdinWriter: stdinW,
	}
	m.outputCond = sync.NewCond(&m.mu)

	return m
}

// WriteLine feeds one line to stdin, as if typed by a user.
func (m *MockStdio) WriteLine(line string) error {
	_, err := m.stdinWriter.Write([]byte(line + "\n"))
	return err
}

// CloseStdin ends stdin, as if the user pressed Ctrl-D.
func (m *MockStdio) CloseStdin() error {
	return m.stdinWriter.Close()
}

// Write implements io.Writer for stdout.
func (m *MockStdio) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.outputBuf.Write(p)
	m.outputCond.Broadcast()
	return n, err
}

// Output returns everything written to stdout so far.
func (m *MockStdio) Output() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outputBuf.String()
}

// Lines returns stdout split into lines, without the trailing empty one.
func (m *MockStdio) Lines() []string {
	out := strings.TrimSuffix(m.Output(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// GetStdin returns the stdin reader for config.Dependencies.
func (m *MockStdio) GetStdin() io.Reader {
	return m.stdinReader
}

// GetStdout returns the stdout writer for config.Dependencies.
func (m *MockStdio) GetStdout() io.Writer {
	return m
}

// WaitForOutput waits until expected shows up on stdout.
func (m *MockStdio) WaitForOutput(expected string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	// wake up Wait periodically to check the deadline
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				m.mu.Lock()
				m.outputCond.Broadcast()
				m.mu.Unlock()
			}
		}
	}()

	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		if strings.Contains(m.outputBuf.String(), expected) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for output %q, got: %q", expected, m.outputBuf.String())
		}
		m.outputCond.Wait()
	}
}

// Close ends stdin. Collected output stays readable.
func (m *MockStdio) Close() error {
	return m.stdinWriter.Close()
}
