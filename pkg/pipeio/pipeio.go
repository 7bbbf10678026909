// Package pipeio moves lines between two line endpoints, typically a
// connected socket and the terminal.
package pipeio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// LineEndpoint is one side of a line pipe. ReadLine returns io.EOF once the
// side has nothing more to give.
type LineEndpoint interface {
	ReadLine() (string, error)
	WriteLine(line string) (int, error)
	Close() error
}

// CloseWriter is implemented by endpoints that can signal the end of input
// to their peer while still receiving, like a half-closed stream socket.
type CloseWriter interface {
	CloseWrite() error
}

// PipeLines copies lines from a to b and from b to a until one direction
// fails, both directions end, or ctx is done. When one source is exhausted
// and the opposite endpoint is a CloseWriter, that endpoint is half-closed
// and the other direction keeps running. Both endpoints are closed before
// PipeLines returns.
func PipeLines(ctx context.Context, a, b LineEndpoint, logfunc func(error)) {
	var (
		wg        sync.WaitGroup
		o         sync.Once
		remaining atomic.Int32
	)

	finish := func() {
		a.Close()
		b.Close()

		wg.Done()
	}
	wg.Add(1)
	remaining.Store(2)

	pump := func(dst, src LineEndpoint, dir string) {
		err := copyLines(dst, src)
		if err != nil {
			logfunc(fmt.Errorf("copying lines %s: %w", dir, err))
			o.Do(finish)
			return
		}

		if cw, ok := dst.(CloseWriter); ok {
			if err := cw.CloseWrite(); err != nil {
				logfunc(fmt.Errorf("closing %s: %w", dir, err))
				o.Do(finish)
				return
			}
			if remaining.Add(-1) > 0 {
				return
			}
		}

		o.Do(finish)
	}

	go pump(b, a, "a to b")
	go pump(a, b, "b to a")

	stop := context.AfterFunc(ctx, func() { o.Do(finish) })
	defer stop()

	wg.Wait()
}

func copyLines(dst, src LineEndpoint) error {
	for {
		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading: %w", err)
		}

		if _, err := dst.WriteLine(line); err != nil {
			return fmt.Errorf("writing: %w", err)
		}
	}
}
