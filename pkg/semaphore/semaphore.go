// Package semaphore bounds how many accepted peers are served at once.
package semaphore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrBusy is returned by Acquire when no worker slot freed up in time.
var ErrBusy = errors.New("all worker slots busy")

// WorkerSlots hands out a fixed number of slots, one per served worker.
type WorkerSlots struct {
	slots   chan struct{}
	timeout time.Duration
}

// New returns n free slots. A positive timeout limits how long Acquire
// waits for one; otherwise Acquire waits until ctx is done.
func New(n int, timeout time.Duration) *WorkerSlots {
	if n < 1 {
		n = 1
	}
	slots := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		slots <- struct{}{}
	}
	return &WorkerSlots{slots: slots, timeout: timeout}
}

// Acquire takes a slot. A nil *WorkerSlots never blocks.
func (s *WorkerSlots) Acquire(ctx context.Context) error {
	if s == nil {
		return nil
	}

	waitCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	select {
	case <-s.slots:
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w after %v", ErrBusy, s.timeout)
	}
}

// Release gives a slot back.
func (s *WorkerSlots) Release() {
	if s == nil {
		return
	}
	s.slots <- struct{}{}
}

// Size is the total number of slots.
func (s *WorkerSlots) Size() int {
	if s == nil {
		return 0
	}
	return cap(s.slots)
}

// InUse is the number of slots currently taken.
func (s *WorkerSlots) InUse() int {
	if s == nil {
		return 0
	}
	return cap(s.slots) - len(s.slots)
}
