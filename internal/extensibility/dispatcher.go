// Package extensibility provides ways to drive a Container from outside
// its single writer, such as many goroutines or an event loop.
package extensibility

import (
	"context"
	"sync"

	"github.com/comalice/immutablectx/internal/core"
)

// Writable is the write side of a Container.
type Writable[T any] interface {
	TryApply(mutator func(draft *T) error) error
}

type request struct {
	run  func() error
	done chan error
}

// Dispatcher funnels writes from any number of goroutines onto one writer
// goroutine, preserving the container's single-writer contract.
// Requests are applied in the order they are enqueued.
//
// The container must not be written directly while a Dispatcher owns it,
// and a mutator must never dispatch to its own Dispatcher.
type Dispatcher[T any] struct {
	target  Writable[T]
	queue   chan request
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once

	mu     sync.RWMutex // guards closed against enqueue
	closed bool
}

// NewDispatcher starts the writer goroutine. queueSize bounds how many
// requests may wait before Dispatch blocks.
func NewDispatcher[T any](target Writable[T], queueSize int) *Dispatcher[T] {
	d := &Dispatcher[T]{
		target:  target,
		queue:   make(chan request, queueSize),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher[T]) run() {
	defer close(d.stopped)
	for {
		select {
		case req := <-d.queue:
			req.done <- req.run()
		case <-d.stop:
			// Drain what was accepted before Stop.
			for {
				select {
				case req := <-d.queue:
					req.done <- req.run()
				default:
					return
				}
			}
		}
	}
}

// Dispatch applies mutator on the writer goroutine and waits for the result.
func (d *Dispatcher[T]) Dispatch(ctx context.Context, mutator core.Mutator[T]) error {
	return d.TryDispatch(ctx, func(draft *T) error {
		mutator(draft)
		return nil
	})
}

// TryDispatch is Dispatch for mutators that can fail.
func (d *Dispatcher[T]) TryDispatch(ctx context.Context, mutator func(draft *T) error) error {
	return d.enqueue(ctx, func() error {
		return d.target.TryApply(mutator)
	})
}

// Do runs fn on the writer goroutine, e.g. HistoryManager.Undo.
func (d *Dispatcher[T]) Do(ctx context.Context, fn func()) error {
	return d.enqueue(ctx, func() error {
		fn()
		return nil
	})
}

// enqueue hands run to the writer. If ctx ends after the request was
// accepted, the write may still happen; only the wait is abandoned.
func (d *Dispatcher[T]) enqueue(ctx context.Context, run func() error) error {
	req := request{run: run, done: make(chan error, 1)}

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		return core.ErrDispatcherClosed
	}
	select {
	case d.queue <- req:
	case <-ctx.Done():
		d.mu.RUnlock()
		return ctx.Err()
	}
	d.mu.RUnlock()

	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop rejects new requests, applies the ones already queued and waits
// for the writer goroutine to exit. Idempotent.
func (d *Dispatcher[T]) Stop() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()
		close(d.stop)
	})
	<-d.stopped
}
