// Package core provides the runtime core of the immutable state container.
// This includes the Container (apply, force-set, subscriptions) and the
// HistoryManager that records produced snapshots for undo/redo.
// Dependencies: internal/primitives for draft cloning.
// Pluggable components (logging, instrumentation) are injected as Options.
//go:generate go test ./... -race

package core

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/comalice/immutablectx/internal/primitives"
)

// Mutator edits a draft in place. The draft must not be retained after
// the mutator returns.
type Mutator[T any] func(draft *T)

// Writer replaces the current snapshot, bypassing the mutator path.
type Writer[T any] func(snapshot T)

// Unsubscribe removes a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

// Instrument observes write operations for metrics and tracing.
// It is called once per write, after publication or after the failure.
type Instrument interface {
	Applied(start time.Time, err error)
	Forced(start time.Time)
}

// Container holds one immutable snapshot of T and serializes all writes
// through Apply, TryApply and ForceSet.
//
// Snapshots handed out by State, observers and subscribers are shared and
// MUST NOT be mutated. Writes are single-writer: a write issued while
// another is in progress (from a mutator, observer, subscriber or another
// goroutine) panics with ErrReentrantApply. Use a Dispatcher to funnel
// writes from many goroutines.
type Container[T any] struct {
	mu          sync.RWMutex // guards current and initialized
	current     T
	initialized bool
	writing     atomic.Bool

	onInitialize []func(T)
	onUpdate     []func(T)
	captures     []func(Writer[T])
	subs         subscriberList[T]

	cloner     primitives.Cloner[T]
	logger     *slog.Logger
	instrument Instrument
}

// NewContainer creates an uninitialized Container. Call Initialize before
// any other operation.
func NewContainer[T any](opts ...Option[T]) *Container[T] {
	c := &Container[T]{
		cloner: primitives.Clone[T],
		logger: slog.New(slog.DiscardHandler),
	}

	// Apply functional options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// New creates a Container and initializes it with initial.
func New[T any](initial T, opts ...Option[T]) *Container[T] {
	c := NewContainer(opts...)
	c.Initialize(initial)
	return c
}

// Initialize sets the first snapshot, hands the force-set writer to every
// capture hook and runs the on-initialize observers. The caller keeps no
// alias into the stored snapshot.
// Panics with ErrAlreadyInitialized on a second call.
func (c *Container[T]) Initialize(initial T) {
	c.acquire()
	defer c.release()

	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		panic(ErrAlreadyInitialized)
	}
	snapshot := c.cloner(initial)
	c.current = snapshot
	c.initialized = true
	c.mu.Unlock()

	for _, capture := range c.captures {
		capture(c.ForceSet)
	}
	for _, fn := range c.onInitialize {
		fn(snapshot)
	}

	c.logger.Debug("container initialized",
		"observers", len(c.onInitialize),
		"fingerprint", primitives.Fingerprint(snapshot))
}

// State returns the current snapshot. The result is shared and read-only.
func (c *Container[T]) State() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Initialized reports whether Initialize has run.
func (c *Container[T]) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// Apply clones the current snapshot into a draft, runs mutator on it and
// publishes the draft as the new snapshot: on-update observers first, then
// subscribers, all before Apply returns. A new snapshot is published even
// when the mutator changed nothing.
//
// If the mutator panics the draft is discarded, the current snapshot is
// left untouched, nothing is published and an error wrapping
// ErrMutatorPanic is returned.
func (c *Container[T]) Apply(mutator Mutator[T]) error {
	return c.TryApply(func(draft *T) error {
		mutator(draft)
		return nil
	})
}

// TryApply is Apply for mutators that can fail. A non-nil error aborts the
// write atomically and is returned wrapped with ErrMutatorFailed.
func (c *Container[T]) TryApply(mutator func(draft *T) error) error {
	c.mustBeInitialized()
	c.acquire()
	defer c.release()

	start := time.Now()
	next, err := c.produce(mutator)
	if err != nil {
		c.logger.Warn("apply aborted, snapshot unchanged", "error", err)
		c.report(start, err)
		return err
	}

	c.mu.Lock()
	c.current = next
	c.mu.Unlock()

	for _, fn := range c.onUpdate {
		fn(next)
	}
	c.subs.notify(next)

	c.logger.Debug("apply",
		"observers", len(c.onUpdate),
		"subscribers", c.subs.len(),
		"duration", time.Since(start))
	c.report(start, nil)
	return nil
}

// ForceSet replaces the current snapshot and notifies subscribers without
// running the on-update observers, so history replays are not recorded
// again.
func (c *Container[T]) ForceSet(snapshot T) {
	c.mustBeInitialized()
	c.acquire()
	defer c.release()

	start := time.Now()
	c.mu.Lock()
	c.current = snapshot
	c.mu.Unlock()

	c.subs.notify(snapshot)

	c.logger.Debug("force set", "subscribers", c.subs.len())
	if c.instrument != nil {
		c.instrument.Forced(start)
	}
}

// Subscribe registers listener to be called with every snapshot published
// by Apply or ForceSet, in subscription order. A nil listener is ignored.
func (c *Container[T]) Subscribe(listener func(T)) Unsubscribe {
	return c.subs.add(listener)
}

// Subscribers returns the number of active subscriptions.
func (c *Container[T]) Subscribers() int {
	return c.subs.len()
}

// produce runs mutator against a fresh draft. Panics raised by the
// mutator are converted to errors, except write-precondition panics.
func (c *Container[T]) produce(mutator func(draft *T) error) (next T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && errors.Is(e, ErrReentrantApply) {
			panic(r)
		}
		var zero T
		next, err = zero, fmt.Errorf("%w: %v", ErrMutatorPanic, r)
	}()

	draft := c.cloner(c.State())
	if err := mutator(&draft); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrMutatorFailed, err)
	}
	return draft, nil
}

func (c *Container[T]) mustBeInitialized() {
	if !c.Initialized() {
		panic(ErrNotInitialized)
	}
}

func (c *Container[T]) acquire() {
	if !c.writing.CompareAndSwap(false, true) {
		panic(ErrReentrantApply)
	}
}

func (c *Container[T]) release() {
	c.writing.Store(false)
}

func (c *Container[T]) report(start time.Time, err error) {
	if c.instrument != nil {
		c.instrument.Applied(start, err)
	}
}
