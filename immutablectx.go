// Package immutablectx is a synchronous state container for one immutable
// snapshot of T.
//
// Writes are expressed as in-place edits on a draft:
//
//	c := immutablectx.New(AppState{})
//	err := c.Apply(func(s *AppState) { s.Items[0].Done = true })
//
// Apply clones the current snapshot, runs the mutator on the clone and
// publishes it as the new snapshot, first to on-update observers and then
// to subscribers. An attached HistoryManager records every snapshot and
// provides linear undo/redo on top of the container's force-set writer.
package immutablectx

import (
	"log/slog"

	"github.com/comalice/immutablectx/internal/core"
	"github.com/comalice/immutablectx/internal/extensibility"
	"github.com/comalice/immutablectx/internal/production"
)

type (
	Container[T any]      = core.Container[T]
	HistoryManager[T any] = core.HistoryManager[T]
	Option[T any]         = core.Option[T]
	Hooks[T any]          = core.Hooks[T]
	Writer[T any]         = core.Writer[T]
	Mutator[T any]        = core.Mutator[T]
	Unsubscribe           = core.Unsubscribe
	HistoryOption         = core.HistoryOption
	Instrument            = core.Instrument

	Dispatcher[T any]       = extensibility.Dispatcher[T]
	ChannelPublisher[T any] = production.ChannelPublisher[T]
)

var (
	ErrAlreadyInitialized = core.ErrAlreadyInitialized
	ErrNotInitialized     = core.ErrNotInitialized
	ErrReentrantApply     = core.ErrReentrantApply
	ErrMutatorPanic       = core.ErrMutatorPanic
	ErrMutatorFailed      = core.ErrMutatorFailed
	ErrDispatcherClosed   = core.ErrDispatcherClosed
)

// New creates a Container initialized with initial.
func New[T any](initial T, opts ...Option[T]) *Container[T] {
	return core.New(initial, opts...)
}

// NewUndoManager creates an empty HistoryManager. Attach it with WithUndo.
func NewUndoManager[T any](opts ...HistoryOption) *HistoryManager[T] {
	return core.NewHistoryManager[T](opts...)
}

// NewDispatcher starts a single writer goroutine applying mutators to c in
// the order they are dispatched. Stop it when done.
func NewDispatcher[T any](c *Container[T], queueSize int) *Dispatcher[T] {
	return extensibility.NewDispatcher[T](c, queueSize)
}

// NewChannelPublisher forwards every snapshot c publishes to ch, dropping
// snapshots while ch is full. Close unsubscribes and closes ch.
func NewChannelPublisher[T any](c *Container[T], ch chan<- T) *ChannelPublisher[T] {
	return production.NewChannelPublisher[T](c, ch)
}

// WithUndo wires h into the container's initialize, update and writer hooks.
func WithUndo[T any](h *HistoryManager[T]) Option[T] {
	return h.Option()
}

// WithHistoryLogger logs every produced snapshot as YAML to logger.
func WithHistoryLogger[T any](logger *slog.Logger) Option[T] {
	return core.WithHooks(production.NewHistoryLogger[T](logger).Hooks())
}

func WithOnInitialize[T any](fn func(T)) Option[T]         { return core.WithOnInitialize(fn) }
func WithOnUpdate[T any](fn func(T)) Option[T]             { return core.WithOnUpdate(fn) }
func WithCaptureWriter[T any](fn func(Writer[T])) Option[T] { return core.WithCaptureWriter(fn) }
func WithHooks[T any](h Hooks[T]) Option[T]                { return core.WithHooks(h) }
func WithLogger[T any](l *slog.Logger) Option[T]           { return core.WithLogger[T](l) }
func WithInstrument[T any](i Instrument) Option[T]         { return core.WithInstrument[T](i) }
func WithCloner[T any](fn func(T) T) Option[T]             { return core.WithCloner(fn) }
func WithLimit(n int) HistoryOption                        { return core.WithLimit(n) }
func WithOnMove(fn func(index, size int)) HistoryOption    { return core.WithOnMove(fn) }
