// Package core provides the runtime core of the immutable state container.
// Options for configuring Container instances.
package core

import "log/slog"

// Option applies configuration to a Container via functional options pattern.
type Option[T any] func(*Container[T])

// Hooks is the options-object form of the three injection points.
// Nil fields are no-ops.
type Hooks[T any] struct {
	OnInitialize  func(T)
	OnUpdate      func(T)
	CaptureWriter func(Writer[T])
}

// WithOnInitialize registers an observer called once with the initial snapshot.
func WithOnInitialize[T any](fn func(T)) Option[T] {
	return func(c *Container[T]) {
		if fn != nil {
			c.onInitialize = append(c.onInitialize, fn)
		}
	}
}

// WithOnUpdate registers an observer called with every snapshot produced by
// Apply, before subscribers are notified. ForceSet does not trigger it.
func WithOnUpdate[T any](fn func(T)) Option[T] {
	return func(c *Container[T]) {
		if fn != nil {
			c.onUpdate = append(c.onUpdate, fn)
		}
	}
}

// WithCaptureWriter registers a hook that receives the container's
// ForceSet writer during Initialize.
func WithCaptureWriter[T any](fn func(Writer[T])) Option[T] {
	return func(c *Container[T]) {
		if fn != nil {
			c.captures = append(c.captures, fn)
		}
	}
}

// WithHooks registers every non-nil hook of h.
func WithHooks[T any](h Hooks[T]) Option[T] {
	return func(c *Container[T]) {
		WithOnInitialize(h.OnInitialize)(c)
		WithOnUpdate(h.OnUpdate)(c)
		WithCaptureWriter(h.CaptureWriter)(c)
	}
}

// WithLogger configures the Container with a structured logger.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(c *Container[T]) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithInstrument configures the Container with a metrics or tracing sink.
func WithInstrument[T any](i Instrument) Option[T] {
	return func(c *Container[T]) {
		c.instrument = i
	}
}

// WithCloner overrides how drafts are cloned from the current snapshot.
// The cloner must return a value sharing no mutable memory with its input.
func WithCloner[T any](fn func(T) T) Option[T] {
	return func(c *Container[T]) {
		if fn != nil {
			c.cloner = fn
		}
	}
}
