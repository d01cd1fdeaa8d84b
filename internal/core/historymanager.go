// Package core provides the runtime core of the immutable state container.
// HistoryManager keeps a linear, truncating undo/redo log of snapshots.
// Thread-safe for concurrent access.
package core

import (
	"slices"
	"sync"
)

// HistoryOption configures a HistoryManager.
type HistoryOption func(*historyConfig)

type historyConfig struct {
	limit  int
	onMove func(index, size int)
}

// WithLimit caps the number of stored snapshots. When exceeded the oldest
// entry is evicted. n <= 0 keeps the history unbounded.
func WithLimit(n int) HistoryOption {
	return func(c *historyConfig) {
		c.limit = n
	}
}

// WithOnMove registers a callback run after every record, undo or redo
// with the new cursor and history size.
func WithOnMove(fn func(index, size int)) HistoryOption {
	return func(c *historyConfig) {
		c.onMove = fn
	}
}

// HistoryManager records every snapshot a Container produces and moves a
// cursor over them. Recording after an undo discards the redo branch:
// history is a line, never a tree.
//
// Invariant: index == -1 iff the history is empty, otherwise
// 0 <= index < Size().
type HistoryManager[T any] struct {
	mu      sync.RWMutex
	entries []T
	index   int
	writer  Writer[T]
	cfg     historyConfig
}

// NewHistoryManager creates an empty HistoryManager.
func NewHistoryManager[T any](opts ...HistoryOption) *HistoryManager[T] {
	h := &HistoryManager[T]{index: -1}
	for _, opt := range opts {
		opt(&h.cfg)
	}
	return h
}

// Hooks returns the injection points wiring h to a Container: both
// observers record, and the captured writer is used by Undo and Redo.
func (h *HistoryManager[T]) Hooks() Hooks[T] {
	return Hooks[T]{
		OnInitialize:  h.Record,
		OnUpdate:      h.Record,
		CaptureWriter: h.capture,
	}
}

// Option returns h.Hooks() as a Container option.
func (h *HistoryManager[T]) Option() Option[T] {
	return WithHooks(h.Hooks())
}

func (h *HistoryManager[T]) capture(w Writer[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.writer = w
}

// Record advances the cursor, drops every entry from the new cursor
// onward and appends snapshot. Afterwards index == Size()-1.
func (h *HistoryManager[T]) Record(snapshot T) {
	h.mu.Lock()
	h.index++
	clear(h.entries[h.index:])
	h.entries = append(h.entries[:h.index], snapshot)

	if h.cfg.limit > 0 && len(h.entries) > h.cfg.limit {
		drop := len(h.entries) - h.cfg.limit
		h.entries = slices.Delete(h.entries, 0, drop)
		h.index -= drop
	}
	index, size := h.index, len(h.entries)
	h.mu.Unlock()

	h.moved(index, size)
}

// Undo moves the cursor back one entry and force-sets that snapshot.
// It is a no-op returning false at the start of history, on an empty
// history, or before a writer was captured.
func (h *HistoryManager[T]) Undo() bool {
	return h.step(-1)
}

// Redo moves the cursor forward one entry and force-sets that snapshot.
// It is a no-op returning false at the end of history.
func (h *HistoryManager[T]) Redo() bool {
	return h.step(+1)
}

func (h *HistoryManager[T]) step(delta int) bool {
	h.mu.RLock()
	from := h.index
	target := from + delta
	if h.writer == nil || from < 0 || target < 0 || target >= len(h.entries) {
		h.mu.RUnlock()
		return false
	}
	snapshot, writer := h.entries[target], h.writer
	h.mu.RUnlock()

	// Writer runs outside the lock so subscribers may read the history.
	// If it panics the cursor stays where the container's state is.
	writer(snapshot)

	h.mu.Lock()
	if h.index == from {
		h.index = target
	}
	index, size := h.index, len(h.entries)
	h.mu.Unlock()

	h.moved(index, size)
	return true
}

func (h *HistoryManager[T]) moved(index, size int) {
	if h.cfg.onMove != nil {
		h.cfg.onMove(index, size)
	}
}

// Index returns the history cursor, -1 when empty.
func (h *HistoryManager[T]) Index() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index
}

// Size returns the number of stored snapshots.
func (h *HistoryManager[T]) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// CanUndo reports whether Undo would move the cursor.
func (h *HistoryManager[T]) CanUndo() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index > 0
}

// CanRedo reports whether Redo would move the cursor.
func (h *HistoryManager[T]) CanRedo() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index < len(h.entries)-1
}

// Entries returns the stored snapshots, oldest first. The slice is a copy;
// the snapshots themselves are shared and read-only.
func (h *HistoryManager[T]) Entries() []T {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.entries)
}
