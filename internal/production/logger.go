package production

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/comalice/immutablectx/internal/core"
	"github.com/comalice/immutablectx/internal/primitives"
)

// HistoryLogger records every produced snapshot and logs it as YAML.
// It keeps its own append-only log and never drives the container.
type HistoryLogger[T any] struct {
	mu      sync.Mutex
	logger  *slog.Logger
	entries []T
}

// NewHistoryLogger creates a HistoryLogger writing to logger.
// A nil logger uses slog.Default().
func NewHistoryLogger[T any](logger *slog.Logger) *HistoryLogger[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryLogger[T]{logger: logger}
}

// Hooks wires Log as both the on-initialize and on-update observer.
func (l *HistoryLogger[T]) Hooks() core.Hooks[T] {
	return core.Hooks[T]{
		OnInitialize: l.Log,
		OnUpdate:     l.Log,
	}
}

// Log appends snapshot and emits it at Info level.
func (l *HistoryLogger[T]) Log(snapshot T) {
	l.mu.Lock()
	l.entries = append(l.entries, snapshot)
	seq := len(l.entries)
	l.mu.Unlock()

	rendered, err := primitives.RenderYAML(snapshot)
	if err != nil {
		l.logger.Warn("snapshot not renderable", "seq", seq, "error", err)
		return
	}
	l.logger.Info("snapshot produced",
		"seq", seq,
		"fingerprint", primitives.Fingerprint(snapshot),
		"state", rendered)
}

// Entries returns the logged snapshots, oldest first.
func (l *HistoryLogger[T]) Entries() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}
