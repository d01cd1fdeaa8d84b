package immutablectx

// Provider is the explicit handle passed through a presentation layer: the
// container plus an optional history. Readers call State and Subscribe;
// writers call Apply, Undo and Redo.
type Provider[T any] struct {
	*Container[T]
	history *HistoryManager[T]
}

// NewProvider creates and initializes a container for initial. history may
// be nil, in which case Undo and Redo are no-ops.
func NewProvider[T any](initial T, history *HistoryManager[T], opts ...Option[T]) *Provider[T] {
	if history != nil {
		opts = append([]Option[T]{WithUndo(history)}, opts...)
	}
	return &Provider[T]{
		Container: New(initial, opts...),
		history:   history,
	}
}

// History returns the attached HistoryManager, or nil.
func (p *Provider[T]) History() *HistoryManager[T] {
	return p.history
}

// Undo steps back one snapshot. Reports whether the state changed.
func (p *Provider[T]) Undo() bool {
	if p.history == nil {
		return false
	}
	return p.history.Undo()
}

// Redo steps forward one snapshot. Reports whether the state changed.
func (p *Provider[T]) Redo() bool {
	if p.history == nil {
		return false
	}
	return p.history.Redo()
}

func (p *Provider[T]) CanUndo() bool { return p.history != nil && p.history.CanUndo() }
func (p *Provider[T]) CanRedo() bool { return p.history != nil && p.history.CanRedo() }
