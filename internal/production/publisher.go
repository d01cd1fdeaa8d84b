package production

import (
	"sync"
	"sync/atomic"

	"github.com/comalice/immutablectx/internal/core"
)

// Subscribable is the read side of a Container.
type Subscribable[T any] interface {
	Subscribe(listener func(T)) core.Unsubscribe
}

// ChannelPublisher forwards every published snapshot to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher[T any] struct {
	mu      sync.Mutex
	ch      chan<- T
	closed  bool
	unsub   core.Unsubscribe
	dropped atomic.Uint64
}

// NewChannelPublisher subscribes to src and forwards snapshots to ch.
func NewChannelPublisher[T any](src Subscribable[T], ch chan<- T) *ChannelPublisher[T] {
	p := &ChannelPublisher[T]{ch: ch}
	p.unsub = src.Subscribe(p.publish)
	return p
}

func (p *ChannelPublisher[T]) publish(snapshot T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.ch <- snapshot:
	default:
		p.dropped.Add(1)
	}
}

// Dropped returns how many snapshots were dropped because ch was full.
func (p *ChannelPublisher[T]) Dropped() uint64 {
	return p.dropped.Load()
}

// Close unsubscribes and closes the channel. Safe to call more than once.
func (p *ChannelPublisher[T]) Close() error {
	p.unsub()

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	return nil
}
