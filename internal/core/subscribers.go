package core

import "sync"

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// subscriberList is an ordered observer list. Registration order is
// notification order; each registration gets its own id so the same func
// may be subscribed twice.
type subscriberList[T any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []subscriber[T]
}

func (l *subscriberList[T]) add(fn func(T)) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, subscriber[T]{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *subscriberList[T]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, s := range l.entries {
		if s.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *subscriberList[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// notify calls every listener registered at the moment notify starts.
// Listeners run outside the lock, so they may subscribe or unsubscribe.
func (l *subscriberList[T]) notify(snapshot T) {
	l.mu.Lock()
	entries := make([]subscriber[T], len(l.entries))
	copy(entries, l.entries)
	l.mu.Unlock()

	for _, s := range entries {
		s.fn(snapshot)
	}
}
