package testutil

import (
	"fmt"
	"sync"
)

// Recorder captures the order in which named callbacks fire, along with the
// value each one received. It is used to check observer/subscriber ordering.
type Recorder[T any] struct {
	mu     sync.Mutex
	events []Call[T]
}

// Call is one recorded callback invocation.
type Call[T any] struct {
	Name  string
	Value T
}

// NewRecorder creates an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

// Hook returns a callback that records itself under name.
func (r *Recorder[T]) Hook(name string) func(T) {
	return func(v T) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, Call[T]{Name: name, Value: v})
	}
}

// Calls returns a copy of the recorded calls in order.
func (r *Recorder[T]) Calls() []Call[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call[T], len(r.events))
	copy(out, r.events)
	return out
}

// Names returns the recorded callback names in order.
func (r *Recorder[T]) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}
	return names
}

// Count returns how many times name fired.
func (r *Recorder[T]) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Name == name {
			n++
		}
	}
	return n
}

// Last returns the value of the most recent call, or an error when nothing
// was recorded.
func (r *Recorder[T]) Last() (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		var zero T
		return zero, fmt.Errorf("no calls recorded")
	}
	return r.events[len(r.events)-1].Value, nil
}

// Reset forgets all recorded calls.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
