package primitives

import (
	deep "github.com/brunoga/deep/v5"
)

// Cloner produces an independent copy of a snapshot for use as a draft.
type Cloner[T any] func(T) T

// Clone returns a deep copy of v. Maps, slices and pointers reachable from
// v are duplicated, so edits to the copy are never observable through v.
func Clone[T any](v T) T {
	return deep.Clone(v)
}
