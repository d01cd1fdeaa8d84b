// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import "fmt"

// FlatState is a wide snapshot: one map with n entries and a slice of n items.
type FlatState struct {
	Counters map[string]int `yaml:"counters"`
	Items    []Item         `yaml:"items"`
}

// Item is a leaf value stored in generated states.
type Item struct {
	ID    int    `yaml:"id"`
	Label string `yaml:"label"`
	Done  bool   `yaml:"done"`
}

// DeepState is a chain of nested nodes, each carrying a small payload.
type DeepState struct {
	Root *Node `yaml:"root"`
}

// Node is one level of a DeepState.
type Node struct {
	Depth int      `yaml:"depth"`
	Tags  []string `yaml:"tags"`
	Child *Node    `yaml:"child,omitempty"`
}

// GenFlatState generates a FlatState with n counters and n items.
func GenFlatState(n int) FlatState {
	s := FlatState{
		Counters: make(map[string]int, n),
		Items:    make([]Item, n),
	}
	for i := range n {
		s.Counters[fmt.Sprintf("c%d", i)] = i
		s.Items[i] = Item{ID: i, Label: fmt.Sprintf("item-%d", i)}
	}
	return s
}

// GenDeepState generates a DeepState nested depth levels deep.
func GenDeepState(depth int) DeepState {
	var child *Node
	for d := depth - 1; d >= 0; d-- {
		child = &Node{
			Depth: d,
			Tags:  []string{fmt.Sprintf("level-%d", d)},
			Child: child,
		}
	}
	return DeepState{Root: child}
}

// Leaf returns the deepest node of s, or nil for an empty state.
func (s *DeepState) Leaf() *Node {
	n := s.Root
	for n != nil && n.Child != nil {
		n = n.Child
	}
	return n
}
