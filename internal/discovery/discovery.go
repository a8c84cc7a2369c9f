// Package discovery turns a widget tree into the ordered element list that
// grid wiring assumes: deep-first, parent before children, then stably
// sorted by any explicit index.
package discovery

import (
	"cmp"
	"slices"
)

// Node is one widget of a tree. Only Navigable nodes become elements;
// the others are containers that are walked through.
type Node[T any] struct {
	Value     T
	Navigable bool
	// Index, when set, overrides the node's discovery position in the final
	// order. Nodes without an explicit index sort by discovery position.
	Index    *int
	Children []*Node[T]
}

// Walk visits the tree deep-first in pre-order. Returning false from fn
// skips the node's children.
func Walk[T any](root *Node[T], fn func(*Node[T]) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range root.Children {
		Walk(child, fn)
	}
}

type found[T any] struct {
	value T
	key   int
}

// Collect returns the values of the navigable nodes in element order.
func Collect[T any](root *Node[T]) []T {
	var nodes []found[T]
	Walk(root, func(n *Node[T]) bool {
		if n.Navigable {
			key := len(nodes)
			if n.Index != nil {
				key = *n.Index
			}
			nodes = append(nodes, found[T]{value: n.Value, key: key})
		}
		return true
	})

	slices.SortStableFunc(nodes, func(a, b found[T]) int {
		return cmp.Compare(a.key, b.key)
	})
	out := make([]T, len(nodes))
	for i, n := range nodes {
		out[i] = n.value
	}
	return out
}

// Count returns the number of navigable nodes in the tree.
func Count[T any](root *Node[T]) int {
	n := 0
	Walk(root, func(node *Node[T]) bool {
		if node.Navigable {
			n++
		}
		return true
	})
	return n
}
