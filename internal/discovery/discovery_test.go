package discovery

import (
	"slices"
	"testing"

	"pgregory.net/rapid"
)

func leaf(name string) *Node[string] {
	return &Node[string]{Value: name, Navigable: true}
}

func indexed(name string, i int) *Node[string] {
	n := leaf(name)
	n.Index = &i
	return n
}

func panel(children ...*Node[string]) *Node[string] {
	return &Node[string]{Value: "panel", Children: children}
}

// =============================================================================
// Unit Tests
// =============================================================================

func TestCollect_DeepFirst(t *testing.T) {
	root := panel(
		leaf("a"),
		panel(leaf("b"), panel(leaf("c"))),
		leaf("d"),
	)
	got := Collect(root)
	want := []string{"a", "b", "c", "d"}
	if !slices.Equal(got, want) {
		t.Errorf("Collect() = %v, want %v", got, want)
	}
	if Count(root) != 4 {
		t.Errorf("Count() = %d, want 4", Count(root))
	}
}

func TestCollect_NavigableParent(t *testing.T) {
	parent := leaf("box")
	parent.Children = []*Node[string]{leaf("inner")}
	got := Collect(panel(parent, leaf("after")))
	want := []string{"box", "inner", "after"}
	if !slices.Equal(got, want) {
		t.Errorf("Collect() = %v, want %v", got, want)
	}
}

func TestCollect_ExplicitIndex(t *testing.T) {
	root := panel(
		leaf("a"),        // key 0
		indexed("x", 0),  // ties with a, stays after it
		leaf("c"),        // key 2
		indexed("y", 1),  // moves before c
		indexed("z", 10), // last
	)
	got := Collect(root)
	want := []string{"a", "x", "y", "c", "z"}
	if !slices.Equal(got, want) {
		t.Errorf("Collect() = %v, want %v", got, want)
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	hidden := panel(leaf("h1"), leaf("h2"))
	hidden.Value = "hidden"
	root := panel(leaf("a"), hidden, leaf("b"))

	var seen []string
	Walk(root, func(n *Node[string]) bool {
		seen = append(seen, n.Value)
		return n.Value != "hidden"
	})
	want := []string{"panel", "a", "hidden", "b"}
	if !slices.Equal(seen, want) {
		t.Errorf("visited %v, want %v", seen, want)
	}
	Walk[string](nil, func(*Node[string]) bool {
		t.Fatal("visited nil tree")
		return true
	})
}

// =============================================================================
// Property Tests
// =============================================================================

func TestCollect_WithoutIndexKeepsDiscoveryOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		root := &Node[int]{Value: -1}
		parent := root
		for i := range n {
			child := &Node[int]{Value: i, Navigable: true}
			parent.Children = append(parent.Children, child)
			if rapid.Bool().Draw(t, "nest") {
				parent = child
			}
		}

		got := Collect(root)
		if len(got) != n {
			t.Fatalf("collected %d nodes, want %d", len(got), n)
		}
		for i, v := range got {
			if v != i {
				t.Fatalf("position %d holds node %d", i, v)
			}
		}
	})
}
