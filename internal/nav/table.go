// Package nav implements the directional navigation graph: a table of
// per-element neighbors, builders that wire horizontal, vertical and 2D grids
// into it, and a focus cursor that walks it.
//
// A Table, its Elements and the Cursor over them belong to one owner (one
// screen). None of the types here are safe for concurrent use.
package nav

import "fmt"

// Unset marks a missing neighbor.
const Unset = -1

// Entry holds the neighbor of one element in each direction. A field set to
// Unset means there is no neighbor and movement stops at the boundary.
type Entry struct {
	Up    int
	Down  int
	Left  int
	Right int
}

// NoNeighbors returns an Entry with every direction Unset.
func NoNeighbors() Entry {
	return Entry{Up: Unset, Down: Unset, Left: Unset, Right: Unset}
}

// Neighbor returns the neighbor in direction d, or Unset.
func (e Entry) Neighbor(d Direction) int {
	switch d {
	case DirectionUp:
		return e.Up
	case DirectionDown:
		return e.Down
	case DirectionLeft:
		return e.Left
	case DirectionRight:
		return e.Right
	default:
		return Unset
	}
}

// With returns a copy of e with the neighbor in direction d replaced.
func (e Entry) With(d Direction, index int) Entry {
	switch d {
	case DirectionUp:
		e.Up = index
	case DirectionDown:
		e.Down = index
	case DirectionLeft:
		e.Left = index
	case DirectionRight:
		e.Right = index
	}
	return e
}

func (e Entry) validate(limit int) error {
	for _, d := range Directions {
		n := e.Neighbor(d)
		if n == Unset {
			continue
		}
		if n < 0 || (limit >= 0 && n >= limit) {
			return fmt.Errorf("%w: %s neighbor %d", ErrOutOfRange, d, n)
		}
	}
	return nil
}

// Table is the ordered navigation table. Entry i describes element i.
type Table struct {
	entries  []Entry
	grids    []Grid
	inactive map[int]bool
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{inactive: make(map[int]bool)}
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entry returns the entry for element i.
func (t *Table) Entry(i int) (Entry, error) {
	if i < 0 || i >= len(t.entries) {
		return NoNeighbors(), fmt.Errorf("%w: %d (table has %d entries)", ErrOutOfRange, i, len(t.entries))
	}
	return t.entries[i], nil
}

// Neighbor returns the neighbor of element i in direction d.
func (t *Table) Neighbor(i int, d Direction) (int, error) {
	e, err := t.Entry(i)
	if err != nil {
		return Unset, err
	}
	return e.Neighbor(d), nil
}

// Active reports whether element i is an active cell. Cells past the active
// count of a partially filled 2D grid are inactive.
func (t *Table) Active(i int) bool {
	if i < 0 || i >= len(t.entries) {
		return false
	}
	return !t.inactive[i]
}

// Grids returns the grids appended so far, in order.
func (t *Table) Grids() []Grid {
	out := make([]Grid, len(t.grids))
	copy(out, t.grids)
	return out
}

// GridOf returns the grid containing element i and the element's position
// inside that grid.
func (t *Table) GridOf(i int) (Grid, int, bool) {
	for _, g := range t.grids {
		if g.Contains(i) {
			return g, i - g.Start, true
		}
	}
	return Grid{}, -1, false
}

// Validate checks that every neighbor refers to an entry of the table. Edge
// overrides may point forward to grids appended later, so this is checked
// once the table is complete rather than on append.
func (t *Table) Validate() error {
	for i, e := range t.entries {
		if err := e.validate(len(t.entries)); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}
