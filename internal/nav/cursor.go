package nav

import "fmt"

// Cursor tracks the focused element of a table. Outside of a Move call the
// current index always refers to a navigable element.
type Cursor struct {
	table    *Table
	elements Navigability
	observer Observer
	current  int
}

// NewCursor creates a cursor focused on first, or on the next navigable
// element after it (wrapping around) when first cannot take focus. The
// observer, if any, is told about the initial focus with from == Unset.
func NewCursor(table *Table, elements Navigability, first int, observer Observer) (*Cursor, error) {
	if table.Len() != elements.Len() {
		return nil, fmt.Errorf("%w: %d elements, %d entries", ErrSizeMismatch, elements.Len(), table.Len())
	}
	if first < 0 || first >= table.Len() {
		return nil, fmt.Errorf("%w: first element %d (table has %d entries)", ErrOutOfRange, first, table.Len())
	}
	if observer == nil {
		observer = nopObserver{}
	}

	c := &Cursor{table: table, elements: elements, observer: observer, current: Unset}
	idx := first
	for !c.Navigable(idx) {
		idx = (idx + 1) % table.Len()
		if idx == first {
			return nil, ErrNoFocusable
		}
	}
	c.focus(idx)
	return c, nil
}

// Current returns the focused index.
func (c *Cursor) Current() int {
	return c.current
}

// Navigable reports whether element i may take focus: it exists, is enabled
// and visible, and is an active cell of its grid.
func (c *Cursor) Navigable(i int) bool {
	return c.elements.Navigable(i) && c.table.Active(i)
}

// Move moves focus in direction d. When there is no neighbor in that
// direction moved is false and err is nil; focus stays put. Elements that
// cannot take focus are skipped by following the same direction from them.
// If the skip chain does not settle within one lookup per element Move
// returns ErrCycleDetected, again leaving focus unchanged.
func (c *Cursor) Move(d Direction) (to int, moved bool, err error) {
	next, ok, err := c.Peek(d)
	if err != nil || !ok {
		return c.current, false, err
	}
	c.focus(next)
	return next, true, nil
}

// Peek resolves the target of Move(d) without moving.
func (c *Cursor) Peek(d Direction) (int, bool, error) {
	candidate, err := c.table.Neighbor(c.current, d)
	if err != nil {
		return Unset, false, err
	}

	limit := c.table.Len()
	for steps := 0; candidate != Unset; steps++ {
		if candidate < 0 || candidate >= limit {
			return Unset, false, fmt.Errorf("%w: %s neighbor %d", ErrOutOfRange, d, candidate)
		}
		if candidate == c.current {
			return Unset, false, nil
		}
		if c.Navigable(candidate) {
			return candidate, true, nil
		}
		if steps >= limit {
			return Unset, false, fmt.Errorf("%w: %s from %d", ErrCycleDetected, d, c.current)
		}
		candidate = c.table.entries[candidate].Neighbor(d)
	}
	return Unset, false, nil
}

// SetCurrent focuses element i directly.
func (c *Cursor) SetCurrent(i int) error {
	if i < 0 || i >= c.table.Len() {
		return fmt.Errorf("%w: %d (table has %d entries)", ErrOutOfRange, i, c.table.Len())
	}
	if !c.Navigable(i) {
		return fmt.Errorf("%w: %d", ErrNotNavigable, i)
	}
	if i != c.current {
		c.focus(i)
	}
	return nil
}

// next returns the first navigable element after from, wrapping around, or
// Unset if from is the only one.
func (c *Cursor) next(from int) int {
	n := c.table.Len()
	for step := 1; step < n; step++ {
		idx := (from + step) % n
		if c.Navigable(idx) {
			return idx
		}
	}
	return Unset
}

func (c *Cursor) focus(to int) {
	from := c.current
	c.current = to
	c.observer.OnFocusChanged(from, to)
}
