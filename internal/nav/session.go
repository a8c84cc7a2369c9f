package nav

import (
	"fmt"

	"github.com/chatter/uinav/internal/rebind"
)

// Session owns the navigation state of one screen: its table, its elements
// and the cursor over them.
type Session struct {
	table    *Table
	elements Elements
	cursor   *Cursor
	observer Observer
}

// NewSession validates the table against the elements and places the cursor
// on the first navigable element at or after first.
func NewSession(table *Table, elements Elements, first int, observer Observer) (*Session, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	for i := range elements {
		if r := elements[i].Range; r != nil {
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}
	}
	if observer == nil {
		observer = nopObserver{}
	}
	cursor, err := NewCursor(table, elements, first, observer)
	if err != nil {
		return nil, err
	}
	return &Session{table: table, elements: elements, cursor: cursor, observer: observer}, nil
}

func (s *Session) Table() *Table { return s.table }

func (s *Session) Len() int { return len(s.elements) }

// Current returns the focused element index.
func (s *Session) Current() int {
	return s.cursor.Current()
}

// Element returns a copy of element i.
func (s *Session) Element(i int) (Element, error) {
	if i < 0 || i >= len(s.elements) {
		return Element{}, fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	return s.elements[i], nil
}

// Navigable reports whether element i may take focus.
func (s *Session) Navigable(i int) bool {
	return s.cursor.Navigable(i)
}

// Navigate applies a direction request. Left and Right on a focused element
// with a RangeSelector step the selector instead of moving focus; changed
// reports whether the selector value moved. For all other cases it behaves
// like Cursor.Move and changed reports whether focus moved.
func (s *Session) Navigate(d Direction) (changed bool, err error) {
	cur := s.cursor.Current()
	if r := s.elements[cur].Range; r != nil && (d == DirectionLeft || d == DirectionRight) {
		delta := 1
		if d == DirectionLeft {
			delta = -1
		}
		return r.Step(delta), nil
	}
	_, moved, err := s.cursor.Move(d)
	return moved, err
}

// Select activates the focused element.
func (s *Session) Select() int {
	cur := s.cursor.Current()
	s.observer.OnSelect(cur)
	return cur
}

// Hover focuses element i directly, as a pointer would.
func (s *Session) Hover(i int) error {
	return s.cursor.SetCurrent(i)
}

// SetEnabled enables or disables element i. Disabling the focused element
// moves focus forward to the next navigable element; if there is none focus
// stays where it is.
func (s *Session) SetEnabled(i int, enabled bool) error {
	if i < 0 || i >= len(s.elements) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	s.elements[i].Enabled = enabled
	s.refocus(i)
	return nil
}

// SetVisible shows or hides element i, moving focus like SetEnabled.
func (s *Session) SetVisible(i int, visible bool) error {
	if i < 0 || i >= len(s.elements) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	s.elements[i].Visible = visible
	s.refocus(i)
	return nil
}

// Range returns the selector of element i, or nil.
func (s *Session) Range(i int) *RangeSelector {
	if i < 0 || i >= len(s.elements) {
		return nil
	}
	return s.elements[i].Range
}

// RejectRebind forwards a rebind rejection to the observer.
func (s *Session) RejectRebind(rejection *rebind.Rejection) {
	s.observer.OnRebindRejected(rejection)
}

func (s *Session) refocus(changed int) {
	if changed != s.cursor.Current() || s.cursor.Navigable(changed) {
		return
	}
	if next := s.cursor.next(changed); next != Unset {
		s.cursor.focus(next)
	}
}
