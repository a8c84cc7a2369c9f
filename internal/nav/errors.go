package nav

import "errors"

var (
	// ErrInvalidDimension is returned when a grid is requested with a
	// non-positive dimension.
	ErrInvalidDimension = errors.New("invalid grid dimension")

	// ErrOutOfRange is returned for an index outside the navigation table.
	ErrOutOfRange = errors.New("index out of range")

	// ErrCycleDetected is returned by Cursor.Move when every candidate in the
	// requested direction is disabled, hidden or inactive.
	ErrCycleDetected = errors.New("no navigable element in direction")

	// ErrUnsupportedGrid is returned when a partially filled 2D grid is asked
	// to wrap. The wrap targets of the last row are undefined in that case.
	ErrUnsupportedGrid = errors.New("unsupported grid: wrap with partial 2D grid")

	// ErrNotNavigable is returned when focus is set directly onto an element
	// that is disabled, hidden or inactive.
	ErrNotNavigable = errors.New("element is not navigable")

	// ErrNoFocusable is returned when a cursor is created over a table with no
	// navigable element.
	ErrNoFocusable = errors.New("no focusable element")

	// ErrSizeMismatch is returned when the element set and the navigation
	// table disagree on length.
	ErrSizeMismatch = errors.New("element count does not match navigation table")

	// ErrInvalidRange is returned for a malformed RangeSelector.
	ErrInvalidRange = errors.New("invalid range selector")
)
