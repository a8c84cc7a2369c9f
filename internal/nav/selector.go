package nav

import (
	"fmt"
	"strconv"
)

// RangeSelector is the value capability of option boxes and sliders. With
// Options set it steps through the labels; otherwise it steps through
// Min, Min+Interval, ... up to Max.
type RangeSelector struct {
	Min      int
	Max      int
	Interval int
	Loop     bool
	Options  []string
	// Index is the position of the current value, 0 <= Index < Count().
	Index int
}

// Validate checks that the selector has at least two values.
func (r *RangeSelector) Validate() error {
	if len(r.Options) > 0 {
		if len(r.Options) < 2 {
			return fmt.Errorf("%w: %d option(s)", ErrInvalidRange, len(r.Options))
		}
	} else {
		if r.Interval <= 0 {
			return fmt.Errorf("%w: interval %d", ErrInvalidRange, r.Interval)
		}
		if r.Min >= r.Max {
			return fmt.Errorf("%w: min %d >= max %d", ErrInvalidRange, r.Min, r.Max)
		}
	}
	if r.Index < 0 || r.Index >= r.Count() {
		return fmt.Errorf("%w: index %d of %d", ErrInvalidRange, r.Index, r.Count())
	}
	return nil
}

// Count returns the number of selectable values.
func (r *RangeSelector) Count() int {
	if len(r.Options) > 0 {
		return len(r.Options)
	}
	if r.Interval <= 0 || r.Max < r.Min {
		return 0
	}
	return (r.Max-r.Min)/r.Interval + 1
}

// Value returns the numeric value at Index. For option lists it is Index.
func (r *RangeSelector) Value() int {
	if len(r.Options) > 0 {
		return r.Index
	}
	return r.Min + r.Index*r.Interval
}

// Text returns the display text of the current value.
func (r *RangeSelector) Text() string {
	if len(r.Options) > 0 {
		if r.Index < 0 || r.Index >= len(r.Options) {
			return ""
		}
		return r.Options[r.Index]
	}
	return strconv.Itoa(r.Value())
}

// Step moves Index by delta. Without Loop the index clamps at both ends;
// with Loop it wraps. It reports whether the index changed.
func (r *RangeSelector) Step(delta int) bool {
	n := r.Count()
	if n == 0 || delta == 0 {
		return false
	}
	next := r.Index + delta
	if r.Loop {
		next = ((next % n) + n) % n
	} else {
		next = max(0, min(next, n-1))
	}
	if next == r.Index {
		return false
	}
	r.Index = next
	return true
}
