package nav

import (
	"fmt"
	"strings"
)

// GridKind is the shape of an appended grid.
type GridKind int

const (
	GridHorizontal GridKind = iota
	GridVertical
	Grid2D
)

func (k GridKind) String() string {
	switch k {
	case GridHorizontal:
		return "horizontal"
	case GridVertical:
		return "vertical"
	case Grid2D:
		return "grid2d"
	default:
		return fmt.Sprintf("GridKind(%d)", int(k))
	}
}

// ParseGridKind parses "horizontal", "vertical" or "grid2d".
func ParseGridKind(s string) (GridKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal":
		return GridHorizontal, nil
	case "vertical":
		return GridVertical, nil
	case "grid2d", "grid", "2d":
		return Grid2D, nil
	default:
		return 0, fmt.Errorf("unknown grid kind %q", s)
	}
}

// Grid describes a contiguous run of entries wired by one Append call.
type Grid struct {
	Kind  GridKind
	Start int
	// DimX is the run length of a horizontal grid and the column count of a
	// 2D grid. DimY is the run length of a vertical grid and the row count of
	// a 2D grid. The unused dimension of a 1D grid is 0.
	DimX int
	DimY int
	// Active is the number of navigable cells, counted from Start.
	Active int
	Wrap   bool
	Edge   Entry
}

// Len returns the number of entries the grid occupies.
func (g Grid) Len() int {
	switch g.Kind {
	case GridHorizontal:
		return g.DimX
	case GridVertical:
		return g.DimY
	default:
		return g.DimX * g.DimY
	}
}

// Last returns the index of the grid's last entry.
func (g Grid) Last() int {
	return g.Start + g.Len() - 1
}

// Contains reports whether index i belongs to the grid.
func (g Grid) Contains(i int) bool {
	return i >= g.Start && i < g.Start+g.Len()
}

// Range is a half-open span [Start, End) of table indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the span.
func (r Range) Len() int {
	return r.End - r.Start
}

// AppendHorizontal appends a horizontal run of count entries.
func (t *Table) AppendHorizontal(count int, edge Entry, wrap bool) (Range, error) {
	return t.AppendLinear(GridHorizontal, count, edge, wrap)
}

// AppendVertical appends a vertical run of count entries.
func (t *Table) AppendVertical(count int, edge Entry, wrap bool) (Range, error) {
	return t.AppendLinear(GridVertical, count, edge, wrap)
}

// AppendLinear appends count entries linked along one axis. The first and
// last entries take their outward neighbor from edge when it is set,
// otherwise from the opposite end of the run when wrap is true. Cross-axis
// neighbors come from edge for every entry of the run.
func (t *Table) AppendLinear(kind GridKind, count int, edge Entry, wrap bool) (Range, error) {
	if kind != GridHorizontal && kind != GridVertical {
		return Range{}, fmt.Errorf("%w: linear grid cannot be %s", ErrInvalidDimension, kind)
	}
	if count <= 0 {
		return Range{}, fmt.Errorf("%w: count %d", ErrInvalidDimension, count)
	}
	if err := edge.validate(-1); err != nil {
		return Range{}, fmt.Errorf("edge navigation: %w", err)
	}

	back, fwd := DirectionLeft, DirectionRight
	crossA, crossB := DirectionUp, DirectionDown
	if kind == GridVertical {
		back, fwd = DirectionUp, DirectionDown
		crossA, crossB = DirectionLeft, DirectionRight
	}

	start := len(t.entries)
	last := start + count - 1
	entries := make([]Entry, count)
	for i := range entries {
		idx := start + i
		e := NoNeighbors().
			With(crossA, edge.Neighbor(crossA)).
			With(crossB, edge.Neighbor(crossB))

		switch {
		case i > 0:
			e = e.With(back, idx-1)
		case edge.Neighbor(back) != Unset:
			e = e.With(back, edge.Neighbor(back))
		case wrap:
			e = e.With(back, last)
		}

		switch {
		case i < count-1:
			e = e.With(fwd, idx+1)
		case edge.Neighbor(fwd) != Unset:
			e = e.With(fwd, edge.Neighbor(fwd))
		case wrap:
			e = e.With(fwd, start)
		}
		entries[i] = e
	}

	g := Grid{Kind: kind, Start: start, Active: count, Wrap: wrap, Edge: edge}
	if kind == GridHorizontal {
		g.DimX = count
	} else {
		g.DimY = count
	}
	t.commit(entries, g)
	return Range{Start: start, End: start + count}, nil
}

// AppendGrid2D appends a dimX by dimY grid in row-major order. An edge of the
// grid links to the opposite edge when wrap is true, otherwise to the
// matching field of edge. activeCount limits the navigable cells to the first
// activeCount entries; values <= 0 or above dimX*dimY mean the grid is full.
// Wrapping a partially filled grid is rejected with ErrUnsupportedGrid.
func (t *Table) AppendGrid2D(dimX, dimY int, edge Entry, wrap bool, activeCount int) (Range, error) {
	if dimX <= 0 || dimY <= 0 {
		return Range{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, dimX, dimY)
	}
	if err := edge.validate(-1); err != nil {
		return Range{}, fmt.Errorf("edge navigation: %w", err)
	}
	total := dimX * dimY
	if activeCount <= 0 || activeCount > total {
		activeCount = total
	}
	if wrap && activeCount < total {
		return Range{}, fmt.Errorf("%w: %d of %d cells active", ErrUnsupportedGrid, activeCount, total)
	}

	start := len(t.entries)
	entries := make([]Entry, total)
	for i := range entries {
		row, col := i/dimX, i%dimX
		e := NoNeighbors()

		switch {
		case row > 0:
			e.Up = start + i - dimX
		case wrap:
			e.Up = start + i + dimX*(dimY-1)
		default:
			e.Up = edge.Up
		}

		switch {
		case row < dimY-1:
			e.Down = start + i + dimX
		case wrap:
			e.Down = start + i%dimX
		default:
			e.Down = edge.Down
		}

		switch {
		case col > 0:
			e.Left = start + i - 1
		case wrap:
			e.Left = start + i - 1 + dimX
		default:
			e.Left = edge.Left
		}

		switch {
		case col < dimX-1:
			e.Right = start + i + 1
		case wrap:
			e.Right = start + i + 1 - dimX
		default:
			e.Right = edge.Right
		}
		entries[i] = e
	}

	t.commit(entries, Grid{
		Kind:   Grid2D,
		Start:  start,
		DimX:   dimX,
		DimY:   dimY,
		Active: activeCount,
		Wrap:   wrap,
		Edge:   edge,
	})
	for i := start + activeCount; i < start+total; i++ {
		t.inactive[i] = true
	}
	return Range{Start: start, End: start + total}, nil
}

func (t *Table) commit(entries []Entry, g Grid) {
	if t.inactive == nil {
		t.inactive = make(map[int]bool)
	}
	t.entries = append(t.entries, entries...)
	t.grids = append(t.grids, g)
}
