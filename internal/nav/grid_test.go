package nav

import (
	"errors"
	"testing"
)

// =============================================================================
// Unit Tests
// =============================================================================

func TestAppendHorizontal_NoWrap(t *testing.T) {
	table := NewTable()
	r, err := table.AppendHorizontal(3, NoNeighbors(), false)
	if err != nil {
		t.Fatalf("AppendHorizontal: %v", err)
	}
	if r != (Range{Start: 0, End: 3}) {
		t.Fatalf("range = %+v, want [0,3)", r)
	}

	want := []Entry{
		{Up: Unset, Down: Unset, Left: Unset, Right: 1},
		{Up: Unset, Down: Unset, Left: 0, Right: 2},
		{Up: Unset, Down: Unset, Left: 1, Right: Unset},
	}
	assertEntries(t, table, want)
}

func TestAppendVertical_CrossAxisFromEdge(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendHorizontal(1, NoNeighbors(), false); err != nil {
		t.Fatal(err)
	}
	edge := Entry{Up: Unset, Down: Unset, Left: 0, Right: Unset}
	if _, err := table.AppendVertical(3, edge, true); err != nil {
		t.Fatalf("AppendVertical: %v", err)
	}

	want := []Entry{
		NoNeighbors(),
		{Up: 3, Down: 2, Left: 0, Right: Unset},
		{Up: 1, Down: 3, Left: 0, Right: Unset},
		{Up: 2, Down: 1, Left: 0, Right: Unset},
	}
	assertEntries(t, table, want)
}

func TestAppendLinear_EdgeBeatsWrap(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendHorizontal(3, NoNeighbors(), false); err != nil {
		t.Fatal(err)
	}
	edge := Entry{Up: Unset, Down: Unset, Left: 0, Right: Unset}
	if _, err := table.AppendHorizontal(2, edge, true); err != nil {
		t.Fatal(err)
	}

	first, _ := table.Entry(3)
	last, _ := table.Entry(4)
	if first.Left != 0 {
		t.Errorf("first.Left = %d, want edge override 0", first.Left)
	}
	if last.Right != 3 {
		t.Errorf("last.Right = %d, want wrap to 3", last.Right)
	}
}

func TestAppendGrid2D_Wrap2x2(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendGrid2D(2, 2, NoNeighbors(), true, 0); err != nil {
		t.Fatalf("AppendGrid2D: %v", err)
	}

	want := []Entry{
		{Up: 2, Down: 2, Left: 1, Right: 1},
		{Up: 3, Down: 3, Left: 0, Right: 0},
		{Up: 0, Down: 0, Left: 3, Right: 3},
		{Up: 1, Down: 1, Left: 2, Right: 2},
	}
	assertEntries(t, table, want)
}

func TestAppendGrid2D_WrapOffsetByStart(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendHorizontal(2, NoNeighbors(), false); err != nil {
		t.Fatal(err)
	}
	r, err := table.AppendGrid2D(2, 2, NoNeighbors(), true, 0)
	if err != nil {
		t.Fatalf("AppendGrid2D: %v", err)
	}
	if r.Start != 2 {
		t.Fatalf("range start = %d, want 2", r.Start)
	}

	e, _ := table.Entry(2)
	want := Entry{Up: 4, Down: 4, Left: 3, Right: 3}
	if e != want {
		t.Errorf("entry 2 = %+v, want %+v", e, want)
	}
	e, _ = table.Entry(5)
	want = Entry{Up: 3, Down: 3, Left: 4, Right: 4}
	if e != want {
		t.Errorf("entry 5 = %+v, want %+v", e, want)
	}
}

func TestAppendGrid2D_EdgeWithoutWrap(t *testing.T) {
	table := NewTable()
	edge := Entry{Up: 7, Down: 8, Left: Unset, Right: 9}
	if _, err := table.AppendGrid2D(3, 2, edge, false, 0); err != nil {
		t.Fatal(err)
	}

	e, _ := table.Entry(0)
	if e.Up != 7 || e.Left != Unset || e.Right != 1 || e.Down != 3 {
		t.Errorf("entry 0 = %+v", e)
	}
	e, _ = table.Entry(5)
	if e.Down != 8 || e.Right != 9 || e.Up != 2 || e.Left != 4 {
		t.Errorf("entry 5 = %+v", e)
	}
	if err := table.Validate(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Validate() = %v, want ErrOutOfRange for dangling edge", err)
	}
}

func TestAppendGrid2D_Partial(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendGrid2D(2, 2, NoNeighbors(), false, 3); err != nil {
		t.Fatal(err)
	}
	if table.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", table.Len())
	}
	for i, want := range []bool{true, true, true, false} {
		if got := table.Active(i); got != want {
			t.Errorf("Active(%d) = %v, want %v", i, got, want)
		}
	}
	g, pos, ok := table.GridOf(3)
	if !ok || pos != 3 || g.Active != 3 || g.Len() != 4 {
		t.Errorf("GridOf(3) = %+v, %d, %v", g, pos, ok)
	}
}

func TestAppend_Errors(t *testing.T) {
	tests := []struct {
		name   string
		append func(*Table) error
		want   error
	}{
		{"zero count", func(tb *Table) error {
			_, err := tb.AppendHorizontal(0, NoNeighbors(), false)
			return err
		}, ErrInvalidDimension},
		{"negative count", func(tb *Table) error {
			_, err := tb.AppendVertical(-2, NoNeighbors(), true)
			return err
		}, ErrInvalidDimension},
		{"2D kind through linear", func(tb *Table) error {
			_, err := tb.AppendLinear(Grid2D, 3, NoNeighbors(), false)
			return err
		}, ErrInvalidDimension},
		{"zero dimX", func(tb *Table) error {
			_, err := tb.AppendGrid2D(0, 2, NoNeighbors(), false, 0)
			return err
		}, ErrInvalidDimension},
		{"zero dimY", func(tb *Table) error {
			_, err := tb.AppendGrid2D(2, 0, NoNeighbors(), false, 0)
			return err
		}, ErrInvalidDimension},
		{"wrap partial", func(tb *Table) error {
			_, err := tb.AppendGrid2D(3, 2, NoNeighbors(), true, 4)
			return err
		}, ErrUnsupportedGrid},
		{"negative edge", func(tb *Table) error {
			_, err := tb.AppendHorizontal(2, Entry{Up: -4, Down: Unset, Left: Unset, Right: Unset}, false)
			return err
		}, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable()
			err := tt.append(table)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if table.Len() != 0 || len(table.Grids()) != 0 {
				t.Errorf("failed append mutated the table: len=%d grids=%d", table.Len(), len(table.Grids()))
			}
		})
	}
}

func TestTable_EntryOutOfRange(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendHorizontal(2, NoNeighbors(), false); err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{-1, 2, 10} {
		if _, err := table.Entry(i); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Entry(%d) err = %v, want ErrOutOfRange", i, err)
		}
		if table.Active(i) {
			t.Errorf("Active(%d) = true for missing entry", i)
		}
	}
}

func TestTable_Grids(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendVertical(2, NoNeighbors(), false); err != nil {
		t.Fatal(err)
	}
	if _, err := table.AppendGrid2D(3, 1, NoNeighbors(), false, 0); err != nil {
		t.Fatal(err)
	}

	grids := table.Grids()
	if len(grids) != 2 {
		t.Fatalf("len(Grids()) = %d, want 2", len(grids))
	}
	if grids[0].Kind != GridVertical || grids[0].Len() != 2 || grids[0].Last() != 1 {
		t.Errorf("grid 0 = %+v", grids[0])
	}
	if grids[1].Kind != Grid2D || grids[1].Start != 2 || grids[1].Last() != 4 {
		t.Errorf("grid 1 = %+v", grids[1])
	}
	if _, _, ok := table.GridOf(5); ok {
		t.Error("GridOf(5) found a grid past the end")
	}

	grids[0].Start = 99
	if table.Grids()[0].Start != 0 {
		t.Error("Grids() exposed internal state")
	}
}

func TestParseGridKind(t *testing.T) {
	tests := []struct {
		in      string
		want    GridKind
		wantErr bool
	}{
		{"horizontal", GridHorizontal, false},
		{"Vertical", GridVertical, false},
		{" grid2d ", Grid2D, false},
		{"2d", Grid2D, false},
		{"diagonal", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGridKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func assertEntries(t *testing.T, table *Table, want []Entry) {
	t.Helper()
	if table.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", table.Len(), len(want))
	}
	for i, w := range want {
		got, err := table.Entry(i)
		if err != nil {
			t.Fatalf("Entry(%d): %v", i, err)
		}
		if got != w {
			t.Errorf("entry %d = %+v, want %+v", i, got, w)
		}
	}
}
