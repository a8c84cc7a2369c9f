package nav

import (
	"errors"
	"testing"

	"github.com/chatter/uinav/internal/rebind"
)

type focusChange struct{ from, to int }

type recordingObserver struct {
	focus    []focusChange
	selected []int
	rejected []*rebind.Rejection
}

func (r *recordingObserver) OnFocusChanged(from, to int) {
	r.focus = append(r.focus, focusChange{from, to})
}

func (r *recordingObserver) OnSelect(index int) {
	r.selected = append(r.selected, index)
}

func (r *recordingObserver) OnRebindRejected(rejection *rebind.Rejection) {
	r.rejected = append(r.rejected, rejection)
}

func buttons(n int) Elements {
	es := make(Elements, n)
	for i := range es {
		es[i] = NewElement(KindButton)
	}
	return es
}

func horizontal(t *testing.T, n int, wrap bool) *Table {
	t.Helper()
	table := NewTable()
	if _, err := table.AppendHorizontal(n, NoNeighbors(), wrap); err != nil {
		t.Fatalf("AppendHorizontal: %v", err)
	}
	return table
}

// =============================================================================
// Unit Tests
// =============================================================================

func TestCursor_Horizontal3x1(t *testing.T) {
	c, err := NewCursor(horizontal(t, 3, false), buttons(3), 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, moved, err := c.Move(DirectionLeft); moved || err != nil {
		t.Fatalf("Left from 0: moved=%v err=%v, want no target", moved, err)
	}
	for _, want := range []int{1, 2} {
		to, moved, err := c.Move(DirectionRight)
		if err != nil || !moved || to != want {
			t.Fatalf("Right: to=%d moved=%v err=%v, want %d", to, moved, err, want)
		}
	}
	to, moved, err := c.Move(DirectionRight)
	if moved || err != nil || to != 2 {
		t.Fatalf("Right from 2: to=%d moved=%v err=%v, want no target", to, moved, err)
	}
	if c.Current() != 2 {
		t.Errorf("Current() = %d, want 2", c.Current())
	}
}

func TestCursor_Grid2DWrap(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendGrid2D(2, 2, NoNeighbors(), true, 0); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		dir  Direction
		want int
	}{
		{DirectionUp, 2},
		{DirectionLeft, 1},
		{DirectionDown, 2},
		{DirectionRight, 1},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			c, err := NewCursor(table, buttons(4), 0, nil)
			if err != nil {
				t.Fatal(err)
			}
			to, moved, err := c.Move(tt.dir)
			if err != nil || !moved || to != tt.want {
				t.Errorf("Move(%s) from 0 = %d, %v, %v; want %d", tt.dir, to, moved, err, tt.want)
			}
		})
	}
}

func TestCursor_SkipsDisabled(t *testing.T) {
	es := buttons(3)
	es[1].Enabled = false
	c, err := NewCursor(horizontal(t, 3, false), es, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	to, moved, err := c.Move(DirectionRight)
	if err != nil || !moved || to != 2 {
		t.Fatalf("Right from 0 = %d, %v, %v; want 2", to, moved, err)
	}
}

func TestCursor_SkipsHiddenAndInactive(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendGrid2D(2, 3, NoNeighbors(), false, 5); err != nil {
		t.Fatal(err)
	}
	es := buttons(6)
	es[3].Visible = false

	c, err := NewCursor(table, es, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	// 1 -> 3 (hidden) -> 5 (inactive) -> edge.
	to, moved, err := c.Move(DirectionDown)
	if moved || err != nil || to != 1 {
		t.Fatalf("Down from 1 = %d, %v, %v; want no target", to, moved, err)
	}
	if c.Navigable(5) {
		t.Error("inactive cell reported navigable")
	}
}

func TestCursor_SkipBackToStartIsNoTarget(t *testing.T) {
	es := buttons(3)
	es[1].Enabled = false
	es[2].Visible = false
	c, err := NewCursor(horizontal(t, 3, true), es, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	to, moved, err := c.Move(DirectionRight)
	if moved || err != nil || to != 0 {
		t.Fatalf("Right = %d, %v, %v; want no target", to, moved, err)
	}
}

func TestCursor_CycleDetected(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendHorizontal(1, Entry{Up: Unset, Down: Unset, Left: Unset, Right: 1}, false); err != nil {
		t.Fatal(err)
	}
	if _, err := table.AppendHorizontal(2, NoNeighbors(), true); err != nil {
		t.Fatal(err)
	}
	es := buttons(3)
	es[1].Enabled = false
	es[2].Enabled = false

	obs := &recordingObserver{}
	c, err := NewCursor(table, es, 0, obs)
	if err != nil {
		t.Fatal(err)
	}
	to, moved, err := c.Move(DirectionRight)
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("err = %v, want ErrCycleDetected", err)
	}
	if moved || to != 0 || c.Current() != 0 {
		t.Errorf("cursor moved on cycle: to=%d moved=%v current=%d", to, moved, c.Current())
	}
	if len(obs.focus) != 1 {
		t.Errorf("observer saw %d focus changes, want only the initial one", len(obs.focus))
	}
}

func TestNewCursor_InitialFocus(t *testing.T) {
	tests := []struct {
		name     string
		disabled []int
		first    int
		want     int
		wantErr  error
	}{
		{"first navigable", nil, 1, 1, nil},
		{"scan forward", []int{0, 1}, 0, 2, nil},
		{"scan wraps", []int{2, 3}, 2, 0, nil},
		{"none navigable", []int{0, 1, 2, 3}, 0, 0, ErrNoFocusable},
		{"first out of range", nil, 4, 0, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			es := buttons(4)
			for _, i := range tt.disabled {
				es[i].Enabled = false
			}
			obs := &recordingObserver{}
			c, err := NewCursor(horizontal(t, 4, false), es, tt.first, obs)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if c.Current() != tt.want {
				t.Errorf("Current() = %d, want %d", c.Current(), tt.want)
			}
			if len(obs.focus) != 1 || obs.focus[0] != (focusChange{Unset, tt.want}) {
				t.Errorf("focus notifications = %v", obs.focus)
			}
		})
	}
}

func TestNewCursor_SizeMismatch(t *testing.T) {
	_, err := NewCursor(horizontal(t, 3, false), buttons(2), 0, nil)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("err = %v, want ErrSizeMismatch", err)
	}
}

func TestCursor_SetCurrent(t *testing.T) {
	es := buttons(3)
	es[2].Enabled = false
	obs := &recordingObserver{}
	c, err := NewCursor(horizontal(t, 3, false), es, 0, obs)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.SetCurrent(1); err != nil {
		t.Fatalf("SetCurrent(1): %v", err)
	}
	if err := c.SetCurrent(1); err != nil {
		t.Fatalf("SetCurrent(1) again: %v", err)
	}
	if err := c.SetCurrent(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetCurrent(3) = %v, want ErrOutOfRange", err)
	}
	if err := c.SetCurrent(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetCurrent(-1) = %v, want ErrOutOfRange", err)
	}
	if err := c.SetCurrent(2); !errors.Is(err, ErrNotNavigable) {
		t.Errorf("SetCurrent(2) = %v, want ErrNotNavigable", err)
	}
	if c.Current() != 1 {
		t.Errorf("Current() = %d, want 1", c.Current())
	}

	want := []focusChange{{Unset, 0}, {0, 1}}
	if len(obs.focus) != len(want) {
		t.Fatalf("focus notifications = %v, want %v", obs.focus, want)
	}
	for i := range want {
		if obs.focus[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, obs.focus[i], want[i])
		}
	}
}

func TestDirection_Opposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%s: opposite of opposite is %s", d, d.Opposite().Opposite())
		}
		parsed, err := ParseDirection(d.String())
		if err != nil || parsed != d {
			t.Errorf("ParseDirection(%q) = %s, %v", d.String(), parsed, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection(sideways) should fail")
	}
}
