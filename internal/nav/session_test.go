package nav

import (
	"errors"
	"testing"

	"github.com/chatter/uinav/internal/rebind"
)

func newSession(t *testing.T, es Elements, obs Observer) *Session {
	t.Helper()
	s, err := NewSession(horizontal(t, len(es), false), es, 0, obs)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// =============================================================================
// Unit Tests
// =============================================================================

func TestSession_NavigateStepsRange(t *testing.T) {
	es := buttons(3)
	es[1] = NewElement(KindRange)
	es[1].Range = &RangeSelector{Options: []string{"a", "b"}}
	s := newSession(t, es, nil)

	if changed, err := s.Navigate(DirectionRight); err != nil || !changed || s.Current() != 1 {
		t.Fatalf("Right = %v, %v; current %d", changed, err, s.Current())
	}
	if changed, err := s.Navigate(DirectionRight); err != nil || !changed {
		t.Fatalf("Right on range = %v, %v", changed, err)
	}
	if s.Current() != 1 || s.Range(1).Text() != "b" {
		t.Errorf("current %d, text %q; want 1, b", s.Current(), s.Range(1).Text())
	}
	if changed, _ := s.Navigate(DirectionRight); changed {
		t.Error("clamped range reported a change")
	}
}

func TestSession_RejectsInvalidRange(t *testing.T) {
	es := buttons(2)
	es[0].Range = &RangeSelector{Min: 5, Max: 1, Interval: 1}
	_, err := NewSession(horizontal(t, 2, false), es, 0, nil)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestSession_RejectsDanglingNeighbor(t *testing.T) {
	table := NewTable()
	if _, err := table.AppendHorizontal(2, Entry{Up: 9, Down: Unset, Left: Unset, Right: Unset}, false); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSession(table, buttons(2), 0, nil); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
}

func TestSession_SelectAndHover(t *testing.T) {
	obs := &recordingObserver{}
	s := newSession(t, buttons(3), obs)

	if err := s.Hover(2); err != nil {
		t.Fatalf("Hover(2): %v", err)
	}
	if got := s.Select(); got != 2 {
		t.Errorf("Select() = %d, want 2", got)
	}
	if len(obs.selected) != 1 || obs.selected[0] != 2 {
		t.Errorf("selected = %v, want [2]", obs.selected)
	}
	if err := s.Hover(7); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Hover(7) = %v, want ErrOutOfRange", err)
	}
}

func TestSession_DisableFocusedMovesForward(t *testing.T) {
	obs := &recordingObserver{}
	s := newSession(t, buttons(3), obs)
	if err := s.Hover(2); err != nil {
		t.Fatal(err)
	}

	if err := s.SetEnabled(2, false); err != nil {
		t.Fatal(err)
	}
	if s.Current() != 0 {
		t.Errorf("Current() = %d, want 0 after disabling 2", s.Current())
	}
	if err := s.SetVisible(0, false); err != nil {
		t.Fatal(err)
	}
	if s.Current() != 1 {
		t.Errorf("Current() = %d, want 1 after hiding 0", s.Current())
	}
	if err := s.SetEnabled(2, true); err != nil {
		t.Fatal(err)
	}
	if s.Current() != 1 {
		t.Errorf("enabling another element moved focus to %d", s.Current())
	}
	if changed, err := s.Navigate(DirectionRight); err != nil || !changed || s.Current() != 2 {
		t.Errorf("Right after re-enable = %v, %v; current %d", changed, err, s.Current())
	}
	if err := s.SetEnabled(5, true); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetEnabled(5) = %v, want ErrOutOfRange", err)
	}
}

func TestSession_RejectRebind(t *testing.T) {
	obs := &recordingObserver{}
	s := newSession(t, buttons(1), obs)

	s.RejectRebind(&rebind.Rejection{Reason: rebind.UsedBySameGroup, Key: "space"})
	if len(obs.rejected) != 1 || obs.rejected[0].Reason != rebind.UsedBySameGroup {
		t.Errorf("rejected = %v", obs.rejected)
	}
}
