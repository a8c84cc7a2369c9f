package ui

import (
	"github.com/chatter/uinav/internal/layout"
	"github.com/chatter/uinav/internal/nav"
	"github.com/chatter/uinav/internal/rebind"
)

const (
	unboundText  = "-"
	awaitingText = "press a key"
	swapText     = "swap?"
)

// Rebinding describes a rebind in progress for drawing.
type Rebinding struct {
	Slot rebind.Slot
	// Swap is true while a swap answer is pending.
	Swap bool
}

// ViewOf turns a built screen into a ScreenView. inputs supplies the keys
// shown in input boxes; rebinding marks the slot being rebound, if any.
func ViewOf(s *layout.Screen, inputs *rebind.Container, rebinding *Rebinding) ScreenView {
	v := ScreenView{
		Title: s.Title,
		Grids: s.Session.Table().Grids(),
		Cells: make([]Cell, len(s.Items)),
	}
	if v.Title == "" {
		v.Title = s.Name
	}
	current := s.Session.Current()

	for i, item := range s.Items {
		elem, _ := s.Session.Element(i)
		c := Cell{Text: item.Label}

		switch item.Kind {
		case nav.KindRange:
			if r := s.Session.Range(i); r != nil {
				c.Text = item.Label + " ‹ " + r.Text() + " ›"
			}
		case nav.KindInputBox:
			c.Text = unboundText
			if inputs != nil {
				if k, err := inputs.Key(item.Slot); err == nil && k != "" {
					c.Text = k
				}
			}
			if item.Slot.Column == 0 {
				c.RowLabel = item.Label
			}
		}

		switch {
		case item.Kind == nav.KindPlaceholder || !elem.Visible:
			c.State = CellBlank
		case item.Kind == nav.KindInputBox && rebinding != nil && rebinding.Slot == item.Slot:
			c.State = CellAwaiting
			c.Text = awaitingText
			if rebinding.Swap {
				c.Text = swapText
			}
		case !elem.Enabled:
			c.State = CellDisabled
		case i == current:
			c.State = CellFocused
		}
		v.Cells[i] = c
	}
	return v
}
