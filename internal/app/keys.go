package app

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/chatter/uinav/internal/bindings"
	"github.com/chatter/uinav/internal/rebind"
	"github.com/chatter/uinav/internal/ui/help"
)

// Action is a function that executes a keybinding's behavior
type Action func(m *Model) (Model, tea.Cmd)

// ActionBinding combines a display binding with its action for dispatch.
type ActionBinding struct {
	help.HelpBinding        // embedded for display (Binding, Category, Order)
	Action           Action // nil = display-only (no action)
}

// keyName is a key in the bindings file spelling. Mouse buttons are
// "mouse-<button>", wheel motion "wheel-<direction>".
type keyName string

func (k keyName) String() string { return string(k) }

func mouseKey(m tea.Mouse) keyName {
	return keyName("mouse-" + m.String())
}

func wheelKey(m tea.Mouse) keyName {
	switch m.Button {
	case tea.MouseWheelUp:
		return "wheel-up"
	case tea.MouseWheelDown:
		return "wheel-down"
	case tea.MouseWheelLeft:
		return "wheel-left"
	case tea.MouseWheelRight:
		return "wheel-right"
	}
	return mouseKey(m)
}

// dispatchKey iterates through bindings and executes the first matching action.
// Returns nil, nil if no binding matches.
func dispatchKey(m *Model, k fmt.Stringer, bindings []ActionBinding) (*Model, tea.Cmd) {
	for _, ab := range bindings {
		if key.Matches(k, ab.Binding) && ab.Action != nil {
			newModel, cmd := ab.Action(m)
			return &newModel, cmd
		}
	}
	return nil, nil
}

// ToHelpBindings extracts display-only bindings from action bindings.
func ToHelpBindings(abs []ActionBinding) []help.HelpBinding {
	result := make([]help.HelpBinding, len(abs))
	for i, ab := range abs {
		result[i] = ab.HelpBinding
	}
	return result
}

// KeyMap holds one key.Binding per front-end action, built from the
// persisted bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Accept key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// NewKeyMap builds the key map from bindings. Every non-empty key of an
// action's columns triggers it; actions without keys are disabled.
func NewKeyMap(bs []rebind.Binding) KeyMap {
	byAction := make(map[string]rebind.Binding, len(bs))
	for _, b := range bs {
		byAction[b.Action] = b
	}
	build := func(action, desc string) key.Binding {
		b := byAction[action]
		var keys []string
		for _, k := range b.Keys {
			if k != "" {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			return key.NewBinding(key.WithDisabled(), key.WithHelp("", desc))
		}
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKeys(keys), desc))
	}

	return KeyMap{
		Up:     build(bindings.ActionUp, "up"),
		Down:   build(bindings.ActionDown, "down"),
		Left:   build(bindings.ActionLeft, "left"),
		Right:  build(bindings.ActionRight, "right"),
		Accept: build(bindings.ActionAccept, "select"),
		Back:   build(bindings.ActionBack, "back"),
		Help:   build(bindings.ActionHelp, "help"),
		Quit:   build(bindings.ActionQuit, "quit"),
	}
}

// helpKeys joins the keys a terminal can produce for display. Gamepad keys
// are left out.
func helpKeys(keys []string) string {
	var shown []string
	for _, k := range keys {
		if rebind.Classify(k) == rebind.DeviceGamepad {
			continue
		}
		shown = append(shown, keySymbol(k))
	}
	if len(shown) == 0 {
		return keys[0]
	}
	return strings.Join(shown, "/")
}

func keySymbol(k string) string {
	switch k {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	case "enter":
		return "⏎"
	case "esc":
		return "⎋"
	default:
		return k
	}
}
