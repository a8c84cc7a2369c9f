package layout

import (
	"fmt"
	"strings"
)

// ActionKind is what selecting an element does.
type ActionKind int

const (
	ActionNone ActionKind = iota
	// ActionGoto pushes the target screen.
	ActionGoto
	// ActionReturn pops the current screen.
	ActionReturn
	ActionQuit
	// ActionReset restores the default key bindings.
	ActionReset
)

// Action is a parsed element action such as "goto:options".
type Action struct {
	Kind   ActionKind
	Target string
}

func (a Action) String() string {
	switch a.Kind {
	case ActionGoto:
		return "goto:" + a.Target
	case ActionReturn:
		return "return"
	case ActionQuit:
		return "quit"
	case ActionReset:
		return "reset"
	default:
		return ""
	}
}

// ParseAction parses "", "goto:<screen>", "return", "quit" or "reset".
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if target, ok := strings.CutPrefix(s, "goto:"); ok {
		if target == "" {
			return Action{}, fmt.Errorf("%w: goto without a screen", ErrInvalidLayout)
		}
		return Action{Kind: ActionGoto, Target: target}, nil
	}
	switch s {
	case "":
		return Action{}, nil
	case "return":
		return Action{Kind: ActionReturn}, nil
	case "quit":
		return Action{Kind: ActionQuit}, nil
	case "reset":
		return Action{Kind: ActionReset}, nil
	default:
		return Action{}, fmt.Errorf("%w: unknown action %q", ErrInvalidLayout, s)
	}
}
