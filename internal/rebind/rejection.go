package rebind

import (
	"errors"
	"fmt"
)

// ErrRejected matches every *Rejection with errors.Is.
var ErrRejected = errors.New("rebind rejected")

// Reason says why a proposed key was refused.
type Reason int

const (
	ReasonNone Reason = iota
	BlacklistedKey
	NotWhitelisted
	RestrictionMismatch
	UsedBySameInput
	UsedBySameGroup
	SwapRejected
)

func (r Reason) String() string {
	switch r {
	case BlacklistedKey:
		return "key is blacklisted"
	case NotWhitelisted:
		return "key is not whitelisted"
	case RestrictionMismatch:
		return "key does not match the column's device restriction"
	case UsedBySameInput:
		return "key is already bound to this action"
	case UsedBySameGroup:
		return "key is already bound to an action in the same group"
	case SwapRejected:
		return "swap declined"
	default:
		return "none"
	}
}

// Slot addresses one key column of one action.
type Slot struct {
	Action int
	Column int
}

// Rejection is a refused rebind. Conflict is set when another binding
// already holds the key.
type Rejection struct {
	Reason   Reason
	Key      string
	Slot     Slot
	Conflict *Slot
}

func (r *Rejection) Error() string {
	if r.Key == "" {
		return fmt.Sprintf("rebind %d/%d: %s", r.Slot.Action, r.Slot.Column, r.Reason)
	}
	return fmt.Sprintf("rebind %d/%d to %q: %s", r.Slot.Action, r.Slot.Column, r.Key, r.Reason)
}

func (r *Rejection) Is(target error) bool {
	return target == ErrRejected
}
