package rebind

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNotAwaiting is returned when a key or swap answer arrives in a state
	// that does not expect one.
	ErrNotAwaiting = errors.New("rebinder is not awaiting input")

	// ErrBusy is returned by Begin while another rebind is in progress.
	ErrBusy = errors.New("rebind already in progress")
)

// State is the rebind flow state.
type State int

const (
	StateIdle State = iota
	StateAwaitingKey
	StateAwaitingSwap
)

func (s State) String() string {
	switch s {
	case StateAwaitingKey:
		return "awaiting key"
	case StateAwaitingSwap:
		return "awaiting swap"
	default:
		return "idle"
	}
}

// Outcome is the result of a step of the rebind flow.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAccepted
	OutcomeRejected
	OutcomeCancelled
	OutcomeSwapPending
	OutcomeSwapped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeSwapPending:
		return "swap pending"
	case OutcomeSwapped:
		return "swapped"
	default:
		return "none"
	}
}

// Rebinder runs the rebind flow over a container:
//
//	Idle -> AwaitingKey -> Accepted | Rejected | Cancelled -> Idle
//	AwaitingKey -> AwaitingSwap -> Swapped | Rejected -> Idle
//
// Rejections are returned as *Rejection errors. The container is only
// modified on Accepted and Swapped.
type Rebinder struct {
	container  *Container
	cancelKeys []string

	state    State
	slot     Slot
	pending  string
	conflict Slot
}

// NewRebinder returns an idle rebinder. A key in cancelKeys aborts a rebind
// instead of being bound.
func NewRebinder(c *Container, cancelKeys []string) *Rebinder {
	return &Rebinder{container: c, cancelKeys: slices.Clone(cancelKeys)}
}

func (r *Rebinder) State() State { return r.state }

// Slot returns the slot being rebound. It is meaningful outside StateIdle.
func (r *Rebinder) Slot() Slot { return r.slot }

// PendingSwap returns the proposed key and the slot currently holding it
// while in StateAwaitingSwap.
func (r *Rebinder) PendingSwap() (key string, conflict Slot, ok bool) {
	if r.state != StateAwaitingSwap {
		return "", Slot{}, false
	}
	return r.pending, r.conflict, true
}

// Begin starts rebinding slot.
func (r *Rebinder) Begin(slot Slot) error {
	if r.state != StateIdle {
		return fmt.Errorf("%w: %s", ErrBusy, r.state)
	}
	if err := r.container.checkSlot(slot); err != nil {
		return err
	}
	r.slot = slot
	r.state = StateAwaitingKey
	return nil
}

// Submit offers key for the slot being rebound.
func (r *Rebinder) Submit(key string) (Outcome, error) {
	if r.state != StateAwaitingKey {
		return OutcomeNone, fmt.Errorf("%w: %s", ErrNotAwaiting, r.state)
	}
	if slices.Contains(r.cancelKeys, key) {
		r.reset()
		return OutcomeCancelled, nil
	}

	rejection, err := r.container.Check(r.slot, key)
	if err != nil {
		r.reset()
		return OutcomeNone, err
	}
	if rejection == nil {
		if err := r.container.Assign(r.slot, key); err != nil {
			r.reset()
			return OutcomeNone, err
		}
		r.reset()
		return OutcomeAccepted, nil
	}

	current, _ := r.container.Key(r.slot)
	if rejection.Reason == UsedBySameGroup && r.container.AllowSwap() && current != "" {
		r.pending = key
		r.conflict = *rejection.Conflict
		r.state = StateAwaitingSwap
		return OutcomeSwapPending, nil
	}
	r.reset()
	return OutcomeRejected, rejection
}

// ConfirmSwap answers a pending swap. Accepting moves the proposed key into
// the slot being rebound and the slot's old key into the conflicting slot.
func (r *Rebinder) ConfirmSwap(accept bool) (Outcome, error) {
	if r.state != StateAwaitingSwap {
		return OutcomeNone, fmt.Errorf("%w: %s", ErrNotAwaiting, r.state)
	}
	slot, conflict, key := r.slot, r.conflict, r.pending
	r.reset()

	if !accept {
		c := conflict
		return OutcomeRejected, &Rejection{Reason: SwapRejected, Key: key, Slot: slot, Conflict: &c}
	}
	if err := r.container.Swap(slot, conflict); err != nil {
		return OutcomeNone, err
	}
	return OutcomeSwapped, nil
}

// Cancel abandons any rebind in progress.
func (r *Rebinder) Cancel() {
	r.reset()
}

func (r *Rebinder) reset() {
	r.state = StateIdle
	r.pending = ""
	r.conflict = Slot{}
}
