package rebind

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidSlot is returned for a slot outside the container.
	ErrInvalidSlot = errors.New("invalid binding slot")

	// ErrColumnMismatch is returned when a binding's key count differs from
	// the number of restriction columns.
	ErrColumnMismatch = errors.New("binding key count does not match columns")
)

// Options configures a Container.
type Options struct {
	// Restrictions has one entry per key column.
	Restrictions []Restriction
	Blacklist    []string
	// Whitelist, when non-empty, is the only set of keys accepted.
	Whitelist []string
	AllowSwap bool
}

// Container holds the bindings shown by one rebinding screen.
type Container struct {
	bindings []Binding
	opts     Options
}

// NewContainer copies bindings into a container. Every binding must have
// exactly one key per restriction column.
func NewContainer(bindings []Binding, opts Options) (*Container, error) {
	if len(opts.Restrictions) == 0 {
		opts.Restrictions = []Restriction{RestrictionNone}
	}
	c := &Container{opts: opts}
	if err := c.set(bindings); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) set(bindings []Binding) error {
	out := make([]Binding, len(bindings))
	for i, b := range bindings {
		if len(b.Keys) != len(c.opts.Restrictions) {
			return fmt.Errorf("%w: %s has %d keys, want %d", ErrColumnMismatch, b.Action, len(b.Keys), len(c.opts.Restrictions))
		}
		out[i] = b.clone()
	}
	c.bindings = out
	return nil
}

// KeysPerInput returns the number of key columns.
func (c *Container) KeysPerInput() int {
	return len(c.opts.Restrictions)
}

// Restriction returns the restriction of a column.
func (c *Container) Restriction(column int) Restriction {
	if column < 0 || column >= len(c.opts.Restrictions) {
		return RestrictionNone
	}
	return c.opts.Restrictions[column]
}

// AllowSwap reports whether group collisions may be resolved by swapping.
func (c *Container) AllowSwap() bool {
	return c.opts.AllowSwap
}

// Len returns the number of actions.
func (c *Container) Len() int {
	return len(c.bindings)
}

// Bindings returns a copy of every binding.
func (c *Container) Bindings() []Binding {
	out := make([]Binding, len(c.bindings))
	for i, b := range c.bindings {
		out[i] = b.clone()
	}
	return out
}

// Binding returns a copy of one action's binding.
func (c *Container) Binding(action int) (Binding, error) {
	if action < 0 || action >= len(c.bindings) {
		return Binding{}, fmt.Errorf("%w: action %d", ErrInvalidSlot, action)
	}
	return c.bindings[action].clone(), nil
}

// Key returns the key in slot.
func (c *Container) Key(slot Slot) (string, error) {
	if err := c.checkSlot(slot); err != nil {
		return "", err
	}
	return c.bindings[slot.Action].Keys[slot.Column], nil
}

// Slot converts a flat input-box index (action-major) into a Slot.
func (c *Container) Slot(index int) (Slot, error) {
	if index < 0 {
		return Slot{}, fmt.Errorf("%w: index %d", ErrInvalidSlot, index)
	}
	n := c.KeysPerInput()
	s := Slot{Action: index / n, Column: index % n}
	return s, c.checkSlot(s)
}

// Check decides whether key may go into slot. It returns nil when the key is
// accepted. The checks run in order: empty key, whitelist, blacklist,
// column restriction, same action, group collision.
func (c *Container) Check(slot Slot, key string) (*Rejection, error) {
	if err := c.checkSlot(slot); err != nil {
		return nil, err
	}
	reject := func(r Reason) *Rejection {
		return &Rejection{Reason: r, Key: key, Slot: slot}
	}

	switch {
	case key == "":
		return reject(BlacklistedKey), nil
	case len(c.opts.Whitelist) > 0 && !slices.Contains(c.opts.Whitelist, key):
		return reject(NotWhitelisted), nil
	case slices.Contains(c.opts.Blacklist, key):
		return reject(BlacklistedKey), nil
	case !RespectsRestriction(key, c.opts.Restrictions[slot.Column]):
		return reject(RestrictionMismatch), nil
	}

	target := c.bindings[slot.Action]
	if col := target.HasKey(key); col >= 0 {
		r := reject(UsedBySameInput)
		r.Conflict = &Slot{Action: slot.Action, Column: col}
		return r, nil
	}

	others := make([]Binding, 0, len(c.bindings)-1)
	actions := make([]int, 0, len(c.bindings)-1)
	for i, b := range c.bindings {
		if i != slot.Action {
			others = append(others, b)
			actions = append(actions, i)
		}
	}
	if ok, i := CanBind(key, target.Groups, others); !ok {
		r := reject(UsedBySameGroup)
		r.Conflict = &Slot{Action: actions[i], Column: others[i].HasKey(key)}
		return r, nil
	}
	return nil, nil
}

// CanBind reports whether key is free for slot with respect to the other
// actions' bindings and their input groups.
func (c *Container) CanBind(slot Slot, key string) (bool, error) {
	if err := c.checkSlot(slot); err != nil {
		return false, err
	}
	others := slices.Delete(c.Bindings(), slot.Action, slot.Action+1)
	ok, _ := CanBind(key, c.bindings[slot.Action].Groups, others)
	return ok, nil
}

// Assign puts key into slot without any checks.
func (c *Container) Assign(slot Slot, key string) error {
	if err := c.checkSlot(slot); err != nil {
		return err
	}
	c.bindings[slot.Action].Keys[slot.Column] = key
	return nil
}

// Swap exchanges the keys of two slots.
func (c *Container) Swap(a, b Slot) error {
	if err := c.checkSlot(a); err != nil {
		return err
	}
	if err := c.checkSlot(b); err != nil {
		return err
	}
	ka := &c.bindings[a.Action].Keys[a.Column]
	kb := &c.bindings[b.Action].Keys[b.Column]
	*ka, *kb = *kb, *ka
	return nil
}

// Reset replaces every binding with defaults.
func (c *Container) Reset(defaults []Binding) error {
	return c.set(defaults)
}

func (c *Container) checkSlot(s Slot) error {
	if s.Action < 0 || s.Action >= len(c.bindings) || s.Column < 0 || s.Column >= len(c.opts.Restrictions) {
		return fmt.Errorf("%w: action %d column %d", ErrInvalidSlot, s.Action, s.Column)
	}
	return nil
}
