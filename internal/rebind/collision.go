package rebind

import "slices"

// GlobalGroup is the input group of actions that are not isolated from any
// other action. An empty group set means GlobalGroup.
const GlobalGroup = -1

// Binding is one rebindable action and the keys bound to it, one per column.
// An empty key is an unbound slot.
type Binding struct {
	Action  string
	Display string
	Groups  []int
	Keys    []string
}

// HasKey returns the column holding key, or -1.
func (b Binding) HasKey(key string) int {
	if key == "" {
		return -1
	}
	return slices.Index(b.Keys, key)
}

func (b Binding) clone() Binding {
	b.Groups = slices.Clone(b.Groups)
	b.Keys = slices.Clone(b.Keys)
	return b
}

// GroupsCollide reports whether two actions with these group sets may not
// share a key: either side is global, or the sets intersect.
func GroupsCollide(a, b []int) bool {
	a, b = effectiveGroups(a), effectiveGroups(b)
	if slices.Contains(a, GlobalGroup) || slices.Contains(b, GlobalGroup) {
		return true
	}
	for _, g := range a {
		if slices.Contains(b, g) {
			return true
		}
	}
	return false
}

// CanBind reports whether key may be bound to an action in targetGroups,
// given the bindings of every other action. It returns the index into others
// of the first colliding action, or -1.
func CanBind(key string, targetGroups []int, others []Binding) (bool, int) {
	for i, other := range others {
		if other.HasKey(key) < 0 {
			continue
		}
		if GroupsCollide(targetGroups, other.Groups) {
			return false, i
		}
	}
	return true, -1
}

func effectiveGroups(groups []int) []int {
	if len(groups) == 0 {
		return []int{GlobalGroup}
	}
	return groups
}
