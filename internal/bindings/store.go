// Package bindings persists the front end's key bindings as TOML and watches
// the file for external edits.
package bindings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/pelletier/go-toml/v2"

	"github.com/chatter/uinav/internal/logger"
	"github.com/chatter/uinav/internal/rebind"
)

// Front-end actions. Every bindings file is completed to hold exactly these,
// in this order.
const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionLeft   = "left"
	ActionRight  = "right"
	ActionAccept = "accept"
	ActionBack   = "back"
	ActionHelp   = "help"
	ActionQuit   = "quit"
)

// navigationGroup isolates menu actions from each other's keys while the
// application actions stay global.
const navigationGroup = 0

var (
	// ErrUnknownAction is returned for a bindings file entry that names no
	// front-end action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrDuplicateAction is returned when a bindings file lists an action twice.
	ErrDuplicateAction = errors.New("duplicate action")
)

type defaultAction struct {
	name       string
	display    string
	groups     []int
	candidates []string
}

var defaultActions = []defaultAction{
	{ActionUp, "Move up", []int{navigationGroup}, []string{"up", "w", "pad-up"}},
	{ActionDown, "Move down", []int{navigationGroup}, []string{"down", "s", "pad-down"}},
	{ActionLeft, "Move left", []int{navigationGroup}, []string{"left", "a", "pad-left"}},
	{ActionRight, "Move right", []int{navigationGroup}, []string{"right", "d", "pad-right"}},
	{ActionAccept, "Accept", []int{navigationGroup}, []string{"enter", "space", "mouse-left", "pad-a"}},
	{ActionBack, "Back", []int{navigationGroup}, []string{"backspace", "mouse-right", "pad-b"}},
	{ActionHelp, "Toggle help", nil, []string{"?", "pad-select"}},
	{ActionQuit, "Quit", nil, []string{"q", "ctrl+c", "pad-start"}},
}

// Defaults returns the built-in bindings with one key column per
// restriction. Each column takes the first candidate key its restriction
// accepts; columns with no such candidate stay unbound.
func Defaults(restrictions []rebind.Restriction) []rebind.Binding {
	out := make([]rebind.Binding, len(defaultActions))
	for i, a := range defaultActions {
		keys := make([]string, len(restrictions))
		for col, r := range restrictions {
			for _, k := range a.candidates {
				if rebind.RespectsRestriction(k, r) && !slices.Contains(keys, k) {
					keys[col] = k
					break
				}
			}
		}
		out[i] = rebind.Binding{
			Action:  a.name,
			Display: a.display,
			Groups:  slices.Clone(a.groups),
			Keys:    keys,
		}
	}
	return out
}

type fileAction struct {
	Name    string   `toml:"name"`
	Display string   `toml:"display,omitempty"`
	Groups  []int    `toml:"groups,omitempty"`
	Keys    []string `toml:"keys"`
}

type file struct {
	Actions []fileAction `toml:"action"`
}

// Store reads and writes one bindings file. Saves are serialized and a
// snapshot older than the last one written is dropped.
type Store struct {
	path         string
	restrictions []rebind.Restriction
	log          *logger.Logger

	generation atomic.Uint64

	mu      sync.Mutex
	written uint64
}

// NewStore returns a store for path whose bindings have one key per
// restriction column.
func NewStore(path string, restrictions []rebind.Restriction, log *logger.Logger) *Store {
	return &Store{path: path, restrictions: slices.Clone(restrictions), log: log.With("component", "bindings")}
}

// Path returns the bindings file path.
func (s *Store) Path() string {
	return s.path
}

// Defaults returns the built-in bindings for the store's columns.
func (s *Store) Defaults() []rebind.Binding {
	return Defaults(s.restrictions)
}

// Load reads the bindings file. A missing file yields the defaults. Actions
// missing from the file take their default keys; key lists are padded or cut
// to the column count.
func (s *Store) Load() ([]rebind.Binding, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Debug("no bindings file, using defaults", "path", s.path)
		return s.Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read bindings: %w", err)
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	out := s.Defaults()
	seen := make(map[string]bool, len(f.Actions))
	for _, a := range f.Actions {
		i := slices.IndexFunc(out, func(b rebind.Binding) bool { return b.Action == a.Name })
		if i < 0 {
			return nil, fmt.Errorf("%s: %w %q", s.path, ErrUnknownAction, a.Name)
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("%s: %w %q", s.path, ErrDuplicateAction, a.Name)
		}
		seen[a.Name] = true

		keys := make([]string, len(s.restrictions))
		copy(keys, a.Keys)
		out[i].Keys = keys
		if a.Display != "" {
			out[i].Display = a.Display
		}
		if a.Groups != nil {
			out[i].Groups = slices.Clone(a.Groups)
		}
	}

	s.log.Debug("bindings loaded", "path", s.path, "from_file", len(f.Actions))
	return out, nil
}

// Stamp reserves the generation of the next snapshot. Take it when the
// snapshot is made, not when it is written.
func (s *Store) Stamp() uint64 {
	return s.generation.Add(1)
}

// Save writes bindings as a new generation.
func (s *Store) Save(bindings []rebind.Binding) error {
	return s.SaveGeneration(s.Stamp(), bindings)
}

// SaveGeneration writes bindings to the file, replacing it atomically, unless
// a later generation has already been written.
func (s *Store) SaveGeneration(gen uint64, bindings []rebind.Binding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.written {
		s.log.Debug("stale bindings snapshot dropped", "generation", gen, "written", s.written)
		return nil
	}

	f := file{Actions: make([]fileAction, len(bindings))}
	for i, b := range bindings {
		f.Actions[i] = fileAction{Name: b.Action, Display: b.Display, Groups: b.Groups, Keys: b.Keys}
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode bindings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("could not create bindings directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".bindings-*.toml")
	if err != nil {
		return fmt.Errorf("could not write bindings: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write bindings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write bindings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write bindings: %w", err)
	}

	s.written = gen
	s.log.Info("bindings saved", "path", s.path, "actions", len(bindings), "generation", gen)
	return nil
}

// Equal reports whether two binding sets hold the same keys and groups.
func Equal(a, b []rebind.Binding) bool {
	return slices.EqualFunc(a, b, func(x, y rebind.Binding) bool {
		return x.Action == y.Action && slices.Equal(x.Keys, y.Keys) && slices.Equal(x.Groups, y.Groups)
	})
}
