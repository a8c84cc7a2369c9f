// Package layout loads screen layouts from TOML and builds navigation
// sessions from them: the node tree is discovered into elements, and the
// layout's grids wire those elements into a navigation table.
package layout

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pelletier/go-toml/v2"

	"github.com/chatter/uinav/internal/nav"
)

//go:embed layouts/*.toml
var layoutsFS embed.FS

var (
	// ErrInvalidLayout is returned for a layout that parses but is malformed.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrUnknownScreen is returned when a screen name matches nothing.
	ErrUnknownScreen = errors.New("unknown screen")

	// ErrGridCoverage is returned when a screen's grids do not cover its
	// elements exactly.
	ErrGridCoverage = errors.New("grids do not cover elements")
)

// Layout is a set of screens. The first screen is the root.
type Layout struct {
	Screens []ScreenSpec `toml:"screen"`
}

// ScreenSpec is one screen as written in a layout file.
type ScreenSpec struct {
	Name  string `toml:"name"`
	Title string `toml:"title"`
	// First is the element that takes focus when the screen opens.
	First int        `toml:"first"`
	Root  NodeSpec   `toml:"root"`
	Grids []GridSpec `toml:"grid"`
}

// NodeSpec is one widget. Kinds: panel, button, option, slider, input.
type NodeSpec struct {
	Kind     string     `toml:"kind"`
	Label    string     `toml:"label"`
	Index    *int       `toml:"index"`
	Disabled bool       `toml:"disabled"`
	Hidden   bool       `toml:"hidden"`
	Action   string     `toml:"action"`
	Children []NodeSpec `toml:"children"`

	// option and slider settings
	Options  []string `toml:"options"`
	Min      int      `toml:"min"`
	Max      int      `toml:"max"`
	Interval int      `toml:"interval"`
	Loop     bool     `toml:"loop"`
	Value    int      `toml:"value"`
}

// GridSpec wires a run of elements. Kinds: horizontal, vertical, grid2d and
// input (a 2D grid shaped by the rebinding container).
type GridSpec struct {
	Kind  string `toml:"kind"`
	Count int    `toml:"count"`
	X     int    `toml:"x"`
	Y     int    `toml:"y"`
	// Active is the number of filled cells of a grid2d; 0 means all.
	Active int      `toml:"active"`
	Wrap   bool     `toml:"wrap"`
	Edge   EdgeSpec `toml:"edge"`
}

// EdgeSpec is the edge navigation of a grid. Missing fields are unset.
type EdgeSpec struct {
	Up    *int `toml:"up"`
	Down  *int `toml:"down"`
	Left  *int `toml:"left"`
	Right *int `toml:"right"`
}

// Entry converts the edge to a navigation entry.
func (e EdgeSpec) Entry() nav.Entry {
	get := func(p *int) int {
		if p == nil {
			return nav.Unset
		}
		return *p
	}
	return nav.Entry{Up: get(e.Up), Down: get(e.Down), Left: get(e.Left), Right: get(e.Right)}
}

// Default returns the built-in layout.
func Default() *Layout {
	data, err := layoutsFS.ReadFile("layouts/default.toml")
	if err != nil {
		panic("failed to read built-in layout: " + err.Error())
	}
	l, err := Parse(data)
	if err != nil {
		panic("built-in layout is invalid: " + err.Error())
	}
	return l
}

// Load reads a layout file, or returns the built-in layout for an empty path.
func Load(path string) (*Layout, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read layout: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and checks a layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Layout) validate() error {
	if len(l.Screens) == 0 {
		return fmt.Errorf("%w: no screens", ErrInvalidLayout)
	}
	names := l.Names()
	for i, s := range l.Screens {
		if s.Name == "" {
			return fmt.Errorf("%w: screen %d has no name", ErrInvalidLayout, i)
		}
		if slices.Index(names, s.Name) != i {
			return fmt.Errorf("%w: duplicate screen %q", ErrInvalidLayout, s.Name)
		}
		inputs := 0
		var check func(n NodeSpec) error
		check = func(n NodeSpec) error {
			switch n.Kind {
			case "", "panel", "button", "option", "slider":
			case "input":
				inputs++
			default:
				return fmt.Errorf("%w: screen %q: unknown node kind %q", ErrInvalidLayout, s.Name, n.Kind)
			}
			a, err := ParseAction(n.Action)
			if err != nil {
				return fmt.Errorf("screen %q: %w", s.Name, err)
			}
			if a.Kind == ActionGoto && !slices.Contains(names, a.Target) {
				return fmt.Errorf("%w: screen %q: goto unknown screen %q", ErrInvalidLayout, s.Name, a.Target)
			}
			for _, c := range n.Children {
				if err := check(c); err != nil {
					return err
				}
			}
			return nil
		}
		if err := check(s.Root); err != nil {
			return err
		}
		if inputs > 1 {
			return fmt.Errorf("%w: screen %q has %d input containers", ErrInvalidLayout, s.Name, inputs)
		}
		for _, g := range s.Grids {
			if _, err := gridKind(g.Kind); err != nil {
				return fmt.Errorf("%w: screen %q: %w", ErrInvalidLayout, s.Name, err)
			}
		}
	}
	return nil
}

// Names returns the screen names in layout order.
func (l *Layout) Names() []string {
	names := make([]string, len(l.Screens))
	for i, s := range l.Screens {
		names[i] = s.Name
	}
	return names
}

// Root returns the name of the first screen.
func (l *Layout) Root() string {
	return l.Screens[0].Name
}

// Resolve maps a user-typed screen name to a screen: an exact match
// (ignoring case) wins, otherwise the closest fuzzy match.
func (l *Layout) Resolve(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return l.Root(), nil
	}
	names := l.Names()
	for _, n := range names {
		if strings.EqualFold(n, query) {
			return n, nil
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return "", fmt.Errorf("%w: %q (have %s)", ErrUnknownScreen, query, strings.Join(names, ", "))
	}
	sort.Stable(ranks)
	return ranks[0].Target, nil
}

func (l *Layout) screen(name string) (ScreenSpec, bool) {
	i := slices.IndexFunc(l.Screens, func(s ScreenSpec) bool { return s.Name == name })
	if i < 0 {
		return ScreenSpec{}, false
	}
	return l.Screens[i], true
}

type gridShape int

const (
	shapeLinear gridShape = iota
	shape2D
	shapeInput
)

func gridKind(s string) (gridShape, error) {
	if strings.EqualFold(strings.TrimSpace(s), "input") {
		return shapeInput, nil
	}
	k, err := nav.ParseGridKind(s)
	if err != nil {
		return 0, err
	}
	if k == nav.Grid2D {
		return shape2D, nil
	}
	return shapeLinear, nil
}
