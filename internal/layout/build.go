package layout

import (
	"fmt"

	"github.com/chatter/uinav/internal/discovery"
	"github.com/chatter/uinav/internal/logger"
	"github.com/chatter/uinav/internal/nav"
	"github.com/chatter/uinav/internal/rebind"
)

// Item is the front end's view of one element.
type Item struct {
	Kind   nav.ElementKind
	Label  string
	Action Action
	// Slot addresses the key an input box shows.
	Slot rebind.Slot
}

// Screen is a built screen. Items[i] describes element i of Session.
type Screen struct {
	Name    string
	Title   string
	Items   []Item
	Session *nav.Session
}

// Focused returns the item under the cursor.
func (s *Screen) Focused() Item {
	return s.Items[s.Session.Current()]
}

// Builder builds navigation sessions for the screens of a layout.
type Builder struct {
	layout *Layout
	log    *logger.Logger
}

func NewBuilder(l *Layout, log *logger.Logger) *Builder {
	return &Builder{layout: l, log: log.With("component", "layout")}
}

func (b *Builder) Layout() *Layout { return b.layout }

type discovered struct {
	item Item
	elem nav.Element
}

// Build discovers the elements of screen name, wires its grids and opens a
// session on it. inputs backs the screen's input container, if it has one.
func (b *Builder) Build(name string, inputs *rebind.Container, observer nav.Observer) (*Screen, error) {
	def, ok := b.layout.screen(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}

	root, err := b.node(def.Root, true, true, inputs)
	if err != nil {
		return nil, fmt.Errorf("screen %q: %w", name, err)
	}
	found := discovery.Collect(root)
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: screen %q has no elements", ErrInvalidLayout, name)
	}

	table := nav.NewTable()
	w := wiring{found: found}
	for i, g := range def.Grids {
		if err := w.grid(table, g, inputs); err != nil {
			return nil, fmt.Errorf("screen %q grid %d: %w", name, i, err)
		}
	}
	if w.pos != len(found) {
		return nil, fmt.Errorf("%w: screen %q wires %d of %d elements", ErrGridCoverage, name, w.pos, len(found))
	}

	session, err := nav.NewSession(table, w.elems, def.First, observer)
	if err != nil {
		return nil, fmt.Errorf("screen %q: %w", name, err)
	}
	b.log.Debug("screen built", "screen", name, "elements", len(w.elems), "grids", len(def.Grids))

	return &Screen{Name: def.Name, Title: def.Title, Items: w.items, Session: session}, nil
}

// node converts a layout node to a discovery node. Disabled and hidden
// are inherited by descendants.
func (b *Builder) node(n NodeSpec, enabled, visible bool, inputs *rebind.Container) (*discovery.Node[discovered], error) {
	enabled = enabled && !n.Disabled
	visible = visible && !n.Hidden
	out := &discovery.Node[discovered]{Index: n.Index}

	element := func(kind nav.ElementKind) nav.Element {
		e := nav.NewElement(kind)
		e.Enabled, e.Visible = enabled, visible
		return e
	}

	action, err := ParseAction(n.Action)
	if err != nil {
		return nil, err
	}

	switch n.Kind {
	case "", "panel":
	case "button":
		out.Navigable = true
		out.Value = discovered{
			item: Item{Kind: nav.KindButton, Label: n.Label, Action: action},
			elem: element(nav.KindButton),
		}
	case "option", "slider":
		e := element(nav.KindRange)
		e.Range = rangeSelector(n)
		out.Navigable = true
		out.Value = discovered{item: Item{Kind: nav.KindRange, Label: n.Label, Action: action}, elem: e}
	case "input":
		if inputs == nil {
			return nil, fmt.Errorf("%w: input container without bindings", ErrInvalidLayout)
		}
		for a := range inputs.Len() {
			binding, _ := inputs.Binding(a)
			for c := range inputs.KeysPerInput() {
				out.Children = append(out.Children, &discovery.Node[discovered]{
					Navigable: true,
					Value: discovered{
						item: Item{Kind: nav.KindInputBox, Label: binding.Display, Slot: rebind.Slot{Action: a, Column: c}},
						elem: element(nav.KindInputBox),
					},
				})
			}
		}
	default:
		return nil, fmt.Errorf("%w: unknown node kind %q", ErrInvalidLayout, n.Kind)
	}

	for _, c := range n.Children {
		child, err := b.node(c, enabled, visible, inputs)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, child)
	}
	return out, nil
}

// rangeSelector builds the selector of an option or slider node. For an
// option Value is the initial option index; for a slider it is the initial
// numeric value.
func rangeSelector(n NodeSpec) *nav.RangeSelector {
	r := &nav.RangeSelector{Loop: n.Loop}
	if n.Kind == "option" {
		r.Options = n.Options
		r.Index = n.Value
		return r
	}
	r.Min, r.Max, r.Interval = n.Min, n.Max, n.Interval
	if r.Interval == 0 {
		r.Interval = 1
	}
	if r.Interval > 0 {
		r.Index = max(0, min((n.Value-n.Min)/r.Interval, r.Count()-1))
	}
	return r
}

type wiring struct {
	found []discovered
	pos   int
	elems nav.Elements
	items []Item
}

func (w *wiring) take(n int) ([]discovered, error) {
	if w.pos+n > len(w.found) {
		return nil, fmt.Errorf("%w: grid needs %d elements, %d left", ErrGridCoverage, n, len(w.found)-w.pos)
	}
	run := w.found[w.pos : w.pos+n]
	w.pos += n
	for _, d := range run {
		w.elems = append(w.elems, d.elem)
		w.items = append(w.items, d.item)
	}
	return run, nil
}

func (w *wiring) pad(n int) {
	for range n {
		w.elems = append(w.elems, nav.NewElement(nav.KindPlaceholder))
		w.items = append(w.items, Item{Kind: nav.KindPlaceholder})
	}
}

func (w *wiring) grid(table *nav.Table, g GridSpec, inputs *rebind.Container) error {
	shape, err := gridKind(g.Kind)
	if err != nil {
		return err
	}
	edge := g.Edge.Entry()

	switch shape {
	case shapeLinear:
		kind, _ := nav.ParseGridKind(g.Kind)
		if _, err := table.AppendLinear(kind, g.Count, edge, g.Wrap); err != nil {
			return err
		}
		_, err := w.take(g.Count)
		return err

	case shape2D:
		total := g.X * g.Y
		active := g.Active
		if active <= 0 || active > total {
			active = total
		}
		if _, err := table.AppendGrid2D(g.X, g.Y, edge, g.Wrap, active); err != nil {
			return err
		}
		if _, err := w.take(active); err != nil {
			return err
		}
		w.pad(total - active)
		return nil

	default:
		if inputs == nil {
			return fmt.Errorf("%w: input grid without bindings", ErrInvalidLayout)
		}
		rows, cols := inputs.Len(), inputs.KeysPerInput()
		if _, err := table.AppendGrid2D(cols, rows, edge, g.Wrap, 0); err != nil {
			return err
		}
		run, err := w.take(rows * cols)
		if err != nil {
			return err
		}
		for _, d := range run {
			if d.item.Kind != nav.KindInputBox {
				return fmt.Errorf("%w: input grid covers %s %q", ErrGridCoverage, d.item.Kind, d.item.Label)
			}
		}
		return nil
	}
}
