// Package testgen provides rapid generators for navigation grids, element
// sets and input keys.
package testgen

import (
	"strings"

	"pgregory.net/rapid"

	"github.com/chatter/uinav/internal/nav"
)

// GridSpec is a generated grid request.
type GridSpec struct {
	Kind nav.GridKind
	DimX int
	DimY int
	Wrap bool
	// Active is the active cell count of a 2D grid; 0 means full.
	Active int
}

// Len returns the number of entries the grid occupies.
func (g GridSpec) Len() int {
	switch g.Kind {
	case nav.GridHorizontal:
		return g.DimX
	case nav.GridVertical:
		return g.DimY
	default:
		return g.DimX * g.DimY
	}
}

// Append appends the grid to t with no edge navigation.
func (g GridSpec) Append(t *nav.Table) (nav.Range, error) {
	switch g.Kind {
	case nav.GridHorizontal:
		return t.AppendHorizontal(g.DimX, nav.NoNeighbors(), g.Wrap)
	case nav.GridVertical:
		return t.AppendVertical(g.DimY, nav.NoNeighbors(), g.Wrap)
	default:
		return t.AppendGrid2D(g.DimX, g.DimY, nav.NoNeighbors(), g.Wrap, g.Active)
	}
}

// GridOption transforms a Grid generator.
type GridOption func(*rapid.Generator[GridSpec]) *rapid.Generator[GridSpec]

// Grid generates a full grid of any kind with dimensions in [1, 6] and a
// random wrap flag.
//
// Examples:
//
//	Grid()                              // any kind, any wrap
//	Grid(WithKind(nav.Grid2D), WithWrap) // wrapping 2D grid
//	Grid(WithKind(nav.Grid2D), WithPartial)
func Grid(opts ...GridOption) *rapid.Generator[GridSpec] {
	gen := rapid.Custom(func(t *rapid.T) GridSpec {
		kind := rapid.SampledFrom([]nav.GridKind{nav.GridHorizontal, nav.GridVertical, nav.Grid2D}).Draw(t, "kind")
		g := GridSpec{Kind: kind, Wrap: rapid.Bool().Draw(t, "wrap")}
		switch kind {
		case nav.GridHorizontal:
			g.DimX = rapid.IntRange(1, 6).Draw(t, "dimX")
		case nav.GridVertical:
			g.DimY = rapid.IntRange(1, 6).Draw(t, "dimY")
		default:
			g.DimX = rapid.IntRange(1, 6).Draw(t, "dimX")
			g.DimY = rapid.IntRange(1, 6).Draw(t, "dimY")
		}
		return g
	})
	for _, opt := range opts {
		gen = opt(gen)
	}
	return gen
}

// WithKind forces the grid kind, drawing any dimension the kind needs.
func WithKind(kind nav.GridKind) GridOption {
	return func(gen *rapid.Generator[GridSpec]) *rapid.Generator[GridSpec] {
		return rapid.Custom(func(t *rapid.T) GridSpec {
			g := gen.Draw(t, "grid")
			g.Kind = kind
			if g.DimX == 0 {
				g.DimX = rapid.IntRange(1, 6).Draw(t, "dimX")
			}
			if g.DimY == 0 {
				g.DimY = rapid.IntRange(1, 6).Draw(t, "dimY")
			}
			if kind == nav.GridHorizontal {
				g.DimY = 0
			}
			if kind == nav.GridVertical {
				g.DimX = 0
			}
			return g
		})
	}
}

// WithWrap makes the grid wrap. Any partial fill is dropped.
func WithWrap(gen *rapid.Generator[GridSpec]) *rapid.Generator[GridSpec] {
	return rapid.Custom(func(t *rapid.T) GridSpec {
		g := gen.Draw(t, "grid")
		g.Wrap = true
		g.Active = 0
		return g
	})
}

// WithoutWrap clears the wrap flag.
func WithoutWrap(gen *rapid.Generator[GridSpec]) *rapid.Generator[GridSpec] {
	return rapid.Custom(func(t *rapid.T) GridSpec {
		g := gen.Draw(t, "grid")
		g.Wrap = false
		return g
	})
}

// WithPartial gives a 2D grid an active count in [1, DimX*DimY] and clears
// wrap. Linear grids are returned unchanged.
func WithPartial(gen *rapid.Generator[GridSpec]) *rapid.Generator[GridSpec] {
	return rapid.Custom(func(t *rapid.T) GridSpec {
		g := gen.Draw(t, "grid")
		if g.Kind != nav.Grid2D {
			return g
		}
		g.Wrap = false
		g.Active = rapid.IntRange(1, g.DimX*g.DimY).Draw(t, "active")
		return g
	})
}

// ElementsOption transforms an Elements generator.
type ElementsOption func(*rapid.Generator[nav.Elements]) *rapid.Generator[nav.Elements]

// Elements generates n enabled, visible buttons.
func Elements(n int, opts ...ElementsOption) *rapid.Generator[nav.Elements] {
	gen := rapid.Custom(func(t *rapid.T) nav.Elements {
		es := make(nav.Elements, n)
		for i := range es {
			es[i] = nav.NewElement(nav.KindButton)
		}
		return es
	})
	for _, opt := range opts {
		gen = opt(gen)
	}
	return gen
}

// WithDisabled disables or hides a random subset of the elements.
func WithDisabled(gen *rapid.Generator[nav.Elements]) *rapid.Generator[nav.Elements] {
	return rapid.Custom(func(t *rapid.T) nav.Elements {
		es := gen.Draw(t, "elements")
		for i := range es {
			switch rapid.IntRange(0, 3).Draw(t, "state") {
			case 1:
				es[i].Enabled = false
			case 2:
				es[i].Visible = false
			}
		}
		return es
	})
}

// KeyOption transforms a Key generator.
type KeyOption func(*rapid.Generator[string]) *rapid.Generator[string]

// Key generates a keyboard key name such as "a", "f7" or "ctrl+x".
//
// Examples:
//
//	Key()              // "q"
//	Key(WithMouse)     // "mouse-right"
//	Key(WithGamepad)   // "pad-a"
func Key(opts ...KeyOption) *rapid.Generator[string] {
	gen := rapid.OneOf(
		rapid.StringMatching(`[a-z0-9]`),
		rapid.StringMatching(`f([1-9]|1[0-2])`),
		rapid.StringMatching(`(ctrl|alt|shift)\+[a-z]`),
		rapid.SampledFrom([]string{"space", "enter", "tab", "up", "down", "left", "right"}),
	)
	for _, opt := range opts {
		gen = opt(gen)
	}
	return gen
}

// WithMouse turns the key into a mouse button or wheel name.
func WithMouse(gen *rapid.Generator[string]) *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		_ = gen.Draw(t, "key")
		return rapid.SampledFrom([]string{
			"mouse-left", "mouse-right", "mouse-middle", "wheel-up", "wheel-down",
		}).Draw(t, "mouse")
	})
}

// WithGamepad prefixes the key with a gamepad device tag.
func WithGamepad(gen *rapid.Generator[string]) *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		k := gen.Draw(t, "key")
		prefix := rapid.SampledFrom([]string{"pad-", "gamepad-"}).Draw(t, "prefix")
		return prefix + strings.ReplaceAll(k, "+", "-")
	})
}

// Groups generates an input group set: empty, global, or up to three
// isolated groups in [0, 4].
func Groups() *rapid.Generator[[]int] {
	return rapid.OneOf(
		rapid.Just([]int(nil)),
		rapid.Just([]int{-1}),
		rapid.SliceOfNDistinct(rapid.IntRange(0, 4), 1, 3, rapid.ID[int]),
	)
}
