// Package ui renders navigation screens as rows of bordered cells and maps
// mouse positions back to elements.
package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/chatter/uinav/internal/nav"
)

const (
	// CellTextWidth is the text width inside a cell.
	CellTextWidth = 22
	// RowLabelWidth is the width of the action labels left of input rows.
	RowLabelWidth = 16

	ellipsis = "…"
)

// CellState selects the style of a cell.
type CellState int

const (
	CellNormal CellState = iota
	CellFocused
	CellDisabled
	CellAwaiting
	// CellBlank is a placeholder or hidden element: it keeps its place in
	// the grid but draws nothing.
	CellBlank
)

// Cell is one element as drawn.
type Cell struct {
	Text  string
	State CellState
	// RowLabel is drawn left of the row the cell starts. Only the first cell
	// of a row is consulted, and only in grids where some cell has one.
	RowLabel string
}

// ScreenView is everything needed to draw a screen. Cells[i] draws element
// i; Grids are the table's grids in append order.
type ScreenView struct {
	Title string
	Grids []nav.Grid
	Cells []Cell
}

// Zone is the area of the rendered screen occupied by element Index.
type Zone struct {
	Index  int
	X, Y   int
	Width  int
	Height int
}

// Contains reports whether the cell at x, y lies inside the zone.
func (z Zone) Contains(x, y int) bool {
	return x >= z.X && x < z.X+z.Width && y >= z.Y && y < z.Y+z.Height
}

// HitTest returns the element under x, y.
func HitTest(zones []Zone, x, y int) (int, bool) {
	for _, z := range zones {
		if z.Contains(x, y) {
			return z.Index, true
		}
	}
	return nav.Unset, false
}

// RenderScreen draws v from the top-left corner and returns the zone of
// every element drawn.
func RenderScreen(v ScreenView) (string, []Zone) {
	var (
		blocks []string
		zones  []Zone
	)

	title := TitleStyle.Render(v.Title)
	blocks = append(blocks, title, "")
	y := lipgloss.Height(title) + 1

	for gi, g := range v.Grids {
		if gi > 0 {
			blocks = append(blocks, "")
			y++
		}
		labelled := hasRowLabels(v.Cells, g)

		for _, row := range gridRows(g) {
			var parts []string
			x := 0
			if labelled {
				label := RowLabelStyle.Width(RowLabelWidth).Render(
					ansi.Truncate(cellAt(v.Cells, row[0]).RowLabel, RowLabelWidth-1, ellipsis))
				parts = append(parts, label)
				x += lipgloss.Width(label)
			}

			height := 0
			for _, idx := range row {
				rendered := renderCell(cellAt(v.Cells, idx))
				w, h := lipgloss.Width(rendered), lipgloss.Height(rendered)
				if cellAt(v.Cells, idx).State != CellBlank {
					zones = append(zones, Zone{Index: idx, X: x, Y: y, Width: w, Height: h})
				}
				parts = append(parts, rendered)
				x += w
				height = max(height, h)
			}

			blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
			y += height
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...), zones
}

func renderCell(c Cell) string {
	text := ansi.Truncate(c.Text, CellTextWidth, ellipsis)
	pad := CellTextWidth - ansi.StringWidth(text)
	text += strings.Repeat(" ", max(pad, 0))

	switch c.State {
	case CellFocused:
		return SelectorStyle.Render(text)
	case CellAwaiting:
		return AwaitingStyle.Render(text)
	case CellDisabled:
		return DisabledStyle.Render(text)
	case CellBlank:
		return BlankStyle.Render(strings.Repeat(" ", CellTextWidth))
	default:
		return CellStyle.Render(text)
	}
}

func cellAt(cells []Cell, i int) Cell {
	if i < 0 || i >= len(cells) {
		return Cell{State: CellBlank}
	}
	return cells[i]
}

func hasRowLabels(cells []Cell, g nav.Grid) bool {
	for i := g.Start; i <= g.Last(); i++ {
		if cellAt(cells, i).RowLabel != "" {
			return true
		}
	}
	return false
}

// gridRows lists the element indices of g row by row as they are drawn.
func gridRows(g nav.Grid) [][]int {
	var rows [][]int
	switch g.Kind {
	case nav.GridHorizontal:
		row := make([]int, g.DimX)
		for i := range row {
			row[i] = g.Start + i
		}
		rows = append(rows, row)
	case nav.GridVertical:
		for i := range g.DimY {
			rows = append(rows, []int{g.Start + i})
		}
	default:
		for r := range g.DimY {
			row := make([]int, g.DimX)
			for c := range row {
				row[c] = g.Start + r*g.DimX + c
			}
			rows = append(rows, row)
		}
	}
	return rows
}
