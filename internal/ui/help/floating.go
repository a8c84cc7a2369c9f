package help

import (
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
)

// categoryOrder defines the display order of categories
var categoryOrder = []Category{
	CategoryNavigation,
	CategoryActions,
	CategoryRebind,
}

// FloatingHelp renders a modal listing every enabled binding by category.
type FloatingHelp struct {
	width    int
	height   int
	footer   string
	bindings []HelpBinding

	borderStyle lipgloss.Style
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	keyStyle    lipgloss.Style
	descStyle   lipgloss.Style
	footerStyle lipgloss.Style
}

// NewFloatingHelp creates a new floating help modal.
func NewFloatingHelp() *FloatingHelp {
	return &FloatingHelp{
		footer: "? to close",
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		keyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		descStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		footerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// SetSize sets the outer size of the modal.
func (f *FloatingHelp) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// SetBindings sets the keybindings to display.
func (f *FloatingHelp) SetBindings(bindings []HelpBinding) {
	f.bindings = bindings
}

// SetFooter sets the hint shown in the bottom-right corner, e.g. the key
// that closes the modal.
func (f *FloatingHelp) SetFooter(footer string) {
	f.footer = footer
}

// View renders the modal. It never exceeds the size set with SetSize.
func (f *FloatingHelp) View() string {
	if f.width <= 0 || f.height <= 0 {
		return ""
	}

	innerWidth := f.width - f.borderStyle.GetHorizontalFrameSize()
	innerHeight := f.height - f.borderStyle.GetVerticalFrameSize()
	if innerWidth < 20 || innerHeight < 5 {
		return f.borderStyle.Width(max(innerWidth, 10)).Render("...")
	}

	// title and footer take one line each
	body := f.renderBody(innerWidth)
	if len(body) > innerHeight-2 {
		body = body[:innerHeight-2]
	}
	lines := append([]string{f.titleStyle.Render("Help")}, body...)
	for len(lines) < innerHeight-1 {
		lines = append(lines, "")
	}

	footer := f.footerStyle.Render(f.footer)
	lines = append(lines, strings.Repeat(" ", max(innerWidth-lipgloss.Width(footer), 0))+footer)

	inner := lipgloss.NewStyle().MaxWidth(innerWidth).Render(strings.Join(lines, "\n"))
	return f.borderStyle.Render(inner)
}

func (f *FloatingHelp) renderBody(width int) []string {
	groups := make(map[Category][]HelpBinding)
	keyWidth := 0
	for _, hb := range f.bindings {
		if !hb.Binding.Enabled() {
			continue
		}
		groups[hb.Category] = append(groups[hb.Category], hb)
		keyWidth = max(keyWidth, lipgloss.Width(hb.Binding.Help().Key))
	}
	if len(groups) == 0 {
		return []string{"No keybindings available"}
	}

	// indent (2) + key + gap (2)
	keyCol := f.keyStyle.Width(keyWidth + 2)
	desc := f.descStyle.MaxWidth(max(width-keyWidth-4, 10))

	var lines []string
	for _, cat := range categoryOrder {
		bindings := groups[cat]
		if len(bindings) == 0 {
			continue
		}
		slices.SortStableFunc(bindings, func(a, b HelpBinding) int { return a.Order - b.Order })

		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, f.headerStyle.Render(string(cat)))
		for _, hb := range bindings {
			h := hb.Binding.Help()
			lines = append(lines, "  "+keyCol.Render(h.Key)+desc.Render(h.Desc))
		}
	}
	return lines
}
