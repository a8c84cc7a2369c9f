package help

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// minGap separates the left side from the version.
const minGap = 1

// StatusBar renders one line: either a message or key hints on the left and
// the version on the right.
type StatusBar struct {
	width    int
	version  string
	message  string
	isError  bool
	bindings []HelpBinding
	help     help.Model

	versionStyle lipgloss.Style
	messageStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewStatusBar creates a new status bar that displays the given version string.
func NewStatusBar(version string) *StatusBar {
	return &StatusBar{
		version:      version,
		help:         help.New(),
		versionStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#777777")),
		messageStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		errorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetBindings sets the bindings offered as hints.
func (s *StatusBar) SetBindings(bindings []HelpBinding) {
	s.bindings = bindings
}

// SetMessage replaces the hints with msg until it is cleared with "".
func (s *StatusBar) SetMessage(msg string, isError bool) {
	s.message = msg
	s.isError = isError
}

// Message returns the message currently shown.
func (s *StatusBar) Message() string {
	return s.message
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.width <= 0 {
		return ""
	}

	version := s.versionStyle.Render(s.version)
	versionWidth := lipgloss.Width(version)
	if versionWidth >= s.width {
		return ansi.Truncate(version, s.width, "")
	}
	avail := s.width - versionWidth - minGap

	var left string
	switch {
	case s.message != "" && s.isError:
		left = s.errorStyle.Render(ansi.Truncate(s.message, avail, "…"))
	case s.message != "":
		left = s.messageStyle.Render(ansi.Truncate(s.message, avail, "…"))
	default:
		left = s.hints(avail)
	}

	padding := max(s.width-lipgloss.Width(left)-versionWidth, 0)
	return left + strings.Repeat(" ", padding) + version
}

// hints lays out as many enabled bindings as fit in width, lowest Order
// first. Pinned bindings are always kept.
func (s *StatusBar) hints(width int) string {
	var enabled []HelpBinding
	for _, hb := range s.bindings {
		if hb.Binding.Enabled() {
			enabled = append(enabled, hb)
		}
	}
	slices.SortStableFunc(enabled, func(a, b HelpBinding) int { return a.Order - b.Order })

	chosen := make([]bool, len(enabled))
	for i, hb := range enabled {
		chosen[i] = hb.Pinned
	}
	view := s.render(enabled, chosen)

	for i, hb := range enabled {
		if hb.Pinned {
			continue
		}
		chosen[i] = true
		next := s.render(enabled, chosen)
		if lipgloss.Width(next) > width {
			chosen[i] = false
			break
		}
		view = next
	}

	if lipgloss.Width(view) > width {
		return ansi.Truncate(view, width, "…")
	}
	return view
}

func (s *StatusBar) render(bindings []HelpBinding, chosen []bool) string {
	var keys []key.Binding
	for i, hb := range bindings {
		if chosen[i] {
			keys = append(keys, hb.Binding)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	return s.help.ShortHelpView(keys)
}
