package ui

import (
	"charm.land/lipgloss/v2"
)

// Colors
var (
	primaryColor   = lipgloss.Color("62")  // Purple
	secondaryColor = lipgloss.Color("241") // Gray
	accentColor    = lipgloss.Color("86")  // Cyan
	borderColor    = lipgloss.Color("240") // Dark gray
	awaitColor     = lipgloss.Color("214") // Orange
	errorColor     = lipgloss.Color("203") // Red
)

// Styles for the application
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	// Cell styles share one geometry so rows line up whatever the state.
	CellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	// SelectorStyle marks the focused element.
	SelectorStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accentColor).
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	AwaitingStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(awaitColor).
			Foreground(awaitColor).
			Padding(0, 1)

	DisabledStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Foreground(secondaryColor).
			Faint(true).
			Padding(0, 1)

	// BlankStyle renders placeholders and hidden elements.
	BlankStyle = lipgloss.NewStyle().
			Border(lipgloss.HiddenBorder()).
			Padding(0, 1)

	RowLabelStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			PaddingTop(1).
			PaddingRight(1)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)
