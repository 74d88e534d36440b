package tui

import "github.com/charmbracelet/lipgloss"

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle for field labels.
	LabelStyle = lipgloss.NewStyle().Width(22)

	// FocusedStyle marks the active field.
	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	ProfitStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	LossStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)
