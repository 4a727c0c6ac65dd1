package ui

import "github.com/charmbracelet/lipgloss"

// Shared by the dashboard and the one-shot commands.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111"))

	// BusyStyle marks uploads and deletes that are still running.
	BusyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// MutedStyle is for secondary text such as sizes and key hints.
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	CursorStyle = lipgloss.NewStyle().Reverse(true)

	SelectedStyle = SuccessStyle.Bold(true)
)
