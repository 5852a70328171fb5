package ui

import "github.com/charmbracelet/lipgloss"

// Lip Gloss styles for the interactive views.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true)
	AccentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	MutedStyle    = lipgloss.NewStyle().Faint(true)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	HelpStyle     = lipgloss.NewStyle().Faint(true)
)
