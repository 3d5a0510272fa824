package tui

import "github.com/charmbracelet/lipgloss"

var (
	cyan    = lipgloss.Color("#00E5FF")
	magenta = lipgloss.Color("#FF1B6B")
	green   = lipgloss.Color("#2AFFAA")
	red     = lipgloss.Color("#FF5555")
	muted   = lipgloss.Color("#6C7280")
	text    = lipgloss.Color("#ECEFF4")
)

type styles struct {
	title          lipgloss.Style
	label          lipgloss.Style
	field          lipgloss.Style
	focusedField   lipgloss.Style
	button         lipgloss.Style
	focusedButton  lipgloss.Style
	heading        lipgloss.Style
	recommendation lipgloss.Style
	err            lipgloss.Style
	help           lipgloss.Style
}

func defaultStyles() styles {
	field := lipgloss.NewStyle().
		Foreground(text).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted)

	button := lipgloss.NewStyle().
		Foreground(text).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted)

	return styles{
		title:          lipgloss.NewStyle().Foreground(cyan).Bold(true).MarginBottom(1),
		label:          lipgloss.NewStyle().Foreground(text).Bold(true),
		field:          field,
		focusedField:   field.BorderForeground(cyan),
		button:         button,
		focusedButton:  button.BorderForeground(magenta).Foreground(magenta).Bold(true),
		heading:        lipgloss.NewStyle().Foreground(cyan).Bold(true),
		recommendation: lipgloss.NewStyle().Foreground(green).Bold(true),
		err:            lipgloss.NewStyle().Foreground(red),
		help:           lipgloss.NewStyle().Foreground(muted),
	}
}
