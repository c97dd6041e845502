package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	focused  lipgloss.Style
	invalid  lipgloss.Style
	message  lipgloss.Style
	button   lipgloss.Style
	disabled lipgloss.Style
	header   lipgloss.Style
	selected lipgloss.Style
	cursor   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		label:    lipgloss.NewStyle().Width(labelWidth),
		focused:  lipgloss.NewStyle().Width(labelWidth).Bold(true).Foreground(lipgloss.Color("10")),
		invalid:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		message:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		button:   lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()),
		disabled: lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).Faint(true),
		header:   lipgloss.NewStyle().Faint(true),
		selected: lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15")),
		cursor:   lipgloss.NewStyle().Reverse(true),
	}
}
