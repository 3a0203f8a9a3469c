package feed

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	group    lipgloss.Style
	item     lipgloss.Style
	meta     lipgloss.Style
	badge    lipgloss.Style
	empty    lipgloss.Style
	footer   lipgloss.Style
	errorMsg lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		group:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		item:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		empty:    lipgloss.NewStyle().Faint(true),
		footer:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		errorMsg: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
