package ridetimer

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	clock   lipgloss.Style
	phase   lipgloss.Style
	prompt  lipgloss.Style
	done    lipgloss.Style
	aborted lipgloss.Style
	help    lipgloss.Style
	errMsg  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		clock:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1).Border(lipgloss.RoundedBorder()),
		phase:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		prompt:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		done:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		aborted: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		errMsg:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
