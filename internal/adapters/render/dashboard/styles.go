package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	section    lipgloss.Style
	statBox    lipgloss.Style
	statLabel  lipgloss.Style
	statValue  lipgloss.Style
	name       lipgloss.Style
	detail     lipgloss.Style
	due        lipgloss.Style
	overdue    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	personal   lipgloss.Style
	business   lipgloss.Style
	barEmpty   lipgloss.Style
	label      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section:    lipgloss.NewStyle().MarginTop(1),
		statBox:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 2).MarginRight(1),
		statLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		statValue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		name:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		due:        lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		overdue:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		personal:   lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		business:   lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(9),
	}
}
