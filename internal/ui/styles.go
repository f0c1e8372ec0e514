package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Header        lipgloss.Style
	Sidebar       lipgloss.Style
	SessionItem   lipgloss.Style
	SessionActive lipgloss.Style
	UserBubble    lipgloss.Style
	BotBubble     lipgloss.Style
	CrisisBanner  lipgloss.Style
	Typing        lipgloss.Style
	Hint          lipgloss.Style
	ErrorLine     lipgloss.Style
	EmptyHeading  lipgloss.Style
	Starter       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")).
			Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		SessionItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		SessionActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		UserBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("23")).
			Padding(0, 1),
		BotBubble: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		CrisisBanner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Foreground(lipgloss.Color("203")).
			Padding(0, 1),
		Typing: lipgloss.NewStyle().
			Faint(true).
			Italic(true),
		Hint: lipgloss.NewStyle().
			Faint(true),
		ErrorLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		EmptyHeading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		Starter: lipgloss.NewStyle().
			Faint(true).
			Italic(true),
	}
}
