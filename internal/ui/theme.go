package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#332D25")
	colorMuted  = lipgloss.Color("241")
	colorWarn   = lipgloss.Color("#C0392B")
	colorBorder = lipgloss.Color("#DBD6CA")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5F1E8")).Background(colorAccent).Padding(0, 1)
	dayStyle      = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	nameStyle     = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E67E22"))
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	deleteStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	totalStyle    = lipgloss.NewStyle().Bold(true).MarginTop(1)
	statusStyle   = lipgloss.NewStyle().Italic(true)
	emptyStyle    = lipgloss.NewStyle().Bold(true).MarginTop(1)
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(1, 2).MarginTop(1)
	dialogTitle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	checkoutStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorAccent).Padding(0, 2).MarginTop(1)
)
