package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Bold(true)

	dayStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Right)

	todayStyle = dayStyle.
			Foreground(lipgloss.Color("10")).
			Bold(true)

	selectedStyle = dayStyle.
			Reverse(true).
			Bold(true)

	workDayStyle = dayStyle.
			Foreground(lipgloss.Color("14"))

	overnightStyle = dayStyle.
			Foreground(lipgloss.Color("13"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1)
)
