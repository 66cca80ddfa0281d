package ui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#0969DA")
	accentColor  = lipgloss.Color("#2DA44E")
	warningColor = lipgloss.Color("#D29922")
	errorColor   = lipgloss.Color("#CF222E")
	dimColor     = lipgloss.Color("#6E7681")
	linkColor    = lipgloss.Color("#58A6FF")
	scoreColor   = lipgloss.Color("#F778BA")

	HeaderStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor)

	LabelStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Width(28)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(linkColor).
			Underline(true)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(scoreColor).
			Bold(true)
)
