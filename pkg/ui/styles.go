package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	successColor = lipgloss.AdaptiveColor{Light: "#22863a", Dark: "#85e89d"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#cb2431", Dark: "#f97583"}
	warningColor = lipgloss.AdaptiveColor{Light: "#b08800", Dark: "#ffea7f"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6a737d", Dark: "#959da5"}
	headingColor = lipgloss.AdaptiveColor{Light: "#005cc5", Dark: "#79b8ff"}
)

// Base styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(headingColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	installStyle = lipgloss.NewStyle().
			Foreground(successColor).
			SetString("+ ")

	removeStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			SetString("- ")

	deletedStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Strikethrough(true)
)
