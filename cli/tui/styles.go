// Package tui provides Bubble Tea views for the catalogi CLI.
//
// TUI rules:
//   - TUI is opt-in only (--tui flag)
//   - TUI is read-only (describe and stats views)
//   - TUI uses the same data payloads as non-TUI rendering
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	successColor   = lipgloss.Color("#10B981") // Green
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	highlightColor = lipgloss.Color("#3B82F6") // Blue
)

// Styles for TUI components.
var (
	// TitleStyle for headers and titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// LabelStyle for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(18)

	// ValueStyle for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// RequiredStyle marks required configuration properties.
	RequiredStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	// SuccessStyle for success outcomes.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// WarningStyle for empty outcomes.
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// ErrorStyle for error outcomes.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// BoxStyle for bordered containers.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	// StatBoxStyle for stat display boxes.
	StatBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlightColor).
			Padding(0, 2).
			Width(20).
			Align(lipgloss.Center)

	// StatLabelStyle for stat labels.
	StatLabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Align(lipgloss.Center)

	// StatValueStyle for stat values.
	StatValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Align(lipgloss.Center)
)

// OutcomeStyle returns a style for an invocation outcome.
func OutcomeStyle(outcome string) lipgloss.Style {
	switch outcome {
	case "success":
		return SuccessStyle
	case "empty":
		return WarningStyle
	case "error":
		return ErrorStyle
	default:
		return ValueStyle
	}
}
