// Package tui provides the interactive terminal form for the ECT calculator.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette shared by every view.
const (
	ColorHeader    = lipgloss.Color("39")  // blue
	ColorBorder    = lipgloss.Color("240") // gray
	ColorLabel     = lipgloss.Color("250") // light gray
	ColorValue     = lipgloss.Color("255") // white
	ColorMuted     = lipgloss.Color("243")
	ColorHighlight = lipgloss.Color("214") // orange
	ColorError     = lipgloss.Color("196") // red
	ColorOK        = lipgloss.Color("42")  // green
)

//nolint:gochecknoglobals // Styles are immutable values shared by the views.
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader).Border(lipgloss.NormalBorder()).BorderForeground(ColorBorder).Padding(0, 1)
	headerStyle    = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle     = lipgloss.NewStyle().Foreground(ColorValue)
	focusedStyle   = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	modifiedStyle  = lipgloss.NewStyle().Foreground(ColorHighlight)
	mutedStyle     = lipgloss.NewStyle().Foreground(ColorMuted)
	errorStyle     = lipgloss.NewStyle().Foreground(ColorError)
	governingStyle = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	ectStyle       = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
)
