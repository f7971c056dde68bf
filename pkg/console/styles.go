// Package console renders lint reports for humans and machines: a styled
// text layout for terminals and a stable JSON shape for CI and tooling.
package console

import "github.com/charmbracelet/lipgloss"

var (
	ColorError   = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#5FD7FF"}
	ColorStyle   = lipgloss.AdaptiveColor{Light: "#8700AF", Dark: "#D787FF"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FFF5F"}
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	styleStyle   = lipgloss.NewStyle().Foreground(ColorStyle)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	codeStyle    = lipgloss.NewStyle().Bold(true)
)
