package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive palette. The dark side follows the original dark mode colors
// (near-black background, light text, blue links); the light side its sepia
// counterpart. "auto" leaves detection to lipgloss.
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#0066cc", Dark: "#4fa3ff"}
	colorText   = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#9e9e9e"}
	colorError  = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#ef5350"}
	colorBorder = lipgloss.AdaptiveColor{Light: "#b6afa8", Dark: "#495057"}
	colorFocus  = lipgloss.AdaptiveColor{Light: "#0066cc", Dark: "#4fa3ff"}
	colorBadge  = lipgloss.AdaptiveColor{Light: "#e65100", Dark: "#ffa726"}
)

var (
	styleTitle         = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleTitleSelected = lipgloss.NewStyle().Foreground(colorText).Bold(true).Underline(true)
	styleURL           = lipgloss.NewStyle().Foreground(colorMuted)
	styleSnippet       = lipgloss.NewStyle().Foreground(colorText)
	styleStatus        = lipgloss.NewStyle().Foreground(colorMuted)
	styleStatusError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	stylePriority      = lipgloss.NewStyle().Foreground(colorBadge).Bold(true)
	styleCursor        = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleHelp          = lipgloss.NewStyle().Foreground(colorMuted).Faint(true)

	styleInputBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	styleInputBoxFocused = styleInputBox.BorderForeground(colorFocus)
)

// applyTheme forces the background assumption for explicit "dark"/"light"
// settings; "auto" keeps lipgloss's terminal detection.
func applyTheme(theme string) {
	switch theme {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}
