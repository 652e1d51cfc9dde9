package components

import (
	"charm.land/lipgloss/v2"

	"github.com/devika/tutora/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for aligned screen
// sections. Boxes rendered at this width line up vertically.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// StatPanel wraps a one-line stats summary in a double-border box.
func StatPanel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}
