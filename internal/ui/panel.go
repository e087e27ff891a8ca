package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel frames lines in a box using the current theme.
func Panel(lines []string) string {
	t := Current()
	border := lipgloss.NewStyle().
		Border(t.CardBorder).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}
