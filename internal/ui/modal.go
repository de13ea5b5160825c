package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a dialog drawn over the panes. It owns every key while open;
// Update reports true once it wants to be dismissed.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// placeModal frames body in an accent border of boxWidth and centers it in
// the screen.
func placeModal(theme Theme, width, height, boxWidth int, body string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(body),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
