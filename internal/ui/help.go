package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var helpSectionTitles = []string{"Navigation", "Snapshots", "Actions", "General"}

// renderHelp renders the help overlay from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 34)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	groups := m.keys.FullHelp()
	for i, group := range groups {
		if i < len(helpSectionTitles) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpSectionTitles[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	return placeModal(m.theme, m.width, m.height, 48, b.String())
}

// commandHints returns the short key hints for the command bar, depending on
// what the focused pane can do.
func (m Model) commandHints() []key.Binding {
	k := m.keys
	hints := []key.Binding{k.Tab}
	switch m.focus {
	case paneHosts:
		hints = append(hints, k.Select, k.Refresh, k.Upload)
	case paneTimestamps:
		hints = append(hints, k.Select)
		if m.sel.Comparing() {
			hints = append(hints, k.Escape)
		} else if m.sel.TimestampA() != "" {
			hints = append(hints, k.Compare)
		}
	case paneDetail:
		hints = append(hints, k.HalfPageDown, k.HalfPageUp, k.ToggleFormat, k.Copy)
	}
	return append(hints, k.Help)
}
