package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders segments on one background color. Lipgloss resets styling
// after every segment, which leaves gaps of terminal background between
// separately rendered pieces; BgStyle styles the separators too.
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

// NewBgStyle creates a background style helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with style, keeping spaces on the background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	wordStyle := style.Background(b.bg)
	if !strings.Contains(text, " ") {
		return wordStyle.Render(text)
	}
	words := strings.Split(text, " ")
	result := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			result = append(result, wordStyle.Render(w))
		} else {
			result = append(result, "")
		}
	}
	return strings.Join(result, b.space)
}

// Space returns a single styled space.
func (b BgStyle) Space() string {
	return b.space
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Sep returns a styled separator string.
func (b BgStyle) Sep(sep string) string {
	return lipgloss.NewStyle().Background(b.bg).Render(sep)
}

// Join joins parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}
