package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// navigate moves the cursor of the focused list, or scrolls the detail pane.
func (m Model) navigate(msg tea.KeyMsg) Model {
	if m.focus == paneDetail {
		m.scrollDetail(msg)
		return m
	}

	cursor, n := &m.hostCursor, len(m.snapshot.Hosts)
	if m.focus == paneTimestamps {
		cursor, n = &m.tsCursor, len(m.visibleTimestamps())
	}
	if n == 0 {
		return m
	}

	page := maxInt(m.bodyHeight()-boxChromeHeight, 1)
	switch {
	case key.Matches(msg, m.keys.Up):
		*cursor--
	case key.Matches(msg, m.keys.Down):
		*cursor++
	case key.Matches(msg, m.keys.Top):
		*cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		*cursor = n - 1
	case key.Matches(msg, m.keys.PageUp):
		*cursor -= page
	case key.Matches(msg, m.keys.PageDown):
		*cursor += page
	case key.Matches(msg, m.keys.HalfPageUp):
		*cursor -= page / 2
	case key.Matches(msg, m.keys.HalfPageDown):
		*cursor += page / 2
	}
	*cursor = clampCursor(*cursor, n)
	return m
}

func (m *Model) scrollDetail(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.detail.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.detail.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		m.detail.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detail.GotoBottom()
	case key.Matches(msg, m.keys.PageUp):
		m.detail.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.detail.PageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detail.HalfPageUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detail.HalfPageDown()
	}
}

// cursorOf returns the row of ts in the timestamps pane, or 0.
func (m Model) cursorOf(ts string) int {
	for i, candidate := range m.visibleTimestamps() {
		if candidate == ts {
			return i
		}
	}
	return 0
}

// windowStart returns the first visible row so that cursor stays on screen.
func windowStart(cursor, total, visible int) int {
	if visible <= 0 || total <= visible {
		return 0
	}
	start := cursor - visible + 1
	if start < 0 {
		start = 0
	}
	if start > total-visible {
		start = total - visible
	}
	return start
}
