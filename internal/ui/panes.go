package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hostsnap/internal/browse"
	"github.com/five82/hostsnap/internal/snapshot"
)

// renderBox draws a rounded pane of exactly width x height cells with a title
// row above content.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	border := m.theme.Border
	titleStyle := m.theme.Styles().MutedText.Bold(true)
	if focused {
		border = m.theme.BorderFocus
		titleStyle = m.theme.Styles().AccentText.Bold(true)
	}
	inner := maxInt(width-boxChromeWidth, 1)

	body := titleStyle.Render(truncate(title, inner)) + "\n" + content
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(maxInt(width-2, 1)).
		Height(maxInt(height-2, 1)).
		MaxHeight(height).
		Render(body)
}

func (m Model) renderHostPane(width, height int) string {
	styles := m.theme.Styles()
	inner := maxInt(width-boxChromeWidth, 1)
	rows := maxInt(height-boxChromeHeight, 1)
	focused := m.focus == paneHosts
	title := paneHosts.title()

	hosts := m.snapshot.Hosts
	var content string
	switch {
	case len(hosts) > 0:
		title += " (" + strconv.Itoa(len(hosts)) + ")"
		markers := make([]string, len(hosts))
		for i, host := range hosts {
			if host == m.sel.Host() {
				markers[i] = "▸"
			}
		}
		content = m.renderList(hosts, markers, m.hostCursor, inner, rows, focused)
	case m.snapshot.LastError != nil:
		content = styles.DangerText.Render(truncate("unreachable", inner)) + "\n" +
			styles.FaintText.Render(truncate("r to retry", inner))
	case m.snapshot.HasHosts:
		content = styles.MutedText.Render("No hosts")
	default:
		content = styles.MutedText.Render("Loading...")
	}
	return m.renderBox(title, content, width, height, focused)
}

func (m Model) renderTimestampPane(width, height int) string {
	styles := m.theme.Styles()
	inner := maxInt(width-boxChromeWidth, 1)
	rows := maxInt(height-boxChromeHeight, 1)
	focused := m.focus == paneTimestamps

	title := paneTimestamps.title()
	if m.sel.Comparing() {
		title = "Compare with"
	}

	var content string
	switch host := m.sel.Host(); {
	case host == "":
		content = styles.MutedText.Render(truncate("Select a host", inner))
	case m.sel.Awaiting(browse.KindTimestamps):
		content = m.spinner.View() + " " + styles.MutedText.Render("Loading...")
	case m.sel.Err(browse.KindTimestamps) != "":
		content = styles.DangerText.Width(inner).Render(m.sel.Err(browse.KindTimestamps)) + "\n" +
			styles.FaintText.Render(truncate("r to retry", inner))
	default:
		list := m.visibleTimestamps()
		if len(list) == 0 {
			content = styles.MutedText.Render(truncate("No snapshots", inner))
			break
		}
		labels := make([]string, len(list))
		markers := make([]string, len(list))
		for i, ts := range list {
			labels[i] = snapshot.FormatTimestamp(ts)
			switch ts {
			case m.sel.TimestampA():
				markers[i] = "A"
			case m.sel.TimestampB():
				markers[i] = "B"
			}
		}
		content = m.renderList(labels, markers, m.tsCursor, inner, rows, focused)
	}
	return m.renderBox(title, content, width, height, focused)
}

// renderList renders the rows that fit around cursor. A non-empty marker is
// drawn in the gutter of its row.
func (m Model) renderList(items, markers []string, cursor, width, rows int, focused bool) string {
	styles := m.theme.Styles()
	start := windowStart(cursor, len(items), rows)
	end := minInt(start+rows, len(items))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		gutter := "  "
		if markers[i] != "" {
			gutter = markers[i] + " "
		}
		text := padRight(truncate(items[i], width-2), width-2)
		switch {
		case i == cursor && focused:
			lines = append(lines, styles.Selected.Render(gutter+text))
		case markers[i] != "":
			lines = append(lines, styles.MarkedText.Render(gutter)+styles.MarkedText.Render(text))
		case i == cursor:
			lines = append(lines, styles.MutedText.Render(gutter)+styles.Text.Underline(true).Render(text))
		default:
			lines = append(lines, styles.MutedText.Render(gutter)+styles.Text.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}
