package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hostsnap/internal/browse"
)

// renderHeader renders the connection status and the current selection.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("hostsnap", styles.Logo)}

	snap := m.snapshot
	switch {
	case snap.LastError != nil && (snap.IsOffline() || !snap.HasHosts):
		parts = append(parts,
			bg.Render("● "+classifyConnectionError(snap.LastError), styles.DangerText),
			bg.Render("Retrying...", styles.WarningText.Bold(true)),
		)
	case !snap.HasHosts:
		target := "API"
		if m.apiBase != "" {
			target = truncateMiddle(m.apiBase, 40)
		}
		parts = append(parts, bg.Render("Connecting to "+target+"...", styles.WarningText.Bold(true)))
	default:
		parts = append(parts,
			bg.Render("● ONLINE", styles.SuccessText),
			bg.Render("Hosts:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(snap.Hosts)), styles.Text),
		)
	}

	if host := m.sel.Host(); host != "" {
		sel := bg.Render("Host:", styles.MutedText) + bg.Space() + bg.Render(host, styles.Text)
		if a := m.sel.TimestampA(); a != "" && !compact {
			sel += bg.Spaces(2) + bg.Render("A:", styles.MutedText) + bg.Space() + bg.Render(a, styles.MarkedText)
		}
		if b := m.sel.TimestampB(); b != "" && !compact {
			sel += bg.Spaces(2) + bg.Render("B:", styles.MutedText) + bg.Space() + bg.Render(b, styles.InfoText)
		}
		parts = append(parts, sel)
	}

	if m.sel.Comparing() {
		parts = append(parts, bg.Render("COMPARE", styles.AccentText.Bold(true)))
	}

	if ts := formatUpdated(snap.LastUpdated, time.Now()); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(" " + bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the focused pane.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	colon := bg.Sep(":")
	hints := m.commandHints()
	segments := make([]string, 0, len(hints)+1)
	for _, binding := range hints {
		h := binding.Help()
		segments = append(segments,
			bg.Render(h.Key, styles.AccentText)+colon+bg.Render(h.Desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderStatusLine shows a recent flash message, or the last poll error.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	width := maxInt(m.width-2, 1)

	if m.status != "" && time.Since(m.statusAt) < statusTTL {
		style := styles.InfoText
		if m.statusErr {
			style = styles.DangerText
		}
		return " " + style.Render(truncate(m.status, width))
	}
	if err := m.snapshot.LastError; err != nil {
		return " " + styles.DangerText.Render(truncate("hosts: "+err.Error(), width))
	}
	if msg, ok := m.currentError(); ok {
		return " " + styles.WarningText.Render(truncate(msg, width))
	}
	return " " + styles.FaintText.Render(truncate(m.sel.Phase().String(), width))
}

// currentError returns the first fetch error on the selection.
func (m Model) currentError() (string, bool) {
	for _, kind := range []browse.Kind{browse.KindTimestamps, browse.KindContent, browse.KindDiff} {
		if msg := m.sel.Err(kind); msg != "" {
			return kind.String() + ": " + msg, true
		}
	}
	return "", false
}

// formatUpdated formats the last update time with a relative indicator.
func formatUpdated(updated, now time.Time) string {
	if updated.IsZero() {
		return ""
	}

	since := now.Sub(updated)
	out := updated.Format("15:04:05")

	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}
