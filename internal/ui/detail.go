package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hostsnap/internal/ansi"
	"github.com/five82/hostsnap/internal/browse"
	"github.com/five82/hostsnap/internal/snapshot"
)

// renderDetailPane shows the snapshot of A, or the diff of A and B while
// comparing. A spinner replaces the viewport while the shown fetch is awaited.
func (m Model) renderDetailPane(width, height int) string {
	styles := m.theme.Styles()
	focused := m.focus == paneDetail

	body := m.detail.View()
	if kind, ok := m.detailKind(); ok && m.sel.Awaiting(kind) {
		body = m.spinner.View() + " " + styles.MutedText.Render("Loading "+kind.String()+"...")
	}
	return m.renderBox(m.detailTitle(width-boxChromeWidth), body, width, height, focused)
}

// detailKind reports which fetch the detail pane is showing, if any.
func (m Model) detailKind() (browse.Kind, bool) {
	switch {
	case m.sel.Comparing() && m.sel.TimestampB() != "":
		return browse.KindDiff, true
	case m.sel.TimestampA() != "" && !m.sel.Comparing():
		return browse.KindContent, true
	default:
		return 0, false
	}
}

func (m Model) detailTitle(width int) string {
	switch {
	case m.sel.Comparing() && m.sel.TimestampB() != "":
		return truncateMiddle("Diff "+m.sel.TimestampA()+" → "+m.sel.TimestampB(), width)
	case m.sel.Comparing():
		return truncateMiddle("Compare "+m.sel.TimestampA(), width)
	case m.sel.TimestampA() != "":
		return truncateMiddle(paneDetail.title()+" "+m.sel.TimestampA()+" ["+string(m.format)+"]", width)
	default:
		return paneDetail.title()
	}
}

// refreshDetail re-renders the viewport content from the selection.
func (m *Model) refreshDetail() {
	m.detail.SetContent(m.detailContent())
}

func (m Model) detailContent() string {
	styles := m.theme.Styles()
	sel := m.sel

	switch {
	case sel.Host() == "":
		return styles.MutedText.Render("Select a host to browse its snapshots.")
	case sel.TimestampA() == "":
		return styles.MutedText.Render("Select a timestamp.")
	case sel.Comparing():
		return m.diffContent()
	}

	if msg := sel.Err(browse.KindContent); msg != "" {
		return errorBlock(styles, msg)
	}
	content := sel.Content()
	if len(content) == 0 {
		return ""
	}
	text, err := snapshot.Pretty(content, m.format)
	if err != nil {
		return styles.WarningText.Render("Snapshot is not valid JSON; showing it raw.") + "\n\n" +
			styles.Text.Render(string(content))
	}
	return renderLines(text, styles.Text)
}

func (m Model) diffContent() string {
	styles := m.theme.Styles()
	sel := m.sel

	if sel.TimestampB() == "" {
		return styles.MutedText.Render("Choose a second timestamp to compare with " + sel.TimestampA() + ".")
	}
	if msg := sel.Err(browse.KindDiff); msg != "" {
		return errorBlock(styles, msg)
	}
	diff, ok := sel.Diff()
	if !ok {
		return ""
	}

	var b strings.Builder
	label := strings.ToUpper(string(diff.Status))
	b.WriteString(styles.VerdictStyle(diff.Status).Render(label))
	b.WriteString("\n\n")
	if strings.TrimSpace(diff.Differences) == "" {
		if diff.Identical() {
			b.WriteString(styles.MutedText.Render("The snapshots are identical."))
		} else {
			b.WriteString(styles.MutedText.Render("No differences reported."))
		}
		return b.String()
	}
	b.WriteString(renderRuns(ansi.Parse(diff.Differences), styles.Text))
	return b.String()
}

func errorBlock(styles Styles, msg string) string {
	return styles.DangerText.Render("Error") + "\n" +
		styles.Text.Render(msg) + "\n\n" +
		styles.FaintText.Render("Press r to retry.")
}

// renderRuns renders styled runs with base, switching the foreground to each
// run's color. Lines are styled one at a time so that the viewport can cut the
// result on newlines without losing color.
func renderRuns(runs ansi.Runs, base lipgloss.Style) string {
	var b strings.Builder
	for _, run := range runs {
		style := base
		if color, ok := run.Style.Color(); ok {
			style = base.Foreground(lipgloss.Color(color))
		}
		b.WriteString(renderLines(run.Text, style))
	}
	return b.String()
}

func renderLines(text string, style lipgloss.Style) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
