package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/hostsnap/internal/ansi"
	"github.com/five82/hostsnap/internal/browse"
	"github.com/five82/hostsnap/internal/snapname"
	"github.com/five82/hostsnap/internal/snapshot"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		var (
			cmd    tea.Cmd
			closed bool
		)
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshDetail()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focus = (m.focus + 1) % paneCount
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.focus = (m.focus + paneCount - 1) % paneCount
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.sel.Comparing() {
			m.sel, _ = m.sel.ExitCompareMode()
			m.tsCursor = m.cursorOf(m.sel.TimestampA())
			m.refreshDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.Upload):
		m.modal = newUploadModal(m.uploadCmd)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()

	case key.Matches(msg, m.keys.ToggleFormat):
		m.format = m.format.Toggle()
		m.savePrefs()
		m.refreshDetail()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m.copyDetail()

	case key.Matches(msg, m.keys.Compare):
		return m.enterCompare()

	case key.Matches(msg, m.keys.Select):
		return m.selectCurrent()
	}

	return m.navigate(msg), nil
}

// selectCurrent acts on the row under the cursor of the focused pane.
func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	var intents []browse.Intent
	switch m.focus {
	case paneHosts:
		hosts := m.snapshot.Hosts
		if len(hosts) == 0 {
			return m, nil
		}
		m.sel, intents = m.sel.SelectHost(hosts[m.hostCursor])
		m.tsCursor = 0
		m.focus = paneTimestamps
	case paneTimestamps:
		list := m.visibleTimestamps()
		if len(list) == 0 {
			return m, nil
		}
		ts := list[m.tsCursor]
		if m.sel.Comparing() {
			m.sel, intents = m.sel.SelectTimestampB(ts)
		} else {
			m.sel, intents = m.sel.SelectTimestampA(ts)
		}
	default:
		return m, nil
	}
	m.refreshDetail()
	return m, m.runIntents(intents)
}

func (m Model) enterCompare() (tea.Model, tea.Cmd) {
	if m.sel.TimestampA() == "" || m.sel.Comparing() {
		return m, nil
	}
	var intents []browse.Intent
	m.sel, intents = m.sel.EnterCompareMode()
	m.focus = paneTimestamps
	m.tsCursor = 0
	m.refreshDetail()
	return m, m.runIntents(intents)
}

// refresh reloads the host list and retries every fetch that failed.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.refreshHostsCmd()}
	for _, kind := range []browse.Kind{browse.KindTimestamps, browse.KindContent, browse.KindDiff} {
		if m.sel.Err(kind) == "" {
			continue
		}
		var intents []browse.Intent
		m.sel, intents = m.sel.Retry(kind)
		cmds = append(cmds, m.runIntents(intents))
	}
	m.setStatus("refreshing", false)
	m.refreshDetail()
	return m, tea.Batch(cmds...)
}

// copyDetail copies what the detail pane shows: the diff without escape
// sequences while comparing, otherwise the formatted snapshot.
func (m Model) copyDetail() (tea.Model, tea.Cmd) {
	if diff, ok := m.sel.Diff(); ok && m.sel.Comparing() {
		return m, m.copyCmd(ansi.Strip(diff.Differences), "diff")
	}
	content := m.sel.Content()
	if len(content) == 0 {
		m.setStatus("nothing to copy", true)
		return m, nil
	}
	text, err := snapshot.Pretty(content, m.format)
	if err != nil {
		text = string(content)
	}
	return m, m.copyCmd(text, "snapshot")
}

// handleUploaded reports an upload. A new snapshot for the selected host is
// picked up by reloading its timestamps.
func (m Model) handleUploaded(msg uploadMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		var closed bool
		m.modal, _, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
	}
	if msg.err != nil {
		m.logger.Warn("upload failed", "file", msg.filename, "error", msg.err)
		m.setStatus("upload failed: "+msg.err.Error(), true)
		return m, nil
	}

	m.logger.Info("uploaded snapshot", "file", msg.filename)
	m.setStatus("uploaded "+msg.filename, false)

	cmds := []tea.Cmd{m.refreshHostsCmd()}
	if name, err := snapname.Validate(msg.filename); err == nil && name.Host == m.sel.Host() {
		var intents []browse.Intent
		m.sel, intents = m.sel.Retry(browse.KindTimestamps)
		cmds = append(cmds, m.runIntents(intents))
	}
	return m, tea.Batch(cmds...)
}
