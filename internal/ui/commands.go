package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/hostsnap/internal/browse"
	"github.com/five82/hostsnap/internal/snapshot"
	"github.com/five82/hostsnap/internal/state"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type timestampsMsg struct {
	tok  browse.Token
	list []string
	err  error
}

type contentMsg struct {
	tok     browse.Token
	content json.RawMessage
	err     error
}

type diffMsg struct {
	tok    browse.Token
	result snapshot.DiffResult
	err    error
}

type uploadMsg struct {
	filename string
	err      error
}

type clipboardMsg struct {
	what string
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// refreshHostsCmd asks the API for the host list now instead of waiting for
// the next poll, and records the result in the store.
func (m Model) refreshHostsCmd() tea.Cmd {
	ctx, client, store, timeout := m.ctx, m.client, m.store, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		hosts, err := client.ListHosts(ctx)
		store.Update(hosts, err)
		return snapshotMsg(store.Snapshot())
	}
}

// runIntents turns the fetches requested by a transition into commands. The
// spinner is started alongside so the pane animates while they are awaited.
func (m Model) runIntents(intents []browse.Intent) tea.Cmd {
	if len(intents) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(intents)+1)
	for _, intent := range intents {
		cmds = append(cmds, m.fetchCmd(intent))
	}
	cmds = append(cmds, m.spinner.Tick)
	return tea.Batch(cmds...)
}

func (m Model) fetchCmd(intent browse.Intent) tea.Cmd {
	parent, client, timeout := m.ctx, m.client, m.timeout
	switch in := intent.(type) {
	case browse.FetchTimestamps:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(parent, timeout)
			defer cancel()
			list, err := client.ListTimestamps(ctx, in.Host)
			return timestampsMsg{tok: in.Tok, list: list, err: err}
		}
	case browse.FetchContent:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(parent, timeout)
			defer cancel()
			content, err := client.GetSnapshot(ctx, in.Host, in.A)
			return contentMsg{tok: in.Tok, content: content, err: err}
		}
	case browse.FetchDiff:
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(parent, timeout)
			defer cancel()
			result, err := client.GetDiff(ctx, in.Host, in.A, in.B)
			return diffMsg{tok: in.Tok, result: result, err: err}
		}
	default:
		m.logger.Error("unknown intent", "type", fmt.Sprintf("%T", intent))
		return nil
	}
}

// uploadCmd reads the file at path and sends it under its base name.
func (m Model) uploadCmd(path string) tea.Cmd {
	parent, client, timeout := m.ctx, m.client, m.timeout
	return func() tea.Msg {
		name := filepath.Base(path)
		f, err := os.Open(path)
		if err != nil {
			return uploadMsg{filename: name, err: fmt.Errorf("open snapshot: %w", err)}
		}
		defer func() { _ = f.Close() }()

		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return uploadMsg{filename: name, err: client.Upload(ctx, name, f)}
	}
}

func (m Model) copyCmd(text, what string) tea.Cmd {
	write := m.copyFn
	return func() tea.Msg {
		return clipboardMsg{what: what, err: write(text)}
	}
}
