package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/hostsnap/internal/snapname"
)

// uploadModal asks for the path of a snapshot file and submits it. The name
// is checked locally first so a bad name never reaches the API.
type uploadModal struct {
	input  textinput.Model
	submit func(path string) tea.Cmd
	busy   bool
	err    string
}

func newUploadModal(submit func(path string) tea.Cmd) uploadModal {
	ti := textinput.New()
	ti.Placeholder = "path/to/host_10.0.0.5_2024-01-15T10-30-00Z.json"
	ti.CharLimit = 1024
	ti.Width = 56
	ti.Focus()
	return uploadModal{input: ti, submit: submit}
}

func (u uploadModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case uploadMsg:
		u.busy = false
		if msg.err != nil {
			u.err = msg.err.Error()
			return u, nil, false
		}
		return u, nil, true

	case tea.KeyMsg:
		if u.busy {
			if key.Matches(msg, keys.Escape) {
				return u, nil, true
			}
			return u, nil, false
		}
		switch {
		case key.Matches(msg, keys.Escape):
			return u, nil, true
		case key.Matches(msg, keys.Confirm):
			path := strings.TrimSpace(u.input.Value())
			if path == "" {
				u.err = "enter the path of a snapshot file"
				return u, nil, false
			}
			if _, err := snapname.Validate(path); err != nil {
				u.err = err.Error()
				return u, nil, false
			}
			u.err = ""
			u.busy = true
			return u, u.submit(path), false
		}
	}

	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	return u, cmd, false
}

func (u uploadModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Upload snapshot"))
	b.WriteString("\n\n")
	b.WriteString(u.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Expected " + snapname.Pattern))
	b.WriteString("\n")

	switch {
	case u.busy:
		b.WriteString(styles.WarningText.Render("Uploading..."))
	case u.err != "":
		b.WriteString(styles.DangerText.Width(60).Render(u.err))
	default:
		b.WriteString(styles.MutedText.Render("enter upload  esc cancel"))
	}

	return placeModal(theme, width, height, 66, b.String())
}
