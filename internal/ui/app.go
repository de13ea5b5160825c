package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hostsnap/internal/browse"
	"github.com/five82/hostsnap/internal/prefs"
	"github.com/five82/hostsnap/internal/snapshot"
	"github.com/five82/hostsnap/internal/state"
)

// pane identifies a focusable pane.
type pane int

const (
	paneHosts pane = iota
	paneTimestamps
	paneDetail
	paneCount
)

func (p pane) title() string {
	switch p {
	case paneHosts:
		return "Hosts"
	case paneTimestamps:
		return "Timestamps"
	default:
		return "Snapshot"
	}
}

// Options configures the UI.
type Options struct {
	Context        context.Context
	Client         snapshot.Gateway
	Store          *state.Store
	Logger         *slog.Logger
	PollTick       time.Duration
	RequestTimeout time.Duration
	ThemeName      string
	Format         snapshot.Format
	PrefsPath      string
	APIBase        string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    snapshot.Gateway
	store     *state.Store
	logger    *slog.Logger
	prefsPath string
	pollTick  time.Duration
	timeout   time.Duration
	apiBase   string

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool
	focus  pane

	// Host list, refreshed from the store
	snapshot   state.Snapshot
	hostCursor int
	tsCursor   int

	// Selection
	sel    browse.State
	format snapshot.Format

	detail  viewport.Model
	spinner spinner.Model

	showHelp bool
	modal    Modal

	// Flash message in the status line
	status    string
	statusErr bool
	statusAt  time.Time

	copyFn func(string) error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	format := opts.Format
	if format == "" {
		format = snapshot.FormatJSON
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     store,
		logger:    logger.With("component", "ui"),
		prefsPath: prefsPath,
		pollTick:  pollTick,
		timeout:   timeout,
		apiBase:   opts.APIBase,
		theme:     GetTheme(opts.ThemeName),
		keys:      DefaultKeyMap(),
		format:    format,
		spinner:   sp,
		copyFn:    clipboard.WriteAll,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.pollTick),
		fetchSnapshotCmd(m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detail = viewport.New(0, 0)
		}
		m.ready = true
		m.resizeDetail()
		m.refreshDetail()
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.pollTick))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.hostCursor = clampCursor(m.hostCursor, len(m.snapshot.Hosts))
		return m, nil

	case timestampsMsg:
		next, applied := m.sel.TimestampsLoaded(msg.tok, msg.list, msg.err)
		if !applied {
			m.logStale(msg.tok)
			return m, nil
		}
		m.sel = next
		m.tsCursor = clampCursor(m.tsCursor, len(m.visibleTimestamps()))
		if msg.err != nil {
			m.logger.Warn("list timestamps failed", "host", msg.tok.Key.Host, "error", msg.err)
		}
		m.refreshDetail()
		return m, nil

	case contentMsg:
		next, applied := m.sel.ContentLoaded(msg.tok, msg.content, msg.err)
		if !applied {
			m.logStale(msg.tok)
			return m, nil
		}
		m.sel = next
		if msg.err != nil {
			m.logger.Warn("fetch snapshot failed", "host", msg.tok.Key.Host, "timestamp", msg.tok.Key.A, "error", msg.err)
		}
		m.refreshDetail()
		m.detail.GotoTop()
		return m, nil

	case diffMsg:
		next, applied := m.sel.DiffLoaded(msg.tok, msg.result, msg.err)
		if !applied {
			m.logStale(msg.tok)
			return m, nil
		}
		m.sel = next
		if msg.err != nil {
			m.logger.Warn("fetch diff failed", "host", msg.tok.Key.Host, "t1", msg.tok.Key.A, "t2", msg.tok.Key.B, "error", msg.err)
		}
		m.refreshDetail()
		m.detail.GotoTop()
		return m, nil

	case uploadMsg:
		return m.handleUploaded(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.setStatus("copy failed: "+msg.err.Error(), true)
		} else {
			m.setStatus("copied "+msg.what+" to clipboard", false)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.sel.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// renderMain renders header, command bar, the three panes and the status line.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderPanes())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m Model) renderPanes() string {
	hostsW, tsW, detailW := paneWidths(m.width)
	height := m.bodyHeight()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderHostPane(hostsW, height),
		m.renderTimestampPane(tsW, height),
		m.renderDetailPane(detailW, height),
	)
}

func (m Model) bodyHeight() int {
	return maxInt(m.height-chromeHeight, boxChromeHeight+1)
}

func (m *Model) resizeDetail() {
	_, _, detailW := paneWidths(m.width)
	m.detail.Width = maxInt(detailW-boxChromeWidth, 1)
	m.detail.Height = maxInt(m.bodyHeight()-boxChromeHeight, 1)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	m.statusAt = time.Now()
}

func (m Model) logStale(tok browse.Token) {
	m.logger.Debug("dropped stale response",
		"kind", tok.Kind.String(),
		"epoch", tok.Epoch,
		"host", tok.Key.Host,
	)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ContentFormat: string(m.format)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

// visibleTimestamps is the list the timestamps pane shows: every timestamp, or
// only the comparison candidates while comparing.
func (m Model) visibleTimestamps() []string {
	if m.sel.Comparing() {
		return m.sel.Candidates()
	}
	return m.sel.Timestamps()
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
