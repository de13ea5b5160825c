// Package ui provides the terminal user interface for browsing host snapshots.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds the view state and a
// browse.State, the selection of host, timestamp A and, while comparing,
// timestamp B. Key presses call browse transitions; the fetches they request
// run as tea.Cmd goroutines against a snapshot.Gateway and come back as
// messages carrying the request token. A message whose token is no longer
// outstanding is dropped, so a slow answer for an earlier selection never
// replaces a newer one.
//
// # Package Structure
//
//   - app.go: Model, Options, Update/View and Run
//   - commands.go: messages and the commands that call the gateway
//   - input_handlers.go, navigation.go: key handling and cursor movement
//   - panes.go, detail.go: the hosts, timestamps and snapshot/diff panes
//   - header.go, help.go: status bar, command bar and help overlay
//   - upload.go, modal.go: the upload dialog
//   - theme.go, style_helpers.go: colors and background-safe rendering
//
// # Layout
//
//	┌ Hosts ┐┌ Timestamps ────┐┌ Snapshot ──────────────────┐
//	│▸ ...  ││A 2024-01-15 ...││ { "hostname": ... }        │
//	└───────┘└────────────────┘└────────────────────────────┘
//
// The host list comes from a state.Store that a background poller keeps
// current; the UI re-reads it on every tick.
//
// # Key Bindings
//
//   - Tab / Shift+Tab: Cycle panes
//   - j/k, g/G, Ctrl+D/Ctrl+U: Move or scroll
//   - Enter: Select host, timestamp A, or timestamp B while comparing
//   - c: Compare A with another timestamp; Esc leaves compare mode
//   - v: Toggle JSON/YAML
//   - y: Copy the snapshot or the uncolored diff
//   - u: Upload a snapshot file
//   - r: Refresh hosts and retry failed fetches
//   - T: Cycle theme
//   - h or ?: Help
//   - e or Ctrl+C: Exit
package ui
