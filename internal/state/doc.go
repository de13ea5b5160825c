// Package state shares the host list between the background poller and the UI.
//
// # Overview
//
// The poller refreshes the list of known hosts on its own schedule while the
// UI reads it whenever it redraws. Store is the meeting point:
//
//	Producer (poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ ListHosts()    │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  wait/backoff  │            │  render panes   │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
//	// Success: replace the list
//	store.Update(hosts, nil)
//	→ snapshot.Hosts = hosts, HasHosts = true
//	→ snapshot.LastError = nil, ConsecutiveFailures = 0
//
//	// Failure: keep the list, record the error
//	store.Update(nil, err)
//	→ snapshot.Hosts = <unchanged>
//	→ snapshot.LastError = err, ConsecutiveFailures++
//
// The UI keeps showing the last good list while the status bar reports the
// failure. After two consecutive failures Snapshot.IsOffline is true.
//
// # Copying
//
// Update and Snapshot copy the host slice and Snapshot wraps the error, so a
// returned Snapshot never aliases the stored one.
//
// The zero Store is ready to use.
package state
