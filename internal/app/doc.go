// Package app provides the orchestration layer for the hostsnap TUI.
//
// # Overview
//
// This package wires together configuration, logging, the snapshot API
// client, the host store and the UI. It is the composition root where all
// dependencies are initialized and connected.
//
// # Architecture
//
//  1. Load ~/.config/hostsnap/config.toml and apply flag overrides
//  2. Send logs to the configured log file (the TUI owns the terminal)
//  3. Create the snapshot.Client and the shared state.Store
//  4. Fetch the host list once, then keep it fresh with a background poller
//  5. Start the TUI and block until the user exits or the context is cancelled
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> LoadConfig()          config file + overrides
//	       ├─────> logging.Setup()       slog to the log file
//	       ├─────> snapshot.NewClient()  HTTP client for the API
//	       ├─────> StartPoller()         GET /api/host/all in the background
//	       └─────> ui.Run()              TUI (blocks)
//
// # Polling Behavior
//
// The poller lists hosts every poll_interval (default 10s). Failures are
// recorded in the store, which keeps the last good list, and each consecutive
// failure doubles the wait up to 30 seconds. The UI reads store snapshots on
// its own tick, so a slow API never blocks the interface. Timestamps, snapshot
// content and diffs are fetched on demand by the UI itself.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid config file
//   - Log file cannot be opened
//   - Malformed api_base
//
// Recoverable errors (logged, polling continues):
//   - Host list failures and timeouts
package app
