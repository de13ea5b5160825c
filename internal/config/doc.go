// Package config loads the hostsnap client configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/hostsnap/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command-line flags override whatever Load returns; that happens in
// cmd/hostsnap, not here.
//
// # Default Values
//
//   - Config file: ~/.config/hostsnap/config.toml
//   - API endpoint: 127.0.0.1:8080
//   - Log file: ~/.local/share/hostsnap/hostsnap.log
//   - Request timeout: 10s
//   - Host poll interval: 10s
//
// # TOML Format
//
//	api_base = "snapshots.internal:8080"
//	log_file = "~/.local/share/hostsnap/hostsnap.log"
//	request_timeout = "10s"
//	poll_interval = "30s"
//
// Durations use Go syntax (time.ParseDuration) and must be positive.
//
// # Path Expansion
//
// A leading ~ in the config path or log_file is replaced with the user's home
// directory, and the result is made absolute.
//
// # Errors
//
// A missing file is not an error. Anything else is returned wrapped with its
// stage: "open config", "read config" or "parse config".
package config
