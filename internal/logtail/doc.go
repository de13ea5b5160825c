// Package logtail reads the end of the hostsnap log file.
//
// The TUI owns the terminal, so it logs to a file with slog's text handler.
// Read pulls the last N records from that file with a ring buffer, optionally
// dropping records below a level, and Colorize highlights the level= field
// when the result is printed by the logs command:
//
//	time=2024-10-10T14:32:15Z level=WARN msg="fetch failed" component=ui kind=content
//
// Read returns nil, nil for a log that does not exist yet.
package logtail
