package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens value to limit display cells, adding an ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 1 {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, "…")
}

// truncateMiddle keeps both ends of value, which suits paths and long
// timestamps where the tail carries the detail.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return runewidth.Truncate(value, limit, "")
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix

	runes := []rune(value)
	tail := make([]rune, 0, suffix)
	width := 0
	for i := len(runes) - 1; i >= 0; i-- {
		w := runewidth.RuneWidth(runes[i])
		if width+w > suffix {
			break
		}
		width += w
		tail = append([]rune{runes[i]}, tail...)
	}
	return runewidth.Truncate(value, prefix, "") + "…" + string(tail)
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

// maxInt returns the larger of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minInt returns the smaller of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ternary returns a if cond is true, otherwise b.
func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
