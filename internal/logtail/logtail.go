package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Read returns at most maxLines lines from the end of the log at path, keeping
// only records at or above minLevel. Lines without a level= field belong to
// the record before them. A missing file yields no lines; maxLines <= 0 keeps
// every matching line.
func Read(path string, maxLines int, minLevel slog.Level) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var ring []string
	if maxLines > 0 {
		ring = make([]string, maxLines)
	}
	var all []string
	count, idx := 0, 0
	keep := true

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if level, ok := LevelOf(line); ok {
			keep = level >= minLevel
		}
		if !keep {
			continue
		}
		if maxLines <= 0 {
			all = append(all, line)
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if maxLines <= 0 {
		return all, nil
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// LevelOf extracts the level of a slog text record.
func LevelOf(line string) (slog.Level, bool) {
	value, _, ok := levelField(line)
	if !ok {
		return 0, false
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, false
	}
	return level, true
}

// levelField finds the level=VALUE pair and returns VALUE with the offset of
// the pair in line.
func levelField(line string) (string, int, bool) {
	start := -1
	if strings.HasPrefix(line, "level=") {
		start = 0
	} else if i := strings.Index(line, " level="); i >= 0 {
		start = i + 1
	}
	if start < 0 {
		return "", 0, false
	}
	value := line[start+len("level="):]
	if end := strings.IndexByte(value, ' '); end >= 0 {
		value = value[:end]
	}
	if value == "" {
		return "", 0, false
	}
	return value, start, true
}

var (
	debugColor = color.New(color.FgCyan)
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow, color.Bold)
	errorColor = color.New(color.FgRed, color.Bold)
)

// Colorize highlights the level of a record for terminal output. Lines
// without a level come back unchanged, as does everything when color output
// is disabled.
func Colorize(line string) string {
	value, start, ok := levelField(line)
	if !ok {
		return line
	}
	level, ok := LevelOf(line)
	if !ok {
		return line
	}

	c := infoColor
	switch {
	case level >= slog.LevelError:
		c = errorColor
	case level >= slog.LevelWarn:
		c = warnColor
	case level < slog.LevelInfo:
		c = debugColor
	}
	end := start + len("level=") + len(value)
	return line[:start] + "level=" + c.Sprint(value) + line[end:]
}
