package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func writeLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostsnap.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	var all []string
	for i := 1; i <= 10; i++ {
		all = append(all, fmt.Sprintf(`time=2024-10-10T14:32:%02dZ level=INFO msg="line %d"`, i, i))
	}
	path := writeLog(t, all)

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: all},
		{name: "read all (negative)", maxLines: -1, expected: all},
		{name: "read partial (5)", maxLines: 5, expected: all[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: all},
		{name: "read more than exists (20)", maxLines: 20, expected: all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(path, tt.maxLines, slog.LevelDebug)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadFiltersByLevel(t *testing.T) {
	path := writeLog(t, []string{
		`time=t1 level=DEBUG msg="stale response dropped" kind=content`,
		`time=t2 level=INFO msg="hostsnap starting"`,
		`time=t3 level=WARN msg="fetch failed" kind=diff`,
		`  continuation of the warning`,
		`time=t4 level=DEBUG msg=tick`,
		`  continuation of the debug record`,
		`time=t5 level=ERROR msg="poll failed"`,
	})

	got, err := Read(path, 0, slog.LevelWarn)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []string{
		`time=t3 level=WARN msg="fetch failed" kind=diff`,
		`  continuation of the warning`,
		`time=t5 level=ERROR msg="poll failed"`,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Read() = %v, want %v", got, want)
	}

	got, err = Read(path, 2, slog.LevelWarn)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, want[1:]) {
		t.Errorf("Read() = %v, want %v", got, want[1:])
	}
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got != nil {
		t.Errorf("Read() = %v, want nil", got)
	}
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		line  string
		level slog.Level
		ok    bool
	}{
		{line: `time=x level=INFO msg=hi`, level: slog.LevelInfo, ok: true},
		{line: `level=WARN msg=hi`, level: slog.LevelWarn, ok: true},
		{line: `time=x level=DEBUG`, level: slog.LevelDebug, ok: true},
		{line: `time=x level=ERROR+2 msg=hi`, level: slog.LevelError + 2, ok: true},
		{line: `time=x msg="no level here"`},
		{line: `time=x sublevel=INFO`},
		{line: `time=x level= msg=hi`},
		{line: `time=x level=LOUD msg=hi`},
		{line: ``},
	}

	for _, tt := range tests {
		level, ok := LevelOf(tt.line)
		if ok != tt.ok || level != tt.level {
			t.Errorf("LevelOf(%q) = %v, %v; want %v, %v", tt.line, level, ok, tt.level, tt.ok)
		}
	}
}

func TestColorize(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	line := `time=x level=ERROR msg="poll failed"`

	color.NoColor = true
	if got := Colorize(line); got != line {
		t.Errorf("Colorize() with color disabled = %q, want %q", got, line)
	}

	color.NoColor = false
	got := Colorize(line)
	if !strings.HasPrefix(got, "time=x level=\x1b[") {
		t.Errorf("Colorize() = %q, want an escape after level=", got)
	}
	// fatih/color closes bold with 22 so only the intensity is undone.
	if !strings.HasSuffix(got, "ERROR\x1b[0;22m msg=\"poll failed\"") {
		t.Errorf("Colorize() = %q, want the rest of the line untouched", got)
	}

	info := `time=x level=INFO msg=started`
	if got := Colorize(info); got != "time=x level=\x1b[32mINFO\x1b[0m msg=started" {
		t.Errorf("Colorize(%q) = %q, want a green level", info, got)
	}

	plain := "  continuation"
	if got := Colorize(plain); got != plain {
		t.Errorf("Colorize(%q) = %q, want it unchanged", plain, got)
	}
}
