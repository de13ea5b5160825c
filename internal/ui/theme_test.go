package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hostsnap/internal/snapshot"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}

	names[0] = "mutated"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames() shares its backing array")
	}
}

func TestNextTheme(t *testing.T) {
	tests := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"unknown":  "Nightfox",
	}
	for current, want := range tests {
		if got := NextTheme(current); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", current, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(unknown).Name = %q, want Nightfox", got)
	}
	if got := GetTheme("").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(\"\").Name = %q, want Nightfox", got)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := map[string]string{
			"Background":    th.Background,
			"Surface":       th.Surface,
			"SurfaceAlt":    th.SurfaceAlt,
			"FocusBg":       th.FocusBg,
			"SelectionBg":   th.SelectionBg,
			"SelectionText": th.SelectionText,
			"Marked":        th.Marked,
			"Border":        th.Border,
			"BorderFocus":   th.BorderFocus,
			"Text":          th.Text,
			"Muted":         th.Muted,
			"Faint":         th.Faint,
			"Accent":        th.Accent,
			"Success":       th.Success,
			"Warning":       th.Warning,
			"Danger":        th.Danger,
			"Info":          th.Info,
		}
		for field, value := range colors {
			if len(value) != 7 || value[0] != '#' {
				t.Fatalf("%s.%s = %q, want a #rrggbb color", name, field, value)
			}
		}
	}
}

func TestVerdictStyleUsesVerdictColor(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles()

	if got := styles.VerdictStyle(snapshot.DiffIdentical).GetBackground(); got != lipgloss.Color(th.Success) {
		t.Fatalf("identical background = %v, want %v", got, th.Success)
	}
	if got := styles.VerdictStyle(snapshot.DiffDifferent).GetBackground(); got != lipgloss.Color(th.Warning) {
		t.Fatalf("different background = %v, want %v", got, th.Warning)
	}
	if got := styles.VerdictStyle("bogus").GetBackground(); got != lipgloss.Color(th.Muted) {
		t.Fatalf("unknown verdict background = %v, want %v", got, th.Muted)
	}
}
