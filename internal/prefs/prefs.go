// Package prefs handles hostsnap user preferences persistence.
// Preferences are stored in ~/.config/hostsnap/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for hostsnap.
type Prefs struct {
	Theme         string `toml:"theme"`
	ContentFormat string `toml:"content_format"`
}

const (
	defaultPrefsPath     = "~/.config/hostsnap/prefs.toml"
	defaultTheme         = "Nightfox"
	defaultContentFormat = "json"
)

// Default returns the preferences used before anything is saved.
func Default() Prefs {
	return Prefs{Theme: defaultTheme, ContentFormat: defaultContentFormat}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. A missing, unreadable or
// malformed file yields Default; unknown values fall back field by field.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default()
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Default()
	}
	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default()
	}
	return p.normalized()
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.ContentFormat = strings.ToLower(strings.TrimSpace(p.ContentFormat))
	if p.ContentFormat != "json" && p.ContentFormat != "yaml" {
		p.ContentFormat = defaultContentFormat
	}
	return p
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
