// Package prefs persists roster window and connection settings.
// Settings are stored in ~/.config/roster/settings.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings holds the four persisted values. A nil field was absent from the
// file and leaves the corresponding UI state untouched.
type Settings struct {
	WindowSize *[2]int `toml:"window_size,omitempty"`
	WindowPos  *[2]int `toml:"window_pos,omitempty"`
	DarkMode   *bool   `toml:"dark_mode,omitempty"`
	ServerURL  *string `toml:"server_url,omitempty"`
}

const defaultSettingsPath = "~/.config/roster/settings.toml"

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	return defaultSettingsPath
}

// Load reads settings from the given path. A missing file yields empty
// settings and no error. An unreadable or invalid file also yields empty
// settings, along with the error so the caller can report it.
func Load(path string) (Settings, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Settings{}, fmt.Errorf("resolve path: %w", err)
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("open settings: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var s Settings
	if err := toml.Unmarshal(bytes, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", resolved, err)
	}

	if s.ServerURL != nil && strings.TrimSpace(*s.ServerURL) == "" {
		s.ServerURL = nil
	}

	return s, nil
}

// Save writes settings to the given path, creating directories as needed.
// Only set fields are written.
func Save(path string, s Settings) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	bytes, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Size returns a pointer to a width/height pair.
func Size(w, h int) *[2]int {
	return &[2]int{w, h}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultSettingsPath)
	}
	return ExpandPath(path)
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
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
