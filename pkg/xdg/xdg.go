// pkg/xdg/xdg.go

package xdg

import (
	"os"
	"path/filepath"
)

func GetEnvOrDefault(envVar, fallback string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return fallback
}

// home returns $HOME, or "" when it cannot be determined.
func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return ""
}

func base(envVar string, rel ...string) string {
	fallback := ""
	if h := home(); h != "" {
		fallback = filepath.Join(append([]string{h}, rel...)...)
	}
	return GetEnvOrDefault(envVar, fallback)
}

// XDGConfigDir returns $XDG_CONFIG_HOME/<app> (default ~/.config/<app>), or "" without a home.
func XDGConfigDir(app string) string {
	b := base("XDG_CONFIG_HOME", ".config")
	if b == "" {
		return ""
	}
	return filepath.Join(b, app)
}

// XDGStatePath returns $XDG_STATE_HOME/<app>/<file> (default ~/.local/state), or "" without a home.
func XDGStatePath(app, file string) string {
	b := base("XDG_STATE_HOME", ".local", "state")
	if b == "" {
		return ""
	}
	return filepath.Join(b, app, file)
}
