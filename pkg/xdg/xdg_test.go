package xdg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("QUELL_XDG_TEST", "")
	assert.Equal(t, "fallback", GetEnvOrDefault("QUELL_XDG_TEST", "fallback"))
	t.Setenv("QUELL_XDG_TEST", "set")
	assert.Equal(t, "set", GetEnvOrDefault("QUELL_XDG_TEST", "fallback"))
}

func TestXDGStatePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	assert.Equal(t, "/tmp/state/quell/quell.log", XDGStatePath("quell", "quell.log"))

	home := t.TempDir()
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".local", "state", "quell", "quell.log"), XDGStatePath("quell", "quell.log"))
}

func TestXDGConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	assert.Equal(t, "/tmp/cfg/quell", XDGConfigDir("quell"))

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, ".config", "quell"), XDGConfigDir("quell"))
}
