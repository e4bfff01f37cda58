package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSettings(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultSettings(), cfg)
	})

	t.Run("empty path with no config dir files returns defaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := LoadSettings("")
		require.NoError(t, err)
		assert.False(t, cfg.Attach)
		assert.Empty(t, cfg.Shell)
	})

	t.Run("full settings file", func(t *testing.T) {
		path := writeSettings(t, `
shell: /usr/bin/zsh
session_prefix: "mux-"
debug_log: /tmp/muxup.log
attach: true
tmux_options:
  - set-option -g mouse on
  - set-option -g base-index 1
`)
		cfg, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/zsh", cfg.Shell)
		assert.Equal(t, "mux-", cfg.SessionPrefix)
		assert.Equal(t, "/tmp/muxup.log", cfg.DebugLog)
		assert.True(t, cfg.Attach)
		assert.Equal(t, []string{"set-option -g mouse on", "set-option -g base-index 1"}, cfg.TmuxOptions)
	})

	t.Run("scalar tmux_options becomes a single-entry list", func(t *testing.T) {
		path := writeSettings(t, "tmux_options: set-option -g mouse on\n")
		cfg, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"set-option -g mouse on"}, cfg.TmuxOptions)
	})

	t.Run("attach coercion from strings", func(t *testing.T) {
		tests := []struct {
			value    string
			expected bool
		}{
			{value: `"yes"`, expected: true},
			{value: `"on"`, expected: true},
			{value: `"no"`, expected: false},
			{value: `"nonsense"`, expected: false},
		}
		for _, tt := range tests {
			path := writeSettings(t, "attach: "+tt.value+"\n")
			cfg, err := LoadSettings(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Attach, "attach: %s", tt.value)
		}
	})

	t.Run("whitespace values are ignored", func(t *testing.T) {
		path := writeSettings(t, "shell: \"   \"\nsession_prefix: \"\"\n")
		cfg, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Empty(t, cfg.Shell)
		assert.Empty(t, cfg.SessionPrefix)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := writeSettings(t, "shell: [unclosed\n")
		_, err := LoadSettings(path)
		require.Error(t, err)
	})

	t.Run("config dir fallback via XDG_CONFIG_HOME", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "muxup"), 0o700))
		require.NoError(t, os.WriteFile(
			filepath.Join(xdg, "muxup", "config.yaml"),
			[]byte("session_prefix: work-\n"), 0o600))

		cfg, err := LoadSettings("")
		require.NoError(t, err)
		assert.Equal(t, "work-", cfg.SessionPrefix)
	})
}

func TestNormalizeOptionList(t *testing.T) {
	assert.Empty(t, normalizeOptionList(nil))
	assert.Empty(t, normalizeOptionList("  "))
	assert.Equal(t, []string{"a"}, normalizeOptionList("a"))
	assert.Equal(t, []string{"a", "b"}, normalizeOptionList([]any{"a", nil, " b "}))
	assert.Empty(t, normalizeOptionList(42))
}
