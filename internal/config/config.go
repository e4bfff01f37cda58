// Package config loads application settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds the user-adjustable behavior of the launcher.
type Settings struct {
	// Shell pins tmux windows to a shell via default-shell; empty leaves
	// tmux to its own default.
	Shell string
	// SessionPrefix is prepended to session names derived from the session
	// file name.
	SessionPrefix string
	// DebugLog is a path the debug logger writes to when set.
	DebugLog string
	// Attach controls whether the launcher attaches after starting the
	// session.
	Attach bool
	// TmuxOptions are extra directives copied verbatim into the generated
	// control script.
	TmuxOptions []string
}

// DefaultSettings returns the default settings values.
func DefaultSettings() *Settings {
	return &Settings{
		Attach: false,
	}
}

// normalizeOptionList converts various input types to a list of directive strings.
func normalizeOptionList(value any) []string {
	if value == nil {
		return []string{}
	}

	switch v := value.(type) {
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return []string{}
		}
		return []string{text}
	case []any:
		options := []string{}
		for _, item := range v {
			if item == nil {
				continue
			}
			text := strings.TrimSpace(fmt.Sprintf("%v", item))
			if text != "" {
				options = append(options, text)
			}
		}
		return options
	}
	return []string{}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func parseSettings(data map[string]any) *Settings {
	cfg := DefaultSettings()

	if shell, ok := data["shell"].(string); ok {
		shell = strings.TrimSpace(shell)
		if shell != "" {
			cfg.Shell = shell
		}
	}

	if prefix, ok := data["session_prefix"].(string); ok {
		prefix = strings.TrimSpace(prefix)
		if prefix != "" {
			cfg.SessionPrefix = prefix
		}
	}

	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}

	cfg.Attach = coerceBool(data["attach"], false)
	cfg.TmuxOptions = normalizeOptionList(data["tmux_options"])

	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadSettings reads settings from a YAML file. An empty path falls back to
// the default locations under the user config directory. A missing file is
// not an error; defaults are returned.
func LoadSettings(configPath string) (*Settings, error) {
	var paths []string

	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultSettings(), err
		}
		paths = []string{expanded}
	} else {
		configBase := filepath.Join(getConfigDir(), "muxup")
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path comes from the user's own flag or config dir
		data, err := os.ReadFile(path)
		if err != nil {
			return DefaultSettings(), fmt.Errorf("read settings file %s: %w", path, err)
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultSettings(), fmt.Errorf("parse settings file %s: %w", path, err)
		}

		return parseSettings(yamlData), nil
	}

	return DefaultSettings(), nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}
