package multiplexer

import "strings"

// ShellQuote quotes a string for use in a shell command.
// Returns an empty quoted string for empty input.
func ShellQuote(input string) string {
	if input == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(input, "'", "'\"'\"'") + "'"
}

// SanitizeSessionName removes characters tmux rejects in session names.
func SanitizeSessionName(name string) string {
	if name == "" {
		return ""
	}
	replacer := strings.NewReplacer(":", "-", ".", "-", "/", "-", "\\", "-", " ", "-")
	return replacer.Replace(name)
}

// ensureTrailingNewline guarantees exactly one final newline. The pasted
// script needs it so the window's shell submits the last command.
func ensureTrailingNewline(script string) string {
	if strings.HasSuffix(script, "\n") {
		return script
	}
	return script + "\n"
}
