// Package multiplexer turns a parsed session document into the on-disk
// material tmux consumes: a control script plus per-window script files,
// and the detached tmux invocation that sources them.
package multiplexer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/muxup/internal/session"
)

const (
	// ControlFileName is the control script tmux sources on startup.
	ControlFileName = "rc"
	// CleanupFileName removes the session directory from inside the
	// session once setup has finished.
	CleanupFileName = "cleanup.sh"

	dirPerms  = 0o700
	filePerms = 0o600
)

// statusOptions are the fixed cosmetic directives every control script
// starts with.
var statusOptions = []string{
	`set-option -g status-style bg=black,fg=white`,
	`set-option -g status-left ""`,
	`set-option -g status-right "#[fg=green]#H"`,
}

// Options control generation of the session directory.
type Options struct {
	// Shell, when non-empty, pins new windows to this shell via a
	// default-shell directive in the control script.
	Shell string
	// ExtraOptions are verbatim tmux directives emitted after the
	// built-in status options (from the settings file).
	ExtraOptions []string
	// Home is the directory every window starts in; defaults to the
	// current user's home directory.
	Home string
}

// Generate populates dir with the control script, one numbered script file
// per non-empty window, and the cleanup script. Any I/O failure is fatal;
// partial output is left behind for the caller to discard.
func Generate(dir string, doc *session.Document, opts Options) error {
	if opts.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		opts.Home = home
	}

	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return fmt.Errorf("create session directory %s: %w", dir, err)
	}

	for i, window := range doc.Windows {
		if window.Script == "" {
			continue
		}
		path := scriptPath(dir, i+1)
		content := ensureTrailingNewline(window.Script)
		if err := os.WriteFile(path, []byte(content), filePerms); err != nil {
			return fmt.Errorf("write window script %s: %w", path, err)
		}
	}

	cleanup := "rm -rf " + ShellQuote(dir) + "\n"
	cleanupPath := filepath.Join(dir, CleanupFileName)
	if err := os.WriteFile(cleanupPath, []byte(cleanup), filePerms); err != nil {
		return fmt.Errorf("write cleanup script %s: %w", cleanupPath, err)
	}

	control := BuildControlScript(dir, doc, opts)
	controlPath := filepath.Join(dir, ControlFileName)
	if err := os.WriteFile(controlPath, []byte(control), filePerms); err != nil {
		return fmt.Errorf("write control script %s: %w", controlPath, err)
	}
	return nil
}

// BuildControlScript renders the tmux control script for doc. Window
// titles go through a quoted renamew directive, which is why the parser
// bans double quotes and backslashes in titles. Scripts are not inlined;
// each is loaded from its numbered file into a buffer and pasted as
// literal keystrokes, since long or special-character-heavy text cannot
// reliably ride on a single control-script line.
func BuildControlScript(dir string, doc *session.Document, opts Options) string {
	var b strings.Builder
	for _, opt := range statusOptions {
		b.WriteString(opt + "\n")
	}
	for _, opt := range opts.ExtraOptions {
		opt = strings.TrimSpace(opt)
		if opt != "" {
			b.WriteString(opt + "\n")
		}
	}
	if opts.Shell != "" {
		fmt.Fprintf(&b, "set-option -g default-shell \"%s\"\n", opts.Shell)
	}
	if doc.Prelude != "" {
		b.WriteString(doc.Prelude + "\n")
	}
	b.WriteString("\n")

	for i, window := range doc.Windows {
		fmt.Fprintf(&b, "neww -c \"%s\"\n", opts.Home)
		fmt.Fprintf(&b, "renamew \"%s\"\n", window.Title)
		if window.Script != "" {
			fmt.Fprintf(&b, "loadb %s\n", scriptPath(dir, i+1))
			b.WriteString("pasteb -d\n")
		}
		b.WriteString("\n")
	}

	// The launcher detaches before tmux finishes sourcing this script, so
	// the session directory cannot be removed by the launching process.
	// The last window deletes it from inside the session and exits.
	fmt.Fprintf(&b, "neww -d \"/bin/sh %s\"\n", filepath.Join(dir, CleanupFileName))
	return b.String()
}

func scriptPath(dir string, position int) string {
	return filepath.Join(dir, fmt.Sprintf("%d.sh", position))
}
