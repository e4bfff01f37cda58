// Package lint runs shell syntax checks over the window scripts of a
// parsed session file and renders the results.
package lint

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/chmouel/muxup/internal/session"
)

// commandRunner allows tests to intercept process execution.
var commandRunner = func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// Result is the syntax-check outcome for one window's script.
type Result struct {
	// Title is the window title, used as the report heading.
	Title string
	// Line is the title's line number in the session file.
	Line int
	// Script is the checked script text.
	Script string
	// Output is whatever the shell printed to stderr.
	Output string
	// Err is non-nil when the shell rejected the script.
	Err error
}

// Failed reports whether the script failed its syntax check.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Check runs every non-empty window script through `shell -n` with the
// script on stdin. Windows without a script are skipped. Results come back
// in window order regardless of outcome.
func Check(ctx context.Context, shell string, doc *session.Document) []Result {
	var results []Result
	for _, window := range doc.Windows {
		if window.Script == "" {
			continue
		}
		res := Result{Title: window.Title, Line: window.Line, Script: window.Script}

		var stderr bytes.Buffer
		// #nosec G204 -- shell comes from config or the user database.
		cmd := commandRunner(ctx, shell, "-n")
		cmd.Stdin = strings.NewReader(window.Script + "\n")
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			res.Err = err
		}
		res.Output = strings.TrimRight(stderr.String(), "\n")
		results = append(results, res)
	}
	return results
}

// AnyFailed reports whether at least one result failed.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}
