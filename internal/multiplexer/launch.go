package multiplexer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

const passwdPath = "/etc/passwd"

// commandRunner allows tests to intercept process execution.
var commandRunner = func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// LoginShell resolves the invoking user's shell. $SHELL wins when set;
// otherwise the shell field of the user's entry in the system user
// database is used. A user without a resolvable shell is a fatal error,
// surfaced before any generation starts.
func LoginShell() (string, error) {
	if shell := strings.TrimSpace(os.Getenv("SHELL")); shell != "" {
		return shell, nil
	}
	current, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("resolve current user: %w", err)
	}
	return shellFromPasswd(passwdPath, current.Username)
}

// shellFromPasswd scans a passwd-format file for username and returns its
// shell field.
func shellFromPasswd(path, username string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- fixed system database path
	if err != nil {
		return "", fmt.Errorf("open user database: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 7 || fields[0] != username {
			continue
		}
		shell := strings.TrimSpace(fields[6])
		if shell == "" {
			return "", fmt.Errorf("user %q has no shell in %s", username, path)
		}
		return shell, nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read user database: %w", err)
	}
	return "", fmt.Errorf("user %q not found in %s", username, path)
}

// Launch starts tmux detached against the generated control script. The
// invocation runs through the user's login shell so profile files are
// sourced before tmux inherits the environment. When attach is requested
// and stdout is a terminal, the session is attached (or switched to, when
// already inside tmux) afterwards.
func Launch(ctx context.Context, dir, sessionName, loginShell string, attach bool) error {
	rc := filepath.Join(dir, ControlFileName)
	launch := fmt.Sprintf("exec tmux -f %s new-session -d -s %s",
		ShellQuote(rc), ShellQuote(sessionName))

	// #nosec G204 -- shell comes from the system user database, the rest
	// from paths this process created.
	cmd := commandRunner(ctx, loginShell, "-l", "-c", launch)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("launch tmux session %q: %w", sessionName, err)
	}

	if !attach || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil
	}

	args := []string{"attach-session", "-t", sessionName}
	if os.Getenv("TMUX") != "" {
		args = []string{"switch-client", "-t", sessionName}
	}
	// #nosec G204 -- session name is sanitized by the caller.
	attachCmd := commandRunner(ctx, "tmux", args...)
	attachCmd.Stdin = os.Stdin
	attachCmd.Stdout = os.Stdout
	attachCmd.Stderr = os.Stderr
	if err := attachCmd.Run(); err != nil {
		return fmt.Errorf("attach to session %q: %w", sessionName, err)
	}
	return nil
}
