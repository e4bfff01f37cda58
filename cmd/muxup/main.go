// Package main is the entry point for the muxup session launcher.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chmouel/muxup/internal/config"
	"github.com/chmouel/muxup/internal/lint"
	"github.com/chmouel/muxup/internal/log"
	"github.com/chmouel/muxup/internal/multiplexer"
	"github.com/chmouel/muxup/internal/session"
	"github.com/chmouel/muxup/internal/utils"
	urfavecli "github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cliApp := &urfavecli.App{
		Name:                 "muxup",
		Usage:                "Start a tmux session from a session file",
		ArgsUsage:            "<session-file>",
		Version:              version,
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		os.Exit(1)
	}
	_ = log.Close()
}

func run(c *urfavecli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one session file argument, got %d", c.NArg())
	}
	sessionFile := c.Args().First()

	// Set up debug logging before loading the settings, so early messages
	// are buffered and land in whichever log file wins.
	if debugLog := c.String("debug-log"); debugLog != "" {
		setDebugLog(debugLog)
	}

	cfg, err := config.LoadSettings(c.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		cfg = config.DefaultSettings()
	}

	// Flag wins over settings; no debug log configured anywhere discards
	// the buffer.
	if c.String("debug-log") == "" {
		if cfg.DebugLog != "" {
			setDebugLog(cfg.DebugLog)
		} else {
			_ = log.SetFile("")
		}
	}

	doc, err := parseSessionFile(sessionFile)
	if err != nil {
		return err
	}
	log.Printf("parsed %s: %d windows, prelude=%v",
		sessionFile, len(doc.Windows), doc.Prelude != "")

	loginShell, err := multiplexer.LoginShell()
	if err != nil {
		return err
	}

	shell := cfg.Shell
	if flagShell := c.String("shell"); flagShell != "" {
		shell = flagShell
	}

	if c.Bool("lint") {
		return runLint(c, sessionFile, lintShell(shell, loginShell), doc)
	}

	dir, err := os.MkdirTemp("", "muxup-")
	if err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	log.Printf("session directory: %s", dir)

	opts := multiplexer.Options{
		Shell:        shell,
		ExtraOptions: cfg.TmuxOptions,
	}
	if err := multiplexer.Generate(dir, doc, opts); err != nil {
		return err
	}

	name := sessionName(c.String("session"), cfg.SessionPrefix, sessionFile)
	attach := cfg.Attach || c.Bool("attach")
	log.Printf("launching session %q (attach=%v) via %s", name, attach, loginShell)
	return multiplexer.Launch(context.Background(), dir, name, loginShell, attach)
}

// runLint checks every window script and reports the results. With --watch
// it keeps re-parsing and re-checking until interrupted.
func runLint(c *urfavecli.Context, sessionFile, shell string, doc *session.Document) error {
	ctx := c.Context
	results := lint.Check(ctx, shell, doc)
	lint.Report(os.Stdout, results)
	failed := lint.AnyFailed(results)

	if !c.Bool("watch") {
		if failed {
			return fmt.Errorf("%s: script check failed", sessionFile)
		}
		return nil
	}

	watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("watching %s for changes, interrupt to stop\n", sessionFile)
	return lint.Watch(watchCtx, sessionFile, log.Printf, func() {
		fmt.Printf("--- %s changed\n", sessionFile)
		fresh, err := parseSessionFile(sessionFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return
		}
		lint.Report(os.Stdout, lint.Check(watchCtx, shell, fresh))
	})
}

func parseSessionFile(path string) (*session.Document, error) {
	f, err := os.Open(path) // #nosec G304 -- user-supplied session file
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := session.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// sessionName picks the tmux session name: the explicit flag, then the
// prefixed sanitized file name, then a random name when the file name
// sanitizes to nothing.
func sessionName(flag, prefix, sessionFile string) string {
	if flag != "" {
		return multiplexer.SanitizeSessionName(flag)
	}
	base := filepath.Base(sessionFile)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if name := multiplexer.SanitizeSessionName(base); name != "" && name != strings.Repeat("-", len(name)) {
		return prefix + name
	}
	return prefix + utils.RandomSessionName()
}

// lintShell picks the shell scripts are checked against: the configured
// window shell when set, the login shell otherwise.
func lintShell(shell, loginShell string) string {
	if shell != "" {
		return shell
	}
	return loginShell
}

func setDebugLog(path string) {
	expanded, err := utils.ExpandPath(path)
	if err != nil {
		expanded = path
	}
	if err := log.SetFile(expanded); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", expanded, err)
	}
}
