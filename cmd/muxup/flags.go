// Package main provides CLI flag definitions for muxup.
package main

import (
	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "session",
			Aliases: []string{"s"},
			Usage:   "Name of the tmux session to create",
		},
		&urfavecli.BoolFlag{
			Name:    "lint",
			Aliases: []string{"l"},
			Usage:   "Syntax-check every window script instead of launching",
		},
		&urfavecli.BoolFlag{
			Name:  "watch",
			Usage: "With --lint, re-check whenever the session file changes",
		},
		&urfavecli.StringFlag{
			Name:  "shell",
			Usage: "Shell for tmux windows (default-shell in the session)",
		},
		&urfavecli.BoolFlag{
			Name:    "attach",
			Aliases: []string{"a"},
			Usage:   "Attach to the session after starting it",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
	}
}
