package multiplexer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/muxup/internal/session"
)

func TestGenerate(t *testing.T) {
	t.Run("writes control, window and cleanup scripts", func(t *testing.T) {
		dir := t.TempDir()
		doc := &session.Document{
			Windows: []session.Window{
				{Line: 1, Title: "editor", Script: "cd ~/src\nvim"},
				{Line: 4, Title: "shell"},
				{Line: 5, Title: "logs", Script: "tail -f /var/log/syslog"},
			},
		}
		require.NoError(t, Generate(dir, doc, Options{Home: "/home/test"}))

		first, err := os.ReadFile(filepath.Join(dir, "1.sh"))
		require.NoError(t, err)
		assert.Equal(t, "cd ~/src\nvim\n", string(first))

		// The empty window gets no script file.
		_, err = os.Stat(filepath.Join(dir, "2.sh"))
		assert.True(t, os.IsNotExist(err))

		third, err := os.ReadFile(filepath.Join(dir, "3.sh"))
		require.NoError(t, err)
		assert.Equal(t, "tail -f /var/log/syslog\n", string(third))

		cleanup, err := os.ReadFile(filepath.Join(dir, CleanupFileName))
		require.NoError(t, err)
		assert.Equal(t, "rm -rf "+ShellQuote(dir)+"\n", string(cleanup))

		_, err = os.Stat(filepath.Join(dir, ControlFileName))
		require.NoError(t, err)
	})

	t.Run("script file numbering follows window position", func(t *testing.T) {
		dir := t.TempDir()
		doc := &session.Document{
			Windows: []session.Window{
				{Title: "a"},
				{Title: "b", Script: "echo b"},
			},
		}
		require.NoError(t, Generate(dir, doc, Options{Home: "/home/test"}))

		// Window b is second, so its file is 2.sh even though a wrote none.
		content, err := os.ReadFile(filepath.Join(dir, "2.sh"))
		require.NoError(t, err)
		assert.Equal(t, "echo b\n", string(content))
		_, err = os.Stat(filepath.Join(dir, "1.sh"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("trailing newline is not doubled", func(t *testing.T) {
		dir := t.TempDir()
		doc := &session.Document{
			Windows: []session.Window{{Title: "w", Script: "echo hi\n"}},
		}
		require.NoError(t, Generate(dir, doc, Options{Home: "/home/test"}))
		content, err := os.ReadFile(filepath.Join(dir, "1.sh"))
		require.NoError(t, err)
		assert.Equal(t, "echo hi\n", string(content))
	})
}

func TestBuildControlScript(t *testing.T) {
	t.Run("window blocks in document order", func(t *testing.T) {
		doc := &session.Document{
			Windows: []session.Window{
				{Title: "editor", Script: "vim"},
				{Title: "shell"},
			},
		}
		script := BuildControlScript("/tmp/mux", doc, Options{Home: "/home/test"})

		assert.Contains(t, script, `neww -c "/home/test"`)
		assert.Contains(t, script, `renamew "editor"`)
		assert.Contains(t, script, "loadb /tmp/mux/1.sh\npasteb -d\n")
		assert.Contains(t, script, `renamew "shell"`)

		// The empty window gets no load/paste pair.
		assert.Equal(t, 1, strings.Count(script, "loadb"))
		assert.Equal(t, 1, strings.Count(script, "pasteb"))

		editorAt := strings.Index(script, `renamew "editor"`)
		shellAt := strings.Index(script, `renamew "shell"`)
		assert.Less(t, editorAt, shellAt)
	})

	t.Run("status options lead the script", func(t *testing.T) {
		script := BuildControlScript("/tmp/mux", &session.Document{}, Options{Home: "/h"})
		assert.True(t, strings.HasPrefix(script, "set-option -g status-style bg=black,fg=white\n"))
		assert.Contains(t, script, `set-option -g status-left ""`)
		assert.Contains(t, script, `set-option -g status-right "#[fg=green]#H"`)
	})

	t.Run("default-shell only when a shell is configured", func(t *testing.T) {
		doc := &session.Document{}
		without := BuildControlScript("/tmp/mux", doc, Options{Home: "/h"})
		assert.NotContains(t, without, "default-shell")

		with := BuildControlScript("/tmp/mux", doc, Options{Home: "/h", Shell: "/usr/bin/fish"})
		assert.Contains(t, with, `set-option -g default-shell "/usr/bin/fish"`)
	})

	t.Run("extra options emitted after status options", func(t *testing.T) {
		script := BuildControlScript("/tmp/mux", &session.Document{}, Options{
			Home:         "/h",
			ExtraOptions: []string{"set-option -g mouse on", "  ", "set-option -g base-index 1"},
		})
		assert.Contains(t, script, "set-option -g mouse on\n")
		assert.Contains(t, script, "set-option -g base-index 1\n")
	})

	t.Run("prelude is emitted verbatim", func(t *testing.T) {
		doc := &session.Document{Prelude: "set -g history-limit 9999\nbind-key R source-file ~/.tmux.conf"}
		script := BuildControlScript("/tmp/mux", doc, Options{Home: "/h"})
		assert.Contains(t, script, "set -g history-limit 9999\nbind-key R source-file ~/.tmux.conf\n")
	})

	t.Run("cleanup window closes the script", func(t *testing.T) {
		script := BuildControlScript("/tmp/mux", &session.Document{}, Options{Home: "/h"})
		assert.True(t, strings.HasSuffix(script, `neww -d "/bin/sh /tmp/mux/cleanup.sh"`+"\n"))
	})

	t.Run("cleanup window present even with zero windows", func(t *testing.T) {
		script := BuildControlScript("/tmp/mux", &session.Document{}, Options{Home: "/h"})
		assert.Contains(t, script, "cleanup.sh")
		assert.NotContains(t, script, "renamew")
	})
}
