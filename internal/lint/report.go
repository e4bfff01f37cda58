package lint

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	lineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Report writes a human-readable summary of results to w. Passing windows
// get a one-line checkmark; failing windows additionally get the shell's
// diagnostics and a line-numbered dump of the script, so the message's line
// references can be followed by eye.
func Report(w io.Writer, results []Result) {
	for _, r := range results {
		heading := fmt.Sprintf("%s (line %d)", titleStyle.Render(r.Title), r.Line)
		if !r.Failed() {
			fmt.Fprintf(w, "%s %s\n", okStyle.Render("✓"), heading)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", failStyle.Render("✗"), heading)
		if r.Output != "" {
			for _, line := range strings.Split(r.Output, "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
		for i, line := range strings.Split(r.Script, "\n") {
			fmt.Fprintf(w, "  %s %s\n", lineNumStyle.Render(fmt.Sprintf("%4d |", i+1)), line)
		}
	}
}
