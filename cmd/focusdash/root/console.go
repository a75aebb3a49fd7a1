package root

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/focusdash/internal/session"
	"github.com/tgienger/focusdash/internal/ui/styles"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(styles.Current.Error).Bold(true)
	okStyle   = lipgloss.NewStyle().Foreground(styles.Current.Success)
	warnStyle = lipgloss.NewStyle().Foreground(styles.Current.Warning)
	dimStyle  = lipgloss.NewStyle().Foreground(styles.Current.ForegroundDim)
	headStyle = lipgloss.NewStyle().Foreground(styles.Current.Primary).Bold(true)
)

// consoleView is the session View for one-shot commands
type consoleView struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newConsoleView(in io.Reader, out io.Writer, assumeYes bool) *consoleView {
	return &consoleView{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

// Render is a no-op; commands print their own results
func (v *consoleView) Render(session.Snapshot) {}

func (v *consoleView) Confirm(message string) bool {
	if v.assumeYes {
		return true
	}
	printf(v.out, "%s [y/N] ", message)
	line, err := v.in.ReadString('\n')
	if err != nil && line == "" {
		printf(v.out, "\n")
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (v *consoleView) Notify(message string) {
	_, _ = fmt.Fprintln(v.out, warnStyle.Render(message))
}
