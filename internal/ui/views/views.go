package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/focusdash/internal/session"
	"github.com/tgienger/focusdash/internal/ui/keys"
	"github.com/tgienger/focusdash/internal/ui/styles"
)

// Page is one tab of the app
type Page interface {
	Update(msg tea.KeyMsg) tea.Cmd
	View() string
	// Capturing reports whether the page owns the keyboard, e.g. while a
	// text input is focused or a modal is open
	Capturing() bool
	Help() string
}

// Env is shared by every page. The app refreshes Snap on each render and
// rebuilds Styles in place when the theme changes.
type Env struct {
	Session *session.Session
	Snap    session.Snapshot
	Styles  *styles.Styles
	Keys    keys.KeyMap
	Prompt  *Prompt
	Width   int
	Height  int
}

// Prompt carries the answer the user gave in a modal to the
// confirmation the session asks for next
type Prompt struct {
	approved bool
}

// Approve answers yes to the next confirmation
func (p *Prompt) Approve() {
	p.approved = true
}

// Take returns the pending answer and clears it
func (p *Prompt) Take() bool {
	ok := p.approved
	p.approved = false
	return ok
}

// StatusMsg sets the status line
type StatusMsg struct {
	Text string
	Err  bool
}

func report(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg {
		return StatusMsg{Text: err.Error(), Err: true}
	}
}

// TickMsg is one second of a countdown started under Gen
type TickMsg struct {
	Gen uint64
}

// Tick schedules the next second for gen
func Tick(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
