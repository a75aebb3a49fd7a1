package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/focusdash/internal/models"
	"github.com/tgienger/focusdash/internal/repo"
	"github.com/tgienger/focusdash/internal/session"
	"github.com/tgienger/focusdash/internal/ui/keys"
	"github.com/tgienger/focusdash/internal/ui/styles"
	"github.com/tgienger/focusdash/internal/ui/views"
)

// Tab is the currently active page
type Tab int

const (
	TabTimer Tab = iota
	TabNotes
	TabTasks
	TabDashboard
)

var tabNames = [...]string{"Timer", "Notes", "Tasks", "Dashboard"}

// DashboardRefresh is how often the dashboard recomputes while shown
const DashboardRefresh = time.Minute

type refreshMsg struct{}

func refreshEvery() tea.Cmd {
	return tea.Tick(DashboardRefresh, func(time.Time) tea.Msg { return refreshMsg{} })
}

// App is the bubbletea model. It is also the session's View: the session
// renders into it synchronously from within Update.
type App struct {
	env      *views.Env
	pages    [len(tabNames)]views.Page
	tab      Tab
	theme    models.Theme
	status   views.StatusMsg
	showHelp bool
}

// NewApp opens a session on store rendering into a new App
func NewApp(store repo.Store, opts ...session.Option) (*App, error) {
	a := &App{
		env: &views.Env{
			Styles: styles.NewStyles(),
			Keys:   keys.DefaultKeyMap(),
			Prompt: &views.Prompt{},
		},
		theme: models.ThemeDark,
	}

	sess, err := session.Open(store, a, opts...)
	if err != nil {
		return nil, err
	}
	a.env.Session = sess
	a.pages = [...]views.Page{
		TabTimer:     views.NewTimerView(a.env),
		TabNotes:     views.NewNotesView(a.env),
		TabTasks:     views.NewTasksView(a.env),
		TabDashboard: views.NewDashboardView(a.env),
	}
	sess.Render()
	return a, nil
}

// Render stores the snapshot for the next frame
func (a *App) Render(s session.Snapshot) {
	a.env.Snap = s
	if s.Theme != "" && s.Theme != a.theme {
		a.theme = s.Theme
		*a.env.Styles = *styles.Use(s.Theme)
	}
}

// Confirm returns the answer the user already gave in the page's modal
func (a *App) Confirm(message string) bool {
	ok := a.env.Prompt.Take()
	slog.Debug("confirm", "message", message, "approved", ok)
	return ok
}

// Notify shows message on the status line
func (a *App) Notify(message string) {
	a.status = views.StatusMsg{Text: message}
}

// Session returns the session driving the app
func (a *App) Session() *session.Session {
	return a.env.Session
}

func (a *App) Init() tea.Cmd {
	return refreshEvery()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.env.Width = msg.Width
		a.env.Height = msg.Height
		return a, nil

	case views.TickMsg:
		more, err := a.env.Session.Tick(msg.Gen)
		if err != nil {
			a.status = views.StatusMsg{Text: err.Error(), Err: true}
		}
		if more {
			return a, views.Tick(msg.Gen)
		}
		return a, nil

	case refreshMsg:
		if a.tab == TabDashboard {
			a.env.Session.RefreshDashboard()
		}
		return a, refreshEvery()

	case views.StatusMsg:
		a.status = msg
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.showHelp {
		a.showHelp = false
		return nil
	}
	a.status = views.StatusMsg{}

	page := a.pages[a.tab]
	if page.Capturing() {
		return page.Update(msg)
	}

	k := a.env.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.NextTab):
		a.switchTab((a.tab + 1) % Tab(len(tabNames)))
		return nil
	case key.Matches(msg, k.PrevTab):
		a.switchTab((a.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		return nil
	case key.Matches(msg, k.Theme):
		if _, err := a.env.Session.ToggleTheme(); err != nil {
			a.status = views.StatusMsg{Text: err.Error(), Err: true}
		}
		return nil
	case key.Matches(msg, k.Help):
		a.showHelp = true
		return nil
	}
	return page.Update(msg)
}

func (a *App) switchTab(t Tab) {
	a.tab = t
	if t == TabDashboard {
		a.env.Session.RefreshDashboard()
	}
}

func (a *App) View() string {
	s := a.env.Styles
	if a.showHelp {
		return styles.CenterView(a.renderHelpPopup(), a.env.Width, a.env.Height)
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(a.pages[a.tab].View())
	b.WriteString("\n")
	if a.status.Text != "" {
		style := s.StatusBar
		if a.status.Err {
			style = s.StatusErr
		}
		b.WriteString("\n")
		b.WriteString(style.Render(a.status.Text))
	}
	b.WriteString("\n")
	b.WriteString(a.pages[a.tab].Help())

	return styles.CenterView(b.String(), a.env.Width, a.env.Height)
}

func (a *App) renderTabs() string {
	s := a.env.Styles
	var tabs []string
	for i, name := range tabNames {
		style := s.Tab
		if Tab(i) == a.tab {
			style = s.TabActive
		}
		tabs = append(tabs, style.Render(name))
	}
	return s.TitleBar.Render(lipgloss.JoinHorizontal(lipgloss.Center, tabs...))
}

func (a *App) renderHelpPopup() string {
	s := a.env.Styles
	contentWidth := styles.ContentWidth(a.env.Width)

	helpItems := []string{
		s.HelpKey.Render("tab/→") + s.HelpDesc.Render("  next tab"),
		s.HelpKey.Render("⇧tab/←") + s.HelpDesc.Render(" previous tab"),
		s.HelpKey.Render("T") + s.HelpDesc.Render("      toggle theme ("+string(a.theme.Opposite())+")"),
		s.HelpKey.Render("q") + s.HelpDesc.Render("      quit"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("On the %s tab:", tabNames[a.tab])),
		a.pages[a.tab].Help(),
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	return lipgloss.Place(contentWidth, a.env.Height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
}
