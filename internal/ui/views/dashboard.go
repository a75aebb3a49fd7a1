package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/focusdash/internal/dashboard"
)

// DashboardView shows the daily metrics
type DashboardView struct {
	env *Env
}

func NewDashboardView(env *Env) *DashboardView {
	return &DashboardView{env: env}
}

func (v *DashboardView) Capturing() bool { return false }

func (v *DashboardView) Update(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, v.env.Keys.Reset) {
		v.env.Session.RefreshDashboard()
	}
	return nil
}

func (v *DashboardView) View() string {
	s := v.env.Styles
	m := v.env.Snap.Metrics

	card := func(label, value string) string {
		return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.TitleMuted.Render(label),
			s.CardValue.Render(value),
		))
	}

	cards := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			card("Study Time", dashboard.FormatStudyTime(m.StudySeconds)),
			card("Tasks Completed", fmt.Sprintf("%d/%d", m.Completed, m.Total)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			card("Completion Rate", fmt.Sprintf("%d%%", m.CompletionRate)),
			card("Productivity Score", fmt.Sprintf("%d/100", m.ProductivityScore)),
		),
	)

	var insights []string
	for _, in := range m.Insights {
		style := s.TitleMuted
		if in.Achieved {
			style = s.Achieved
		}
		insights = append(insights, style.Render(in.Text))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Today"),
		"",
		cards,
		"",
		s.Title.Render("Insights"),
		s.List.Render(lipgloss.JoinVertical(lipgloss.Left, insights...)),
	)
}

func (v *DashboardView) Help() string {
	s := v.env.Styles
	return s.Help.Render(fmt.Sprintf("%s refresh", s.HelpKey.Render("r")))
}
