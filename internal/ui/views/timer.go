package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/focusdash/internal/dashboard"
	"github.com/tgienger/focusdash/internal/timer"
	"github.com/tgienger/focusdash/internal/ui/styles"
)

// TimerView shows the countdown
type TimerView struct {
	env *Env
}

func NewTimerView(env *Env) *TimerView {
	return &TimerView{env: env}
}

func (v *TimerView) Capturing() bool { return false }

func (v *TimerView) Update(msg tea.KeyMsg) tea.Cmd {
	k := v.env.Keys
	sess := v.env.Session

	switch {
	case key.Matches(msg, k.Toggle):
		if running, gen := sess.ToggleTimer(); running {
			return Tick(gen)
		}
	case key.Matches(msg, k.Reset):
		sess.ResetTimer()
	case key.Matches(msg, k.Study):
		sess.ChangeMode(timer.Study)
	case key.Matches(msg, k.ShortBreak):
		sess.ChangeMode(timer.ShortBreak)
	case key.Matches(msg, k.LongBreak):
		sess.ChangeMode(timer.LongBreak)
	}
	return nil
}

func (v *TimerView) View() string {
	s := v.env.Styles
	snap := v.env.Snap
	st := snap.Timer

	var modes []string
	for _, m := range timer.Modes {
		style := s.Tab
		if m == st.Mode {
			style = s.TabActive
		}
		modes = append(modes, style.Render(m.Label()))
	}

	status := "Paused"
	if st.Running {
		status = "Running"
	}

	barWidth := clamp(styles.ContentWidth(v.env.Width)-20, 10, 50)

	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Center, modes...),
		"",
		s.Clock.Render(dashboard.FormatClock(st.Remaining)),
		s.ModeLabel.Render(st.Mode.Label()+" • "+status),
		"",
		v.renderBar(snap.Progress, barWidth),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Sessions completed: %d • Studied today: %s",
			st.Sessions, dashboard.FormatStudyTime(snap.StudySeconds))),
	)
}

func (v *TimerView) renderBar(progress float64, width int) string {
	s := v.env.Styles
	filled := clamp(int(progress*float64(width)), 0, width)
	return s.Progress.Render(strings.Repeat("█", filled)) +
		s.Track.Render(strings.Repeat("░", width-filled))
}

func (v *TimerView) Help() string {
	s := v.env.Styles
	return s.Help.Render(
		fmt.Sprintf("%s start/pause • %s reset • %s study • %s short • %s long",
			s.HelpKey.Render("space"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("1"),
			s.HelpKey.Render("2"),
			s.HelpKey.Render("3"),
		),
	)
}
