package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/focusdash/internal/models"
	"github.com/tgienger/focusdash/internal/repo"
	"github.com/tgienger/focusdash/internal/ui/styles"
)

// Focus states for the tasks page
type Focus int

const (
	FocusTaskList Focus = iota
	FocusAddInput
	FocusSearchInput
)

var statusCycle = []repo.StatusFilter{repo.StatusAll, repo.StatusActive, repo.StatusCompleted}

// TasksView lists and edits tasks
type TasksView struct {
	env    *Env
	focus  Focus
	cursor int

	addInput    textinput.Model
	searchInput textinput.Model

	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string
}

func NewTasksView(env *Env) *TasksView {
	add := textinput.New()
	add.Placeholder = "Add a task..."
	add.CharLimit = 200

	search := textinput.New()
	search.Placeholder = "Search..."
	search.CharLimit = 100

	return &TasksView{
		env:         env,
		addInput:    add,
		searchInput: search,
	}
}

func (v *TasksView) Capturing() bool {
	return v.focus != FocusTaskList || v.confirmingDelete
}

func (v *TasksView) Update(msg tea.KeyMsg) tea.Cmd {
	if v.confirmingDelete {
		return v.handleDeleteConfirm(msg)
	}
	switch v.focus {
	case FocusAddInput:
		return v.handleAddInput(msg)
	case FocusSearchInput:
		return v.handleSearchInput(msg)
	}

	k := v.env.Keys
	sess := v.env.Session
	tasks := v.env.Snap.Tasks

	switch {
	case key.Matches(msg, k.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, k.Down):
		if v.cursor < len(tasks)-1 {
			v.cursor++
		}
	case key.Matches(msg, k.New):
		v.focus = FocusAddInput
		v.addInput.Focus()
		return textinput.Blink
	case key.Matches(msg, k.Search):
		v.focus = FocusSearchInput
		v.searchInput.Focus()
		return textinput.Blink
	case key.Matches(msg, k.Back):
		v.searchInput.SetValue("")
		sess.SetTaskSearch("")
	case key.Matches(msg, k.Filter):
		sess.SetStatusFilter(nextStatus(v.env.Snap.StatusFilter))
		v.cursor = 0
	}

	if len(tasks) == 0 {
		return nil
	}
	task := tasks[v.cursor]

	switch {
	case key.Matches(msg, k.Toggle), key.Matches(msg, k.Enter):
		_, err := sess.ToggleTask(task.ID)
		v.clampCursor()
		return report(err)
	case key.Matches(msg, k.Priority):
		_, err := sess.SetTaskPriority(task.ID, nextPriority(task.Priority))
		return report(err)
	case key.Matches(msg, k.Delete):
		v.confirmingDelete = true
		v.deleteTargetID = task.ID
		v.deleteTargetName = task.Text
	case key.Matches(msg, k.MoveUp):
		if v.cursor > 0 {
			if err := sess.MoveTask(v.cursor, v.cursor-1); err != nil {
				return report(err)
			}
			v.cursor--
		}
	case key.Matches(msg, k.MoveDown):
		if v.cursor < len(tasks)-1 {
			if err := sess.MoveTask(v.cursor, v.cursor+1); err != nil {
				return report(err)
			}
			v.cursor++
		}
	}
	return nil
}

func (v *TasksView) handleAddInput(msg tea.KeyMsg) tea.Cmd {
	k := v.env.Keys
	switch {
	case key.Matches(msg, k.Back):
		v.focus = FocusTaskList
		v.addInput.Blur()
		return nil
	case key.Matches(msg, k.Enter):
		if _, err := v.env.Session.AddTask(v.addInput.Value()); err != nil {
			return report(err)
		}
		v.addInput.Reset()
		v.cursor = 0
		return nil
	}

	var cmd tea.Cmd
	v.addInput, cmd = v.addInput.Update(msg)
	return cmd
}

func (v *TasksView) handleSearchInput(msg tea.KeyMsg) tea.Cmd {
	k := v.env.Keys
	switch {
	case key.Matches(msg, k.Back), key.Matches(msg, k.Enter):
		v.focus = FocusTaskList
		v.searchInput.Blur()
		return nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.env.Session.SetTaskSearch(v.searchInput.Value())
	v.cursor = 0
	return cmd
}

func (v *TasksView) handleDeleteConfirm(msg tea.KeyMsg) tea.Cmd {
	k := v.env.Keys
	switch {
	case key.Matches(msg, k.Yes):
		v.confirmingDelete = false
		v.env.Prompt.Approve()
		_, err := v.env.Session.DeleteTask(v.deleteTargetID)
		v.clampCursor()
		return report(err)
	case key.Matches(msg, k.No):
		v.confirmingDelete = false
	}
	return nil
}

func (v *TasksView) clampCursor() {
	v.cursor = clamp(v.cursor, 0, max(len(v.env.Snap.Tasks)-1, 0))
}

func nextStatus(f repo.StatusFilter) repo.StatusFilter {
	for i, s := range statusCycle {
		if s == f {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return repo.StatusAll
}

func nextPriority(p models.Priority) models.Priority {
	for i, q := range models.Priorities {
		if q == p {
			return models.Priorities[(i+1)%len(models.Priorities)]
		}
	}
	return models.PriorityMedium
}

func (v *TasksView) View() string {
	if v.confirmingDelete {
		return renderDeleteConfirm(v.env, "Delete Task?", v.deleteTargetName)
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	return b.String()
}

func (v *TasksView) renderHeader() string {
	s := v.env.Styles
	snap := v.env.Snap
	contentWidth := styles.ContentWidth(v.env.Width)

	addStyle := s.Input
	if v.focus == FocusAddInput {
		addStyle = s.InputFocused
	}
	searchStyle := s.Input
	if v.focus == FocusSearchInput {
		searchStyle = s.InputFocused
	}
	inputWidth := clamp(contentWidth/2-4, 10, 36)

	var filters []string
	for _, f := range statusCycle {
		style := s.FilterButton
		if f == snap.StatusFilter {
			style = s.ButtonPrimary
		}
		filters = append(filters, style.Render(string(f)))
	}

	badges := s.Badge.Render(fmt.Sprintf("%d active", snap.Counts.Active)) +
		s.Badge.Render(fmt.Sprintf("%d completed", snap.Counts.Completed))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, s.Title.Render("Tasks"), "  ", badges),
		lipgloss.JoinHorizontal(lipgloss.Center,
			addStyle.Width(inputWidth).Render(v.addInput.View()),
			" ",
			searchStyle.Width(inputWidth).Render(v.searchInput.View()),
		),
		lipgloss.JoinHorizontal(lipgloss.Center, filters...),
	)
}

func (v *TasksView) renderTaskList() string {
	s := v.env.Styles
	tasks := v.env.Snap.Tasks

	if len(tasks) == 0 {
		if v.env.Snap.TaskSearch != "" || v.env.Snap.StatusFilter != repo.StatusAll {
			return s.TitleMuted.Render("No tasks match the current filter.")
		}
		return s.TitleMuted.Render("No tasks. Press 'n' to add one.")
	}

	visibleItems := max(v.env.Height-16, 1)
	start := 0
	if v.cursor >= visibleItems {
		start = v.cursor - visibleItems + 1
	}
	end := min(start+visibleItems, len(tasks))

	var items []string
	for i := start; i < end; i++ {
		items = append(items, v.renderTaskItem(tasks[i], i == v.cursor && v.focus == FocusTaskList))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TasksView) renderTaskItem(task models.Task, selected bool) string {
	s := v.env.Styles
	width := max(styles.ContentWidth(v.env.Width)-4, 20)

	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}

	var prio lipgloss.Style
	switch task.Priority {
	case models.PriorityHigh:
		prio = s.PriorityHigh
	case models.PriorityLow:
		prio = s.PriorityLow
	default:
		prio = s.TaskPriority
	}

	text := s.TaskTitle.Render(task.Text)
	if task.Completed {
		text = s.TaskDone.Render(task.Text)
	}
	line := check + " " + prio.Render("●") + " " + text

	if selected {
		return s.ListSelected.Width(width).Render(line)
	}
	return s.ListItem.Width(width).Render(line)
}

func (v *TasksView) Help() string {
	s := v.env.Styles
	return s.Help.Render(
		fmt.Sprintf("%s new • %s done • %s priority • %s del • %s/%s move • %s search • %s filter",
			s.HelpKey.Render("n"),
			s.HelpKey.Render("space"),
			s.HelpKey.Render("p"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("K"),
			s.HelpKey.Render("J"),
			s.HelpKey.Render("/"),
			s.HelpKey.Render("f"),
		),
	)
}
