package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/focusdash/internal/models"
	"github.com/tgienger/focusdash/internal/repo"
	"github.com/tgienger/focusdash/internal/ui/styles"
)

const noteFormFields = 4

// NotesView lists, searches and edits notes
type NotesView struct {
	env    *Env
	cursor int

	searchInput textinput.Model
	searching   bool

	editing      bool
	editTitle    textinput.Model
	editContent  textarea.Model
	editTags     textinput.Model
	editFocusIdx int // 0=title, 1=content, 2=tags, 3=save

	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string
}

func NewNotesView(env *Env) *NotesView {
	search := textinput.New()
	search.Placeholder = "Search notes..."
	search.CharLimit = 100

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.ShowLineNumbers = false
	content.SetHeight(6)

	tags := textinput.New()
	tags.Placeholder = "Tags, comma separated"
	tags.CharLimit = 200

	return &NotesView{
		env:         env,
		searchInput: search,
		editTitle:   title,
		editContent: content,
		editTags:    tags,
	}
}

func (v *NotesView) Capturing() bool {
	return v.searching || v.editing || v.confirmingDelete
}

func (v *NotesView) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case v.confirmingDelete:
		return v.handleDeleteConfirm(msg)
	case v.editing:
		return v.handleEditInput(msg)
	case v.searching:
		return v.handleSearchInput(msg)
	}

	k := v.env.Keys
	notes := v.env.Snap.Notes

	switch {
	case key.Matches(msg, k.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, k.Down):
		if v.cursor < len(notes)-1 {
			v.cursor++
		}
	case key.Matches(msg, k.Search):
		v.searching = true
		v.searchInput.Focus()
		return textinput.Blink
	case key.Matches(msg, k.Back):
		v.searchInput.SetValue("")
		v.env.Session.SetNoteFilter("")
	case key.Matches(msg, k.New):
		v.env.Session.CancelEdit()
		v.openForm(models.Note{})
		return textinput.Blink
	case key.Matches(msg, k.Edit), key.Matches(msg, k.Enter):
		if len(notes) == 0 {
			return nil
		}
		n, err := v.env.Session.EditNote(notes[v.cursor].ID)
		if err != nil {
			return report(err)
		}
		v.openForm(n)
		return textinput.Blink
	case key.Matches(msg, k.Delete):
		if len(notes) > 0 {
			v.confirmingDelete = true
			v.deleteTargetID = notes[v.cursor].ID
			v.deleteTargetName = notes[v.cursor].Title
		}
	}
	return nil
}

func (v *NotesView) handleSearchInput(msg tea.KeyMsg) tea.Cmd {
	k := v.env.Keys
	switch {
	case key.Matches(msg, k.Back), key.Matches(msg, k.Enter):
		v.searching = false
		v.searchInput.Blur()
		return nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.env.Session.SetNoteFilter(v.searchInput.Value())
	v.cursor = 0
	return cmd
}

func (v *NotesView) handleEditInput(msg tea.KeyMsg) tea.Cmd {
	k := v.env.Keys
	switch {
	case key.Matches(msg, k.Back):
		v.env.Session.CancelEdit()
		v.closeForm()
		return nil
	case key.Matches(msg, k.Save):
		return v.saveNote()
	case key.Matches(msg, k.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % noteFormFields
		v.updateEditFocus()
		return nil
	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + noteFormFields - 1) % noteFormFields
		v.updateEditFocus()
		return nil
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 0:
		if key.Matches(msg, k.Enter) {
			return v.saveNote()
		}
		v.editTitle, cmd = v.editTitle.Update(msg)
	case 1:
		v.editContent, cmd = v.editContent.Update(msg)
	case 2:
		if key.Matches(msg, k.Enter) {
			return v.saveNote()
		}
		v.editTags, cmd = v.editTags.Update(msg)
	case 3:
		if key.Matches(msg, k.Enter) || key.Matches(msg, k.Toggle) {
			return v.saveNote()
		}
	}
	return cmd
}

func (v *NotesView) handleDeleteConfirm(msg tea.KeyMsg) tea.Cmd {
	k := v.env.Keys
	switch {
	case key.Matches(msg, k.Yes):
		v.confirmingDelete = false
		v.env.Prompt.Approve()
		_, err := v.env.Session.DeleteNote(v.deleteTargetID)
		v.cursor = clamp(v.cursor, 0, max(len(v.env.Snap.Notes)-1, 0))
		return report(err)
	case key.Matches(msg, k.No):
		v.confirmingDelete = false
	}
	return nil
}

func (v *NotesView) openForm(n models.Note) {
	v.editing = true
	v.editTitle.SetValue(n.Title)
	v.editContent.SetValue(n.Content)
	v.editTags.SetValue(repo.JoinTags(n.Tags))
	v.editFocusIdx = 0
	v.updateEditFocus()
}

func (v *NotesView) closeForm() {
	v.editing = false
	v.editTitle.Blur()
	v.editContent.Blur()
	v.editTags.Blur()
}

func (v *NotesView) updateEditFocus() {
	v.editTitle.Blur()
	v.editContent.Blur()
	v.editTags.Blur()

	switch v.editFocusIdx {
	case 0:
		v.editTitle.Focus()
	case 1:
		v.editContent.Focus()
	case 2:
		v.editTags.Focus()
	}
}

// saveNote keeps the form open when the session rejects the note
func (v *NotesView) saveNote() tea.Cmd {
	_, err := v.env.Session.SaveNote(v.editTitle.Value(), v.editContent.Value(), v.editTags.Value())
	if err != nil {
		return report(err)
	}
	v.closeForm()
	v.cursor = 0
	return func() tea.Msg { return StatusMsg{Text: "Note saved."} }
}

func (v *NotesView) View() string {
	if v.confirmingDelete {
		return renderDeleteConfirm(v.env, "Delete Note?", v.deleteTargetName)
	}
	if v.editing {
		return v.renderEditForm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderNoteList())
	return b.String()
}

func (v *NotesView) renderHeader() string {
	s := v.env.Styles
	contentWidth := styles.ContentWidth(v.env.Width)

	searchStyle := s.Input
	if v.searching {
		searchStyle = s.InputFocused
	}
	searchWidth := clamp(contentWidth-8, 10, 40)
	searchBox := searchStyle.Width(searchWidth).Render(v.searchInput.View())

	title := s.Title.Render(fmt.Sprintf("Notes (%d)", len(v.env.Snap.Notes)))
	return lipgloss.JoinVertical(lipgloss.Left, title, searchBox)
}

func (v *NotesView) renderNoteList() string {
	s := v.env.Styles
	notes := v.env.Snap.Notes

	if len(notes) == 0 {
		if v.env.Snap.NoteFilter != "" {
			return s.TitleMuted.Render("No notes match your search.")
		}
		return s.TitleMuted.Render("No notes yet. Press 'n' to create one.")
	}

	// Each note is 2 lines plus a margin
	visibleItems := max((v.env.Height-14)/3, 1)
	start := 0
	if v.cursor >= visibleItems {
		start = v.cursor - visibleItems + 1
	}
	end := min(start+visibleItems, len(notes))

	var items []string
	for i := start; i < end; i++ {
		items = append(items, v.renderNoteItem(notes[i], i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *NotesView) renderNoteItem(n models.Note, selected bool) string {
	s := v.env.Styles
	width := max(styles.ContentWidth(v.env.Width)-4, 20)

	meta := n.UpdatedAt.Local().Format("Jan 2, 2006 3:04 PM")
	if len(n.Tags) > 0 {
		tagStyle := s.Tag.Foreground(styles.Current.Accent)
		var tags []string
		for _, tag := range n.Tags {
			tags = append(tags, tagStyle.Render("#"+tag))
		}
		meta += "  " + strings.Join(tags, "")
	}

	style := s.ListItem
	if selected {
		style = s.ListSelected
	}
	title := style.Width(width).Render(n.Title)
	sub := style.Foreground(styles.Current.ForegroundDim).Width(width).Render(meta)
	return lipgloss.JoinVertical(lipgloss.Left, title, sub) + "\n"
}

func (v *NotesView) renderEditForm() string {
	s := v.env.Styles
	contentWidth := styles.ContentWidth(v.env.Width)

	formTitle := "New Note"
	if v.env.Snap.EditingNote != 0 {
		formTitle = "Edit Note"
	}

	titleStyle := s.Input
	contentStyle := s.Input
	tagsStyle := s.Input
	btnStyle := s.Button
	switch v.editFocusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		contentStyle = s.InputFocused
	case 2:
		tagsStyle = s.InputFocused
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 60)
	v.editContent.SetWidth(inputWidth - 2)

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.editTitle.View()),
		"",
		"Content:",
		contentStyle.Render(v.editContent.View()),
		"",
		"Tags:",
		tagsStyle.Width(inputWidth).Render(v.editTags.View()),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)
}

func (v *NotesView) Help() string {
	s := v.env.Styles
	return s.Help.Render(
		fmt.Sprintf("%s new • %s edit • %s del • %s search • %s clear",
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("/"),
			s.HelpKey.Render("esc"),
		),
	)
}

func renderDeleteConfirm(env *Env, title, name string) string {
	s := env.Styles
	contentWidth := styles.ContentWidth(env.Width)

	return lipgloss.Place(contentWidth, max(env.Height-8, 7),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Foreground(styles.Current.Error).Render(title),
			"",
			s.TitleMuted.Render(fmt.Sprintf("Are you sure you want to delete %q?", name)),
			"",
			lipgloss.JoinHorizontal(lipgloss.Center,
				s.ButtonPrimary.Render(" Y - Yes "),
				"  ",
				s.Button.Render(" N - No "),
			),
		),
	)
}
