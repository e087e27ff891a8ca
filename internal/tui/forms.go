package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/notes/internal/ui"
)

// noteForm is a title field over a multi-line text field. It backs both the
// entry surface and the detail surface.
type noteForm struct {
	open      bool
	focusText bool
	title     textinput.Model
	text      textarea.Model
}

func newNoteForm(textPlaceholder string) noteForm {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Title"
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = textPlaceholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 4000
	ta.SetHeight(4)

	return noteForm{title: ti, text: ta}
}

func (f *noteForm) setWidth(w int) {
	if w < 10 {
		w = 10
	}
	f.title.Width = w
	f.text.SetWidth(w)
}

// show opens the form with the given values, cursor in the title.
func (f *noteForm) show(title, text string) tea.Cmd {
	f.open = true
	f.title.SetValue(title)
	f.title.CursorEnd()
	f.text.SetValue(text)
	f.focusText = false
	f.text.Blur()
	return f.title.Focus()
}

// hide closes the form and clears both fields.
func (f *noteForm) hide() {
	f.open = false
	f.focusText = false
	f.title.Reset()
	f.text.Reset()
	f.title.Blur()
	f.text.Blur()
}

func (f *noteForm) switchField() tea.Cmd {
	f.focusText = !f.focusText
	if f.focusText {
		f.title.Blur()
		return f.text.Focus()
	}
	f.text.Blur()
	return f.title.Focus()
}

func (f noteForm) values() (title, text string) {
	return f.title.Value(), f.text.Value()
}

func (f noteForm) hasNote() bool {
	title, text := f.values()
	return title != "" || text != ""
}

// update routes msg to the focused field. Enter in the title moves on to
// the text.
func (f *noteForm) update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && !f.focusText && k.Type == tea.KeyEnter {
		return f.switchField()
	}
	var cmd tea.Cmd
	if f.focusText {
		f.text, cmd = f.text.Update(msg)
	} else {
		f.title, cmd = f.title.Update(msg)
	}
	return cmd
}

func (f noteForm) view(width int) string {
	t := ui.Current()
	box := lipgloss.NewStyle().
		Border(t.CardBorder).
		BorderForeground(t.FocusColor).
		Padding(0, 1).
		Width(width)
	return box.Render(f.title.View() + "\n" + f.text.View())
}

// closedEntryView is the collapsed entry surface.
func closedEntryView(width int) string {
	t := ui.Current()
	box := lipgloss.NewStyle().
		Border(t.CardBorder).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Width(width)
	return box.Render(t.Muted.Render("Take a note…  (n)"))
}
