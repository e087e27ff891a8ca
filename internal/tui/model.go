package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/notes/internal/logging"
	"github.com/idilsaglam/notes/internal/model"
	"github.com/idilsaglam/notes/internal/notes"
	"github.com/idilsaglam/notes/internal/ui"
)

const (
	defaultHideDelay = 3 * time.Second
	maxFormWidth     = 60
)

// Options tune the board UI.
type Options struct {
	HideDelay time.Duration // palette hide delay after focus leaves its note
	Logger    *slog.Logger
}

// Model is the Bubble Tea model for the note board.
type Model struct {
	ctx   context.Context
	ctrl  *notes.Controller
	board *Board
	log   *slog.Logger

	keys keyMap
	help help.Model
	vp   viewport.Model

	width, height int
	focus         int // index into board notes

	entry     noteForm
	detail    noteForm
	palette   palette
	hideDelay time.Duration

	status    string
	statusErr bool
}

// New builds the model. board must be the view ctrl renders into.
func New(ctx context.Context, ctrl *notes.Controller, board *Board, opt Options) Model {
	m := Model{
		ctx:       ctx,
		ctrl:      ctrl,
		board:     board,
		log:       opt.Logger,
		keys:      defaultKeys(),
		help:      help.New(),
		vp:        viewport.New(80, 10),
		width:     80,
		height:    24,
		entry:     newNoteForm("Take a note…"),
		detail:    newNoteForm("Note"),
		hideDelay: opt.HideDelay,
	}
	if m.log == nil {
		m.log = logging.Nop()
	}
	if m.hideDelay <= 0 {
		m.hideDelay = defaultHideDelay
	}
	m.help.Styles.ShortKey = ui.Current().Help
	m.resize()
	m.syncBoard()
	return m
}

// Run starts the program in the alternate screen with mouse motion enabled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBoard()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case paletteHideMsg:
		if m.palette.handleHide(msg) {
			m.log.Debug("palette hidden", "target", m.palette.target)
		}
		return m, nil
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch {
		case m.detail.open:
			return m.updateDetail(msg)
		case m.entry.open:
			return m.updateEntry(msg)
		}
		return m.updateBoard(msg)
	}

	// cursor blink and friends
	var cmd tea.Cmd
	switch {
	case m.detail.open:
		cmd = m.detail.update(msg)
	case m.entry.open:
		cmd = m.entry.update(msg)
	}
	return m, cmd
}

func (m Model) updateEntry(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.entry.hasNote() {
			m.commitEntry()
		}
		return m, nil
	case key.Matches(msg, m.keys.Discard):
		m.entry.hide()
		return m, nil
	case key.Matches(msg, m.keys.Leave):
		m.leaveEntry()
		return m, nil
	case key.Matches(msg, m.keys.SwitchField):
		return m, m.entry.switchField()
	}
	return m, m.entry.update(msg)
}

func (m Model) updateDetail(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.closeDetail()
		return m, nil
	case key.Matches(msg, m.keys.SwitchField):
		return m, m.detail.switchField()
	}
	return m, m.detail.update(msg)
}

func (m Model) updateBoard(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.palette.open {
		if key.Matches(msg, m.keys.ClosePalette) {
			m.palette.hide()
			return m, nil
		}
		if color, i, ok := pick(msg.String()); ok {
			m.palette.cursor = i
			found, err := m.ctrl.UpdateColor(m.ctx, m.palette.target, color)
			if found {
				m.report(err, fmt.Sprintf("note #%d is now %s", m.palette.target, color))
			}
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.New):
		return m, m.entry.show("", "")
	case key.Matches(msg, m.keys.Left):
		return m, m.moveFocus(-1)
	case key.Matches(msg, m.keys.Right):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.Up):
		return m, m.moveFocus(-ui.PerRow(m.width))
	case key.Matches(msg, m.keys.Down):
		return m, m.moveFocus(ui.PerRow(m.width))
	case key.Matches(msg, m.keys.Open):
		if n, ok := m.focused(); ok {
			return m, m.openDetail(n)
		}
	case key.Matches(msg, m.keys.Color):
		if n, ok := m.focused(); ok {
			m.palette.show(n.ID, n.Color)
		}
	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.focused(); ok {
			m.deleteNote(n.ID)
		}
	case key.Matches(msg, m.keys.Copy):
		if n, ok := m.focused(); ok {
			if err := copyText(n.Text); err != nil {
				m.setError("copy failed: " + err.Error())
			} else {
				m.setStatus(fmt.Sprintf("copied note #%d", n.ID))
			}
		}
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.detail.open {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		entryTop, entryBottom, _ := m.regions()
		if msg.Y >= entryTop && msg.Y < entryBottom {
			if !m.entry.open {
				return m, m.entry.show("", "")
			}
			return m, nil
		}
		if m.entry.open {
			m.leaveEntry()
			m.syncBoard()
		}
		x, y := m.boardPoint(msg.X, msg.Y)
		if id, ok := m.layout().At(x, y); ok {
			m.focus = m.board.indexOf(id)
			if n, ok := m.focused(); ok {
				return m, m.openDetail(n)
			}
		}
	case tea.MouseActionMotion:
		x, y := m.boardPoint(msg.X, msg.Y)
		return m, m.hover(x, y)
	}
	return m, nil
}

// hover opens the palette when the pointer is on a card's swatch line and
// starts the delayed hide once it leaves the palette's note.
func (m *Model) hover(x, y int) tea.Cmd {
	l := m.layout()
	id, onCard := l.At(x, y)
	if onCard && y == l.Rects[id].Y+l.Rects[id].H-2 && (!m.palette.open || m.palette.target != id) {
		if i := m.board.indexOf(id); i >= 0 {
			m.palette.show(id, m.board.notes[i].Color)
		}
		return nil
	}
	if !m.palette.open {
		return nil
	}
	if l.Overlay.Contains(x, y) || (onCard && id == m.palette.target) {
		m.palette.enter()
		return nil
	}
	return m.palette.leave(m.hideDelay)
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(m.board.Notes())
	if n == 0 {
		return nil
	}
	next := m.focus + delta
	if next < 0 {
		next = 0
	}
	if next >= n {
		next = n - 1
	}
	m.focus = next
	if !m.palette.open {
		return nil
	}
	if m.focusedID() == m.palette.target {
		m.palette.enter()
		return nil
	}
	return m.palette.leave(m.hideDelay)
}

// leaveEntry is a click outside the entry surface: commit when there is
// something to keep, close otherwise.
func (m *Model) leaveEntry() {
	if m.entry.hasNote() {
		m.commitEntry()
		return
	}
	m.entry.hide()
}

func (m *Model) commitEntry() {
	title, text := m.entry.values()
	note, created, err := m.ctrl.Create(m.ctx, title, text)
	if created {
		m.focus = m.board.indexOf(note.ID)
		m.report(err, fmt.Sprintf("added note #%d", note.ID))
	}
	m.entry.hide()
}

func (m *Model) openDetail(n model.Note) tea.Cmd {
	sel := m.ctrl.Select(n)
	return m.detail.show(sel.Title, sel.Text)
}

// closeDetail always commits the fields, changed or not.
func (m *Model) closeDetail() {
	title, text := m.detail.values()
	found, err := m.ctrl.UpdateSelected(m.ctx, title, text)
	if found {
		m.report(err, fmt.Sprintf("saved note #%d", m.ctrl.Selection().ID))
	} else {
		m.report(err, "")
	}
	m.detail.hide()
}

func (m *Model) deleteNote(id int) {
	removed, err := m.ctrl.Delete(m.ctx, id)
	if m.palette.open && m.palette.target == id {
		m.palette.hide()
	}
	if removed > 0 {
		m.report(err, fmt.Sprintf("deleted note #%d", id))
	}
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.log.Error("storage", "err", err)
		m.setError("save failed: " + err.Error())
		return
	}
	m.setStatus(ok)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m Model) focused() (model.Note, bool) {
	ns := m.board.Notes()
	if m.focus < 0 || m.focus >= len(ns) {
		return model.Note{}, false
	}
	return ns[m.focus], true
}

func (m Model) focusedID() int {
	n, _ := m.focused()
	return n.ID
}

func (m *Model) clampFocus() {
	n := len(m.board.Notes())
	if m.focus >= n {
		m.focus = n - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w > maxFormWidth {
		w = maxFormWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) resize() {
	inner := m.formWidth() - 4
	m.entry.setWidth(inner)
	m.detail.setWidth(inner)
	m.help.Width = m.width
}

func (m Model) layout() ui.Layout {
	opt := ui.BoardOptions{Width: m.width, FocusID: m.focusedID()}
	if m.palette.open {
		opt.Overlay = ui.Palette(model.Palette, m.palette.cursor)
		opt.OverlayAnchor = m.palette.target
	}
	return ui.Board(m.board.Notes(), opt)
}

// syncBoard re-lays the board into the viewport and keeps the focused card
// on screen.
func (m *Model) syncBoard() {
	m.clampFocus()
	if m.palette.open && m.board.indexOf(m.palette.target) < 0 {
		m.palette.hide()
	}
	l := m.layout()
	m.vp.Width = m.width
	m.vp.Height = m.boardHeight()
	m.vp.SetContent(l.View)
	if r, ok := l.Rects[m.focusedID()]; ok {
		switch {
		case r.Y < m.vp.YOffset:
			m.vp.SetYOffset(r.Y)
		case r.Y+r.H > m.vp.YOffset+m.vp.Height:
			m.vp.SetYOffset(r.Y + r.H - m.vp.Height)
		}
	}
}

// regions returns the screen rows of the entry surface and the board top.
func (m Model) regions() (entryTop, entryBottom, boardTop int) {
	entryTop = lipgloss.Height(m.headerView())
	entryBottom = entryTop + lipgloss.Height(m.entryView())
	boardTop = entryBottom + 1
	return entryTop, entryBottom, boardTop
}

// boardPoint maps screen coordinates onto board coordinates.
func (m Model) boardPoint(x, y int) (int, int) {
	_, _, top := m.regions()
	return x, y - top + m.vp.YOffset
}

func (m Model) boardHeight() int {
	_, _, top := m.regions()
	h := m.height - top - 3 // blank, status, help
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) View() string {
	sections := []string{m.headerView(), m.entryView(), ""}
	if m.detail.open {
		sections = append(sections, m.detailView())
	} else {
		sections = append(sections, m.vp.View())
	}
	sections = append(sections, "", m.statusView(), m.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	t := ui.Current()
	count := len(m.board.Notes())
	noun := "notes"
	if count == 1 {
		noun = "note"
	}
	return t.Title.Render("Notes") + "  " + t.Muted.Render(fmt.Sprintf("%d %s", count, noun))
}

func (m Model) entryView() string {
	if m.entry.open {
		return m.entry.view(m.formWidth())
	}
	return closedEntryView(m.formWidth())
}

func (m Model) detailView() string {
	t := ui.Current()
	heading := t.Accent.Render(fmt.Sprintf("Note #%d", m.ctrl.Selection().ID))
	body := lipgloss.JoinVertical(lipgloss.Left, heading, m.detail.view(m.formWidth()))
	return lipgloss.Place(m.width, m.boardHeight(), lipgloss.Center, lipgloss.Center, body)
}

func (m Model) statusView() string {
	t := ui.Current()
	if m.statusErr {
		return t.Error.Render(m.status)
	}
	return t.Muted.Render(m.status)
}

func (m Model) helpView() string {
	switch {
	case m.detail.open:
		return m.help.View(m.keys.detailHelp())
	case m.entry.open:
		return m.help.View(m.keys.entryHelp())
	case m.palette.open:
		return m.help.View(m.keys.paletteHelp())
	}
	return m.help.View(m.keys.boardHelp())
}
