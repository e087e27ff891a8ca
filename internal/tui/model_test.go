package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/notes/internal/model"
	"github.com/idilsaglam/notes/internal/notes"
	"github.com/idilsaglam/notes/internal/store"
)

func newTestModel(t *testing.T, seed string) (Model, *notes.Controller) {
	t.Helper()
	ctx := context.Background()
	slot := store.NewMemory()
	if seed != "" {
		require.NoError(t, slot.Set(ctx, notes.DefaultKey, []byte(seed)))
	}
	board := NewBoard()
	ctrl, err := notes.New(ctx, slot, board)
	require.NoError(t, err)

	m := New(ctx, ctrl, board, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	return next.(Model), ctrl
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	msgs := make([]tea.Msg, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, keyMsg(k))
	}
	return send(t, m, msgs...)
}

const twoNotes = `[{"title":"A","text":"a","color":"white","id":1},{"title":"B","text":"b","color":"white","id":2}]`

func TestEntrySubmitCreatesNote(t *testing.T) {
	m, ctrl := newTestModel(t, "")

	m, _ = press(t, m, "n")
	require.True(t, m.entry.open)

	m, _ = press(t, m, "Title", "enter", "Body", "ctrl+s")
	assert.False(t, m.entry.open)
	assert.False(t, m.entry.hasNote(), "entry resets after create")
	assert.Equal(t, []model.Note{{ID: 1, Title: "Title", Text: "Body", Color: model.ColorWhite}}, ctrl.Notes())
	assert.Contains(t, m.View(), "Title")
}

func TestEntrySubmitEmptyKeepsFormOpen(t *testing.T) {
	m, ctrl := newTestModel(t, "")
	m, _ = press(t, m, "n", "ctrl+s")
	assert.True(t, m.entry.open)
	assert.Zero(t, ctrl.Len())
}

func TestEntryLeaveEmptyCloses(t *testing.T) {
	m, ctrl := newTestModel(t, "")
	m, _ = press(t, m, "n", "esc")
	assert.False(t, m.entry.open)
	assert.Zero(t, ctrl.Len())
}

func TestEntryLeaveWithContentCommits(t *testing.T) {
	m, ctrl := newTestModel(t, "")
	m, _ = press(t, m, "n", "tab", "only text", "esc")
	assert.False(t, m.entry.open)
	assert.Equal(t, []model.Note{{ID: 1, Text: "only text", Color: model.ColorWhite}}, ctrl.Notes())
}

func TestEntryCloseButtonDiscards(t *testing.T) {
	m, ctrl := newTestModel(t, "")
	m, _ = press(t, m, "n", "draft", "ctrl+x")
	assert.False(t, m.entry.open)
	assert.Zero(t, ctrl.Len())

	m, _ = press(t, m, "n")
	assert.False(t, m.entry.hasNote(), "discarded text must not come back")
}

func TestMouseClickOpensAndCommitsEntry(t *testing.T) {
	m, ctrl := newTestModel(t, "")
	entryTop, entryBottom, _ := m.regions()

	m, _ = send(t, m, tea.MouseMsg{X: 3, Y: entryTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.entry.open)

	m, _ = press(t, m, "clicked")
	m, _ = send(t, m, tea.MouseMsg{X: 3, Y: entryBottom + 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.entry.open)
	require.Equal(t, 1, ctrl.Len())
	assert.Equal(t, "clicked", ctrl.Notes()[0].Title)
}

func TestMouseClickOnCardOpensDetail(t *testing.T) {
	m, ctrl := newTestModel(t, twoNotes)
	_, _, top := m.regions()
	r := m.layout().Rects[2]

	m, _ = send(t, m, tea.MouseMsg{X: r.X + 2, Y: top + r.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, m.detail.open)
	assert.Equal(t, notes.Selection{ID: 2, Title: "B", Text: "b"}, ctrl.Selection())
	assert.Equal(t, 1, m.focus)
}

func TestDetailClosesWithUpdate(t *testing.T) {
	m, ctrl := newTestModel(t, twoNotes)

	m, _ = press(t, m, "right", "enter")
	require.True(t, m.detail.open)
	title, text := m.detail.values()
	assert.Equal(t, "B", title)
	assert.Equal(t, "b", text)

	m, _ = press(t, m, "!", "esc")
	assert.False(t, m.detail.open)
	n, ok := ctrl.Get(2)
	require.True(t, ok)
	assert.Equal(t, "B!", n.Title)
	assert.Equal(t, "b", n.Text)
}

func TestDetailUnchangedCloseKeepsNote(t *testing.T) {
	m, ctrl := newTestModel(t, twoNotes)
	before := ctrl.Notes()
	m, _ = press(t, m, "enter", "esc")
	assert.False(t, m.detail.open)
	assert.Equal(t, before, ctrl.Notes())
}

func TestPaletteColorsCapturedNote(t *testing.T) {
	m, ctrl := newTestModel(t, twoNotes)

	m, _ = press(t, m, "c")
	require.True(t, m.palette.open)
	require.Equal(t, 1, m.palette.target)

	// focus moves to note 2, the color still goes to note 1
	m, _ = press(t, m, "right", "2")
	n1, _ := ctrl.Get(1)
	n2, _ := ctrl.Get(2)
	assert.Equal(t, model.ColorRed, n1.Color)
	assert.Equal(t, model.ColorWhite, n2.Color)
}

func TestPaletteHidesAfterLeaving(t *testing.T) {
	m, _ := newTestModel(t, twoNotes)
	m, _ = press(t, m, "c")

	m, cmd := press(t, m, "right")
	require.NotNil(t, cmd, "leaving the note schedules a hide")
	require.True(t, m.palette.pending)

	m, _ = send(t, m, paletteHideMsg{gen: m.palette.gen})
	assert.False(t, m.palette.open)
}

func TestPaletteHideCancelledOnReturn(t *testing.T) {
	m, _ := newTestModel(t, twoNotes)
	m, _ = press(t, m, "c", "right")
	stale := paletteHideMsg{gen: m.palette.gen}

	m, _ = press(t, m, "left")
	assert.False(t, m.palette.pending)

	m, _ = send(t, m, stale)
	assert.True(t, m.palette.open, "a cancelled hide must not fire")
}

func TestPaletteStayingOutsideKeepsTimer(t *testing.T) {
	m, _ := newTestModel(t, `[{"title":"A","text":"","color":"white","id":1},{"title":"B","text":"","color":"white","id":2},{"title":"C","text":"","color":"white","id":3}]`)
	m, _ = press(t, m, "c", "right")
	gen := m.palette.gen

	m, cmd := press(t, m, "right")
	assert.Nil(t, cmd, "moving between other notes is not a new leave")
	assert.Equal(t, gen, m.palette.gen)

	m, _ = send(t, m, paletteHideMsg{gen: gen})
	assert.False(t, m.palette.open)
}

func TestPaletteNewScheduleReplacesPending(t *testing.T) {
	m, _ := newTestModel(t, twoNotes)
	m, _ = press(t, m, "c", "right")
	first := paletteHideMsg{gen: m.palette.gen}

	m, _ = press(t, m, "left")
	m, cmd := press(t, m, "right")
	require.NotNil(t, cmd, "leaving again schedules a fresh hide")
	second := paletteHideMsg{gen: m.palette.gen}
	require.NotEqual(t, first.gen, second.gen)

	m, _ = send(t, m, first)
	assert.True(t, m.palette.open, "the replaced hide must not fire")
	m, _ = send(t, m, second)
	assert.False(t, m.palette.open)
}

func TestPaletteMotionOutsideSchedulesOnce(t *testing.T) {
	m, _ := newTestModel(t, twoNotes)
	_, _, top := m.regions()
	r := m.layout().Rects[1]

	m, _ = send(t, m, tea.MouseMsg{X: r.X + 2, Y: top + r.Y + r.H - 2, Action: tea.MouseActionMotion})
	require.True(t, m.palette.open)

	m, cmd := send(t, m, tea.MouseMsg{X: 0, Y: top + 40, Action: tea.MouseActionMotion})
	require.NotNil(t, cmd)
	gen := m.palette.gen

	m, cmd = send(t, m, tea.MouseMsg{X: 1, Y: top + 41, Action: tea.MouseActionMotion})
	assert.Nil(t, cmd)
	assert.Equal(t, gen, m.palette.gen)

	// back over the note cancels, leaving again replaces
	m, _ = send(t, m, tea.MouseMsg{X: r.X + 2, Y: top + r.Y + 1, Action: tea.MouseActionMotion})
	assert.False(t, m.palette.pending)
	m, cmd = send(t, m, tea.MouseMsg{X: 0, Y: top + 40, Action: tea.MouseActionMotion})
	require.NotNil(t, cmd)
	assert.NotEqual(t, gen, m.palette.gen)
}

func TestPaletteEscHides(t *testing.T) {
	m, _ := newTestModel(t, twoNotes)
	m, _ = press(t, m, "c", "esc")
	assert.False(t, m.palette.open)
}

func TestHoverSwatchOpensPalette(t *testing.T) {
	m, _ := newTestModel(t, twoNotes)
	_, _, top := m.regions()
	r := m.layout().Rects[2]
	swatchY := top + r.Y + r.H - 2

	m, _ = send(t, m, tea.MouseMsg{X: r.X + 2, Y: swatchY, Action: tea.MouseActionMotion})
	require.True(t, m.palette.open)
	assert.Equal(t, 2, m.palette.target)

	m, cmd := send(t, m, tea.MouseMsg{X: 0, Y: top + 40, Action: tea.MouseActionMotion})
	assert.NotNil(t, cmd)
	assert.True(t, m.palette.pending)
}

func TestDeleteFocusedNote(t *testing.T) {
	m, ctrl := newTestModel(t, twoNotes)
	m, _ = press(t, m, "right", "d")
	assert.Equal(t, []model.Note{{ID: 1, Title: "A", Text: "a", Color: model.ColorWhite}}, ctrl.Notes())
	assert.Equal(t, 0, m.focus)

	m, _ = press(t, m, "d")
	assert.Zero(t, ctrl.Len())
	assert.Contains(t, m.View(), "Notes you add appear here")
}

func TestDeleteHidesPaletteForThatNote(t *testing.T) {
	m, _ := newTestModel(t, twoNotes)
	m, _ = press(t, m, "c", "d")
	assert.False(t, m.palette.open)
}

func TestCopyFocusedText(t *testing.T) {
	orig := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = orig })
	var copied string
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}

	m, _ := newTestModel(t, twoNotes)
	m, _ = press(t, m, "y")
	assert.Equal(t, "a", copied)
	assert.Contains(t, m.status, "copied")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, "")
	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// q is text while typing
	m, _ = press(t, m, "n", "q")
	assert.True(t, m.entry.open)
	title, _ := m.entry.values()
	assert.Equal(t, "q", title)

	_, cmd = press(t, m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsCardsAndCount(t *testing.T) {
	m, _ := newTestModel(t, twoNotes)
	v := m.View()
	assert.Contains(t, v, "2 notes")
	assert.True(t, strings.Contains(v, "#1") && strings.Contains(v, "#2"))
	assert.Equal(t, v, m.View(), "rendering twice is stable")
}

type flakySlot struct {
	store.Memory
	fail bool
}

var errDiskFull = errors.New("disk full")

func (f *flakySlot) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errDiskFull
	}
	return f.Memory.Set(ctx, key, value)
}

func TestStorageErrorShownInStatus(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{}
	board := NewBoard()
	ctrl, err := notes.New(ctx, slot, board)
	require.NoError(t, err)
	m := New(ctx, ctrl, board, Options{})

	slot.fail = true
	m, _ = press(t, m, "n", "kept in memory", "ctrl+s")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "disk full")
	assert.Contains(t, m.View(), "kept in memory")
}
