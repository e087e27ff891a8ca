package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/notes/internal/model"
	"github.com/idilsaglam/notes/internal/ui"
)

// palette is the color affordance. It remembers the note it was opened for
// and hides itself a while after focus or pointer leaves that note. At most
// one hide is live: each schedule or cancel bumps gen, and a hide message
// carrying a stale gen is ignored.
type palette struct {
	open    bool
	target  int // note id captured when the palette opened
	cursor  int
	gen     int
	pending bool
	inside  bool // focus or pointer is on the target note or the palette
}

type paletteHideMsg struct{ gen int }

func (p *palette) show(target int, current model.Color) {
	p.open = true
	p.inside = true
	p.target = target
	p.cursor = 0
	for i, c := range model.Palette {
		if c == current {
			p.cursor = i
		}
	}
	p.cancelHide()
}

func (p *palette) hide() {
	p.open = false
	p.inside = false
	p.cancelHide()
}

// enter records focus or pointer back on the target, cancelling a pending hide.
func (p *palette) enter() {
	p.inside = true
	if p.pending {
		p.cancelHide()
	}
}

// leave schedules the hide when focus or pointer moves off the target.
// Staying outside does not restart the timer.
func (p *palette) leave(d time.Duration) tea.Cmd {
	if !p.open || !p.inside {
		return nil
	}
	p.inside = false
	return p.scheduleHide(d)
}

// scheduleHide replaces any pending hide with one firing after d.
func (p *palette) scheduleHide(d time.Duration) tea.Cmd {
	p.gen++
	p.pending = true
	gen := p.gen
	return tea.Tick(d, func(time.Time) tea.Msg { return paletteHideMsg{gen: gen} })
}

func (p *palette) cancelHide() {
	p.gen++
	p.pending = false
}

// handleHide applies a fired hide if it is still the current one.
func (p *palette) handleHide(msg paletteHideMsg) bool {
	if !p.pending || msg.gen != p.gen {
		return false
	}
	p.open = false
	p.pending = false
	return true
}

// pick maps a shortcut key to a palette color.
func pick(k string) (model.Color, int, bool) {
	for i, s := range ui.PaletteKeys {
		if s == k && i < len(model.Palette) {
			return model.Palette[i], i, true
		}
	}
	return "", 0, false
}
