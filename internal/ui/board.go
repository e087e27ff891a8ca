package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/notes/internal/model"
)

const (
	CardWidth    = 26 // outer width, border included
	cardGap      = 1
	cardMaxLines = 6
)

// Rect is a card's position on the board, in cells relative to its top-left.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// BoardOptions tunes a board render.
type BoardOptions struct {
	Width   int // available columns
	FocusID int // card drawn with the focus border; 0 for none

	// Overlay is drawn directly below the row holding OverlayAnchor,
	// indented to that card's column. Used by the color palette.
	Overlay       string
	OverlayAnchor int
}

// Layout is a rendered board plus where each card ended up.
type Layout struct {
	View    string
	Rects   map[int]Rect
	Order   []int // note ids in render order
	Overlay Rect  // zero when no overlay was drawn
}

// At returns the id of the card under (x, y).
func (l Layout) At(x, y int) (int, bool) {
	for _, id := range l.Order {
		if l.Rects[id].Contains(x, y) {
			return id, true
		}
	}
	return 0, false
}

// Placeholder is the empty-board message.
func Placeholder() string {
	t := Current()
	return t.Muted.Render("Notes you add appear here")
}

// Board lays notes out left to right, wrapping rows to fit opt.Width.
// The result depends only on its inputs.
func Board(notes []model.Note, opt BoardOptions) Layout {
	out := Layout{Rects: make(map[int]Rect, len(notes))}
	if len(notes) == 0 {
		out.View = Placeholder()
		return out
	}
	perRow := PerRow(opt.Width)

	var rows []string
	y := 0
	for start := 0; start < len(notes); start += perRow {
		end := start + perRow
		if end > len(notes) {
			end = len(notes)
		}
		cells := make([]string, 0, 2*(end-start))
		x := 0
		anchorX := -1
		for i, n := range notes[start:end] {
			if i > 0 {
				cells = append(cells, strings.Repeat(" ", cardGap))
				x += cardGap
			}
			card := Card(n, n.ID == opt.FocusID)
			w, h := lipgloss.Width(card), lipgloss.Height(card)
			out.Rects[n.ID] = Rect{X: x, Y: y, W: w, H: h}
			out.Order = append(out.Order, n.ID)
			if opt.Overlay != "" && n.ID == opt.OverlayAnchor {
				anchorX = x
			}
			cells = append(cells, card)
			x += w
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		rows = append(rows, row)
		y += lipgloss.Height(row)
		if anchorX >= 0 {
			overlay := lipgloss.NewStyle().MarginLeft(anchorX).Render(opt.Overlay)
			rows = append(rows, overlay)
			out.Overlay = Rect{X: anchorX, Y: y, W: lipgloss.Width(opt.Overlay), H: lipgloss.Height(overlay)}
			y += lipgloss.Height(overlay)
		}
	}
	out.View = lipgloss.JoinVertical(lipgloss.Left, rows...)
	return out
}

// PerRow is how many cards fit side by side in width columns (at least one).
func PerRow(width int) int {
	if width <= 0 {
		width = 80
	}
	n := (width + cardGap) / (CardWidth + cardGap)
	if n < 1 {
		n = 1
	}
	return n
}

// Card renders one note. The title line is only emphasised when present.
func Card(n model.Note, focused bool) string {
	t := Current()
	inner := CardWidth - 4 // border + padding

	style := lipgloss.NewStyle().
		Width(CardWidth-2).
		Padding(0, 1).
		Border(t.CardBorder).
		BorderForeground(t.BorderColor)
	if focused {
		style = style.Border(t.FocusBorder).BorderForeground(t.FocusColor)
	}
	ink := lipgloss.NewStyle().Foreground(t.CardInk)
	if bg, ok := t.PaperFor(n.Color); ok {
		style = style.Background(bg)
		ink = ink.Background(bg)
	}

	var lines []string
	if n.Title != "" {
		lines = append(lines, ink.Bold(true).Render(Truncate(n.Title, inner)))
	}
	if n.Text != "" {
		body := lipgloss.NewStyle().Width(inner).Render(n.Text)
		bodyLines := strings.Split(body, "\n")
		if len(bodyLines) > cardMaxLines {
			bodyLines = append(bodyLines[:cardMaxLines-1], "…")
		}
		for _, ln := range bodyLines {
			lines = append(lines, ink.Render(strings.TrimRight(ln, " ")))
		}
	}
	lines = append(lines, t.Muted.Render(fmt.Sprintf("%s %s  #%d", t.SymSwatch, n.Color, n.ID)))
	return style.Render(strings.Join(lines, "\n"))
}

// Palette renders the color affordance; cursor marks the highlighted swatch.
func Palette(colors []model.Color, cursor int) string {
	t := Current()
	cells := make([]string, 0, len(colors))
	for i, c := range colors {
		label := fmt.Sprintf(" %s ", shortcut(i))
		cell := lipgloss.NewStyle()
		if bg, ok := t.PaperFor(c); ok {
			cell = cell.Background(bg).Foreground(t.CardInk)
		} else {
			label = fmt.Sprintf(" %s:%s ", shortcut(i), c)
		}
		if i == cursor {
			cell = cell.Underline(true).Bold(true)
			label = "[" + strings.TrimSpace(label) + "]"
		}
		cells = append(cells, cell.Render(label))
	}
	name := ""
	if cursor >= 0 && cursor < len(colors) {
		name = " " + t.Muted.Render(string(colors[cursor]))
	}
	box := lipgloss.NewStyle().
		Border(t.CardBorder).
		BorderForeground(t.FocusColor)
	return box.Render(lipgloss.JoinHorizontal(lipgloss.Center, cells...) + name)
}

// PaletteKeys are the shortcut keys for palette entries, in order.
var PaletteKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "="}

func shortcut(i int) string {
	if i < len(PaletteKeys) {
		return PaletteKeys[i]
	}
	return "?"
}

// Truncate shortens s to at most width terminal cells, ending in "…".
// Newlines become spaces.
func Truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
