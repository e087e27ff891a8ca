package tui

import (
	"github.com/idilsaglam/notes/internal/model"
	"github.com/idilsaglam/notes/internal/notes"
)

// Board is the notes container. The controller pushes every rendered
// collection into it; the model draws from it.
type Board struct {
	notes []model.Note
}

var _ notes.View = (*Board)(nil)

func NewBoard() *Board { return &Board{} }

func (b *Board) Show(n []model.Note) {
	b.notes = n
}

func (b *Board) Notes() []model.Note { return b.notes }

func (b *Board) indexOf(id int) int {
	for i, n := range b.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
