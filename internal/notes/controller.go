// Package notes owns the note collection: it applies mutations, mirrors the
// collection into a storage slot after each one, and pushes a fresh snapshot
// to the view.
package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/notes/internal/logging"
	"github.com/idilsaglam/notes/internal/model"
	"github.com/idilsaglam/notes/internal/store"
)

// DefaultKey is the slot key the collection lives under.
const DefaultKey = "notes"

// View receives the full collection after every render.
type View interface {
	Show(notes []model.Note)
}

// Selection is the note context captured by Select, used to pre-fill the
// detail surface and to target UpdateSelected.
type Selection struct {
	ID    int
	Title string
	Text  string
}

// Controller owns the note collection and the selection context.
type Controller struct {
	slot         store.Slot
	key          string
	view         View
	log          *slog.Logger
	defaultColor model.Color

	notes []model.Note
	sel   Selection
	// highest id handed out or loaded this session; ids are never reused
	highWater int
}

// Option configures a Controller in New.
type Option func(*Controller)

// WithKey stores the collection under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// WithLogger sets the logger; the default discards.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDefaultColor sets the color given to new notes.
func WithDefaultColor(color model.Color) Option {
	return func(c *Controller) {
		if color != "" {
			c.defaultColor = color
		}
	}
}

// New loads the collection from slot and renders it once. A missing or
// unparseable slot yields an empty collection; only storage I/O failures are
// returned. view may be nil.
func New(ctx context.Context, slot store.Slot, view View, opts ...Option) (*Controller, error) {
	if slot == nil {
		return nil, errors.New("notes: storage slot is required")
	}
	c := &Controller{
		slot:         slot,
		key:          DefaultKey,
		view:         view,
		log:          logging.Nop(),
		defaultColor: model.DefaultColor,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	if err := c.Render(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) load(ctx context.Context) error {
	c.notes = []model.Note{}
	raw, err := c.slot.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.log.Debug("no stored notes", "key", c.key)
			return nil
		}
		return fmt.Errorf("load %s: %w", c.key, err)
	}
	notes, err := Decode(raw)
	if err != nil {
		c.log.Warn("discarding unreadable notes", "key", c.key, "err", err)
		return nil
	}
	c.notes = notes
	c.highWater = maxID(notes)
	c.log.Debug("loaded notes", "key", c.key, "count", len(notes))
	return nil
}

// Notes returns a copy of the collection in insertion order.
func (c *Controller) Notes() []model.Note {
	return append([]model.Note(nil), c.notes...)
}

// Len is the number of notes.
func (c *Controller) Len() int { return len(c.notes) }

// Get returns the note with id.
func (c *Controller) Get(id int) (model.Note, bool) {
	for _, n := range c.notes {
		if n.ID == id {
			return n, true
		}
	}
	return model.Note{}, false
}

// Create appends a note unless both title and text are empty, in which case
// nothing happens and created is false.
func (c *Controller) Create(ctx context.Context, title, text string) (note model.Note, created bool, err error) {
	if (model.Note{Title: title, Text: text}).Empty() {
		return model.Note{}, false, nil
	}
	note = model.Note{
		Title: title,
		Text:  text,
		Color: c.defaultColor,
		ID:    c.nextID(),
	}
	c.notes = append(c.Notes(), note)
	c.log.Debug("note created", "id", note.ID)
	return note, true, c.Render(ctx)
}

// Update replaces title and text of the note with the given id. The color is
// kept. found is false when no note has that id; the collection is then
// unchanged.
func (c *Controller) Update(ctx context.Context, id int, title, text string) (found bool, err error) {
	found = c.replace(id, func(n *model.Note) {
		n.Title = title
		n.Text = text
	})
	if found {
		c.log.Debug("note updated", "id", id)
	}
	return found, c.Render(ctx)
}

// UpdateColor replaces only the color of the note with the given id.
func (c *Controller) UpdateColor(ctx context.Context, id int, color model.Color) (found bool, err error) {
	found = c.replace(id, func(n *model.Note) {
		n.Color = color
	})
	if found {
		c.log.Debug("note recolored", "id", id, "color", color)
	}
	return found, c.Render(ctx)
}

// UpdateSelected applies Update to the selected note.
func (c *Controller) UpdateSelected(ctx context.Context, title, text string) (bool, error) {
	return c.Update(ctx, c.sel.ID, title, text)
}

// UpdateSelectedColor applies UpdateColor to the selected note.
func (c *Controller) UpdateSelectedColor(ctx context.Context, color model.Color) (bool, error) {
	return c.UpdateColor(ctx, c.sel.ID, color)
}

// Delete removes every note with the given id and returns how many went.
func (c *Controller) Delete(ctx context.Context, id int) (removed int, err error) {
	kept := make([]model.Note, 0, len(c.notes))
	for _, n := range c.notes {
		if n.ID == id {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	c.notes = kept
	if removed > 0 {
		c.log.Debug("note deleted", "id", id)
	}
	return removed, c.Render(ctx)
}

// Select captures the displayed title, text and id of a note.
func (c *Controller) Select(displayed model.Note) Selection {
	c.sel = Selection{ID: displayed.ID, Title: displayed.Title, Text: displayed.Text}
	return c.sel
}

// Selection returns the context captured by the last Select.
func (c *Controller) Selection() Selection { return c.sel }

// Render persists the collection, then shows it. The view is updated even
// when persisting fails so the screen matches memory; the error is returned.
func (c *Controller) Render(ctx context.Context) error {
	err := c.save(ctx)
	if err != nil {
		c.log.Error("persist notes", "key", c.key, "err", err)
	}
	if c.view != nil {
		c.view.Show(c.Notes())
	}
	return err
}

func (c *Controller) save(ctx context.Context) error {
	raw, err := Encode(c.notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := c.slot.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// replace copies the collection, applying fn to notes matching id.
func (c *Controller) replace(id int, fn func(*model.Note)) bool {
	found := false
	next := c.Notes()
	for i := range next {
		if next[i].ID != id {
			continue
		}
		fn(&next[i])
		found = true
	}
	if found {
		c.notes = next
	}
	return found
}

func (c *Controller) nextID() int {
	id := maxID(c.notes)
	if c.highWater > id {
		id = c.highWater
	}
	id++
	c.highWater = id
	return id
}

func maxID(notes []model.Note) int {
	highest := 0
	for _, n := range notes {
		if n.ID > highest {
			highest = n.ID
		}
	}
	return highest
}
