package model

import (
	"fmt"
	"strings"
)

// Note is the domain model for a single note on the board.
// Field names and order mirror the persisted form.
type Note struct {
	Title string `json:"title" yaml:"title" toml:"title"`
	Text  string `json:"text" yaml:"text" toml:"text"`
	Color Color  `json:"color" yaml:"color" toml:"color"`
	ID    int    `json:"id" yaml:"id" toml:"id"`
}

// Empty reports whether the note carries neither a title nor a text.
func (n Note) Empty() bool {
	return n.Title == "" && n.Text == ""
}

// Color is the symbolic color tag of a note.
type Color string

const (
	ColorWhite    Color = "white"
	ColorRed      Color = "red"
	ColorOrange   Color = "orange"
	ColorYellow   Color = "yellow"
	ColorGreen    Color = "green"
	ColorTeal     Color = "teal"
	ColorBlue     Color = "blue"
	ColorDarkBlue Color = "darkblue"
	ColorPurple   Color = "purple"
	ColorPink     Color = "pink"
	ColorBrown    Color = "brown"
	ColorGray     Color = "gray"
)

// DefaultColor is assigned to every freshly created note.
const DefaultColor = ColorWhite

// Palette lists the selectable colors in display order.
var Palette = []Color{
	ColorWhite, ColorRed, ColorOrange, ColorYellow,
	ColorGreen, ColorTeal, ColorBlue, ColorDarkBlue,
	ColorPurple, ColorPink, ColorBrown, ColorGray,
}

func (c Color) String() string { return string(c) }

// Valid reports whether c is part of the palette.
func (c Color) Valid() bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// ParseColor accepts a palette name, case-insensitively.
// "grey" and "dark-blue" are accepted as aliases.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "grey":
		name = "gray"
	case "dark-blue", "dark_blue":
		name = "darkblue"
	}
	c := Color(name)
	if !c.Valid() {
		return "", fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}
