package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/notes/internal/model"
)

// Theme bundles palette + symbols + borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Help lipgloss.Style

	CardBorder, FocusBorder lipgloss.Border
	BorderColor, FocusColor lipgloss.TerminalColor
	CardInk                 lipgloss.TerminalColor

	// background per note color; empty map means cards stay uncolored
	Paper map[model.Color]lipgloss.Color

	SymOK, SymFail, SymSwatch string
	Markdown                  string // glamour standard style name
}

var paper = map[model.Color]lipgloss.Color{
	model.ColorWhite:    "#ffffff",
	model.ColorRed:      "#f28b82",
	model.ColorOrange:   "#fbbc04",
	model.ColorYellow:   "#fff475",
	model.ColorGreen:    "#ccff90",
	model.ColorTeal:     "#a7ffeb",
	model.ColorBlue:     "#cbf0f8",
	model.ColorDarkBlue: "#aecbfa",
	model.ColorPurple:   "#d7aefb",
	model.ColorPink:     "#fdcfe8",
	model.ColorBrown:    "#e6c9a8",
	model.ColorGray:     "#e8eaed",
}

var current = buildTheme("classic")

func buildTheme(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:        "neon",
			Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Help:        lipgloss.NewStyle().Faint(true),
			CardBorder:  lipgloss.RoundedBorder(),
			FocusBorder: lipgloss.ThickBorder(),
			BorderColor: lipgloss.Color("5"),
			FocusColor:  lipgloss.Color("14"),
			CardInk:     lipgloss.Color("#202124"),
			Paper:       paper,
			SymOK:       "✔", SymFail: "✖", SymSwatch: "●",
			Markdown: "dracula",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:        "mono",
			Title:       plain.Bold(true),
			Muted:       plain,
			Accent:      plain,
			Success:     plain,
			Error:       plain,
			Help:        plain,
			CardBorder:  lipgloss.NormalBorder(),
			FocusBorder: lipgloss.DoubleBorder(),
			BorderColor: lipgloss.NoColor{},
			FocusColor:  lipgloss.NoColor{},
			CardInk:     lipgloss.NoColor{},
			Paper:       map[model.Color]lipgloss.Color{},
			SymOK:       "ok", SymFail: "x", SymSwatch: "#",
			Markdown: "notty",
		}
	default: // classic
		return Theme{
			Name:        "classic",
			Title:       lipgloss.NewStyle().Bold(true),
			Muted:       lipgloss.NewStyle().Faint(true),
			Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Help:        lipgloss.NewStyle().Faint(true),
			CardBorder:  lipgloss.RoundedBorder(),
			FocusBorder: lipgloss.ThickBorder(),
			BorderColor: lipgloss.Color("8"),
			FocusColor:  lipgloss.Color("12"),
			CardInk:     lipgloss.Color("#202124"),
			Paper:       paper,
			SymOK:       "✔", SymFail: "✖", SymSwatch: "●",
			Markdown: "dark",
		}
	}
}

// SetTheme switches the active theme; unknown names fall back to classic.
func SetTheme(name string) { current = buildTheme(name) }

// Expose what renderers need
func Current() Theme { return current }

// PaperFor returns the card background for c, if the theme colors cards.
func (t Theme) PaperFor(c model.Color) (lipgloss.Color, bool) {
	col, ok := t.Paper[c]
	return col, ok
}
