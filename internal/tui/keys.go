package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left, Right, Up, Down key.Binding
	Open, New, Color      key.Binding
	Delete, Copy          key.Binding
	Help, Quit, ForceQuit key.Binding

	// forms
	Submit, Discard, Leave, SwitchField key.Binding

	// palette
	ClosePalette key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
		Color:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),

		Submit:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Discard:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "close")),
		Leave:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		SwitchField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "title/text")),

		ClosePalette: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "hide colors")),
	}
}

// helpView adapts a fixed set of bindings to help.KeyMap.
type helpView struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpView) ShortHelp() []key.Binding  { return h.short }
func (h helpView) FullHelp() [][]key.Binding { return h.full }

func (k keyMap) boardHelp() helpView {
	return helpView{
		short: []key.Binding{k.New, k.Open, k.Color, k.Delete, k.Help, k.Quit},
		full: [][]key.Binding{
			{k.Left, k.Right, k.Up, k.Down},
			{k.New, k.Open, k.Color, k.Delete, k.Copy},
			{k.Help, k.Quit},
		},
	}
}

func (k keyMap) entryHelp() helpView {
	b := []key.Binding{k.SwitchField, k.Submit, k.Leave, k.Discard}
	return helpView{short: b, full: [][]key.Binding{b}}
}

func (k keyMap) detailHelp() helpView {
	b := []key.Binding{k.SwitchField, k.Leave}
	return helpView{short: b, full: [][]key.Binding{b}}
}

func (k keyMap) paletteHelp() helpView {
	pick := key.NewBinding(key.WithKeys("1"), key.WithHelp("1-9 0 - =", "pick color"))
	b := []key.Binding{pick, k.ClosePalette, k.Left, k.Right}
	return helpView{short: b, full: [][]key.Binding{b}}
}
