package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	rendererMu sync.Mutex
	renderers  = map[markdownKey]*glamour.TermRenderer{}
)

type markdownKey struct {
	width int
	style string
}

// Markdown renders input for the terminal, wrapped to width. It falls back
// to the raw input when rendering fails.
func Markdown(input string, width int) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := renderer(width, Current().Markdown)
	if r == nil {
		return input
	}
	out, err := r.Render(input)
	if err != nil {
		return input
	}
	return strings.TrimRight(out, "\n")
}

// NoteMarkdown turns a note into a Markdown document: title as a heading,
// text as the body.
func NoteMarkdown(title, text string) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("# ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	b.WriteString(text)
	return b.String()
}

func renderer(width int, style string) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	key := markdownKey{width: width, style: style}
	if r, ok := renderers[key]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = r
	return r
}
