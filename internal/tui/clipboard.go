package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

var clipboardWriteAll = clipboard.WriteAll
var clipboardWriteOSC52 = writeOSC52Clipboard

// copyText tries the system clipboard first and falls back to OSC52.
func copyText(text string) error {
	err := clipboardWriteAll(text)
	if err == nil {
		return nil
	}
	if oscErr := clipboardWriteOSC52(text); oscErr != nil {
		return fmt.Errorf("system clipboard failed: %v; OSC52 fallback failed: %v", err, oscErr)
	}
	return nil
}

func writeOSC52Clipboard(text string) error {
	termName := strings.TrimSpace(os.Getenv("TERM"))
	if termName == "" || strings.EqualFold(termName, "dumb") {
		return errors.New("OSC52 unavailable for this terminal")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	return writeOSC52Sequence(tty, text, termName)
}

func writeOSC52Sequence(w io.Writer, text, termName string) error {
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(strings.ToLower(termName), "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}
