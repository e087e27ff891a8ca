package tui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubClipboard(t *testing.T, system, osc func(string) error) {
	t.Helper()
	origWriteAll := clipboardWriteAll
	origWriteOSC52 := clipboardWriteOSC52
	t.Cleanup(func() {
		clipboardWriteAll = origWriteAll
		clipboardWriteOSC52 = origWriteOSC52
	})
	clipboardWriteAll = system
	clipboardWriteOSC52 = osc
}

func TestCopyTextUsesSystemClipboard(t *testing.T) {
	fallback := false
	stubClipboard(t,
		func(string) error { return nil },
		func(string) error { fallback = true; return nil },
	)
	require.NoError(t, copyText("hello"))
	assert.False(t, fallback)
}

func TestCopyTextFallsBackToOSC52(t *testing.T) {
	fallback := false
	stubClipboard(t,
		func(string) error { return errors.New("exit status 1") },
		func(string) error { fallback = true; return nil },
	)
	require.NoError(t, copyText("hello"))
	assert.True(t, fallback)
}

func TestCopyTextReportsBothFailures(t *testing.T) {
	stubClipboard(t,
		func(string) error { return errors.New("no xclip") },
		func(string) error { return errors.New("no tty") },
	)
	err := copyText("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no xclip")
	assert.Contains(t, err.Error(), "no tty")
}

func TestWriteOSC52Sequence(t *testing.T) {
	t.Setenv("TMUX", "")
	var buf bytes.Buffer
	require.NoError(t, writeOSC52Sequence(&buf, "hi", "xterm-256color"))
	assert.Contains(t, buf.String(), "\x1b]52;c;aGk=")
}
