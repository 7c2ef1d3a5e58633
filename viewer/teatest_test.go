package viewer

import (
	"bytes"
	"image/color"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/cornish/scrollmap/clipboard"
	"github.com/cornish/scrollmap/config"
	"github.com/cornish/scrollmap/thumbnail"
	"github.com/cornish/scrollmap/ui"
)

func TestProgram_ZoomAndQuit(t *testing.T) {
	m := New(Options{
		Config:    config.DefaultConfig(),
		Mode:      ui.ModeASCII,
		Clipboard: clipboard.New(&bytes.Buffer{}),
	})
	m.SetSource("world.png", thumbnail.NewImageSource(solid(200, 100, color.White)))

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(60, 20))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("world.png"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Zoom 125%"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(*Model)
	require.True(t, ok)
	require.Equal(t, 1.25, final.ScrollView().RelativeZoom())
	require.Equal(t, 60, final.width)
}
