package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cornish/scrollmap/config"
	"github.com/cornish/scrollmap/ui"
)

func TestRenderMode(t *testing.T) {
	tests := []struct {
		name  string
		caps  config.TermCapabilities
		ascii bool
		want  ui.RenderMode
	}{
		{"ascii wins", config.TermCapabilities{UTF8Support: true, ColorMode: config.ColorTrueColor}, true, ui.ModeASCII},
		{"basic colors", config.TermCapabilities{UTF8Support: true, ColorMode: config.Color16}, false, ui.ModeBraille},
		{"256 colors", config.TermCapabilities{UTF8Support: true, ColorMode: config.Color256}, false, ui.ModeHalfBlock},
		{"truecolor", config.TermCapabilities{UTF8Support: true, ColorMode: config.ColorTrueColor}, false, ui.ModeHalfBlock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, renderMode(&tt.caps, tt.ascii))
		})
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := newRootCmd("test")
	require.NoError(t, cmd.ParseFlags([]string{"--ascii", "--no-kitty", "--center", "--max-zoom", "4"}))

	var f flags
	f.ascii, _ = cmd.Flags().GetBool("ascii")
	f.noKitty, _ = cmd.Flags().GetBool("no-kitty")
	f.center, _ = cmd.Flags().GetBool("center")
	f.maxZoom, _ = cmd.Flags().GetFloat64("max-zoom")

	cfg := config.DefaultConfig()
	msgs := applyFlags(cmd, cfg, f)
	require.Empty(t, msgs)
	require.True(t, *cfg.View.AsciiMode)
	require.False(t, *cfg.Minimap.Kitty)
	require.True(t, cfg.Minimap.CentersContent)
	require.Equal(t, 4.0, cfg.View.MaxZoom)
}

func TestApplyFlags_BadMaxZoom(t *testing.T) {
	cmd := newRootCmd("test")
	require.NoError(t, cmd.ParseFlags([]string{"--max-zoom", "0.5"}))

	cfg := config.DefaultConfig()
	msgs := applyFlags(cmd, cfg, flags{maxZoom: 0.5})
	require.Len(t, msgs, 1)
	require.Contains(t, msgs[0], "max_zoom")
	require.Equal(t, config.DefaultConfig().View.MaxZoom, cfg.View.MaxZoom)
}

func TestApplyFlags_UnchangedMaxZoomKeepsConfig(t *testing.T) {
	cmd := newRootCmd("test")
	require.NoError(t, cmd.ParseFlags(nil))

	cfg := config.DefaultConfig()
	cfg.View.MaxZoom = 3
	require.Empty(t, applyFlags(cmd, cfg, flags{}))
	require.Equal(t, 3.0, cfg.View.MaxZoom)
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd("test")
	cmd.SetArgs([]string{"a.png", "b.png"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	require.Error(t, cmd.Execute())
}

func TestKeyConflicts(t *testing.T) {
	require.Empty(t, keyConflicts(config.DefaultKeybindings()))

	kb := config.DefaultKeybindings()
	kb.CopyRect = config.KeyBinding{Primary: "m"}
	kb.Help = config.KeyBinding{Primary: "q"}
	require.Equal(t, []string{
		"key m bound to toggle_minimap, copy_rect",
		"key q bound to help, quit",
	}, keyConflicts(kb))
}
