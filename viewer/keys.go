package viewer

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/cornish/scrollmap/config"
)

// KeyMap holds the viewer's key bindings, built from the user's
// keybindings file.
type KeyMap struct {
	PanLeft  key.Binding
	PanRight key.Binding
	PanUp    key.Binding
	PanDown  key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ZoomReset key.Binding

	ToggleMinimap    key.Binding
	ToggleCentering  key.Binding
	ToggleFullExtent key.Binding

	CopyRect key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// NewKeyMap converts configured bindings. A nil config uses the defaults.
func NewKeyMap(kb *config.KeybindingsConfig) KeyMap {
	if kb == nil {
		kb = config.DefaultKeybindings()
	}
	bind := func(action, desc string) key.Binding {
		b := kb.GetBinding(action)
		keys := b.Keys()
		opts := []key.BindingOpt{
			key.WithKeys(keys...),
			key.WithHelp(b.DisplayString(), desc),
		}
		if len(keys) == 0 {
			opts = append(opts, key.WithDisabled())
		}
		return key.NewBinding(opts...)
	}

	return KeyMap{
		PanLeft:  bind("pan_left", "pan left"),
		PanRight: bind("pan_right", "pan right"),
		PanUp:    bind("pan_up", "pan up"),
		PanDown:  bind("pan_down", "pan down"),
		PageUp:   bind("page_up", "page up"),
		PageDown: bind("page_down", "page down"),

		ZoomIn:    bind("zoom_in", "zoom in"),
		ZoomOut:   bind("zoom_out", "zoom out"),
		ZoomReset: bind("zoom_reset", "reset zoom"),

		ToggleMinimap:    bind("toggle_minimap", "minimap"),
		ToggleCentering:  bind("toggle_centering", "centering"),
		ToggleFullExtent: bind("toggle_full_extent", "full-extent highlight"),

		CopyRect: bind("copy_rect", "copy visible rect"),
		Help:     bind("help", "help"),
		Quit:     bind("quit", "quit"),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.ToggleMinimap, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PanLeft, k.PanRight, k.PanUp, k.PanDown, k.PageUp, k.PageDown}, // Navigation
		{k.ZoomIn, k.ZoomOut, k.ZoomReset},                                // Zoom
		{k.ToggleMinimap, k.ToggleCentering, k.ToggleFullExtent},          // Minimap
		{k.CopyRect, k.Help, k.Quit},                                      // General
	}
}
