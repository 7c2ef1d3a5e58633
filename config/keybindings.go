package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyBinding represents a single action's key bindings
type KeyBinding struct {
	Primary   string `toml:"primary"`
	Alternate string `toml:"alternate,omitempty"`
}

// Keys returns the non-empty keys of the binding, primary first.
func (b KeyBinding) Keys() []string {
	keys := make([]string, 0, 2)
	if b.Primary != "" {
		keys = append(keys, strings.ToLower(b.Primary))
	}
	if b.Alternate != "" {
		keys = append(keys, strings.ToLower(b.Alternate))
	}
	return keys
}

// KeybindingsConfig holds all configurable keybindings
type KeybindingsConfig struct {
	// Panning
	PanLeft  KeyBinding `toml:"pan_left"`
	PanRight KeyBinding `toml:"pan_right"`
	PanUp    KeyBinding `toml:"pan_up"`
	PanDown  KeyBinding `toml:"pan_down"`
	PageUp   KeyBinding `toml:"page_up"`
	PageDown KeyBinding `toml:"page_down"`

	// Zoom
	ZoomIn    KeyBinding `toml:"zoom_in"`
	ZoomOut   KeyBinding `toml:"zoom_out"`
	ZoomReset KeyBinding `toml:"zoom_reset"`

	// Minimap toggles
	ToggleMinimap    KeyBinding `toml:"toggle_minimap"`
	ToggleCentering  KeyBinding `toml:"toggle_centering"`
	ToggleFullExtent KeyBinding `toml:"toggle_full_extent"`

	CopyRect KeyBinding `toml:"copy_rect"`
	Help     KeyBinding `toml:"help"`
	Quit     KeyBinding `toml:"quit"`
}

// DefaultKeybindings returns the default keybinding configuration
func DefaultKeybindings() *KeybindingsConfig {
	return &KeybindingsConfig{
		PanLeft:  KeyBinding{Primary: "left", Alternate: "h"},
		PanRight: KeyBinding{Primary: "right", Alternate: "l"},
		PanUp:    KeyBinding{Primary: "up", Alternate: "k"},
		PanDown:  KeyBinding{Primary: "down", Alternate: "j"},
		PageUp:   KeyBinding{Primary: "pgup"},
		PageDown: KeyBinding{Primary: "pgdown"},

		ZoomIn:    KeyBinding{Primary: "+", Alternate: "="},
		ZoomOut:   KeyBinding{Primary: "-"},
		ZoomReset: KeyBinding{Primary: "0"},

		ToggleMinimap:    KeyBinding{Primary: "m"},
		ToggleCentering:  KeyBinding{Primary: "c"},
		ToggleFullExtent: KeyBinding{Primary: "f"},

		CopyRect: KeyBinding{Primary: "y"},
		Help:     KeyBinding{Primary: "?"},
		Quit:     KeyBinding{Primary: "q", Alternate: "ctrl+c"},
	}
}

// ActionNames maps action names for display
var ActionNames = map[string]string{
	"pan_left":           "Pan Left",
	"pan_right":          "Pan Right",
	"pan_up":             "Pan Up",
	"pan_down":           "Pan Down",
	"page_up":            "Page Up",
	"page_down":          "Page Down",
	"zoom_in":            "Zoom In",
	"zoom_out":           "Zoom Out",
	"zoom_reset":         "Reset Zoom",
	"toggle_minimap":     "Toggle Minimap",
	"toggle_centering":   "Toggle Centering",
	"toggle_full_extent": "Toggle Full-Extent Highlight",
	"copy_rect":          "Copy Visible Rect",
	"help":               "Help",
	"quit":               "Quit",
}

// KeybindingsPath returns the path to the keybindings file
func KeybindingsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keybindings.toml"), nil
}

// LoadKeybindings loads keybindings from disk, returning defaults if not found
func LoadKeybindings() *KeybindingsConfig {
	path, err := KeybindingsPath()
	if err != nil {
		return DefaultKeybindings()
	}
	return LoadKeybindingsFrom(path)
}

// LoadKeybindingsFrom loads keybindings from path. Actions the file leaves out
// keep their defaults; an unreadable file yields the defaults.
func LoadKeybindingsFrom(path string) *KeybindingsConfig {
	kb := DefaultKeybindings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return kb
	}

	if _, err := toml.DecodeFile(path, kb); err != nil {
		return DefaultKeybindings()
	}

	return kb
}

// SaveTo writes keybindings to path
func (kb *KeybindingsConfig) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	f.WriteString("# scrollmap keybindings\n")
	f.WriteString("# Format: primary = \"key\", alternate = \"key\" (optional)\n")
	f.WriteString("# Examples: \"ctrl+c\", \"alt+m\", \"pgdown\", \"+\"\n\n")

	return toml.NewEncoder(f).Encode(kb)
}

// GetBinding returns the KeyBinding for a given action name
func (kb *KeybindingsConfig) GetBinding(action string) KeyBinding {
	if p := kb.field(action); p != nil {
		return *p
	}
	return KeyBinding{}
}

// SetBinding sets the KeyBinding for a given action name
func (kb *KeybindingsConfig) SetBinding(action string, binding KeyBinding) {
	if p := kb.field(action); p != nil {
		*p = binding
	}
}

func (kb *KeybindingsConfig) field(action string) *KeyBinding {
	switch action {
	case "pan_left":
		return &kb.PanLeft
	case "pan_right":
		return &kb.PanRight
	case "pan_up":
		return &kb.PanUp
	case "pan_down":
		return &kb.PanDown
	case "page_up":
		return &kb.PageUp
	case "page_down":
		return &kb.PageDown
	case "zoom_in":
		return &kb.ZoomIn
	case "zoom_out":
		return &kb.ZoomOut
	case "zoom_reset":
		return &kb.ZoomReset
	case "toggle_minimap":
		return &kb.ToggleMinimap
	case "toggle_centering":
		return &kb.ToggleCentering
	case "toggle_full_extent":
		return &kb.ToggleFullExtent
	case "copy_rect":
		return &kb.CopyRect
	case "help":
		return &kb.Help
	case "quit":
		return &kb.Quit
	}
	return nil
}

// AllActions returns a list of all action names in display order
func AllActions() []string {
	return []string{
		"pan_left", "pan_right", "pan_up", "pan_down", "page_up", "page_down",
		"zoom_in", "zoom_out", "zoom_reset",
		"toggle_minimap", "toggle_centering", "toggle_full_extent",
		"copy_rect", "help", "quit",
	}
}

// Matches checks if a key string matches this binding (primary or alternate)
func (b KeyBinding) Matches(key string) bool {
	key = strings.ToLower(key)
	return (b.Primary != "" && strings.ToLower(b.Primary) == key) ||
		(b.Alternate != "" && strings.ToLower(b.Alternate) == key)
}

// DisplayString returns a human-readable string for the binding
func (b KeyBinding) DisplayString() string {
	if b.Primary == "" && b.Alternate == "" {
		return "(none)"
	}
	if b.Alternate == "" {
		return FormatKeyForDisplay(b.Primary)
	}
	return FormatKeyForDisplay(b.Primary) + "/" + FormatKeyForDisplay(b.Alternate)
}

var keyDisplay = map[string]string{
	"left":   "←",
	"right":  "→",
	"up":     "↑",
	"down":   "↓",
	"pgup":   "PgUp",
	"pgdown": "PgDn",
}

// FormatKeyForDisplay converts a key string to a more readable format
func FormatKeyForDisplay(key string) string {
	if key == "" {
		return ""
	}
	if d, ok := keyDisplay[key]; ok {
		return d
	}
	key = strings.ReplaceAll(key, "ctrl+", "Ctrl+")
	key = strings.ReplaceAll(key, "alt+", "Alt+")
	key = strings.ReplaceAll(key, "shift+", "Shift+")
	return key
}

// FindConflicts checks for key conflicts and returns a map of conflicting actions
func (kb *KeybindingsConfig) FindConflicts() map[string][]string {
	conflicts := make(map[string][]string)
	keyToActions := make(map[string][]string)

	for _, action := range AllActions() {
		for _, key := range kb.GetBinding(action).Keys() {
			keyToActions[key] = append(keyToActions[key], action)
		}
	}

	for key, actions := range keyToActions {
		if len(actions) > 1 {
			conflicts[key] = actions
		}
	}

	return conflicts
}
