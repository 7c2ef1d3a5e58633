package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultKeybindingsHaveNoConflicts(t *testing.T) {
	if conflicts := DefaultKeybindings().FindConflicts(); len(conflicts) != 0 {
		t.Errorf("default keybindings conflict: %v", conflicts)
	}
}

func TestEveryActionHasABinding(t *testing.T) {
	kb := DefaultKeybindings()
	for _, action := range AllActions() {
		if len(kb.GetBinding(action).Keys()) == 0 {
			t.Errorf("action %q has no default key", action)
		}
		if _, ok := ActionNames[action]; !ok {
			t.Errorf("action %q has no display name", action)
		}
	}
}

func TestSetBinding(t *testing.T) {
	kb := DefaultKeybindings()
	kb.SetBinding("zoom_in", KeyBinding{Primary: "i"})

	if got := kb.GetBinding("zoom_in"); got.Primary != "i" || got.Alternate != "" {
		t.Errorf("GetBinding(zoom_in) = %+v", got)
	}

	// Unknown actions are ignored.
	kb.SetBinding("explode", KeyBinding{Primary: "x"})
	if got := kb.GetBinding("explode"); got != (KeyBinding{}) {
		t.Errorf("GetBinding(explode) = %+v, want zero", got)
	}
}

func TestFindConflicts(t *testing.T) {
	kb := DefaultKeybindings()
	kb.SetBinding("zoom_reset", KeyBinding{Primary: "M"})

	conflicts := kb.FindConflicts()
	actions, ok := conflicts["m"]
	if !ok || len(actions) != 2 {
		t.Fatalf("FindConflicts() = %v, want zoom_reset and toggle_minimap on m", conflicts)
	}
}

func TestKeyBindingMatches(t *testing.T) {
	tests := []struct {
		binding KeyBinding
		key     string
		want    bool
	}{
		{KeyBinding{Primary: "q", Alternate: "ctrl+c"}, "q", true},
		{KeyBinding{Primary: "q", Alternate: "ctrl+c"}, "ctrl+c", true},
		{KeyBinding{Primary: "q", Alternate: "ctrl+c"}, "CTRL+C", true},
		{KeyBinding{Primary: "q"}, "", false},
		{KeyBinding{}, "q", false},
	}

	for _, tt := range tests {
		if got := tt.binding.Matches(tt.key); got != tt.want {
			t.Errorf("%+v.Matches(%q) = %v, want %v", tt.binding, tt.key, got, tt.want)
		}
	}
}

func TestDisplayString(t *testing.T) {
	tests := []struct {
		binding KeyBinding
		want    string
	}{
		{KeyBinding{}, "(none)"},
		{KeyBinding{Primary: "left", Alternate: "h"}, "←/h"},
		{KeyBinding{Primary: "q", Alternate: "ctrl+c"}, "q/Ctrl+c"},
		{KeyBinding{Primary: "pgdown"}, "PgDn"},
	}

	for _, tt := range tests {
		if got := tt.binding.DisplayString(); got != tt.want {
			t.Errorf("%+v.DisplayString() = %q, want %q", tt.binding, got, tt.want)
		}
	}
}

func TestLoadKeybindingsFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.toml")
	data := `
[zoom_in]
primary = "i"

[quit]
primary = "x"
alternate = "ctrl+q"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	kb := LoadKeybindingsFrom(path)
	if kb.ZoomIn.Primary != "i" {
		t.Errorf("ZoomIn = %+v, want primary i", kb.ZoomIn)
	}
	if !kb.Quit.Matches("ctrl+q") {
		t.Errorf("Quit = %+v, want ctrl+q alternate", kb.Quit)
	}
	if kb.PanLeft != DefaultKeybindings().PanLeft {
		t.Errorf("PanLeft should keep its default, got %+v", kb.PanLeft)
	}
}

func TestKeybindingsSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb", "keybindings.toml")
	kb := DefaultKeybindings()
	kb.CopyRect = KeyBinding{Primary: "ctrl+y"}

	if err := kb.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	loaded := LoadKeybindingsFrom(path)
	if loaded.CopyRect.Primary != "ctrl+y" {
		t.Errorf("CopyRect = %+v after round trip", loaded.CopyRect)
	}
}
