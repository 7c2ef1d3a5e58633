package config

import (
	"testing"
)

// envOf returns an Env backed by a map.
func envOf(vars map[string]string) Env {
	return func(name string) string { return vars[name] }
}

func TestColorModeString(t *testing.T) {
	tests := []struct {
		mode ColorMode
		want string
	}{
		{Color16, "16 colors"},
		{Color256, "256 colors"},
		{ColorTrueColor, "TrueColor (24-bit)"},
		{ColorMode(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("ColorMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestDetectCapabilitiesFrom_Locale(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"nothing set", nil, false},
		{"LANG utf-8", map[string]string{"LANG": "en_US.UTF-8"}, true},
		{"LANG utf8 lowercase", map[string]string{"LANG": "en_US.utf8"}, true},
		{"LC_ALL wins over LANG", map[string]string{"LC_ALL": "C", "LANG": "en_US.UTF-8"}, false},
		{"LC_CTYPE wins over LANG", map[string]string{"LC_CTYPE": "de_DE.UTF-8", "LANG": "C"}, true},
		{"POSIX", map[string]string{"LANG": "POSIX"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCapabilitiesFrom(envOf(tt.env)).UTF8Support; got != tt.want {
				t.Errorf("UTF8Support = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectCapabilitiesFrom_ColorMode(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want ColorMode
	}{
		{"nothing set", nil, Color16},
		{"COLORTERM truecolor", map[string]string{"COLORTERM": "truecolor", "TERM": "xterm"}, ColorTrueColor},
		{"COLORTERM 24bit", map[string]string{"COLORTERM": "24bit"}, ColorTrueColor},
		{"xterm-256color", map[string]string{"TERM": "xterm-256color"}, Color256},
		{"xterm-direct", map[string]string{"TERM": "xterm-direct"}, ColorTrueColor},
		{"plain xterm", map[string]string{"TERM": "xterm"}, Color16},
		{"screen", map[string]string{"TERM": "screen"}, Color16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCapabilitiesFrom(envOf(tt.env)).ColorMode; got != tt.want {
				t.Errorf("ColorMode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectCapabilitiesFrom_Kitty(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"plain xterm", map[string]string{"TERM": "xterm-256color"}, false},
		{"kitty window id", map[string]string{"KITTY_WINDOW_ID": "1", "TERM": "xterm-256color"}, true},
		{"kitty TERM", map[string]string{"TERM": "xterm-kitty"}, true},
		{"wezterm", map[string]string{"TERM": "xterm-256color", "TERM_PROGRAM": "WezTerm"}, true},
		{"ghostty", map[string]string{"TERM": "xterm-ghostty", "TERM_PROGRAM": "ghostty"}, true},
		{"apple terminal", map[string]string{"TERM": "xterm-256color", "TERM_PROGRAM": "Apple_Terminal"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCapabilitiesFrom(envOf(tt.env)).KittyGraphics; got != tt.want {
				t.Errorf("KittyGraphics = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectCapabilities_UsesProcessEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_CTYPE", "")
	t.Setenv("LANG", "en_GB.UTF-8")
	t.Setenv("COLORTERM", "truecolor")

	caps := DetectCapabilities()
	if !caps.UTF8Support || caps.ColorMode != ColorTrueColor {
		t.Errorf("DetectCapabilities() = %+v", caps)
	}
}

func TestShouldUse(t *testing.T) {
	on, off := true, false

	tests := []struct {
		name     string
		caps     TermCapabilities
		override *bool
		ascii    bool
		wantASCII, wantTrue, wantKitty bool
	}{
		{"utf8 truecolor kitty", TermCapabilities{UTF8Support: true, ColorMode: ColorTrueColor, KittyGraphics: true}, nil, false, false, true, true},
		{"bare terminal", TermCapabilities{}, nil, false, true, false, false},
		{"forced on", TermCapabilities{}, &on, false, true, true, true},
		{"forced off", TermCapabilities{UTF8Support: true, ColorMode: ColorTrueColor, KittyGraphics: true}, &off, false, false, false, false},
		{"ascii disables kitty", TermCapabilities{KittyGraphics: true}, &on, true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caps.ShouldUseASCII(tt.override); got != tt.wantASCII {
				t.Errorf("ShouldUseASCII() = %v, want %v", got, tt.wantASCII)
			}
			if got := tt.caps.ShouldUseTrueColor(tt.override); got != tt.wantTrue {
				t.Errorf("ShouldUseTrueColor() = %v, want %v", got, tt.wantTrue)
			}
			if got := tt.caps.ShouldUseKitty(tt.override, tt.ascii); got != tt.wantKitty {
				t.Errorf("ShouldUseKitty() = %v, want %v", got, tt.wantKitty)
			}
		})
	}
}
