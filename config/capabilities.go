package config

import (
	"os"
	"strings"
)

// ColorMode is how many colors the terminal can show.
type ColorMode int

const (
	Color16        ColorMode = iota // basic ANSI palette
	Color256                        // xterm 256 palette
	ColorTrueColor                  // 24-bit
)

func (c ColorMode) String() string {
	switch c {
	case Color16:
		return "16 colors"
	case Color256:
		return "256 colors"
	case ColorTrueColor:
		return "TrueColor (24-bit)"
	default:
		return "unknown"
	}
}

// TermCapabilities decides how the viewer draws: which cell renderer, how
// colors are encoded and whether the minimap can be a Kitty image.
type TermCapabilities struct {
	UTF8Support   bool
	ColorMode     ColorMode
	KittyGraphics bool
}

// Env looks up one environment variable. os.Getenv satisfies it.
type Env func(string) string

// DetectCapabilities inspects the process environment.
func DetectCapabilities() *TermCapabilities {
	return DetectCapabilitiesFrom(os.Getenv)
}

// DetectCapabilitiesFrom inspects the variables env returns.
func DetectCapabilitiesFrom(env Env) *TermCapabilities {
	return &TermCapabilities{
		UTF8Support:   utf8Locale(env),
		ColorMode:     colorMode(env),
		KittyGraphics: kittyGraphics(env),
	}
}

// localeVars are consulted in setlocale precedence; the first one set wins.
var localeVars = []string{"LC_ALL", "LC_CTYPE", "LANG"}

func utf8Locale(env Env) bool {
	for _, name := range localeVars {
		v := strings.ToUpper(env(name))
		if v == "" {
			continue
		}
		return strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
	}
	return false
}

// trueColorTerms are TERM fragments of terminals known to take 24-bit color.
var trueColorTerms = []string{"truecolor", "24bit", "-direct", "iterm2", "vte"}

func colorMode(env Env) ColorMode {
	switch strings.ToLower(env("COLORTERM")) {
	case "truecolor", "24bit":
		return ColorTrueColor
	}

	term := strings.ToLower(env("TERM"))
	if strings.Contains(term, "256color") || strings.Contains(term, "256-color") {
		return Color256
	}
	for _, t := range trueColorTerms {
		if strings.Contains(term, t) {
			return ColorTrueColor
		}
	}
	return Color16
}

func kittyGraphics(env Env) bool {
	if env("KITTY_WINDOW_ID") != "" || strings.Contains(strings.ToLower(env("TERM")), "kitty") {
		return true
	}
	switch strings.ToLower(env("TERM_PROGRAM")) {
	case "wezterm", "ghostty":
		return true
	}
	return false
}

// ShouldUseASCII reports whether to draw with ASCII only. A non-nil override
// from the config or command line wins over detection.
func (c *TermCapabilities) ShouldUseASCII(override *bool) bool {
	if override != nil {
		return *override
	}
	return !c.UTF8Support
}

// ShouldUseTrueColor reports whether colors are sent as 24-bit sequences.
func (c *TermCapabilities) ShouldUseTrueColor(override *bool) bool {
	if override != nil {
		return *override
	}
	return c.ColorMode == ColorTrueColor
}

// ShouldUseKitty reports whether the minimap is drawn as a Kitty image
// overlay. ASCII mode always disables it.
func (c *TermCapabilities) ShouldUseKitty(override *bool, ascii bool) bool {
	if ascii {
		return false
	}
	if override != nil {
		return *override
	}
	return c.KittyGraphics
}
