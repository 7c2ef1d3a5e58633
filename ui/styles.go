package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cornish/scrollmap/config"
	"github.com/cornish/scrollmap/syntax"
)

// UseTrueColor controls whether RGB colors use true color (24-bit) or
// fall back to the nearest 256-color. Set to false for older terminals.
var UseTrueColor = true

const ansiReset = "\033[0m"

// ColorToANSIFg converts a theme color string to an ANSI foreground escape sequence
// Supports: "0"-"255" for indexed colors, "#RGB" or "#RRGGBB" for hex colors
func ColorToANSIFg(c string) string {
	if strings.HasPrefix(c, "#") {
		rgb, ok := syntax.ParseHex(c)
		if !ok {
			return "\033[37m"
		}
		return RGBToANSIFg(rgb)
	}
	n, err := strconv.Atoi(c)
	if err != nil {
		return "\033[37m" // Default to white on error
	}
	if n < 16 {
		// Standard colors: use traditional codes for better compatibility
		if n < 8 {
			return fmt.Sprintf("\033[%dm", 30+n)
		}
		return fmt.Sprintf("\033[%dm", 90+(n-8))
	}
	return fmt.Sprintf("\033[38;5;%dm", n)
}

// ColorToANSIBg converts a theme color string to an ANSI background escape sequence
func ColorToANSIBg(c string) string {
	if strings.HasPrefix(c, "#") {
		rgb, ok := syntax.ParseHex(c)
		if !ok {
			return "\033[40m"
		}
		return RGBToANSIBg(rgb)
	}
	n, err := strconv.Atoi(c)
	if err != nil {
		return "\033[40m" // Default to black on error
	}
	if n < 16 {
		if n < 8 {
			return fmt.Sprintf("\033[%dm", 40+n)
		}
		return fmt.Sprintf("\033[%dm", 100+(n-8))
	}
	return fmt.Sprintf("\033[48;5;%dm", n)
}

// RGBToANSIFg returns the foreground escape for an RGB color
func RGBToANSIFg(c color.RGBA) string {
	if UseTrueColor {
		return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
	}
	return fmt.Sprintf("\033[38;5;%dm", rgbTo256Color(int(c.R), int(c.G), int(c.B)))
}

// RGBToANSIBg returns the background escape for an RGB color
func RGBToANSIBg(c color.RGBA) string {
	if UseTrueColor {
		return fmt.Sprintf("\033[48;2;%d;%d;%dm", c.R, c.G, c.B)
	}
	return fmt.Sprintf("\033[48;5;%dm", rgbTo256Color(int(c.R), int(c.G), int(c.B)))
}

// rgbTo256Color converts RGB values to the nearest 256-color palette index
func rgbTo256Color(r, g, b int) int {
	if isGrayscale(r, g, b) {
		return rgbToGrayscale(r, g, b)
	}
	// 6x6x6 color cube (colors 16-231)
	return 16 + 36*rgbTo6(r) + 6*rgbTo6(g) + rgbTo6(b)
}

// rgbTo6 converts an 8-bit color value to a 6-level value (0-5)
// The 6x6x6 cube uses values: 0, 95, 135, 175, 215, 255
func rgbTo6(v int) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	case v < 155:
		return 2
	case v < 195:
		return 3
	case v < 235:
		return 4
	}
	return 5
}

// isGrayscale checks if RGB values are close enough to be grayscale
func isGrayscale(r, g, b int) bool {
	return max(r, g, b)-min(r, g, b) < 20
}

// rgbToGrayscale converts RGB to nearest grayscale in 232-255 range
func rgbToGrayscale(r, g, b int) int {
	gray := (r + g + b) / 3
	if gray < 4 {
		return 16 // black from the color cube
	}
	if gray > 243 {
		return 231 // white from the color cube
	}
	return 232 + (gray-8)/10
}

// ThemeRGB resolves a theme color string to RGB. Indexed colors map through
// the xterm palette.
func ThemeRGB(c string) color.RGBA {
	if rgb, ok := syntax.ParseHex(c); ok {
		return rgb
	}
	n, err := strconv.Atoi(c)
	if err != nil || n < 0 || n > 255 {
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
	return ansi256ToRGB(n)
}

var basicPalette = [16]color.RGBA{
	{0, 0, 0, 255}, {205, 49, 49, 255}, {13, 188, 121, 255}, {229, 229, 16, 255},
	{36, 114, 200, 255}, {188, 63, 188, 255}, {17, 168, 205, 255}, {229, 229, 229, 255},
	{102, 102, 102, 255}, {241, 76, 76, 255}, {35, 209, 139, 255}, {245, 245, 67, 255},
	{59, 142, 234, 255}, {214, 112, 214, 255}, {41, 184, 219, 255}, {255, 255, 255, 255},
}

// ansi256ToRGB converts a 256-color palette index to RGB.
func ansi256ToRGB(idx int) color.RGBA {
	if idx < 16 {
		return basicPalette[idx]
	}
	if idx < 232 {
		idx -= 16
		level := func(v int) uint8 {
			if v == 0 {
				return 0
			}
			return uint8(55 + v*40)
		}
		return color.RGBA{R: level(idx / 36), G: level((idx / 6) % 6), B: level(idx % 6), A: 255}
	}
	gray := uint8((idx-232)*10 + 8)
	return color.RGBA{R: gray, G: gray, B: gray, A: 255}
}

// Styles contains all the styles used by the viewer
type Styles struct {
	// The theme these styles were generated from
	Theme config.Theme

	StatusBar    lipgloss.Style
	StatusAccent lipgloss.Style
	StatusError  lipgloss.Style

	MinimapBorder lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Subtle lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles creates a Styles configuration from a theme
func NewStyles(theme config.Theme) Styles {
	ui := theme.UI

	return Styles{
		Theme: theme,

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.StatusFg)),

		StatusAccent: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.StatusAccent)).
			Bold(true),

		StatusError: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.ErrorFg)).
			Bold(true),

		MinimapBorder: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.MinimapBorder)),

		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.HelpKey)).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.HelpDesc)),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.DisabledFg)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.ErrorFg)).
			Bold(true),
	}
}

// DefaultStyles returns the default style configuration
func DefaultStyles() Styles {
	return NewStyles(config.DefaultTheme())
}
