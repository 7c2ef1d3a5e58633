package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// Theme holds complete color theme settings
// This is the format for theme TOML files in ~/.config/scrollmap/themes/
type Theme struct {
	// Metadata
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Author      string `toml:"author"`

	// UI Colors
	UI UIColors `toml:"ui"`

	// TextStyle names the chroma style used when rasterizing source files.
	TextStyle string `toml:"text_style"`
}

// UIColors holds UI color settings
type UIColors struct {
	StatusBg       string `toml:"status_bg"`
	StatusFg       string `toml:"status_fg"`
	StatusAccent   string `toml:"status_accent"`
	ErrorFg        string `toml:"error_fg"`
	DisabledFg     string `toml:"disabled_fg"`
	CanvasBg       string `toml:"canvas_bg"` // letterbox around content
	ScrollbarTrack string `toml:"scrollbar_track"`
	ScrollbarThumb string `toml:"scrollbar_thumb"`
	MinimapBorder  string `toml:"minimap_border"`
	MinimapBg      string `toml:"minimap_bg"`
	HelpKey        string `toml:"help_key"`
	HelpDesc       string `toml:"help_desc"`
}

// Built-in themes
var builtinThemes = map[string]Theme{
	"default": {
		Name:        "default",
		Description: "Blue status bar with cyan accents",
		Author:      "scrollmap",
		UI: UIColors{
			StatusBg:       "4",  // Dark blue
			StatusFg:       "15", // Bright white
			StatusAccent:   "14", // Bright cyan
			ErrorFg:        "9",  // Bright red
			DisabledFg:     "8",  // Gray
			CanvasBg:       "0",  // Black
			ScrollbarTrack: "8",  // Gray
			ScrollbarThumb: "14", // Bright cyan
			MinimapBorder:  "6",  // Cyan
			MinimapBg:      "0",  // Black
			HelpKey:        "14", // Bright cyan
			HelpDesc:       "7",  // Light gray
		},
		TextStyle: "vim",
	},
	"dark": {
		Name:        "dark",
		Description: "Modern dark theme with muted colors",
		Author:      "scrollmap",
		UI: UIColors{
			StatusBg:       "236", // Dark gray
			StatusFg:       "252", // Light gray
			StatusAccent:   "43",  // Teal
			ErrorFg:        "203", // Soft red
			DisabledFg:     "240", // Medium gray
			CanvasBg:       "234", // Near black
			ScrollbarTrack: "238", // Darker gray
			ScrollbarThumb: "245", // Medium gray
			MinimapBorder:  "240", // Medium gray
			MinimapBg:      "235", // Dark background
			HelpKey:        "43",  // Teal
			HelpDesc:       "245", // Gray
		},
		TextStyle: "dracula",
	},
	"light": {
		Name:        "light",
		Description: "Light theme for bright environments",
		Author:      "scrollmap",
		UI: UIColors{
			StatusBg:       "254", // Light gray
			StatusFg:       "235", // Dark gray
			StatusAccent:   "26",  // Blue
			ErrorFg:        "160", // Red
			DisabledFg:     "249", // Medium gray
			CanvasBg:       "255", // White
			ScrollbarTrack: "252", // Light gray
			ScrollbarThumb: "32",  // Blue
			MinimapBorder:  "240", // Gray
			MinimapBg:      "254", // Light gray
			HelpKey:        "26",  // Blue
			HelpDesc:       "240", // Gray
		},
		TextStyle: "github",
	},
	"monokai": {
		Name:        "monokai",
		Description: "Monokai-inspired dark theme",
		Author:      "scrollmap",
		UI: UIColors{
			StatusBg:       "235", // Dark background
			StatusFg:       "231", // White
			StatusAccent:   "208", // Orange
			ErrorFg:        "197", // Pink-red
			DisabledFg:     "59",  // Gray
			CanvasBg:       "234", // Darker background
			ScrollbarTrack: "237", // Slightly lighter bg
			ScrollbarThumb: "208", // Orange
			MinimapBorder:  "208", // Orange
			MinimapBg:      "235", // Dark background
			HelpKey:        "81",  // Light blue
			HelpDesc:       "186", // Yellow
		},
		TextStyle: "monokai",
	},
}

// DefaultTheme returns the default theme
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// LoadTheme loads a theme by name
// Checks user themes directory first, then falls back to built-in themes
func LoadTheme(name string) Theme {
	if name == "" {
		return DefaultTheme()
	}

	dir, err := ThemesDir()
	if err == nil {
		if theme, err := LoadThemeFile(filepath.Join(dir, name+".toml")); err == nil {
			return theme
		}
	}

	if builtin, ok := builtinThemes[name]; ok {
		return builtin
	}
	return DefaultTheme()
}

// LoadThemeFile decodes a theme file and fills any missing values from the
// default theme.
func LoadThemeFile(path string) (Theme, error) {
	if _, err := os.Stat(path); err != nil {
		return Theme{}, err
	}

	var theme Theme
	if _, err := toml.DecodeFile(path, &theme); err != nil {
		return Theme{}, &ConfigLoadError{FilePath: path, Err: err}
	}
	return mergeWithDefault(theme), nil
}

// mergeWithDefault fills in any missing theme values with defaults
func mergeWithDefault(theme Theme) Theme {
	def := DefaultTheme()

	if theme.Name == "" {
		theme.Name = def.Name
	}
	if theme.TextStyle == "" {
		theme.TextStyle = def.TextStyle
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&theme.UI.StatusBg, def.UI.StatusBg)
	fill(&theme.UI.StatusFg, def.UI.StatusFg)
	fill(&theme.UI.StatusAccent, def.UI.StatusAccent)
	fill(&theme.UI.ErrorFg, def.UI.ErrorFg)
	fill(&theme.UI.DisabledFg, def.UI.DisabledFg)
	fill(&theme.UI.CanvasBg, def.UI.CanvasBg)
	fill(&theme.UI.ScrollbarTrack, def.UI.ScrollbarTrack)
	fill(&theme.UI.ScrollbarThumb, def.UI.ScrollbarThumb)
	fill(&theme.UI.MinimapBorder, def.UI.MinimapBorder)
	fill(&theme.UI.MinimapBg, def.UI.MinimapBg)
	fill(&theme.UI.HelpKey, def.UI.HelpKey)
	fill(&theme.UI.HelpDesc, def.UI.HelpDesc)

	return theme
}

// ThemeNames returns the list of built-in theme names
func ThemeNames() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListUserThemes returns a list of user-defined theme names
func ListUserThemes() []string {
	themesDir, err := ThemesDir()
	if err != nil {
		return nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil
	}

	var themes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".toml" {
			themes = append(themes, name[:len(name)-5]) // Remove .toml extension
		}
	}
	return themes
}
