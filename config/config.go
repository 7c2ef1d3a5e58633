package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cornish/scrollmap/minimap"
)

// Config holds the viewer configuration
type Config struct {
	Minimap     MinimapConfig `toml:"minimap"`
	View        ViewConfig    `toml:"view"`
	Theme       ThemeConfig   `toml:"theme"`
	RecentFiles []string      `toml:"recent_files,omitempty"` // Recently opened files (max 10)
}

// MaxRecentFiles is the maximum number of recent files to track
const MaxRecentFiles = 10

// AddRecentFile adds a file to the recent files list
func (c *Config) AddRecentFile(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	// Remove if already in list (will re-add at top)
	newList := make([]string, 0, MaxRecentFiles)
	for _, f := range c.RecentFiles {
		if f != absPath {
			newList = append(newList, f)
		}
	}

	c.RecentFiles = append([]string{absPath}, newList...)
	if len(c.RecentFiles) > MaxRecentFiles {
		c.RecentFiles = c.RecentFiles[:MaxRecentFiles]
	}
}

// Corner names where the minimap is docked inside the viewer.
type Corner string

const (
	CornerTopRight    Corner = "top-right"
	CornerTopLeft     Corner = "top-left"
	CornerBottomRight Corner = "bottom-right"
	CornerBottomLeft  Corner = "bottom-left"
)

// Valid reports whether c is one of the four known corners.
func (c Corner) Valid() bool {
	switch c {
	case CornerTopRight, CornerTopLeft, CornerBottomRight, CornerBottomLeft:
		return true
	}
	return false
}

// MinimapConfig holds the minimap overlay settings
type MinimapConfig struct {
	Enabled                    bool    `toml:"enabled"`
	Width                      int     `toml:"width"`  // cells
	Height                     int     `toml:"height"` // rows
	Corner                     Corner  `toml:"corner"`
	CentersContent             bool    `toml:"centers_content"`
	ShowsHighlightAtFullExtent bool    `toml:"shows_highlight_at_full_extent"`
	HighlightAlpha             float64 `toml:"highlight_alpha"` // 0..1 blend of the fill over the thumbnail
	HighlightColor             string  `toml:"highlight_color"`
	HighlightBorderColor       string  `toml:"highlight_border_color"`
	HighlightBorderWidth       int     `toml:"highlight_border_width"` // 0 disables the outline
	Kitty                      *bool   `toml:"kitty"`                  // nil = auto-detect
}

// Flags returns the geometry flags the minimap core understands.
func (m MinimapConfig) Flags() minimap.Config {
	return minimap.Config{
		CentersContent:             m.CentersContent,
		ShowsHighlightAtFullExtent: m.ShowsHighlightAtFullExtent,
	}
}

// ViewConfig holds the scroll view settings
type ViewConfig struct {
	MinZoom    float64 `toml:"min_zoom"`
	MaxZoom    float64 `toml:"max_zoom"`
	ZoomStep   float64 `toml:"zoom_step"`   // multiplicative step for +/-
	ScrollStep int     `toml:"scroll_step"` // cells per arrow key
	Scrollbars bool    `toml:"scrollbars"`
	AsciiMode  *bool   `toml:"ascii_mode"` // nil = auto-detect, true/false = override
	TrueColor  *bool   `toml:"true_color"` // nil = auto, false = force 256-color
}

// ThemeConfig holds the theme reference in the main config
// Just references a theme by name - the actual colors come from theme files
type ThemeConfig struct {
	Name string `toml:"name"` // Theme name (built-in or from themes/ directory)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Minimap: MinimapConfig{
			Enabled:                    true,
			Width:                      24,
			Height:                     8,
			Corner:                     CornerTopRight,
			ShowsHighlightAtFullExtent: true,
			HighlightAlpha:             0.4,
			HighlightColor:             "#ffffff",
			HighlightBorderColor:       "#808080",
			HighlightBorderWidth:       1,
		},
		View: ViewConfig{
			MinZoom:    1,
			MaxZoom:    8,
			ZoomStep:   1.25,
			ScrollStep: 4,
			Scrollbars: true,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
	}
}

// Normalize replaces out-of-range values with defaults so that a hand-edited
// file cannot put the viewer into an unusable state. It returns one message
// per field it changed.
func (c *Config) Normalize() []string {
	def := DefaultConfig()
	var fixed []string
	note := func(field string, got any) {
		fixed = append(fixed, fmt.Sprintf("%s=%v out of range, using default", field, got))
	}

	if c.Minimap.Width < 4 {
		note("minimap.width", c.Minimap.Width)
		c.Minimap.Width = def.Minimap.Width
	}
	if c.Minimap.Height < 2 {
		note("minimap.height", c.Minimap.Height)
		c.Minimap.Height = def.Minimap.Height
	}
	if !c.Minimap.Corner.Valid() {
		note("minimap.corner", c.Minimap.Corner)
		c.Minimap.Corner = def.Minimap.Corner
	}
	if c.Minimap.HighlightAlpha < 0 || c.Minimap.HighlightAlpha > 1 {
		note("minimap.highlight_alpha", c.Minimap.HighlightAlpha)
		c.Minimap.HighlightAlpha = def.Minimap.HighlightAlpha
	}
	if c.Minimap.HighlightBorderWidth < 0 {
		note("minimap.highlight_border_width", c.Minimap.HighlightBorderWidth)
		c.Minimap.HighlightBorderWidth = def.Minimap.HighlightBorderWidth
	}
	if c.View.MinZoom <= 0 {
		note("view.min_zoom", c.View.MinZoom)
		c.View.MinZoom = def.View.MinZoom
	}
	if c.View.MaxZoom < c.View.MinZoom {
		note("view.max_zoom", c.View.MaxZoom)
		c.View.MaxZoom = max(def.View.MaxZoom, c.View.MinZoom)
	}
	if c.View.ZoomStep <= 1 {
		note("view.zoom_step", c.View.ZoomStep)
		c.View.ZoomStep = def.View.ZoomStep
	}
	if c.View.ScrollStep < 1 {
		note("view.scroll_step", c.View.ScrollStep)
		c.View.ScrollStep = def.View.ScrollStep
	}
	if strings.TrimSpace(c.Theme.Name) == "" {
		c.Theme.Name = def.Theme.Name
	}
	return fixed
}

// ConfigDir returns the scrollmap configuration directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "scrollmap"), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ThemesDir returns the path to the user themes directory
func ThemesDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// ConfigLoadError holds details about a config loading error
type ConfigLoadError struct {
	FilePath string
	Err      error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// Load reads the configuration from the default path.
// Returns default config if file doesn't exist
// Returns ConfigLoadError if file exists but has parse errors
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil // Return defaults on error
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration at path. Keys missing from the file keep
// their defaults. The returned config is always usable, even alongside an error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), &ConfigLoadError{FilePath: path, Err: err}
	}

	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("# scrollmap configuration\n\n"); err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// GetResolved loads and returns the complete theme
func (t *ThemeConfig) GetResolved() Theme {
	return LoadTheme(t.Name)
}
