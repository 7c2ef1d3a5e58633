package ui

import (
	"math"
	"strings"

	"github.com/cornish/scrollmap/minimap"
)

// Orientation is the axis a scrollbar runs along.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// ScrollExtent describes one axis of a scrollable host in host units.
type ScrollExtent struct {
	Offset  float64
	Lo, Hi  float64 // legal offset range
	Visible float64 // viewport length
	Total   float64 // zoomed content length
}

// Scrollable reports whether the axis can move at all.
func (e ScrollExtent) Scrollable() bool {
	return e.Hi > e.Lo && e.Total > e.Visible
}

// HostExtents derives both axes from a host snapshot, using the same legal
// range the ScrollView enforces.
func HostExtents(s minimap.HostViewportState) (horizontal, vertical ScrollExtent) {
	axis := func(offset, inset, content, viewport float64) ScrollExtent {
		total := content * s.ZoomScale
		lo := -inset
		return ScrollExtent{
			Offset:  offset,
			Lo:      lo,
			Hi:      max(lo, total-viewport),
			Visible: viewport,
			Total:   total,
		}
	}
	horizontal = axis(s.ContentOffset.X, s.ContentInset.Left, s.ContentSize.Width, s.ViewportFrame.Width)
	vertical = axis(s.ContentOffset.Y, s.ContentInset.Top, s.ContentSize.Height, s.ViewportFrame.Height)
	return horizontal, vertical
}

// Scrollbar is a one cell thick track with a proportional thumb.
type Scrollbar struct {
	orientation Orientation
	length      int
	enabled     bool
	styles      Styles
}

// NewScrollbar creates a new scrollbar instance
func NewScrollbar(orientation Orientation, styles Styles) *Scrollbar {
	return &Scrollbar{
		orientation: orientation,
		length:      24,
		enabled:     true,
		styles:      styles,
	}
}

// Orientation returns the axis of the scrollbar.
func (s *Scrollbar) Orientation() Orientation {
	return s.orientation
}

// Thickness returns the cells the scrollbar takes across its axis (1, or 0 if
// disabled).
func (s *Scrollbar) Thickness() int {
	if !s.enabled {
		return 0
	}
	return 1
}

// SetLength sets the track length in cells
func (s *Scrollbar) SetLength(length int) {
	if length > 0 {
		s.length = length
	}
}

// Length returns the track length in cells
func (s *Scrollbar) Length() int {
	return s.length
}

// SetEnabled enables or disables the scrollbar
func (s *Scrollbar) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// IsEnabled returns whether the scrollbar is enabled
func (s *Scrollbar) IsEnabled() bool {
	return s.enabled
}

// Toggle toggles the scrollbar on/off
func (s *Scrollbar) Toggle() bool {
	s.enabled = !s.enabled
	return s.enabled
}

// SetStyles updates the styles for runtime theme changes
func (s *Scrollbar) SetStyles(styles Styles) {
	s.styles = styles
}

// Thumb returns the first cell and the size of the thumb for e.
func (s *Scrollbar) Thumb(e ScrollExtent) (start, size int) {
	if s.length <= 0 {
		return 0, 0
	}
	if !e.Scrollable() {
		// Everything fits - thumb fills track
		return 0, s.length
	}

	size = int(math.Round(float64(s.length) * e.Visible / e.Total))
	size = min(max(size, 1), s.length)

	thumbRange := s.length - size
	if thumbRange <= 0 {
		return 0, size
	}
	progress := (min(max(e.Offset, e.Lo), e.Hi) - e.Lo) / (e.Hi - e.Lo)
	start = int(math.Round(progress * float64(thumbRange)))
	return min(max(start, 0), thumbRange), size
}

// PositionToOffset converts a click on track cell pos into the offset that
// centers the thumb there. It is the inverse of the mapping in Thumb.
func (s *Scrollbar) PositionToOffset(pos int, e ScrollExtent) float64 {
	if !e.Scrollable() {
		return e.Lo
	}
	_, size := s.Thumb(e)
	thumbRange := s.length - size
	if thumbRange <= 0 {
		return e.Lo
	}
	start := float64(pos) - float64(size-1)/2
	progress := min(max(start/float64(thumbRange), 0), 1)
	return e.Lo + progress*(e.Hi-e.Lo)
}

// Render renders the scrollbar. A vertical bar yields one string per row; a
// horizontal bar yields a single row.
func (s *Scrollbar) Render(e ScrollExtent) []string {
	if !s.enabled || s.length <= 0 {
		return nil
	}

	ui := s.styles.Theme.UI
	trackColor := ColorToANSIFg(ui.ScrollbarTrack)
	thumbColor := ColorToANSIFg(ui.ScrollbarThumb)

	thumbGlyph, trackGlyph := "┃", "│"
	if s.orientation == Horizontal {
		thumbGlyph, trackGlyph = "━", "─"
	}

	start, size := s.Thumb(e)
	cells := make([]string, s.length)
	for i := range cells {
		if i >= start && i < start+size {
			cells[i] = thumbColor + thumbGlyph + ansiReset
		} else {
			cells[i] = trackColor + trackGlyph + ansiReset
		}
	}

	if s.orientation == Horizontal {
		return []string{strings.Join(cells, "")}
	}
	return cells
}
