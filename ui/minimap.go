package ui

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/cornish/scrollmap/log"
	"github.com/cornish/scrollmap/minimap"
	"github.com/cornish/scrollmap/syntax"
)

// ThumbnailSource produces the content scaled to fit bounds.
type ThumbnailSource interface {
	Thumbnail(bounds minimap.Size) (image.Image, error)
}

// HighlightStyle is how the viewport highlight is painted.
type HighlightStyle struct {
	Alpha       float64
	Fill        color.RGBA
	Border      color.RGBA
	BorderWidth int
}

// DefaultHighlightStyle is a white fill at 40% with a one pixel gray border.
func DefaultHighlightStyle() HighlightStyle {
	return HighlightStyle{
		Alpha:       0.4,
		Fill:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Border:      color.RGBA{R: 128, G: 128, B: 128, A: 255},
		BorderWidth: 1,
	}
}

// HighlightStyleFrom parses hex colors, keeping the defaults for values that
// do not parse.
func HighlightStyleFrom(alpha float64, fill, border string, borderWidth int) HighlightStyle {
	s := DefaultHighlightStyle()
	s.Alpha = min(max(alpha, 0), 1)
	if c, ok := syntax.ParseHex(fill); ok {
		s.Fill = c
	}
	if c, ok := syntax.ParseHex(border); ok {
		s.Border = c
	}
	s.BorderWidth = max(borderWidth, 0)
	return s
}

// MinimapView draws a Minimap: the content thumbnail in its aspect-fit
// bounds with the viewport highlight over it.
type MinimapView struct {
	mm      *minimap.Minimap
	source  ThumbnailSource
	width   int // cells
	height  int // rows
	mode    RenderMode
	style   HighlightStyle
	styles  Styles
	enabled bool
	kitty   *KittyEncoder
}

// NewMinimapView creates a view over mm.
func NewMinimapView(mm *minimap.Minimap, styles Styles) *MinimapView {
	return &MinimapView{
		mm:      mm,
		styles:  styles,
		style:   DefaultHighlightStyle(),
		enabled: true,
	}
}

// Minimap returns the bound control.
func (v *MinimapView) Minimap() *minimap.Minimap {
	return v.mm
}

// SetSource sets where thumbnails come from.
func (v *MinimapView) SetSource(src ThumbnailSource) {
	v.source = src
}

// SetSize sets the view size in cells and hands the new frame to the
// minimap, which recomputes even if nothing else moved.
func (v *MinimapView) SetSize(width, height int) {
	v.width = max(0, width)
	v.height = max(0, height)
	v.mm.SetFrame(v.Frame())
}

// Size returns the view size in cells.
func (v *MinimapView) Size() (int, int) {
	return v.width, v.height
}

// Frame is the minimap frame in minimap pixels.
func (v *MinimapView) Frame() minimap.Size {
	return minimap.Size{Width: float64(v.width), Height: float64(v.height * 2)}
}

// SetMode selects the cell renderer.
func (v *MinimapView) SetMode(mode RenderMode) {
	v.mode = mode
}

// Mode returns the cell renderer.
func (v *MinimapView) Mode() RenderMode {
	return v.mode
}

// SetHighlightStyle sets fill, border and alpha.
func (v *MinimapView) SetHighlightStyle(s HighlightStyle) {
	v.style = s
}

// SetStyles updates the styles for runtime theme changes.
func (v *MinimapView) SetStyles(styles Styles) {
	v.styles = styles
}

// SetKitty switches to drawing through the Kitty graphics protocol. A nil
// encoder returns to cell rendering.
func (v *MinimapView) SetKitty(k *KittyEncoder) {
	v.kitty = k
}

// Kitty returns the active encoder, if any.
func (v *MinimapView) Kitty() *KittyEncoder {
	return v.kitty
}

// SetEnabled shows or hides the minimap.
func (v *MinimapView) SetEnabled(enabled bool) {
	v.enabled = enabled
}

// IsEnabled returns whether the minimap is shown.
func (v *MinimapView) IsEnabled() bool {
	return v.enabled
}

// Toggle toggles the minimap on/off.
func (v *MinimapView) Toggle() bool {
	v.enabled = !v.enabled
	return v.enabled
}

// CellToPoint maps a cell inside the view to the minimap point at its
// center.
func (v *MinimapView) CellToPoint(col, row int) minimap.Point {
	return minimap.Point{X: float64(col) + 0.5, Y: float64(row*2) + 1}
}

// Canvas paints thumbnail and highlight at the given density.
func (v *MinimapView) Canvas(dx, dy float64) *image.NRGBA {
	w, h := canvasSize(v.width, v.height, dx, dy)
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill(canvas, ThemeRGB(v.styles.Theme.UI.MinimapBg))

	tb := v.mm.ThumbnailBounds()
	if v.source != nil && tb.Size.Width > 0 && tb.Size.Height > 0 {
		want := minimap.Size{
			Width:  math.Max(1, math.Round(tb.Size.Width*dx)),
			Height: math.Max(1, math.Round(tb.Size.Height*dy)),
		}
		thumb, err := v.source.Thumbnail(want)
		if err != nil {
			log.ErrorErr(log.CatThumb, "thumbnail failed", err, "w", want.Width, "h", want.Height)
		} else {
			placeScaled(canvas, thumb, scaleRect(tb, dx, dy))
		}
	}

	hl := v.mm.Highlight()
	if hl.Visible {
		r := scaleRect(hl.Rect(), dx, dy)
		blendRect(canvas, r, v.style.Fill, v.style.Alpha)
		bw := int(math.Round(float64(v.style.BorderWidth) * min(dx, dy)))
		if v.style.BorderWidth > 0 {
			bw = max(bw, 1)
		}
		strokeRect(canvas, r, v.style.Border, bw)
	}
	return canvas
}

// scaleRect converts a minimap rect to canvas pixels.
func scaleRect(r minimap.Rect, dx, dy float64) image.Rectangle {
	return image.Rect(
		int(math.Round(r.Origin.X*dx)),
		int(math.Round(r.Origin.Y*dy)),
		int(math.Round((r.Origin.X+r.Size.Width)*dx)),
		int(math.Round((r.Origin.Y+r.Size.Height)*dy)),
	)
}

// Render draws the minimap as terminal rows. In Kitty mode the rows are blank
// and the image comes from Overlay.
func (v *MinimapView) Render() []string {
	if v.width <= 0 || v.height <= 0 {
		return nil
	}
	if v.kitty != nil {
		rows := make([]string, v.height)
		for i := range rows {
			rows[i] = strings.Repeat(" ", v.width)
		}
		return rows
	}

	dx, dy := v.mode.Density()
	rows := cellRows(v.Canvas(dx, dy), v.width, v.height, v.mode)
	if v.mode != ModeHalfBlock {
		rows = v.outline(rows)
	}
	return rows
}

// Overlay returns the Kitty sequence placing the minimap at cell (x, y), or
// "" when Kitty mode is off.
func (v *MinimapView) Overlay(x, y int) string {
	if v.kitty == nil || !v.enabled || v.width <= 0 || v.height <= 0 {
		return ""
	}
	return v.kitty.Place(v.Canvas(kittyDensity, kittyDensity), x, y, v.width, v.height)
}

// ClearOverlay returns the sequence removing a shown Kitty image.
func (v *MinimapView) ClearOverlay() string {
	if v.kitty == nil {
		return ""
	}
	return v.kitty.Clear()
}

// outline draws the highlight border with characters for the renderers that
// cannot show color.
func (v *MinimapView) outline(rows []string) []string {
	hl := v.mm.Highlight()
	if !hl.Visible || hl.Size.Width <= 0 || hl.Size.Height <= 0 {
		return rows
	}
	c0 := int(math.Floor(hl.Origin.X))
	c1 := int(math.Ceil(hl.Origin.X+hl.Size.Width)) - 1
	r0 := int(math.Floor(hl.Origin.Y / 2))
	r1 := int(math.Ceil((hl.Origin.Y+hl.Size.Height)/2)) - 1
	c0, c1 = max(c0, 0), min(c1, v.width-1)
	r0, r1 = max(r0, 0), min(r1, v.height-1)
	if c1 < c0 || r1 < r0 {
		return rows
	}

	corner, horiz, vert := [4]rune{'+', '+', '+', '+'}, '-', '|'
	if v.mode == ModeBraille {
		corner, horiz, vert = [4]rune{'┌', '┐', '└', '┘'}, '─', '│'
	}

	grid := make([][]rune, len(rows))
	for i, row := range rows {
		grid[i] = []rune(row)
	}
	set := func(r, c int, ch rune) {
		if r >= 0 && r < len(grid) && c >= 0 && c < len(grid[r]) {
			grid[r][c] = ch
		}
	}
	for c := c0; c <= c1; c++ {
		set(r0, c, horiz)
		set(r1, c, horiz)
	}
	for r := r0; r <= r1; r++ {
		set(r, c0, vert)
		set(r, c1, vert)
	}
	set(r0, c0, corner[0])
	set(r0, c1, corner[1])
	set(r1, c0, corner[2])
	set(r1, c1, corner[3])

	out := make([]string, len(grid))
	for i, g := range grid {
		out[i] = string(g)
	}
	return out
}
