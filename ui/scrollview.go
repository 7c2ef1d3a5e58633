package ui

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/cornish/scrollmap/log"
	"github.com/cornish/scrollmap/minimap"
)

// ScrollView is a zoomable, scrollable view of a raster. Geometry is in view
// pixels: one terminal cell is one pixel wide and two pixels tall.
//
// Zoom limits are relative to the fit scale, the zoom at which the whole
// content fits the viewport; a relative zoom of 1 shows everything. The
// absolute zoom reported through ViewportState is what the minimap sees.
type ScrollView struct {
	width, height int // cells

	content     image.Image
	contentSize minimap.Size

	relZoom        float64
	minRel, maxRel float64
	inset          minimap.Insets
	offset         minimap.Point
	centersContent bool
	listeners      []func()
	mode           RenderMode
	background     string
}

// NewScrollView creates an empty view with the given relative zoom limits.
func NewScrollView(minZoom, maxZoom float64) *ScrollView {
	if minZoom <= 0 {
		minZoom = 1
	}
	maxZoom = max(maxZoom, minZoom)
	return &ScrollView{
		width:          80,
		height:         24,
		relZoom:        minZoom,
		minRel:         minZoom,
		maxRel:         maxZoom,
		centersContent: true,
		background:     "0",
	}
}

// SetContent replaces the raster and resets zoom and scroll.
func (v *ScrollView) SetContent(img image.Image) {
	v.content = img
	v.contentSize = minimap.Size{}
	if img != nil {
		b := img.Bounds()
		v.contentSize = minimap.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	v.Reset()
}

// ReplaceContent swaps the raster keeping the relative zoom and offset, for
// reloads of the same file.
func (v *ScrollView) ReplaceContent(img image.Image) {
	v.content = img
	v.contentSize = minimap.Size{}
	if img != nil {
		b := img.Bounds()
		v.contentSize = minimap.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	v.CenterContent()
	v.SetContentOffset(v.offset)
}

// Content returns the current raster.
func (v *ScrollView) Content() image.Image {
	return v.content
}

// SetSize sets the view dimensions in cells and recenters.
func (v *ScrollView) SetSize(width, height int) {
	v.width = max(0, width)
	v.height = max(0, height)
	v.CenterContent()
	v.SetContentOffset(v.offset)
}

// Width returns the view width in cells
func (v *ScrollView) Width() int {
	return v.width
}

// Height returns the view height in rows
func (v *ScrollView) Height() int {
	return v.height
}

// SetMode selects the cell renderer.
func (v *ScrollView) SetMode(mode RenderMode) {
	v.mode = mode
}

// SetBackground sets the theme color drawn around the content.
func (v *ScrollView) SetBackground(c string) {
	v.background = c
}

// SetCentersContent toggles centering content smaller than the viewport.
func (v *ScrollView) SetCentersContent(on bool) {
	v.centersContent = on
	v.CenterContent()
	v.SetContentOffset(v.offset)
}

// OnChange registers fn to run after every offset, zoom or size change.
func (v *ScrollView) OnChange(fn func()) {
	v.listeners = append(v.listeners, fn)
}

func (v *ScrollView) notify() {
	for _, fn := range v.listeners {
		fn()
	}
}

// viewportSize is the viewport in view pixels.
func (v *ScrollView) viewportSize() minimap.Size {
	return minimap.Size{Width: float64(v.width), Height: float64(v.height * 2)}
}

// fitScale is the absolute zoom at which the content fits the viewport.
func (v *ScrollView) fitScale() float64 {
	vp := v.viewportSize()
	if v.contentSize.Width <= 0 || v.contentSize.Height <= 0 || vp.Width <= 0 || vp.Height <= 0 {
		return 1
	}
	return min(vp.Width/v.contentSize.Width, vp.Height/v.contentSize.Height)
}

// ZoomScale returns the absolute zoom.
func (v *ScrollView) ZoomScale() float64 {
	return v.fitScale() * v.relZoom
}

// RelativeZoom returns the zoom relative to fit.
func (v *ScrollView) RelativeZoom() float64 {
	return v.relZoom
}

// ViewportState implements minimap.Host.
func (v *ScrollView) ViewportState() minimap.HostViewportState {
	fit := v.fitScale()
	return minimap.HostViewportState{
		ContentSize:   v.contentSize,
		ViewportFrame: v.viewportSize(),
		ZoomScale:     fit * v.relZoom,
		MinZoomScale:  fit * v.minRel,
		MaxZoomScale:  fit * v.maxRel,
		ContentInset:  v.inset,
		ContentOffset: v.offset,
	}
}

// CenterContent sets the insets so content smaller than the viewport sits in
// the middle of it.
func (v *ScrollView) CenterContent() {
	v.inset = minimap.Insets{}
	if !v.centersContent {
		return
	}
	vp := v.viewportSize()
	zoom := v.ZoomScale()
	v.inset = minimap.Insets{
		Left: max((vp.Width-v.contentSize.Width*zoom)/2, 0),
		Top:  max((vp.Height-v.contentSize.Height*zoom)/2, 0),
	}
}

// OffsetRange returns the legal content offsets.
func (v *ScrollView) OffsetRange() (lo, hi minimap.Point) {
	vp := v.viewportSize()
	zoom := v.ZoomScale()
	lo = minimap.Point{X: -v.inset.Left, Y: -v.inset.Top}
	hi = minimap.Point{
		X: max(lo.X, v.contentSize.Width*zoom-vp.Width),
		Y: max(lo.Y, v.contentSize.Height*zoom-vp.Height),
	}
	return lo, hi
}

// ContentOffset returns the current offset.
func (v *ScrollView) ContentOffset() minimap.Point {
	return v.offset
}

// SetContentOffset implements minimap.Host. The offset is clamped to
// OffsetRange and applied in one assignment before listeners run.
func (v *ScrollView) SetContentOffset(p minimap.Point) {
	lo, hi := v.OffsetRange()
	if math.IsNaN(p.X) {
		p.X = lo.X
	}
	if math.IsNaN(p.Y) {
		p.Y = lo.Y
	}
	v.offset = minimap.Point{
		X: min(max(p.X, lo.X), hi.X),
		Y: min(max(p.Y, lo.Y), hi.Y),
	}
	log.Debug(log.CatHost, "offset", "x", v.offset.X, "y", v.offset.Y)
	v.notify()
}

// ScrollBy moves the offset by d view pixels.
func (v *ScrollView) ScrollBy(d minimap.Point) {
	v.SetContentOffset(v.offset.Add(d))
}

// ZoomBy multiplies the relative zoom by factor, keeping the viewport center
// fixed on the same content point.
func (v *ScrollView) ZoomBy(factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	v.ZoomTo(v.relZoom * factor)
}

// ZoomTo sets the relative zoom, clamped to the limits, around the viewport
// center.
func (v *ScrollView) ZoomTo(rel float64) {
	rel = min(max(rel, v.minRel), v.maxRel)
	vp := v.viewportSize()
	old := v.ZoomScale()

	// Content point under the viewport center.
	cx := (v.offset.X + vp.Width/2) / old
	cy := (v.offset.Y + vp.Height/2) / old

	v.relZoom = rel
	v.CenterContent()
	zoom := v.ZoomScale()
	log.Debug(log.CatHost, "zoom", "relative", rel, "absolute", zoom)
	v.SetContentOffset(minimap.Point{X: cx*zoom - vp.Width/2, Y: cy*zoom - vp.Height/2})
}

// Reset returns to the minimum zoom scrolled to the top-left.
func (v *ScrollView) Reset() {
	v.relZoom = v.minRel
	v.CenterContent()
	v.offset = minimap.Point{X: -v.inset.Left, Y: -v.inset.Top}
	v.SetContentOffset(v.offset)
}

// SetZoomLimits changes the relative zoom limits and clamps the current zoom.
func (v *ScrollView) SetZoomLimits(minZoom, maxZoom float64) {
	if minZoom <= 0 {
		return
	}
	v.minRel = minZoom
	v.maxRel = max(maxZoom, minZoom)
	v.ZoomTo(v.relZoom)
}

// VisibleRect returns the part of the content currently in view, in content
// pixels.
func (v *ScrollView) VisibleRect() minimap.Rect {
	zoom := v.ZoomScale()
	vp := v.viewportSize()
	x0 := max(0, v.offset.X/zoom)
	y0 := max(0, v.offset.Y/zoom)
	x1 := min(v.contentSize.Width, (v.offset.X+vp.Width)/zoom)
	y1 := min(v.contentSize.Height, (v.offset.Y+vp.Height)/zoom)
	return minimap.Rect{
		Origin: minimap.Point{X: x0, Y: y0},
		Size:   minimap.Size{Width: max(0, x1-x0), Height: max(0, y1-y0)},
	}
}

// Canvas samples the visible area at the given density (canvas pixels per
// view pixel).
func (v *ScrollView) Canvas(dx, dy float64) *image.NRGBA {
	w, h := canvasSize(v.width, v.height, dx, dy)
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill(canvas, ThemeRGB(v.background))
	if v.content == nil || v.width == 0 || v.height == 0 {
		return canvas
	}

	visible := v.VisibleRect()
	if visible.Size.Width <= 0 || visible.Size.Height <= 0 {
		return canvas
	}

	cb := v.content.Bounds()
	src := image.Rect(
		cb.Min.X+int(math.Floor(visible.Origin.X)),
		cb.Min.Y+int(math.Floor(visible.Origin.Y)),
		cb.Min.X+int(math.Ceil(visible.Origin.X+visible.Size.Width)),
		cb.Min.Y+int(math.Ceil(visible.Origin.Y+visible.Size.Height)),
	).Intersect(cb)
	if src.Empty() {
		return canvas
	}

	// Where the cropped source lands, in canvas pixels.
	zoom := v.ZoomScale()
	toCanvas := func(cx, cy float64) image.Point {
		return image.Pt(
			int(math.Round((cx*zoom-v.offset.X)*dx)),
			int(math.Round((cy*zoom-v.offset.Y)*dy)),
		)
	}
	min0 := toCanvas(float64(src.Min.X-cb.Min.X), float64(src.Min.Y-cb.Min.Y))
	max0 := toCanvas(float64(src.Max.X-cb.Min.X), float64(src.Max.Y-cb.Min.Y))
	dst := image.Rectangle{Min: min0, Max: max0}
	if dst.Dx() < 1 {
		dst.Max.X = dst.Min.X + 1
	}
	if dst.Dy() < 1 {
		dst.Max.Y = dst.Min.Y + 1
	}

	placeScaled(canvas, imaging.Crop(v.content, src), dst)
	return canvas
}

// Render draws the view as terminal rows.
func (v *ScrollView) Render() []string {
	if v.width <= 0 || v.height <= 0 {
		return nil
	}
	dx, dy := v.mode.Density()
	return cellRows(v.Canvas(dx, dy), v.width, v.height, v.mode)
}
