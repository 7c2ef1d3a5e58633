package minimap

// ScaleFactor returns how many host viewport units one minimap unit stands for
// at the current zoom.
//
// The smaller of the two axis ratios is used so the highlight never overflows
// the minimap on the constraining axis; the relative zoom shrinks the highlight
// as the user zooms in. An unlaid-out minimap, or any input that would make the
// factor zero or non-finite, yields the neutral factor 1.
func ScaleFactor(state HostViewportState, frame Size) float64 {
	if frame.Width <= 0 || frame.Height <= 0 {
		return 1
	}
	base := min(state.ViewportFrame.Width/frame.Width, state.ViewportFrame.Height/frame.Height)
	sf := base * state.RelativeZoom()
	if !finite(sf) || sf <= 0 {
		return 1
	}
	return sf
}

// HighlightSize returns the highlight extent, never larger than the frame.
func HighlightSize(state HostViewportState, frame Size) Size {
	sf := ScaleFactor(state, frame)
	return Size{
		Width:  max(0, min(frame.Width, orZero(state.ViewportFrame.Width/sf))),
		Height: max(0, min(frame.Height, orZero(state.ViewportFrame.Height/sf))),
	}
}

// HighlightOrigin returns the top-left corner of the highlight, clamped so the
// highlight lies fully inside the frame.
func HighlightOrigin(state HostViewportState, frame Size, cfg Config) Point {
	sf := ScaleFactor(state, frame)
	size := HighlightSize(state, frame)
	return highlightOrigin(state, frame, cfg, sf, size)
}

func highlightOrigin(state HostViewportState, frame Size, cfg Config, sf float64, size Size) Point {
	scrollable := Size{
		Width:  max(0, frame.Width-size.Width),
		Height: max(0, frame.Height-size.Height),
	}

	x := orZero((state.ContentInset.Left + state.ContentOffset.X) / sf)
	y := orZero((state.ContentInset.Top + state.ContentOffset.Y) / sf)

	if cfg.CentersContent {
		zoom := state.ZoomScale
		if zoom <= 0 || !finite(zoom) {
			zoom = 1
		}
		extentW := orZero(state.ContentSize.Width * zoom / sf)
		extentH := orZero(state.ContentSize.Height * zoom / sf)
		x += centering(scrollable.Width, extentW)
		y += centering(scrollable.Height, extentH)
	}

	return Point{
		X: clamp(x, 0, scrollable.Width),
		Y: clamp(y, 0, scrollable.Height),
	}
}

// centering is half the slack between the scrollable area and the content
// extent on one axis, kept within the scrollable area.
func centering(scrollable, extent float64) float64 {
	return clamp((scrollable-extent)/2, 0, scrollable)
}

// ThumbnailAspectRatio returns width/height of the content, or 1 when the
// ratio would be undefined or non-positive.
func ThumbnailAspectRatio(content Size) float64 {
	if content.Height == 0 {
		return 1
	}
	ar := content.Width / content.Height
	if !finite(ar) || ar <= 0 {
		return 1
	}
	return ar
}

// ComputeHighlight returns the complete highlight geometry for one frame.
func ComputeHighlight(state HostViewportState, frame Size, cfg Config) Highlight {
	sf := ScaleFactor(state, frame)
	size := HighlightSize(state, frame)
	origin := highlightOrigin(state, frame, cfg, sf, size)

	visible := true
	if !cfg.ShowsHighlightAtFullExtent && size == frame {
		visible = false
	}
	return Highlight{Origin: origin, Size: size, Visible: visible}
}

// ThumbnailBounds returns the aspect-fit rectangle the thumbnail occupies
// inside the frame, centered on the slack axis.
func ThumbnailBounds(content Size, frame Size) Rect {
	if frame.Width <= 0 || frame.Height <= 0 {
		return Rect{}
	}
	ar := ThumbnailAspectRatio(content)
	w, h := frame.Width, frame.Height
	if frame.Width/frame.Height > ar {
		w = frame.Height * ar
	} else {
		h = frame.Width / ar
	}
	return Rect{
		Origin: Point{X: (frame.Width - w) / 2, Y: (frame.Height - h) / 2},
		Size:   Size{Width: w, Height: h},
	}
}

// ThumbnailRenderSize returns the area of the viewport covered by the content
// when shown at minimum zoom. Thumbnail renderers are asked for an image of
// this shape.
func ThumbnailRenderSize(state HostViewportState) Size {
	bounds := state.ViewportFrame
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return Size{}
	}
	boundsAR := bounds.Width / bounds.Height
	contentAR := ThumbnailAspectRatio(state.ContentSize)

	out := bounds
	if boundsAR < contentAR {
		out.Height = bounds.Height / contentAR * boundsAR
	} else {
		out.Width = bounds.Width / boundsAR * contentAR
	}
	return out
}

// ScrollRange returns the offsets a drag may move the host between. It mirrors
// the host's own legal range so the minimap never drags content out of bounds.
func ScrollRange(state HostViewportState, frame Size) (lo, hi Point) {
	sf := ScaleFactor(state, frame)
	size := HighlightSize(state, frame)
	zoom := state.ZoomScale
	if zoom <= 0 || !finite(zoom) {
		zoom = 1
	}

	lo = Point{X: -state.ContentInset.Left, Y: -state.ContentInset.Top}
	hi = Point{
		X: max(0, orZero(state.ContentInset.Left+state.ContentSize.Width*zoom-size.Width*sf)),
		Y: max(0, orZero(state.ContentInset.Top+state.ContentSize.Height*zoom-size.Height*sf)),
	}
	// A negative inset would otherwise invert the range.
	hi.X = max(hi.X, lo.X)
	hi.Y = max(hi.Y, lo.Y)
	return lo, hi
}

// ClampOffset pins p to ScrollRange. It is idempotent.
func ClampOffset(p Point, state HostViewportState, frame Size) Point {
	lo, hi := ScrollRange(state, frame)
	return Point{
		X: clamp(orZero(p.X), lo.X, hi.X),
		Y: clamp(orZero(p.Y), lo.Y, hi.Y),
	}
}
