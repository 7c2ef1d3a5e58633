// Package minimap maps a scrollable, zoomable host viewport onto a miniature
// overview and translates drags on the overview back into host scroll offsets.
//
// Everything here is pure arithmetic over value types. Degenerate input (a
// minimap that has not been laid out, empty content, a zero zoom) collapses to
// neutral values instead of producing NaN, infinities or errors, so a render
// pass can call into the package at any time.
package minimap

import "math"

// Size is a width/height pair.
type Size struct {
	Width  float64
	Height float64
}

// Point is an x/y pair.
type Point struct {
	X float64
	Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p with both components multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Insets is the padding a host applies before its content origin.
type Insets struct {
	Top  float64
	Left float64
}

// Rect is an origin plus a size.
type Rect struct {
	Origin Point
	Size   Size
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Size.Width &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Size.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.Origin.X + r.Size.Width/2, Y: r.Origin.Y + r.Size.Height/2}
}

// HostViewportState is a snapshot of the host surface. The host owns it and
// hands out a fresh copy on every scroll, zoom or resize.
type HostViewportState struct {
	ContentSize   Size // extent at zoom scale 1
	ViewportFrame Size
	ZoomScale     float64
	MinZoomScale  float64
	MaxZoomScale  float64
	ContentInset  Insets
	ContentOffset Point // raw host units, not zoom-normalized
}

// RelativeZoom returns ZoomScale/MinZoomScale, or 1 if either is unusable.
func (s HostViewportState) RelativeZoom() float64 {
	if s.ZoomScale <= 0 || s.MinZoomScale <= 0 {
		return 1
	}
	z := s.ZoomScale / s.MinZoomScale
	if !finite(z) {
		return 1
	}
	return z
}

// Config holds the per-control flags that change the geometry.
type Config struct {
	// CentersContent offsets the highlight by the margin the host leaves
	// around content narrower than the minimap.
	CentersContent bool
	// ShowsHighlightAtFullExtent keeps the highlight visible when it covers
	// the entire minimap (nothing is scrolled out of view).
	ShowsHighlightAtFullExtent bool
}

// DefaultConfig matches the stock control: no centering, highlight always shown.
func DefaultConfig() Config {
	return Config{ShowsHighlightAtFullExtent: true}
}

// Highlight is the computed viewport rectangle in minimap-local units.
type Highlight struct {
	Origin  Point
	Size    Size
	Visible bool
}

// Rect returns the highlight as a rectangle.
func (h Highlight) Rect() Rect {
	return Rect{Origin: h.Origin, Size: h.Size}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// orZero maps NaN and infinities to 0.
func orZero(f float64) float64 {
	if !finite(f) {
		return 0
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
