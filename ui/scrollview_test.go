package ui

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cornish/scrollmap/minimap"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// newWideView is a 200x100 raster in a 40x10 cell view (40x20 pixels), which
// fits exactly at zoom 0.2.
func newWideView(t *testing.T) *ScrollView {
	t.Helper()
	v := NewScrollView(1, 8)
	v.SetSize(40, 10)
	v.SetContent(solidImage(200, 100, color.White))
	return v
}

func TestScrollView_FitState(t *testing.T) {
	v := newWideView(t)

	s := v.ViewportState()
	require.Equal(t, minimap.Size{Width: 200, Height: 100}, s.ContentSize)
	require.Equal(t, minimap.Size{Width: 40, Height: 20}, s.ViewportFrame)
	require.InDelta(t, 0.2, s.ZoomScale, 1e-9)
	require.InDelta(t, 0.2, s.MinZoomScale, 1e-9)
	require.InDelta(t, 1.6, s.MaxZoomScale, 1e-9)
	require.Equal(t, minimap.Insets{}, s.ContentInset)
	require.Equal(t, 1.0, v.RelativeZoom())

	lo, hi := v.OffsetRange()
	require.Equal(t, minimap.Point{}, lo)
	require.Equal(t, minimap.Point{}, hi)
}

func TestScrollView_ZoomKeepsCenter(t *testing.T) {
	v := newWideView(t)

	v.ZoomTo(2)
	require.InDelta(t, 0.4, v.ZoomScale(), 1e-9)
	require.InDelta(t, 20, v.ContentOffset().X, 1e-9)
	require.InDelta(t, 10, v.ContentOffset().Y, 1e-9)

	v.ZoomTo(100)
	require.Equal(t, 8.0, v.RelativeZoom(), "zoom is clamped to the maximum")

	v.ZoomBy(0)
	require.Equal(t, 8.0, v.RelativeZoom(), "non-positive factors are ignored")
	v.ZoomBy(math.NaN())
	require.Equal(t, 8.0, v.RelativeZoom())
}

func TestScrollView_SetContentOffsetClamps(t *testing.T) {
	v := newWideView(t)
	v.ZoomTo(2)

	v.ScrollBy(minimap.Point{X: 1000, Y: 1000})
	require.InDelta(t, 40, v.ContentOffset().X, 1e-9)
	require.InDelta(t, 20, v.ContentOffset().Y, 1e-9)

	v.SetContentOffset(minimap.Point{X: -50, Y: math.NaN()})
	require.Equal(t, minimap.Point{}, v.ContentOffset())
}

func TestScrollView_CentersSmallContent(t *testing.T) {
	v := NewScrollView(1, 8)
	v.SetSize(40, 10)
	v.SetContent(solidImage(20, 20, color.White))

	// Fit is 1 (height bound); 20 px of width is left over.
	require.Equal(t, minimap.Insets{Left: 10}, v.ViewportState().ContentInset)
	require.Equal(t, minimap.Point{X: -10, Y: 0}, v.ContentOffset())

	lo, hi := v.OffsetRange()
	require.Equal(t, minimap.Point{X: -10}, lo)
	require.Equal(t, minimap.Point{X: -10}, hi)

	v.SetCentersContent(false)
	require.Equal(t, minimap.Insets{}, v.ViewportState().ContentInset)
	require.Equal(t, minimap.Point{}, v.ContentOffset())
}

func TestScrollView_NotifiesListeners(t *testing.T) {
	v := newWideView(t)
	calls := 0
	v.OnChange(func() { calls++ })

	v.ScrollBy(minimap.Point{X: 1})
	v.ZoomTo(2)
	v.SetSize(30, 10)
	require.Equal(t, 3, calls)
}

func TestScrollView_ReplaceContentKeepsZoom(t *testing.T) {
	v := newWideView(t)
	v.ZoomTo(2)
	before := v.ContentOffset()

	v.ReplaceContent(solidImage(200, 100, color.Black))
	require.Equal(t, 2.0, v.RelativeZoom())
	require.Equal(t, before, v.ContentOffset())

	v.SetContent(solidImage(200, 100, color.Black))
	require.Equal(t, 1.0, v.RelativeZoom(), "SetContent resets")
}

func TestScrollView_VisibleRect(t *testing.T) {
	v := newWideView(t)
	v.ZoomTo(2)

	r := v.VisibleRect()
	require.InDelta(t, 50, r.Origin.X, 1e-9)
	require.InDelta(t, 25, r.Origin.Y, 1e-9)
	require.InDelta(t, 100, r.Size.Width, 1e-9)
	require.InDelta(t, 50, r.Size.Height, 1e-9)
}

func TestScrollView_DrivesMinimap(t *testing.T) {
	v := newWideView(t)
	m := minimap.New(minimap.DefaultConfig())
	m.SetHost(v)
	v.OnChange(m.Update)
	m.SetFrame(minimap.Size{Width: 20, Height: 10})

	require.Equal(t, 2.0, m.ScaleFactor())
	require.Equal(t, minimap.Size{Width: 20, Height: 10}, m.Highlight().Size)

	v.ZoomTo(2)
	require.InDelta(t, 4, m.ScaleFactor(), 1e-9)
	h := m.Highlight()
	require.InDelta(t, 10, h.Size.Width, 1e-9)
	require.InDelta(t, 5, h.Size.Height, 1e-9)
	require.InDelta(t, 5, h.Origin.X, 1e-9)
	require.InDelta(t, 2.5, h.Origin.Y, 1e-9)

	// Dragging the highlight back to the corner scrolls the view there.
	require.True(t, m.BeginDrag())
	_, ok := m.DragBy(minimap.Point{X: -5, Y: -2.5})
	require.True(t, ok)
	m.EndDrag()
	require.InDelta(t, 0, v.ContentOffset().X, 1e-9)
	require.InDelta(t, 0, v.ContentOffset().Y, 1e-9)
	require.InDelta(t, 0, m.Highlight().Origin.X, 1e-9)
}

func TestScrollView_RenderSizes(t *testing.T) {
	v := newWideView(t)

	for _, mode := range []RenderMode{ModeHalfBlock, ModeBraille, ModeASCII} {
		t.Run(mode.String(), func(t *testing.T) {
			v.SetMode(mode)
			rows := v.Render()
			require.Len(t, rows, 10)
			if mode == ModeASCII {
				require.Len(t, rows[0], 40)
				require.Equal(t, "@", rows[0][:1], "white content is the brightest ramp step")
			}
		})
	}

	v.SetSize(0, 0)
	require.Nil(t, v.Render())
}

func TestScrollView_CanvasShowsContent(t *testing.T) {
	v := NewScrollView(1, 8)
	v.SetSize(40, 10)
	v.SetBackground("#000000")
	v.SetContent(solidImage(20, 20, color.RGBA{R: 255, A: 255}))

	canvas := v.Canvas(1, 1)
	require.Equal(t, image.Rect(0, 0, 40, 20), canvas.Bounds())
	require.Equal(t, color.RGBA{A: 255}, rgbaAt(canvas, 2, 10), "left inset shows the background")
	require.Equal(t, color.RGBA{R: 255, A: 255}, rgbaAt(canvas, 20, 10))
}
