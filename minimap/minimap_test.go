package minimap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeHost records every offset it is given. When onSet is non-nil it runs
// after the offset is stored, the way a scroll view notifies its delegates.
type fakeHost struct {
	state HostViewportState
	sets  []Point
	onSet func()
}

func (h *fakeHost) ViewportState() HostViewportState { return h.state }

func (h *fakeHost) SetContentOffset(p Point) {
	h.state.ContentOffset = p
	h.sets = append(h.sets, p)
	if h.onSet != nil {
		h.onSet()
	}
}

func newBound(t *testing.T) (*Minimap, *fakeHost) {
	t.Helper()
	host := &fakeHost{state: wideImageState()}
	host.state.ZoomScale = 2
	m := New(DefaultConfig())
	m.SetHost(host)
	m.SetFrame(Size{Width: 100, Height: 50})
	return m, host
}

func TestMinimap_NoHost(t *testing.T) {
	m := New(DefaultConfig())
	m.SetFrame(Size{Width: 100, Height: 50})

	require.Equal(t, Highlight{}, m.Highlight())
	require.Equal(t, 1.0, m.ScaleFactor())
	require.Equal(t, Rect{}, m.ThumbnailBounds())
	require.False(t, m.BeginDrag())
	require.False(t, m.HitTest(Point{X: 1, Y: 1}))

	_, ok := m.DragBy(Point{X: 1})
	require.False(t, ok)
	_, ok = m.CenterOn(Point{X: 1})
	require.False(t, ok)
}

func TestMinimap_SetFrameRecomputes(t *testing.T) {
	m, _ := newBound(t)
	require.Equal(t, Highlight{Origin: Point{}, Size: Size{Width: 50, Height: 50}, Visible: true}, m.Highlight())

	// Halving the frame doubles the scale factor; the highlight shrinks in step.
	m.SetFrame(Size{Width: 50, Height: 25})
	require.Equal(t, 16.0, m.ScaleFactor())
	require.Equal(t, Size{Width: 25, Height: 25}, m.Highlight().Size)
}

func TestMinimap_UpdateFollowsHost(t *testing.T) {
	m, host := newBound(t)

	host.state.ContentOffset = Point{X: 80, Y: 40}
	m.Update()
	// The highlight already spans the minimap vertically, so only X moves.
	require.Equal(t, Point{X: 10, Y: 0}, m.Highlight().Origin)
}

func TestMinimap_SetConfigRecomputes(t *testing.T) {
	m, host := newBound(t)
	host.state.ZoomScale = 1
	m.Update()
	require.True(t, m.Highlight().Visible)

	m.SetConfig(Config{ShowsHighlightAtFullExtent: false})
	require.False(t, m.Highlight().Visible)
	require.False(t, m.HitTest(Point{X: 10, Y: 10}), "a hidden highlight is not a drag target")
}

func TestMinimap_SetHostCancelsDrag(t *testing.T) {
	m, host := newBound(t)
	require.True(t, m.BeginDrag())
	require.True(t, m.Dragging())

	m.SetHost(host)
	require.False(t, m.Dragging())
}

func TestMinimap_HitTest(t *testing.T) {
	m, _ := newBound(t)

	require.True(t, m.HitTest(Point{X: 0, Y: 0}))
	require.True(t, m.HitTest(Point{X: 49.9, Y: 49.9}))
	require.False(t, m.HitTest(Point{X: 50, Y: 10}), "right edge is exclusive")
	require.False(t, m.HitTest(Point{X: 70, Y: 10}))
}

func TestMinimap_DragMovesHost(t *testing.T) {
	m, host := newBound(t)

	require.True(t, m.BeginDrag())
	p, ok := m.DragBy(Point{X: 5, Y: 1})
	require.True(t, ok)
	require.Equal(t, Point{X: 40, Y: 8}, p)
	require.Equal(t, []Point{{X: 40, Y: 8}}, host.sets)
	require.Equal(t, Point{X: 5, Y: 0}, m.Highlight().Origin, "highlight follows the host")

	m.EndDrag()
	require.False(t, m.Dragging())

	_, ok = m.DragBy(Point{X: 5})
	require.False(t, ok, "no gesture after EndDrag")
	require.Len(t, host.sets, 1)
}

func TestMinimap_CancelKeepsAppliedOffset(t *testing.T) {
	m, host := newBound(t)

	m.BeginDrag()
	m.DragBy(Point{X: 10})
	m.CancelDrag()

	require.False(t, m.Dragging())
	require.Equal(t, Point{X: 80, Y: 0}, host.state.ContentOffset)
}

func TestMinimap_ReentrantHostNotification(t *testing.T) {
	m, host := newBound(t)

	calls := 0
	host.onSet = func() {
		calls++
		m.Update()
		// A host that echoes the offset back through the minimap must not loop.
		m.DragBy(Point{X: 1})
	}

	m.BeginDrag()
	p, ok := m.DragBy(Point{X: 5})
	require.True(t, ok)
	require.Equal(t, Point{X: 40, Y: 0}, p)
	require.Equal(t, 1, calls)
	require.Equal(t, []Point{{X: 40, Y: 0}}, host.sets)
	require.Equal(t, Point{X: 5, Y: 0}, m.Highlight().Origin)
}

func TestMinimap_CenterOn(t *testing.T) {
	m, host := newBound(t)

	// Highlight is 50x50 at the origin; its center is (25, 25). Asking for
	// (60, 25) moves it 35 minimap units right, 280 host units at sf 8.
	p, ok := m.CenterOn(Point{X: 60, Y: 25})
	require.True(t, ok)
	require.Equal(t, Point{X: 280, Y: 0}, p)
	require.Equal(t, p, host.state.ContentOffset)
	require.Equal(t, Point{X: 35, Y: 0}, m.Highlight().Origin)
}

func TestMinimap_CenterOnClamps(t *testing.T) {
	m, host := newBound(t)

	p, _ := m.CenterOn(Point{X: 1000, Y: 1000})
	_, hi := ScrollRange(host.state, m.Frame())
	require.Equal(t, hi, p)
	require.Equal(t, Point{X: 50, Y: 0}, m.Highlight().Origin)

	p, _ = m.CenterOn(Point{X: -1000, Y: -1000})
	require.Equal(t, Point{}, p)
}
