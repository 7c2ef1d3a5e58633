package minimap

// Host is the scrollable surface a Minimap summarizes.
//
// SetContentOffset must apply the offset in one assignment. It may notify
// listeners synchronously, including the Minimap that called it.
type Host interface {
	ViewportState() HostViewportState
	SetContentOffset(p Point)
}

// Minimap binds the mapper and a DragController to a host and a frame. It is
// the piece a UI layer talks to: call Update from the host's scroll/zoom
// notifications, SetFrame from layout, and the drag methods from the gesture
// layer.
type Minimap struct {
	host      Host
	frame     Size
	cfg       Config
	drag      DragController
	highlight Highlight
	applying  bool
}

// New creates a Minimap with no host and an empty frame.
func New(cfg Config) *Minimap {
	return &Minimap{cfg: cfg}
}

// SetHost binds the host and recomputes. A nil host clears the highlight.
func (m *Minimap) SetHost(h Host) {
	m.drag.Cancel()
	m.host = h
	m.Update()
}

// Host returns the bound host, if any.
func (m *Minimap) Host() Host {
	return m.host
}

// SetFrame records a new minimap size and recomputes. Layout calls this on
// every bounds change even when nothing else moved.
func (m *Minimap) SetFrame(frame Size) {
	m.frame = frame
	m.Update()
}

// Frame returns the current minimap size.
func (m *Minimap) Frame() Size {
	return m.frame
}

// SetConfig replaces the flags and recomputes.
func (m *Minimap) SetConfig(cfg Config) {
	m.cfg = cfg
	m.Update()
}

// Config returns the current flags.
func (m *Minimap) Config() Config {
	return m.cfg
}

// Update recomputes the highlight from the host's current state. It is safe to
// call from inside Host.SetContentOffset.
func (m *Minimap) Update() {
	if m.host == nil {
		m.highlight = Highlight{}
		return
	}
	m.highlight = ComputeHighlight(m.host.ViewportState(), m.frame, m.cfg)
}

// Highlight returns the geometry from the last Update.
func (m *Minimap) Highlight() Highlight {
	return m.highlight
}

// ScaleFactor returns the current scale factor against the bound host.
func (m *Minimap) ScaleFactor() float64 {
	if m.host == nil {
		return 1
	}
	return ScaleFactor(m.host.ViewportState(), m.frame)
}

// ThumbnailBounds returns where the thumbnail sits inside the frame.
func (m *Minimap) ThumbnailBounds() Rect {
	if m.host == nil {
		return Rect{}
	}
	return ThumbnailBounds(m.host.ViewportState().ContentSize, m.frame)
}

// HitTest reports whether a minimap-local point falls on the visible highlight.
func (m *Minimap) HitTest(p Point) bool {
	return m.highlight.Visible && m.highlight.Rect().Contains(p)
}

// Dragging reports whether a drag gesture is in progress.
func (m *Minimap) Dragging() bool {
	return m.drag.Dragging()
}

// BeginDrag anchors a gesture at the host's current offset. It reports false
// when no host is bound.
func (m *Minimap) BeginDrag() bool {
	if m.host == nil {
		return false
	}
	m.drag.Begin(m.host.ViewportState(), m.frame)
	return true
}

// DragBy moves the host for a gesture that has travelled delta minimap units
// since BeginDrag and returns the offset that was proposed.
func (m *Minimap) DragBy(delta Point) (Point, bool) {
	if m.host == nil || !m.drag.Dragging() {
		return Point{}, false
	}
	p := m.drag.Update(delta, m.host.ViewportState(), m.frame)
	m.apply(p)
	return p, true
}

// EndDrag finishes the gesture.
func (m *Minimap) EndDrag() {
	m.drag.End()
}

// CancelDrag abandons the gesture without restoring the anchor.
func (m *Minimap) CancelDrag() {
	m.drag.Cancel()
}

// CenterOn scrolls the host so the highlight is centered on p, a minimap-local
// point, as far as the scroll range allows.
func (m *Minimap) CenterOn(p Point) (Point, bool) {
	if m.host == nil {
		return Point{}, false
	}
	state := m.host.ViewportState()
	h := m.highlight
	if h.Size == (Size{}) {
		h = ComputeHighlight(state, m.frame, m.cfg)
	}
	delta := Point{X: p.X - h.Rect().Center().X, Y: p.Y - h.Rect().Center().Y}
	sf := ScaleFactor(state, m.frame)
	target := ClampOffset(state.ContentOffset.Add(delta.Scale(sf)), state, m.frame)
	m.apply(target)
	return target, true
}

// apply hands an offset to the host. A host that re-enters Update while the
// offset is being applied only gets a recompute; nested application is dropped.
func (m *Minimap) apply(p Point) {
	if m.applying {
		return
	}
	m.applying = true
	defer func() { m.applying = false }()

	m.host.SetContentOffset(p)
	m.Update()
}
