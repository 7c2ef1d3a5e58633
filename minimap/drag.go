package minimap

// DragState is the phase of a DragController.
type DragState int

const (
	DragIdle     DragState = iota // no gesture in progress
	DragDragging                  // a gesture is anchored and moving the host
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// DragController turns the cumulative translation of one drag gesture on the
// highlight into host content offsets.
//
// Deltas are measured from where the gesture began, not from the previous
// update. The controller keeps the content offset seen at gesture start and
// adds every scaled delta to that anchor, so restarting a gesture never
// accumulates drift.
type DragController struct {
	state  DragState
	anchor Point
}

// State returns the current phase.
func (d *DragController) State() DragState {
	return d.state
}

// Dragging reports whether a gesture is in progress.
func (d *DragController) Dragging() bool {
	return d.state == DragDragging
}

// Anchor returns the content offset captured when the current gesture began.
func (d *DragController) Anchor() Point {
	return d.anchor
}

// Begin starts a gesture, anchoring it at the host's current offset. Calling
// Begin during a gesture re-anchors it.
func (d *DragController) Begin(state HostViewportState, frame Size) {
	d.anchor = Point{X: orZero(state.ContentOffset.X), Y: orZero(state.ContentOffset.Y)}
	d.state = DragDragging
}

// Update returns the content offset the host should scroll to for a gesture
// that has moved delta minimap units since Begin. Outside a gesture it returns
// the host's current offset unchanged.
func (d *DragController) Update(delta Point, state HostViewportState, frame Size) Point {
	if d.state != DragDragging {
		return state.ContentOffset
	}
	sf := ScaleFactor(state, frame)
	candidate := d.anchor.Add(Point{X: orZero(delta.X), Y: orZero(delta.Y)}.Scale(sf))
	return ClampOffset(candidate, state, frame)
}

// End finishes the gesture. The last offset returned by Update stands.
func (d *DragController) End() {
	d.reset()
}

// Cancel abandons the gesture. Offsets already applied are kept; cancelling
// is not an undo.
func (d *DragController) Cancel() {
	d.reset()
}

func (d *DragController) reset() {
	d.state = DragIdle
	d.anchor = Point{}
}
