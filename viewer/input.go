package viewer

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/cornish/scrollmap/log"
	"github.com/cornish/scrollmap/minimap"
	"github.com/cornish/scrollmap/ui"
)

// handleKey handles keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.scrollStep()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PanLeft):
		m.view.ScrollBy(minimap.Point{X: -step.X})
	case key.Matches(msg, m.keys.PanRight):
		m.view.ScrollBy(minimap.Point{X: step.X})
	case key.Matches(msg, m.keys.PanUp):
		m.view.ScrollBy(minimap.Point{Y: -step.Y})
	case key.Matches(msg, m.keys.PanDown):
		m.view.ScrollBy(minimap.Point{Y: step.Y})
	case key.Matches(msg, m.keys.PageUp):
		m.view.ScrollBy(minimap.Point{Y: -float64(m.layout.viewH * 2)})
	case key.Matches(msg, m.keys.PageDown):
		m.view.ScrollBy(minimap.Point{Y: float64(m.layout.viewH * 2)})

	case key.Matches(msg, m.keys.ZoomIn):
		m.view.ZoomBy(m.cfg.View.ZoomStep)
		m.status.SetMessage("Zoom "+zoomPercent(m.view.RelativeZoom()), ui.MessageInfo)
	case key.Matches(msg, m.keys.ZoomOut):
		m.view.ZoomBy(1 / m.cfg.View.ZoomStep)
		m.status.SetMessage("Zoom "+zoomPercent(m.view.RelativeZoom()), ui.MessageInfo)
	case key.Matches(msg, m.keys.ZoomReset):
		m.view.Reset()
		m.status.ClearMessage()

	case key.Matches(msg, m.keys.ToggleMinimap):
		on := m.mv.Toggle()
		m.cfg.Minimap.Enabled = on
		if !on {
			m.pendingClear = m.mv.ClearOverlay()
			m.endDrag()
		}
		m.status.SetMessage("Minimap "+onOff(on), ui.MessageInfo)
	case key.Matches(msg, m.keys.ToggleCentering):
		flags := m.mm.Config()
		m.setFlags(!flags.CentersContent, flags.ShowsHighlightAtFullExtent)
		m.status.SetMessage("Centering "+onOff(!flags.CentersContent), ui.MessageInfo)
	case key.Matches(msg, m.keys.ToggleFullExtent):
		flags := m.mm.Config()
		m.setFlags(flags.CentersContent, !flags.ShowsHighlightAtFullExtent)
		m.status.SetMessage("Full-extent highlight "+onOff(!flags.ShowsHighlightAtFullExtent), ui.MessageInfo)

	case key.Matches(msg, m.keys.CopyRect):
		m.copyRect()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.relayout()
	}

	return m, nil
}

// minimapCell maps a mouse event to a cell inside the minimap. The zone
// reported by bubblezone is used once it has been scanned; before that the
// layout rectangle stands in for it.
func (m *Model) minimapCell(msg tea.MouseMsg) (col, row int, ok bool) {
	if !m.minimapVisible() {
		return 0, 0, false
	}
	if z := zone.Get(m.zoneID); z != nil && !z.IsZero() {
		if !z.InBounds(msg) {
			return 0, 0, false
		}
		col, row = z.Pos(msg)
		return col, row, col >= 0 && row >= 0
	}
	l := m.layout
	col, row = msg.X-l.mmX, msg.Y-l.mmY
	return col, row, col >= 0 && col < l.mmW && row >= 0 && row < l.mmH
}

// handleMouse handles minimap gestures, scrollbar clicks and the wheel.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	step := m.scrollStep()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.view.ScrollBy(minimap.Point{Y: -step.Y})
		return m, nil
	case tea.MouseButtonWheelDown:
		m.view.ScrollBy(minimap.Point{Y: step.Y})
		return m, nil
	case tea.MouseButtonWheelLeft:
		m.view.ScrollBy(minimap.Point{X: -step.X})
		return m, nil
	case tea.MouseButtonWheelRight:
		m.view.ScrollBy(minimap.Point{X: step.X})
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if col, row, ok := m.minimapCell(msg); ok {
			m.beginDrag(msg, col, row)
			return m, nil
		}
		m.clickScrollbar(msg)

	case tea.MouseActionMotion:
		if m.drag.active {
			// Cells are one minimap pixel wide and two tall.
			delta := minimap.Point{
				X: float64(msg.X - m.drag.startX),
				Y: float64((msg.Y - m.drag.startY) * 2),
			}
			if p, ok := m.mm.DragBy(delta); ok {
				m.drag.lastOffset = p
			}
		}

	case tea.MouseActionRelease:
		// A release ends the gesture wherever the pointer is.
		m.endDrag()
	}

	return m, nil
}

// beginDrag starts a gesture at a minimap cell. A press outside the
// highlight first centers the highlight there.
func (m *Model) beginDrag(msg tea.MouseMsg, col, row int) {
	p := m.mv.CellToPoint(col, row)
	if !m.mm.HitTest(p) {
		if target, ok := m.mm.CenterOn(p); ok {
			log.Debug(log.CatDrag, "center", "x", p.X, "y", p.Y, "offsetX", target.X, "offsetY", target.Y)
		}
	}
	if !m.mm.BeginDrag() {
		return
	}
	m.drag = dragState{active: true, startX: msg.X, startY: msg.Y, lastOffset: m.view.ContentOffset()}
	log.Debug(log.CatDrag, "begin", "col", col, "row", row)
}

func (m *Model) endDrag() {
	if !m.drag.active {
		return
	}
	m.mm.EndDrag()
	log.Debug(log.CatDrag, "end", "x", m.drag.lastOffset.X, "y", m.drag.lastOffset.Y)
	m.drag = dragState{}
}

// clickScrollbar jumps the view when a scrollbar track is clicked.
func (m *Model) clickScrollbar(msg tea.MouseMsg) {
	l := m.layout
	h, v := ui.HostExtents(m.view.ViewportState())
	offset := m.view.ContentOffset()

	switch {
	case m.vbar.IsEnabled() && msg.X == l.viewW && msg.Y >= 0 && msg.Y < l.viewH:
		offset.Y = m.vbar.PositionToOffset(msg.Y, v)
	case m.hbar.IsEnabled() && msg.Y == l.viewH && msg.X >= 0 && msg.X < l.viewW:
		offset.X = m.hbar.PositionToOffset(msg.X, h)
	default:
		return
	}
	m.view.SetContentOffset(offset)
}
