package viewer

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/cornish/scrollmap/config"
	"github.com/cornish/scrollmap/ui"
)

// layout is where everything sits on screen, in cells. The scroll view
// starts at the top-left corner.
type layout struct {
	viewW, viewH int
	helpLines    int
	mmX, mmY     int
	mmW, mmH     int
}

// relayout recomputes the layout for the current terminal size and hands
// every component its new size. The minimap gets a new frame on every call
// even when its size did not change.
func (m *Model) relayout() {
	helpLines := 0
	if m.showHelp {
		m.help.Width = m.width
		helpLines = strings.Count(m.help.View(m.keys), "\n") + 1
	}

	viewW := max(1, m.width-m.vbar.Thickness())
	viewH := max(1, m.height-1-m.hbar.Thickness()-helpLines)

	m.view.SetSize(viewW, viewH)
	m.vbar.SetLength(viewH)
	m.hbar.SetLength(viewW)
	m.status.SetWidth(m.width)

	mmW := min(m.cfg.Minimap.Width, viewW)
	mmH := min(m.cfg.Minimap.Height, viewH)
	l := layout{viewW: viewW, viewH: viewH, helpLines: helpLines, mmW: mmW, mmH: mmH}
	switch m.cfg.Minimap.Corner {
	case config.CornerTopLeft:
	case config.CornerBottomLeft:
		l.mmY = viewH - mmH
	case config.CornerBottomRight:
		l.mmX, l.mmY = viewW-mmW, viewH-mmH
	default:
		l.mmX = viewW - mmW
	}
	m.layout = l
	m.mv.SetSize(mmW, mmH)
}

// minimapVisible reports whether the minimap is drawn.
func (m *Model) minimapVisible() bool {
	return m.mv.IsEnabled() && m.source != nil && m.layout.mmW > 0 && m.layout.mmH > 0
}

// overlayRow replaces width cells of row starting at x with ins, keeping
// the styling of the cells on both sides.
func overlayRow(row, ins string, x, width int) string {
	return ansi.Truncate(row, x, "") + "\033[0m" + ins + "\033[0m" + ansi.TruncateLeft(row, x+width, "")
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	if m.pendingClear != "" {
		sb.WriteString(m.pendingClear)
		m.pendingClear = ""
	}

	l := m.layout
	rows := m.view.Render()

	if m.minimapVisible() {
		mmRows := m.mv.Render()
		marked := strings.Split(zone.Mark(m.zoneID, strings.Join(mmRows, "\n")), "\n")
		for i, r := range marked {
			if y := l.mmY + i; y >= 0 && y < len(rows) {
				rows[y] = overlayRow(rows[y], r, l.mmX, l.mmW)
			}
		}
	}

	state := m.view.ViewportState()
	hExt, vExt := ui.HostExtents(state)
	if bars := m.vbar.Render(vExt); bars != nil {
		for i := range rows {
			if i < len(bars) {
				rows[i] += bars[i]
			}
		}
	}
	if bars := m.hbar.Render(hExt); bars != nil {
		corner := ""
		if m.vbar.IsEnabled() {
			corner = " "
		}
		rows = append(rows, bars[0]+corner)
	}
	if m.showHelp {
		rows = append(rows, m.help.View(m.keys))
	}

	m.status.SetView(m.view.RelativeZoom(), m.view.ContentOffset(), m.mm.Highlight(), m.mm.Dragging())
	rows = append(rows, m.status.Render())

	sb.WriteString(strings.Join(rows, "\n"))

	// The Kitty image is placed with absolute cursor positioning, so it
	// goes after everything else on the screen.
	if m.minimapVisible() {
		sb.WriteString(m.mv.Overlay(l.mmX, l.mmY))
	}

	return zone.Scan(sb.String())
}
