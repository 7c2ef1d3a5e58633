package ui

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/cornish/scrollmap/minimap"
)

// MessageType is how a status message is colored.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageError
)

// StatusBar represents the bottom status bar
type StatusBar struct {
	filename    string
	encoding    string
	zoom        float64 // relative zoom, 1 = fit
	offset      minimap.Point
	highlight   minimap.Highlight
	dragging    bool
	message     string // Temporary message to display
	messageType MessageType
	width       int
	styles      Styles
}

// NewStatusBar creates a new status bar
func NewStatusBar(styles Styles) *StatusBar {
	return &StatusBar{
		zoom:   1,
		styles: styles,
	}
}

// SetFilename sets the current filename
func (s *StatusBar) SetFilename(filename string) {
	s.filename = filename
}

// SetEncoding sets the decoded encoding of text content; "" hides it.
func (s *StatusBar) SetEncoding(encoding string) {
	s.encoding = encoding
}

// SetView records host and minimap state for display.
func (s *StatusBar) SetView(zoom float64, offset minimap.Point, hl minimap.Highlight, dragging bool) {
	s.zoom = zoom
	s.offset = offset
	s.highlight = hl
	s.dragging = dragging
}

// SetMessage sets a temporary message to display
func (s *StatusBar) SetMessage(message string, msgType MessageType) {
	s.message = message
	s.messageType = msgType
}

// ClearMessage clears the temporary message
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.messageType = MessageInfo
}

// Message returns the current message.
func (s *StatusBar) Message() string {
	return s.message
}

// SetWidth sets the width of the status bar
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetStyles updates the styles for runtime theme changes
func (s *StatusBar) SetStyles(styles Styles) {
	s.styles = styles
}

// Left returns the plain left section: the file name.
func (s *StatusBar) Left() string {
	if s.filename == "" {
		return "[No file]"
	}
	return filepath.Base(s.filename)
}

// Right returns the plain right section: zoom, offset, highlight, drag.
func (s *StatusBar) Right() string {
	parts := []string{
		fmt.Sprintf("%.0f%%", s.zoom*100),
		fmt.Sprintf("%.0f,%.0f", unsigned(s.offset.X), unsigned(s.offset.Y)),
	}
	if s.highlight.Visible {
		h := s.highlight
		parts = append(parts, fmt.Sprintf("map %.0f,%.0f %.0fx%.0f", unsigned(h.Origin.X), unsigned(h.Origin.Y), h.Size.Width, h.Size.Height))
	}
	if s.dragging {
		parts = append(parts, "drag")
	}
	if s.encoding != "" {
		parts = append(parts, s.encoding)
	}
	return strings.Join(parts, " | ")
}

// Render renders the status bar
func (s *StatusBar) Render() string {
	var sb strings.Builder

	ui := s.styles.Theme.UI
	normalColor := ColorToANSIFg(ui.StatusFg) + ColorToANSIBg(ui.StatusBg)
	accentColor := ColorToANSIFg(ui.StatusAccent) + "\033[1m" // Bold
	errorColor := ColorToANSIFg(ui.ErrorFg) + "\033[1m"       // Bold
	resetToNormal := ColorToANSIFg(ui.StatusFg) + "\033[22m"  // Not bold

	left := " " + s.Left() + " "
	right := " " + s.Right() + " "

	// Drop the right section before the file name when space runs out.
	if runewidth.StringWidth(left)+runewidth.StringWidth(right) > s.width {
		right = ""
	}
	left = truncate.StringWithTail(left, uint(max(s.width, 0)), "…")

	leftLen := runewidth.StringWidth(left)
	rightLen := runewidth.StringWidth(right)
	availableSpace := max(s.width-leftLen-rightLen, 0)

	sb.WriteString(normalColor)
	sb.WriteString(accentColor + left + resetToNormal)

	msg := s.message
	if msg != "" && availableSpace >= 4 {
		msg = truncate.StringWithTail(msg, uint(availableSpace-2), "…")
		msgLen := runewidth.StringWidth(msg)
		leftPad := (availableSpace - msgLen) / 2
		rightPad := availableSpace - msgLen - leftPad
		sb.WriteString(strings.Repeat(" ", leftPad))
		if s.messageType == MessageError {
			sb.WriteString(errorColor + msg + resetToNormal)
		} else {
			sb.WriteString(msg)
		}
		sb.WriteString(strings.Repeat(" ", rightPad))
	} else {
		// No message or not enough space
		sb.WriteString(strings.Repeat(" ", availableSpace))
	}

	sb.WriteString(right)

	// Reset at end
	sb.WriteString(ansiReset)

	return sb.String()
}

// unsigned rounds f and drops the sign of a zero so it prints as "0".
func unsigned(f float64) float64 {
	return math.Round(f) + 0
}
