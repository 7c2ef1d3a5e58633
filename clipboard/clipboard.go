// Package clipboard copies text to the system clipboard, falling back to
// OSC52 escape sequences over SSH or when no system clipboard exists.
package clipboard

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/cornish/scrollmap/minimap"
)

// Method records how the last copy reached the clipboard.
type Method int

const (
	MethodNone Method = iota
	MethodSystem
	MethodOSC52
)

func (m Method) String() string {
	switch m {
	case MethodSystem:
		return "system"
	case MethodOSC52:
		return "osc52"
	default:
		return "none"
	}
}

// Clipboard provides unified clipboard access with OSC52 support for SSH.
type Clipboard struct {
	last   string
	method Method
	isSSH  bool
	output io.Writer // OSC52 destination, typically os.Stdout

	writeSystem func(string) error
}

// New creates a new Clipboard instance.
func New(output io.Writer) *Clipboard {
	if output == nil {
		output = os.Stdout
	}
	return &Clipboard{
		isSSH:       isSSHSession(),
		output:      output,
		writeSystem: clipboard.WriteAll,
	}
}

// isSSHSession detects if we're running in an SSH session.
func isSSHSession() bool {
	for _, v := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// Copy copies the given text to the clipboard.
// In SSH sessions, it uses OSC52 escape sequences.
// Locally, it tries the system clipboard first, then falls back to OSC52.
func (c *Clipboard) Copy(text string) error {
	c.last = text

	if !c.isSSH && !clipboard.Unsupported {
		if err := c.writeSystem(text); err == nil {
			c.method = MethodSystem
			return nil
		}
	}

	if _, err := io.WriteString(c.output, osc52.New(text).String()); err != nil {
		c.method = MethodNone
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	c.method = MethodOSC52
	return nil
}

// CopyRect copies the visible content rectangle as "x,y widthxheight" in
// whole content pixels.
func (c *Clipboard) CopyRect(r minimap.Rect) (string, error) {
	text := FormatRect(r)
	return text, c.Copy(text)
}

// FormatRect renders r the way CopyRect places it on the clipboard.
func FormatRect(r minimap.Rect) string {
	return fmt.Sprintf("%d,%d %dx%d",
		int(math.Round(r.Origin.X)), int(math.Round(r.Origin.Y)),
		int(math.Round(r.Size.Width)), int(math.Round(r.Size.Height)))
}

// Last returns the most recently copied text.
func (c *Clipboard) Last() string {
	return c.last
}

// Method returns how the last copy was delivered.
func (c *Clipboard) Method() Method {
	return c.method
}

// IsSSH returns true if we're in an SSH session.
func (c *Clipboard) IsSSH() bool {
	return c.isSSH
}
