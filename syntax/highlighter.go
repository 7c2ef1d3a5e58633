package syntax

import (
	"image/color"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ColorSpan represents a colored region of text
type ColorSpan struct {
	Start int        // Start column (rune index)
	End   int        // End column (rune index, exclusive)
	Color color.RGBA // Foreground color
}

// Highlighter assigns colors to source lines for the text rasterizer
type Highlighter struct {
	lexer   chroma.Lexer
	style   *chroma.Style
	enabled bool
}

// New creates a new Highlighter for the given filename using the named chroma
// style. Unknown style names fall back to chroma's default.
func New(filename, style string) *Highlighter {
	h := &Highlighter{enabled: true}
	h.SetStyle(style)
	h.SetFile(filename)
	return h
}

// SetFile updates the lexer based on the filename
func (h *Highlighter) SetFile(filename string) {
	if filename == "" {
		h.lexer = nil
		return
	}
	h.lexer = lexers.Match(filename)
	if h.lexer != nil {
		h.lexer = chroma.Coalesce(h.lexer)
	}
}

// Analyse picks a lexer from the text itself when the filename did not match
// one. It keeps any lexer already chosen.
func (h *Highlighter) Analyse(text string) {
	if h.lexer != nil {
		return
	}
	if l := lexers.Analyse(text); l != nil {
		h.lexer = chroma.Coalesce(l)
	}
}

// SetStyle selects the chroma style by name
func (h *Highlighter) SetStyle(name string) {
	h.style = styles.Get(name)
}

// SetEnabled enables or disables syntax highlighting
func (h *Highlighter) SetEnabled(enabled bool) {
	h.enabled = enabled
}

// Enabled returns whether highlighting is enabled
func (h *Highlighter) Enabled() bool {
	return h.enabled
}

// HasLexer returns true if a lexer is available for the current file
func (h *Highlighter) HasLexer() bool {
	return h.lexer != nil
}

// Foreground returns the style's plain text color.
func (h *Highlighter) Foreground() color.RGBA {
	if c, ok := entryColour(h.style.Get(chroma.Text).Colour); ok {
		return c
	}
	return color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
}

// Background returns the style's background color.
func (h *Highlighter) Background() color.RGBA {
	if c, ok := entryColour(h.style.Get(chroma.Background).Background); ok {
		return c
	}
	return color.RGBA{A: 0xff}
}

// LineColors returns color spans for a line
// Returns nil if highlighting is disabled or no lexer is available
func (h *Highlighter) LineColors(line string) []ColorSpan {
	if !h.enabled || h.lexer == nil {
		return nil
	}

	iterator, err := h.lexer.Tokenise(nil, line)
	if err != nil {
		return nil
	}

	var spans []ColorSpan
	pos := 0
	for _, token := range iterator.Tokens() {
		tokenLen := utf8.RuneCountInString(token.Value)
		if c, ok := entryColour(h.style.Get(token.Type).Colour); ok && tokenLen > 0 {
			spans = append(spans, ColorSpan{
				Start: pos,
				End:   pos + tokenLen,
				Color: c,
			})
		}
		pos += tokenLen
	}

	return spans
}

// ColorAt returns the color for a specific column position, or def when no
// span covers it.
func ColorAt(spans []ColorSpan, col int, def color.RGBA) color.RGBA {
	for _, span := range spans {
		if col >= span.Start && col < span.End {
			return span.Color
		}
	}
	return def
}

func entryColour(c chroma.Colour) (color.RGBA, bool) {
	if !c.IsSet() {
		return color.RGBA{}, false
	}
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 0xff}, true
}

// ParseHex parses #RGB or #RRGGBB. It reports false for anything else.
func ParseHex(hex string) (color.RGBA, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
