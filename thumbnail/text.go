package thumbnail

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/mattn/go-runewidth"

	"github.com/cornish/scrollmap/encoding"
	"github.com/cornish/scrollmap/minimap"
	"github.com/cornish/scrollmap/syntax"
)

// Text raster layout: every column of a line is one pixel wide and two
// pixels tall. Lines longer than the column limit are cut, not scaled.
const (
	pixelsPerColumn = 1
	pixelsPerLine   = 2
)

// TextSource rasterizes a text file with syntax colors.
type TextSource struct {
	img      *image.NRGBA
	lines    int
	encoding string
}

// NewTextSource decodes data to UTF-8 and rasterizes it. The name selects
// the lexer; when it matches none the text itself is analysed.
func NewTextSource(name string, data []byte, opts Options) (*TextSource, error) {
	text, det, err := encoding.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding text: %w", err)
	}

	h := syntax.New(name, opts.Style)
	h.Analyse(text)

	src := RasterizeText(text, h, opts)
	src.encoding = det.Encoding.Name
	return src, nil
}

// RasterizeText draws text with the highlighter's colors.
func RasterizeText(text string, h *syntax.Highlighter, opts Options) *TextSource {
	maxCols := opts.MaxColumns
	if maxCols <= 0 {
		maxCols = DefaultOptions().MaxColumns
	}
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultOptions().TabWidth
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	width := 1
	for _, line := range lines {
		width = max(width, min(visualWidth(line, tabWidth), maxCols))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width*pixelsPerColumn, len(lines)*pixelsPerLine))
	bg, fg := h.Background(), h.Foreground()
	fillRect(img, img.Bounds(), bg)

	for y, line := range lines {
		spans := h.LineColors(line)
		col := 0
		for i, r := range []rune(line) {
			if col >= width {
				break // Truncate long lines
			}
			if r == '\t' {
				// Tab advances to next multiple of tabWidth
				col += tabWidth - (col % tabWidth)
				continue
			}
			w := runewidth.RuneWidth(r)
			if r == ' ' || w == 0 {
				col += w
				continue
			}
			c := syntax.ColorAt(spans, i, fg)
			fillRect(img, image.Rect(col*pixelsPerColumn, y*pixelsPerLine, (col+w)*pixelsPerColumn, (y+1)*pixelsPerLine), c)
			col += w
		}
	}

	return &TextSource{img: img, lines: len(lines)}
}

// visualWidth is the column count of line with tabs expanded.
func visualWidth(line string, tabWidth int) int {
	col := 0
	for _, r := range line {
		if r == '\t' {
			col += tabWidth - (col % tabWidth)
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return col
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 255
		}
	}
}

// Encoding returns the detected encoding name.
func (s *TextSource) Encoding() string {
	return s.encoding
}

// Lines returns the number of rasterized lines.
func (s *TextSource) Lines() int {
	return s.lines
}

// Image returns the full raster.
func (s *TextSource) Image() image.Image {
	return s.img
}

// Kind implements Source.
func (s *TextSource) Kind() Kind {
	return KindText
}

// ContentSize implements Renderer.
func (s *TextSource) ContentSize() minimap.Size {
	return sizeOf(s.img)
}

// Thumbnail implements Renderer. Box filtering averages glyph pixels so
// dense code reads as darker bands.
func (s *TextSource) Thumbnail(bounds minimap.Size) (image.Image, error) {
	w, h, err := pixelBounds(bounds)
	if err != nil {
		return nil, err
	}
	return scale(s.img, w, h, imaging.Box), nil
}
