// Package thumbnail produces the raster a scroll view shows and the scaled
// previews its minimap draws.
package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/cornish/scrollmap/log"
	"github.com/cornish/scrollmap/minimap"
)

var (
	// ErrEmptyBounds is returned when a thumbnail smaller than one pixel is
	// requested.
	ErrEmptyBounds = errors.New("thumbnail bounds are empty")
	// ErrUnsupported is returned for content that is neither an image nor
	// text.
	ErrUnsupported = errors.New("unsupported content type")
)

// Renderer draws the content scaled to fit bounds.
type Renderer interface {
	Thumbnail(bounds minimap.Size) (image.Image, error)
	ContentSize() minimap.Size
}

// Kind is what a Source was loaded from.
type Kind int

const (
	KindImage Kind = iota
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Source is loaded content: the full raster plus its thumbnails.
type Source interface {
	Renderer
	Image() image.Image
	Kind() Kind
}

// Options control how text content is rasterized.
type Options struct {
	Style      string // chroma style name
	MaxColumns int
	TabWidth   int
}

// DefaultOptions returns the defaults: 120 columns, tab width 4.
func DefaultOptions() Options {
	return Options{
		Style:      "vim",
		MaxColumns: 120,
		TabWidth:   4,
	}
}

// Load reads path and builds the source for it.
func Load(path string, opts Options) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return LoadBytes(path, data, opts)
}

// LoadBytes builds a source from data, sniffing the content type. The name
// selects the syntax lexer for text.
func LoadBytes(name string, data []byte, opts Options) (Source, error) {
	ctype := http.DetectContentType(data)
	log.Debug(log.CatThumb, "sniffed", "name", name, "type", ctype, "bytes", len(data))

	switch {
	case strings.HasPrefix(ctype, "image/"):
		src, err := DecodeImage(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return src, nil
	case strings.HasPrefix(ctype, "text/"):
		src, err := NewTextSource(name, data, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%s: %w: %s", name, ErrUnsupported, ctype)
	}
}

// pixelBounds converts requested bounds to whole pixels.
func pixelBounds(bounds minimap.Size) (int, int, error) {
	if math.IsNaN(bounds.Width) || math.IsNaN(bounds.Height) ||
		math.IsInf(bounds.Width, 0) || math.IsInf(bounds.Height, 0) {
		return 0, 0, ErrEmptyBounds
	}
	w, h := int(math.Round(bounds.Width)), int(math.Round(bounds.Height))
	if w < 1 || h < 1 {
		return 0, 0, ErrEmptyBounds
	}
	return w, h, nil
}

// scale resizes img to w x h. Shrinking uses down; growing never blurs.
func scale(img image.Image, w, h int, down imaging.ResampleFilter) *image.NRGBA {
	b := img.Bounds()
	filter := down
	if w > b.Dx() || h > b.Dy() {
		filter = imaging.NearestNeighbor
	}
	return imaging.Resize(img, w, h, filter)
}

func sizeOf(img image.Image) minimap.Size {
	if img == nil {
		return minimap.Size{}
	}
	b := img.Bounds()
	return minimap.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}
