package ui

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// RenderMode selects how a pixel canvas becomes terminal cells.
type RenderMode int

const (
	// ModeHalfBlock draws two vertically stacked colored pixels per cell
	// with the upper half block glyph.
	ModeHalfBlock RenderMode = iota
	// ModeBraille draws a 2x4 dot pattern per cell for terminals without
	// enough colors to show the image itself.
	ModeBraille
	// ModeASCII draws one luminance character per cell.
	ModeASCII
)

func (m RenderMode) String() string {
	switch m {
	case ModeHalfBlock:
		return "halfblock"
	case ModeBraille:
		return "braille"
	case ModeASCII:
		return "ascii"
	default:
		return "unknown"
	}
}

// Density returns how many canvas pixels represent one view pixel. View
// pixels are 1 wide and 2 per terminal row.
func (m RenderMode) Density() (x, y float64) {
	switch m {
	case ModeBraille:
		return 2, 2
	case ModeASCII:
		return 1, 0.5
	default:
		return 1, 1
	}
}

// kittyDensity approximates an 8x16 pixel terminal cell.
const kittyDensity = 8

// canvasSize returns the canvas dimensions for a width x height cell area.
func canvasSize(width, height int, dx, dy float64) (int, int) {
	return max(1, int(math.Round(float64(width)*dx))), max(1, int(math.Round(float64(height)*2*dy)))
}

// fill paints the whole canvas with c.
func fill(img *image.NRGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = 255
	}
}

// placeScaled resizes src to the rectangle dst (canvas pixels) and pastes it.
// Parts of dst outside the canvas are clipped.
func placeScaled(canvas *image.NRGBA, src image.Image, dst image.Rectangle) {
	if src == nil || dst.Dx() <= 0 || dst.Dy() <= 0 {
		return
	}
	filter := imaging.Box
	if dst.Dx() > src.Bounds().Dx() || dst.Dy() > src.Bounds().Dy() {
		filter = imaging.NearestNeighbor
	}
	scaled := imaging.Resize(src, dst.Dx(), dst.Dy(), filter)
	*canvas = *imaging.Paste(canvas, scaled, dst.Min)
}

// blendRect mixes c over the canvas inside r with the given alpha.
func blendRect(canvas *image.NRGBA, r image.Rectangle, c color.RGBA, alpha float64) {
	r = r.Intersect(canvas.Bounds())
	if r.Empty() || alpha <= 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := canvas.PixOffset(x, y)
			canvas.Pix[i] = blendColor(canvas.Pix[i], c.R, alpha)
			canvas.Pix[i+1] = blendColor(canvas.Pix[i+1], c.G, alpha)
			canvas.Pix[i+2] = blendColor(canvas.Pix[i+2], c.B, alpha)
		}
	}
}

// strokeRect draws an inner border of width w around r.
func strokeRect(canvas *image.NRGBA, r image.Rectangle, c color.RGBA, w int) {
	if w <= 0 || r.Empty() {
		return
	}
	w = min(w, (r.Dx()+1)/2, (r.Dy()+1)/2)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w),
		image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y),
		image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		blendRect(canvas, e, c, 1)
	}
}

// blendColor blends two color values with the given alpha.
func blendColor(base, overlay byte, alpha float64) byte {
	result := float64(base)*(1-alpha) + float64(overlay)*alpha
	if result > 255 {
		return 255
	}
	if result < 0 {
		return 0
	}
	return byte(math.Round(result))
}

func rgbaAt(img *image.NRGBA, x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.RGBA{A: 255}
	}
	i := img.PixOffset(x, y)
	return color.RGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: 255}
}

func luminance(c color.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// cellRows converts a canvas produced at mode's density into width x height
// terminal rows.
func cellRows(canvas *image.NRGBA, width, height int, mode RenderMode) []string {
	switch mode {
	case ModeBraille:
		return brailleRows(canvas, width, height)
	case ModeASCII:
		return asciiRows(canvas, width, height)
	default:
		return halfBlockRows(canvas, width, height)
	}
}

func halfBlockRows(canvas *image.NRGBA, width, height int) []string {
	rows := make([]string, height)
	for row := 0; row < height; row++ {
		var sb strings.Builder
		var lastTop, lastBottom color.RGBA
		for col := 0; col < width; col++ {
			top := rgbaAt(canvas, col, row*2)
			bottom := rgbaAt(canvas, col, row*2+1)
			if col == 0 || top != lastTop {
				sb.WriteString(RGBToANSIFg(top))
			}
			if col == 0 || bottom != lastBottom {
				sb.WriteString(RGBToANSIBg(bottom))
			}
			sb.WriteString("▀")
			lastTop, lastBottom = top, bottom
		}
		sb.WriteString(ansiReset)
		rows[row] = sb.String()
	}
	return rows
}

// brailleThreshold is the luminance above which a dot is lit.
const brailleThreshold = 0.35

func brailleRows(canvas *image.NRGBA, width, height int) []string {
	// Dot bit for (column, row) inside one braille cell.
	bits := [2][4]rune{
		{0x01, 0x02, 0x04, 0x40},
		{0x08, 0x10, 0x20, 0x80},
	}
	rows := make([]string, height)
	for row := 0; row < height; row++ {
		var sb strings.Builder
		for col := 0; col < width; col++ {
			pattern := rune(0x2800)
			for dx := 0; dx < 2; dx++ {
				for dy := 0; dy < 4; dy++ {
					if luminance(rgbaAt(canvas, col*2+dx, row*4+dy)) > brailleThreshold {
						pattern |= bits[dx][dy]
					}
				}
			}
			sb.WriteRune(pattern)
		}
		rows[row] = sb.String()
	}
	return rows
}

// asciiRamp runs from dark to light.
const asciiRamp = " .:-=+*#%@"

func asciiRows(canvas *image.NRGBA, width, height int) []string {
	rows := make([]string, height)
	for row := 0; row < height; row++ {
		b := make([]byte, width)
		for col := 0; col < width; col++ {
			l := luminance(rgbaAt(canvas, col, row))
			b[col] = asciiRamp[min(len(asciiRamp)-1, int(l*float64(len(asciiRamp))))]
		}
		rows[row] = string(b)
	}
	return rows
}
