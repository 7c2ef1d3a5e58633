package ui

import (
	"encoding/base64"
	"fmt"
	"image"
	"strings"
)

// KittyEncoder transmits an RGBA canvas as a Kitty graphics protocol image
// placed over a block of cells.
//
// Kitty graphics protocol reference:
// https://sw.kovidgoyal.net/kitty/graphics-protocol/
//
// The image always uses the same id, so each transmission replaces the
// previous one instead of stacking.
type KittyEncoder struct {
	imageID uint32
	shown   bool
}

// kittyChunkSize is the maximum base64 payload per escape sequence.
const kittyChunkSize = 4096

// NewKittyEncoder creates an encoder that draws with the given image id.
func NewKittyEncoder(imageID uint32) *KittyEncoder {
	return &KittyEncoder{imageID: imageID}
}

// ImageID returns the id used for transmissions.
func (k *KittyEncoder) ImageID() uint32 {
	return k.imageID
}

// Shown reports whether an image is on screen.
func (k *KittyEncoder) Shown() bool {
	return k.shown
}

// Place returns the escape sequence that moves the cursor to cell (x, y),
// 0-indexed, draws img scaled to cols x rows cells, and restores the cursor.
func (k *KittyEncoder) Place(img *image.NRGBA, x, y, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\033[s")
	fmt.Fprintf(&sb, "\033[%d;%dH", y+1, x+1)
	sb.WriteString(k.Encode(img, cols, rows))
	sb.WriteString("\033[u")
	k.shown = true
	return sb.String()
}

// Encode builds the transmit-and-display sequence for img.
// Format: \033_G<control>;base64data\033\\
func (k *KittyEncoder) Encode(img *image.NRGBA, cols, rows int) string {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// Pix rows may be padded or offset for sub-images; copy them tight.
	pixels := make([]byte, 0, w*h*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		pixels = append(pixels, img.Pix[i:i+w*4]...)
	}
	data := base64.StdEncoding.EncodeToString(pixels)

	// a=T: transmit and display
	// f=32: RGBA format (4 bytes per pixel)
	// s=width, v=height: pixel dimensions
	// c=cols, r=rows: cell dimensions to occupy
	// i=id: image ID for updates
	// q=2: suppress response
	control := fmt.Sprintf("a=T,f=32,s=%d,v=%d,c=%d,r=%d,i=%d,q=2", w, h, cols, rows, k.imageID)

	var sb strings.Builder
	if len(data) <= kittyChunkSize {
		fmt.Fprintf(&sb, "\033_G%s;%s\033\\", control, data)
		return sb.String()
	}
	for i := 0; i < len(data); i += kittyChunkSize {
		end := min(i+kittyChunkSize, len(data))
		chunk := data[i:end]
		more := 1
		if end >= len(data) {
			more = 0
		}
		if i == 0 {
			fmt.Fprintf(&sb, "\033_G%s,m=1;%s\033\\", control, chunk)
		} else {
			fmt.Fprintf(&sb, "\033_Gm=%d;%s\033\\", more, chunk)
		}
	}
	return sb.String()
}

// Clear returns the sequence that deletes the image, or "" when nothing is
// shown.
func (k *KittyEncoder) Clear() string {
	if !k.shown {
		return ""
	}
	k.shown = false
	return fmt.Sprintf("\033_Ga=d,d=i,i=%d\033\\", k.imageID)
}
