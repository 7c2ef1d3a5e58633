package thumbnail

import (
	"fmt"
	"image"
	"io"

	// Registered decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/cornish/scrollmap/minimap"
)

// ImageSource is a decoded raster image.
type ImageSource struct {
	img    *image.NRGBA
	format string
}

// NewImageSource wraps an already decoded image.
func NewImageSource(img image.Image) *ImageSource {
	return &ImageSource{img: imaging.Clone(img), format: "memory"}
}

// DecodeImage decodes PNG, JPEG, GIF, BMP or WebP data.
func DecodeImage(r io.Reader) (*ImageSource, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return &ImageSource{img: imaging.Clone(img), format: format}, nil
}

// Format returns the decoder that read the image.
func (s *ImageSource) Format() string {
	return s.format
}

// Image returns the full raster.
func (s *ImageSource) Image() image.Image {
	return s.img
}

// Kind implements Source.
func (s *ImageSource) Kind() Kind {
	return KindImage
}

// ContentSize implements Renderer.
func (s *ImageSource) ContentSize() minimap.Size {
	return sizeOf(s.img)
}

// Thumbnail implements Renderer with Lanczos downsampling.
func (s *ImageSource) Thumbnail(bounds minimap.Size) (image.Image, error) {
	w, h, err := pixelBounds(bounds)
	if err != nil {
		return nil, err
	}
	return scale(s.img, w, h, imaging.Lanczos), nil
}
