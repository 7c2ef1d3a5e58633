package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/cornish/scrollmap/log"
	"github.com/cornish/scrollmap/minimap"
)

// ErrNoSource is returned by a Cache with nothing to render.
var ErrNoSource = errors.New("no thumbnail source")

const (
	DefaultExpiration      = 5 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Cache memoizes a Renderer's thumbnails per requested pixel size. Errors
// are not cached.
type Cache struct {
	src   Renderer
	cache *gocache.Cache
}

// NewCache wraps src.
func NewCache(src Renderer, defaultExpiration, cleanupInterval time.Duration) *Cache {
	return &Cache{
		src:   src,
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

// SetSource replaces the wrapped renderer and drops every cached thumbnail.
func (c *Cache) SetSource(src Renderer) {
	c.src = src
	c.Invalidate()
}

// Source returns the wrapped renderer.
func (c *Cache) Source() Renderer {
	return c.src
}

// Invalidate drops every cached thumbnail.
func (c *Cache) Invalidate() {
	c.cache.Flush()
}

// Len returns the number of cached thumbnails.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}

// ContentSize implements Renderer.
func (c *Cache) ContentSize() minimap.Size {
	if c.src == nil {
		return minimap.Size{}
	}
	return c.src.ContentSize()
}

// Thumbnail implements Renderer.
func (c *Cache) Thumbnail(bounds minimap.Size) (image.Image, error) {
	if c.src == nil {
		return nil, ErrNoSource
	}
	w, h, err := pixelBounds(bounds)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%dx%d", w, h)

	if v, found := c.cache.Get(key); found {
		if img, ok := v.(image.Image); ok {
			return img, nil
		}
		log.Error(log.CatThumb, "wrong type assertion when getting value", "key", key)
	}

	img, err := c.src.Thumbnail(minimap.Size{Width: float64(w), Height: float64(h)})
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, img, gocache.DefaultExpiration)
	log.Debug(log.CatThumb, "cached", "key", key)
	return img, nil
}
