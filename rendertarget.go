package launcher

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// renderTexturePool manages reusable offscreen ebiten.Images keyed by
// power-of-two dimensions. After warmup, Acquire/Release are zero-alloc.
type renderTexturePool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *renderTexturePool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here.
func (p *renderTexturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// Drain deallocates every pooled image.
func (p *renderTexturePool) Drain() {
	for key, stack := range p.buckets {
		for _, img := range stack {
			img.Deallocate()
		}
		delete(p.buckets, key)
	}
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// layerCacheKey identifies a filtered layer image.
type layerCacheKey struct {
	src    string
	filter string
	srcW   int
	srcH   int
	pad    int
}

// layerCache holds filtered layer images across frames so that the filter
// chain only runs when a layer's source, crop or filters change.
type layerCache struct {
	entries map[layerCacheKey]*ebiten.Image
	used    map[layerCacheKey]bool
}

func (c *layerCache) get(k layerCacheKey) (*ebiten.Image, bool) {
	img, ok := c.entries[k]
	if ok {
		c.markUsed(k)
	}
	return img, ok
}

func (c *layerCache) put(k layerCacheKey, img *ebiten.Image) {
	if c.entries == nil {
		c.entries = make(map[layerCacheKey]*ebiten.Image)
	}
	if old, ok := c.entries[k]; ok && old != img {
		old.Deallocate()
	}
	c.entries[k] = img
	c.markUsed(k)
}

func (c *layerCache) markUsed(k layerCacheKey) {
	if c.used == nil {
		c.used = make(map[layerCacheKey]bool)
	}
	c.used[k] = true
}

// sweep deallocates entries not used since the previous sweep.
func (c *layerCache) sweep() {
	for k, img := range c.entries {
		if !c.used[k] {
			img.Deallocate()
			delete(c.entries, k)
		}
	}
	clear(c.used)
}

// purge deallocates every entry.
func (c *layerCache) purge() {
	for k, img := range c.entries {
		img.Deallocate()
		delete(c.entries, k)
	}
	clear(c.used)
}
