package launcher

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultMarkerSize is the origin marker diameter in pixels.
const DefaultMarkerSize = 6

// DefaultMarkerColor is the origin marker fill.
var DefaultMarkerColor = Color{0xd6 / 255.0, 0x31 / 255.0, 0x31 / 255.0, 1}

// OriginMarker draws a small dot with a white ring on the origin, above the
// background layers. A Size of zero hides it.
type OriginMarker struct {
	Size  float64
	Color Color
	// Ring is the width of the white outline in pixels.
	Ring float64

	disc    *ebiten.Image
	discKey [3]float64
	imgOp   ebiten.DrawImageOptions
}

// NewOriginMarker returns a marker with the default look.
func NewOriginMarker() *OriginMarker {
	return &OriginMarker{Size: DefaultMarkerSize, Color: DefaultMarkerColor, Ring: 2}
}

// Bounds returns the marker rectangle for origin o, ring included.
func (m *OriginMarker) Bounds(o OriginState) Rect {
	d := m.Size + 2*m.Ring
	return Rect{X: o.CenterX - d/2, Y: o.CenterY - d/2, Width: d, Height: d}
}

// Draw paints the marker onto dst.
func (m *OriginMarker) Draw(dst *ebiten.Image, o OriginState) {
	if m.Size <= 0 || o.Degenerate() {
		return
	}
	key := [3]float64{m.Size, m.Ring, m.Color.R + 2*m.Color.G + 4*m.Color.B + 8*m.Color.A}
	if m.disc == nil || m.discKey != key {
		if m.disc != nil {
			m.disc.Deallocate()
		}
		m.disc = generateDisc(m.Size/2, m.Ring, m.Color)
		m.discKey = key
	}
	b := m.Bounds(o)
	op := &m.imgOp
	op.GeoM.Reset()
	op.GeoM.Translate(math.Round(b.X), math.Round(b.Y))
	dst.DrawImage(m.disc, op)
}

// Dispose frees the marker texture.
func (m *OriginMarker) Dispose() {
	if m.disc != nil {
		m.disc.Deallocate()
		m.disc = nil
	}
}

// generateDisc creates an anti-aliased disc of the given radius filled with
// fill and outlined by a white ring. Pixels are premultiplied.
func generateDisc(radius, ring float64, fill Color) *ebiten.Image {
	size := max(int(math.Ceil((radius+ring)*2)), 1)
	img := ebiten.NewImage(size, size)
	pix := make([]byte, size*size*4)

	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px := discPixel(math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c), radius, ring, fill)
			off := (y*size + x) * 4
			for i, v := range px {
				pix[off+i] = uint8(clamp01(v)*255 + 0.5)
			}
		}
	}
	img.WritePixels(pix)
	return img
}

// discPixel returns the premultiplied color of a marker pixel at distance d
// from its center.
func discPixel(d, radius, ring float64, fill Color) [4]float64 {
	cover := clamp01(radius + ring + 0.5 - d)
	if cover == 0 {
		return [4]float64{}
	}
	// Inside the fill radius the fill color wins, blended over the ring
	// across the one-pixel edge.
	t := clamp01(radius + 0.5 - d)
	if ring <= 0 {
		a := fill.A * t
		return [4]float64{fill.R * a, fill.G * a, fill.B * a, a}
	}
	k := fill.A * t
	return [4]float64{
		(fill.R*k + 1 - k) * cover,
		(fill.G*k + 1 - k) * cover,
		(fill.B*k + 1 - k) * cover,
		cover,
	}
}
