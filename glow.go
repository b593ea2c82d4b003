package launcher

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Glow is a soft radial light centered on the origin, drawn beneath the
// background layers.
type Glow struct {
	// Color at the center. The default is white at 8% alpha.
	Color Color
	// Extent is the radius where the glow reaches zero, as a fraction of the
	// distance from the origin to the farthest viewport corner.
	Extent float64
	// Falloff shapes alpha between center and edge. Nil means linear.
	Falloff ease.TweenFunc

	tex   *ebiten.Image
	imgOp ebiten.DrawImageOptions
}

// glowTextureSize is the side of the generated gradient texture.
const glowTextureSize = 256

// NewGlow returns the default origin glow.
func NewGlow() *Glow {
	return &Glow{Color: Color{1, 1, 1, 0.08}, Extent: 0.6, Falloff: ease.Linear}
}

// Radius returns the glow radius in pixels for origin o.
func (g *Glow) Radius(o OriginState) float64 {
	far := math.Hypot(math.Max(o.CenterX, o.Width-o.CenterX), math.Max(o.CenterY, o.Height-o.CenterY))
	return far * g.Extent
}

// AlphaAt returns the glow alpha at distance d from the origin.
func (g *Glow) AlphaAt(o OriginState, d float64) float64 {
	r := g.Radius(o)
	if r <= 0 || d >= r {
		return 0
	}
	return g.Color.A * g.falloff(d/r)
}

// falloff maps t in [0, 1] (center to edge) to a strength in [1, 0].
func (g *Glow) falloff(t float64) float64 {
	fn := g.Falloff
	if fn == nil {
		fn = ease.Linear
	}
	return clamp01(float64(fn(float32(t), 1, -1, 1)))
}

// Image renders the gradient as an NRGBA image of the given side length,
// with full strength at the center. Alpha is in [0, 1] of g.Color.A.
func (g *Glow) Image(side int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	c := g.Color
	half := float64(side) / 2
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			d := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / half
			if d >= 1 {
				continue
			}
			a := clamp01(c.A * g.falloff(d))
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(clamp01(c.R)*255 + 0.5),
				G: uint8(clamp01(c.G)*255 + 0.5),
				B: uint8(clamp01(c.B)*255 + 0.5),
				A: uint8(a*255 + 0.5),
			})
		}
	}
	return img
}

// Draw paints the glow onto dst.
func (g *Glow) Draw(dst *ebiten.Image, o OriginState) {
	r := g.Radius(o)
	if r <= 0 {
		return
	}
	if g.tex == nil {
		g.tex = ebiten.NewImageFromImage(g.Image(glowTextureSize))
	}
	s := 2 * r / glowTextureSize
	op := &g.imgOp
	op.GeoM.Reset()
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(o.CenterX-r, o.CenterY-r)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(g.tex, op)
}

// Dispose frees the gradient texture.
func (g *Glow) Dispose() {
	if g.tex != nil {
		g.tex.Deallocate()
		g.tex = nil
	}
}
