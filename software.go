package launcher

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DecodedSource looks up decoded layer images by resolved src.
type DecodedSource interface {
	Decoded(src string) (image.Image, bool)
}

// SoftwareOptions configures RenderSoftware.
type SoftwareOptions struct {
	Background Color
	Glow       *Glow
	Marker     *OriginMarker
}

// RenderSoftware paints plan on the CPU into an image the size of the
// plan's origin, in the same order as Screen.Draw (overlay widgets
// excluded). Layers whose image is missing are skipped.
//
// Blur is approximated with three box passes, so edges differ slightly from
// the GPU path.
func RenderSoftware(plan Plan, images DecodedSource, opts SoftwareOptions) *image.NRGBA {
	o := plan.Origin
	w, h := int(math.Ceil(o.Width)), int(math.Ceil(o.Height))
	canvas := newFloatImage(w, h)
	if w == 0 || h == 0 {
		return canvas.nrgba()
	}
	canvas.fill(premultiply(opts.Background), BlendNormal)

	if opts.Glow != nil {
		g := opts.Glow
		c := g.Color
		canvas.eachPixel(func(x, y int) [4]float64 {
			a := g.AlphaAt(o, math.Hypot(float64(x)+0.5-o.CenterX, float64(y)+0.5-o.CenterY))
			return [4]float64{c.R * a, c.G * a, c.B * a, a}
		}, BlendNormal)
	}

	scratch := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, l := range plan.Layers {
		img, ok := images.Decoded(l.Src)
		if !ok || img == nil {
			continue
		}
		drawLayerSoftware(canvas, scratch, l, o, img)
	}

	if m := opts.Marker; m != nil && m.Size > 0 && !o.Degenerate() {
		canvas.eachPixel(func(x, y int) [4]float64 {
			return discPixel(math.Hypot(float64(x)+0.5-o.CenterX, float64(y)+0.5-o.CenterY), m.Size/2, m.Ring, m.Color)
		}, BlendNormal)
	}
	return canvas.nrgba()
}

func drawLayerSoftware(canvas *floatImage, scratch *image.RGBA, l PlannedLayer, o OriginState, img image.Image) {
	b := img.Bounds()
	p, m := l.Geometry(o, float64(b.Dx()), float64(b.Dy()))
	if p.Empty() {
		return
	}
	crop := p.Crop(b.Dx(), b.Dy())
	if crop.Empty() {
		return
	}

	pxScale := 1.0
	if p.Dst.Width > 0 {
		pxScale = p.Src.Width / p.Dst.Width
	}
	pad := 0
	for _, f := range l.Effect.Filters {
		if f.Kind == FilterBlur {
			pad += 3 * boxRadius(f.Amount*pxScale)
		}
	}

	src := floatImageFrom(img, crop.Add(b.Min), pad)
	for _, f := range l.Effect.Filters {
		if f.Kind == FilterBlur {
			src.blur(boxRadius(f.Amount * pxScale))
			continue
		}
		src.applyMatrix(f.Matrix())
	}

	s2d := cropMatrix(m, p, crop, pad)
	clear(scratch.Pix)
	layer := src.rgba()
	if isIdentity(s2d) {
		draw.Draw(scratch, layer.Bounds(), layer, layer.Bounds().Min, draw.Over)
	} else {
		draw.BiLinear.Transform(scratch, toAff3(s2d), layer, layer.Bounds(), draw.Over, nil)
	}
	canvas.composite(scratch, l.Effect.Blend, l.Effect.Alpha())

	if t := l.Effect.Tint; t != nil && t.Err == nil {
		a := clamp01(t.Color.A * t.Opacity)
		canvas.fill([4]float64{t.Color.R * a, t.Color.G * a, t.Color.B * a, a}, t.Blend)
	}
}

// toAff3 converts [a, b, c, d, tx, ty] to the row-major f64.Aff3 layout.
func toAff3(m [6]float64) f64.Aff3 {
	return f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
}

// boxRadius returns the radius of one of three box passes approximating a
// Gaussian with standard deviation sigma.
func boxRadius(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	ideal := math.Sqrt(12*sigma*sigma/3 + 1)
	return max(int(ideal/2), 1)
}

func premultiply(c Color) [4]float64 {
	a := clamp01(c.A)
	return [4]float64{clamp01(c.R) * a, clamp01(c.G) * a, clamp01(c.B) * a, a}
}

// blendPixel composites premultiplied s over d with mode. The formulas
// match the ebiten.Blend values returned by BlendMode.EbitenBlend.
func blendPixel(mode BlendMode, s, d [4]float64) [4]float64 {
	var out [4]float64
	sa, da := s[3], d[3]
	switch mode {
	case BlendAdd:
		for i := range out {
			out[i] = min(s[i]+d[i], 1)
		}
	case BlendMultiply:
		for i := 0; i < 3; i++ {
			out[i] = s[i]*d[i] + d[i]*(1-sa)
		}
		out[3] = sa*da + da*(1-sa)
	case BlendScreen:
		for i := 0; i < 3; i++ {
			out[i] = s[i] + d[i]*(1-s[i])
		}
		out[3] = sa + da*(1-sa)
	case BlendErase:
		for i := range out {
			out[i] = d[i] * (1 - sa)
		}
	default:
		for i := range out {
			out[i] = s[i] + d[i]*(1-sa)
		}
	}
	return out
}

// floatImage is a premultiplied RGBA buffer with float channels.
type floatImage struct {
	w, h int
	pix  []float64
}

func newFloatImage(w, h int) *floatImage {
	return &floatImage{w: w, h: h, pix: make([]float64, w*h*4)}
}

// floatImageFrom copies r out of img with pad transparent pixels on every
// side.
func floatImageFrom(img image.Image, r image.Rectangle, pad int) *floatImage {
	f := newFloatImage(r.Dx()+2*pad, r.Dy()+2*pad)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			off := ((y-r.Min.Y+pad)*f.w + (x - r.Min.X + pad)) * 4
			f.pix[off] = float64(cr) / 0xffff
			f.pix[off+1] = float64(cg) / 0xffff
			f.pix[off+2] = float64(cb) / 0xffff
			f.pix[off+3] = float64(ca) / 0xffff
		}
	}
	return f
}

func (f *floatImage) at(x, y int) [4]float64 {
	off := (y*f.w + x) * 4
	return [4]float64{f.pix[off], f.pix[off+1], f.pix[off+2], f.pix[off+3]}
}

func (f *floatImage) set(x, y int, c [4]float64) {
	off := (y*f.w + x) * 4
	copy(f.pix[off:off+4], c[:])
}

// eachPixel blends the color returned by fn into every pixel.
func (f *floatImage) eachPixel(fn func(x, y int) [4]float64, mode BlendMode) {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			s := fn(x, y)
			if s == ([4]float64{}) {
				continue
			}
			f.set(x, y, blendPixel(mode, s, f.at(x, y)))
		}
	}
}

// fill blends a solid premultiplied color over the whole buffer.
func (f *floatImage) fill(c [4]float64, mode BlendMode) {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			f.set(x, y, blendPixel(mode, c, f.at(x, y)))
		}
	}
}

// composite blends src, scaled by alpha, over f.
func (f *floatImage) composite(src *image.RGBA, mode BlendMode, alpha float64) {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			off := src.PixOffset(x, y)
			if src.Pix[off+3] == 0 {
				continue
			}
			s := [4]float64{
				float64(src.Pix[off]) / 255 * alpha,
				float64(src.Pix[off+1]) / 255 * alpha,
				float64(src.Pix[off+2]) / 255 * alpha,
				float64(src.Pix[off+3]) / 255 * alpha,
			}
			f.set(x, y, blendPixel(mode, s, f.at(x, y)))
		}
	}
}

// applyMatrix runs a color matrix on straight alpha, per pixel.
func (f *floatImage) applyMatrix(m ColorMatrix) {
	for i := 0; i < len(f.pix); i += 4 {
		r, g, b, a := f.pix[i], f.pix[i+1], f.pix[i+2], f.pix[i+3]
		if a > 0 {
			r, g, b = r/a, g/a, b/a
		}
		r, g, b, a = m.Apply(r, g, b, a)
		f.pix[i], f.pix[i+1], f.pix[i+2], f.pix[i+3] = r*a, g*a, b*a, a
	}
}

// blur runs three horizontal and three vertical box passes of radius r.
func (f *floatImage) blur(r int) {
	if r <= 0 {
		return
	}
	tmp := make([]float64, len(f.pix))
	for range 3 {
		boxPass(f.pix, tmp, f.w, f.h, r, 4, f.w*4)
		boxPass(tmp, f.pix, f.h, f.w, r, f.w*4, 4)
	}
}

// boxPass averages src into dst along lines of length n, with step
// between samples on a line and stride between lines. Samples outside the
// line count as transparent.
func boxPass(src, dst []float64, n, lines, r, step, stride int) {
	norm := 1 / float64(2*r+1)
	for line := 0; line < lines; line++ {
		base := line * stride
		for c := 0; c < 4; c++ {
			var sum float64
			for i := 0; i <= r && i < n; i++ {
				sum += src[base+i*step+c]
			}
			for i := 0; i < n; i++ {
				dst[base+i*step+c] = sum * norm
				if j := i + r + 1; j < n {
					sum += src[base+j*step+c]
				}
				if j := i - r; j >= 0 {
					sum -= src[base+j*step+c]
				}
			}
		}
	}
}

func (f *floatImage) rgba() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.w, f.h))
	for i, v := range f.pix {
		img.Pix[i] = uint8(clamp01(v)*255 + 0.5)
	}
	return img
}

func (f *floatImage) nrgba() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.w, f.h))
	for i := 0; i < len(f.pix); i += 4 {
		a := clamp01(f.pix[i+3])
		if a > 0 {
			img.Pix[i] = uint8(clamp01(f.pix[i]/a)*255 + 0.5)
			img.Pix[i+1] = uint8(clamp01(f.pix[i+1]/a)*255 + 0.5)
			img.Pix[i+2] = uint8(clamp01(f.pix[i+2]/a)*255 + 0.5)
		}
		img.Pix[i+3] = uint8(a*255 + 0.5)
	}
	return img
}
