package launcher

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is a visual effect applied to a layer image before it is placed.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to accommodate
	// the effect (e.g. blur radius). Zero means no padding.
	Padding() int
}

// All shaders use //kage:unit pixels as required by Ebitengine.
// Ebitengine uses premultiplied alpha; the shader un-premultiplies before
// processing and re-premultiplies its output.
const colorMatrixShaderSrc = `//kage:unit pixels
package main

var Matrix [20]float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a > 0 {
		c.rgb /= c.a
	}
	r := Matrix[0]*c.r + Matrix[1]*c.g + Matrix[2]*c.b + Matrix[3]*c.a + Matrix[4]
	g := Matrix[5]*c.r + Matrix[6]*c.g + Matrix[7]*c.b + Matrix[8]*c.a + Matrix[9]
	b := Matrix[10]*c.r + Matrix[11]*c.g + Matrix[12]*c.b + Matrix[13]*c.a + Matrix[14]
	a := Matrix[15]*c.r + Matrix[16]*c.g + Matrix[17]*c.b + Matrix[18]*c.a + Matrix[19]
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)
	a = clamp(a, 0, 1)
	return vec4(r*a, g*a, b*a, a)
}
`

// Compiled lazily on the UI goroutine.
var colorMatrixShader *ebiten.Shader

func ensureColorMatrixShader() *ebiten.Shader {
	if colorMatrixShader == nil {
		s, err := ebiten.NewShader([]byte(colorMatrixShaderSrc))
		if err != nil {
			panic("launcher: failed to compile color matrix shader: " + err.Error())
		}
		colorMatrixShader = s
	}
	return colorMatrixShader
}

// ColorMatrixFilter applies a ColorMatrix using a Kage shader.
type ColorMatrixFilter struct {
	Matrix      ColorMatrix
	uniforms    map[string]any
	matrixF32   [20]float32 // persistent buffer to avoid per-frame slice escape
	matrixSlice []float32   // persistent slice header pointing into matrixF32
	shaderOp    ebiten.DrawRectShaderOptions
}

// NewColorMatrixFilter creates a color matrix filter for m.
func NewColorMatrixFilter(m ColorMatrix) *ColorMatrixFilter {
	f := &ColorMatrixFilter{Matrix: m, uniforms: make(map[string]any, 1)}
	f.matrixSlice = f.matrixF32[:]
	f.uniforms["Matrix"] = f.matrixSlice
	return f
}

// Apply renders the color matrix transformation from src into dst.
func (f *ColorMatrixFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureColorMatrixShader()
	for i, v := range f.Matrix {
		f.matrixF32[i] = float32(v)
	}
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// Padding returns 0; color matrix transforms don't expand the image bounds.
func (f *ColorMatrixFilter) Padding() int { return 0 }

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// Bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius (in pixels).
func NewBlurFilter(radius int) *BlurFilter {
	if radius < 0 {
		radius = 0
	}
	return &BlurFilter{Radius: radius}
}

// Apply renders a Kawase blur from src into dst using iterative downscale/upscale.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	if f.Radius <= 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	passes := max(int(math.Ceil(math.Log2(float64(f.Radius)))), 1)

	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		f.drawScaled(f.temps[i], current)
		current = f.temps[i]
	}

	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.drawScaled(f.temps[i], current)
		current = f.temps[i]
	}
	f.drawScaled(dst, current)
}

// drawScaled draws src stretched over the whole of dst with bilinear filtering.
func (f *BlurFilter) drawScaled(dst, src *ebiten.Image) {
	op := &f.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sb, db := src.Bounds(), dst.Bounds()
	op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// Padding returns the blur radius; the offscreen buffer is expanded to avoid clipping.
func (f *BlurFilter) Padding() int { return f.Radius }

// NewFilterChain builds ebiten filters for a composed filter list. Blur radii
// are multiplied by pxScale to convert layer-box pixels into source-image
// pixels.
func NewFilterChain(ops []FilterOp, pxScale float64) []Filter {
	if len(ops) == 0 {
		return nil
	}
	chain := make([]Filter, 0, len(ops))
	for _, op := range ops {
		if op.Kind == FilterBlur {
			chain = append(chain, NewBlurFilter(int(math.Ceil(op.Amount*pxScale))))
			continue
		}
		chain = append(chain, NewColorMatrixFilter(op.Matrix()))
	}
	return chain
}

// filterChainPadding returns the cumulative padding required by a slice of filters.
func filterChainPadding(filters []Filter) int {
	pad := 0
	for _, f := range filters {
		pad += f.Padding()
	}
	return pad
}

// applyFilters runs a filter chain on src, ping-ponging between two pooled
// images. Returns the image holding the final result (src itself when the
// chain is empty). A returned pooled image must be released by the caller.
func applyFilters(filters []Filter, src *ebiten.Image, pool *renderTexturePool) *ebiten.Image {
	if len(filters) == 0 {
		return src
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var ping, pong *ebiten.Image
	current := src
	for _, f := range filters {
		var target *ebiten.Image
		if current == ping {
			if pong == nil {
				pong = pool.Acquire(w, h)
			} else {
				pong.Clear()
			}
			target = pong
		} else {
			if ping == nil {
				ping = pool.Acquire(w, h)
			} else {
				ping.Clear()
			}
			target = ping
		}
		f.Apply(current, target)
		current = target
	}
	if current == ping {
		pool.Release(pong)
	} else {
		pool.Release(ping)
	}
	return current
}
