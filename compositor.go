package launcher

import (
	"image"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// PlannedLayer is one layer that will paint, with its composed effect.
type PlannedLayer struct {
	// Index is the position in the resolved layer sequence.
	Index int
	// Z is the stacking order; strictly increasing through a Plan.
	Z      int
	Src    string
	Alt    string
	Fit    Fit
	Effect Effect
}

// Geometry returns the fit placement for an image of the given natural size
// and the affine mapping source pixels (relative to the visible crop) into
// viewport pixels.
func (l PlannedLayer) Geometry(o OriginState, imgW, imgH float64) (Placement, [6]float64) {
	p := FitPlacement(l.Fit, imgW, imgH, o.Width, o.Height)
	m := multiplyAffine(l.Effect.Matrix(o, p.Box.X, p.Box.Y), p.Matrix())
	return p, m
}

// Plan is the ordered, bottom-to-top list of layers to paint for one origin.
type Plan struct {
	Origin OriginState
	Layers []PlannedLayer
}

// Interactive reports whether any part of the background takes pointer
// input. The background is always pass-through.
func (Plan) Interactive() bool { return false }

// ImageSource looks up decoded layer images by resolved src.
type ImageSource interface {
	Image(src string) (*ebiten.Image, bool)
}

// Compositor turns resolved layers into a Plan and paints it.
type Compositor struct {
	logger *log.Logger
	warned map[string]bool
	pool   renderTexturePool
	cache  layerCache
	imgOp  ebiten.DrawImageOptions
}

// NewCompositor creates a compositor. logger may be nil.
func NewCompositor(logger *log.Logger) *Compositor {
	return &Compositor{logger: orDefault(logger), warned: make(map[string]bool)}
}

// BuildPlan orders the paintable layers bottom-to-top and composes their
// effects for origin o. Layers that are hidden or have no src are skipped
// entirely. BuildPlan is pure.
func BuildPlan(o OriginState, layers []LayerConfig) Plan {
	plan := Plan{Origin: o}
	for i, l := range layers {
		if !l.Paints() {
			continue
		}
		plan.Layers = append(plan.Layers, PlannedLayer{
			Index:  i,
			Z:      i,
			Src:    l.Src,
			Alt:    l.Alt,
			Fit:    l.Fit,
			Effect: ComposeEffect(l.Effects, o),
		})
	}
	return plan
}

// Plan builds the plan and reports configuration problems (unknown blend
// modes, bad tint colors, bad translate lengths) once per layer source.
func (c *Compositor) Plan(o OriginState, layers []LayerConfig) Plan {
	plan := BuildPlan(o, layers)
	for _, l := range plan.Layers {
		e := l.Effect
		if !e.BlendKnown {
			c.warnOnce("blend:"+l.Src, "unsupported blend mode, using normal", "src", l.Src, "blendMode", e.BlendName)
		}
		if e.Tint != nil && e.Tint.Err != nil {
			c.warnOnce("tint:"+l.Src, "invalid tint color, tint skipped", "src", l.Src, "err", e.Tint.Err)
		}
		if e.TranslateErr != nil {
			c.warnOnce("translate:"+l.Src, "invalid translate, ignored", "src", l.Src, "err", e.TranslateErr)
		}
	}
	return plan
}

func (c *Compositor) warnOnce(key, msg string, keyvals ...any) {
	if c.warned[key] {
		return
	}
	c.warned[key] = true
	c.logger.Warn(msg, keyvals...)
}

// Draw paints plan onto dst bottom-to-top. Layers whose image is not
// available yet are skipped for this frame.
func (c *Compositor) Draw(dst *ebiten.Image, plan Plan, images ImageSource) {
	o := plan.Origin
	for _, l := range plan.Layers {
		img, ok := images.Image(l.Src)
		if !ok || img == nil {
			continue
		}
		b := img.Bounds()
		p, m := l.Geometry(o, float64(b.Dx()), float64(b.Dy()))
		if p.Empty() {
			continue
		}
		crop := p.Crop(b.Dx(), b.Dy())
		if crop.Empty() {
			continue
		}
		src, pad := c.layerImage(img, l, p, crop)
		m = cropMatrix(m, p, crop, pad)

		op := &c.imgOp
		op.GeoM.Reset()
		op.ColorScale.Reset()
		setGeoM(&op.GeoM, m)
		op.ColorScale.ScaleAlpha(float32(l.Effect.Alpha()))
		op.Blend = l.Effect.Blend.EbitenBlend()
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(src, op)

		if t := l.Effect.Tint; t != nil && t.Err == nil {
			c.drawTint(dst, o, t)
		}
	}
	c.cache.sweep()
}

// layerImage returns the visible crop of img with the layer's filters
// applied, plus the padding added around it for blur. crop is relative to
// the image bounds.
func (c *Compositor) layerImage(img *ebiten.Image, l PlannedLayer, p Placement, crop image.Rectangle) (*ebiten.Image, int) {
	sub := img.SubImage(crop.Add(img.Bounds().Min)).(*ebiten.Image)
	filter, ok := l.Effect.FilterString()
	if !ok {
		return sub, 0
	}

	pxScale := 1.0
	if p.Dst.Width > 0 {
		pxScale = p.Src.Width / p.Dst.Width
	}
	chain := NewFilterChain(l.Effect.Filters, pxScale)
	pad := filterChainPadding(chain)
	key := layerCacheKey{src: l.Src, filter: filter, srcW: crop.Dx(), srcH: crop.Dy(), pad: pad}
	if cached, ok := c.cache.get(key); ok {
		return cached, pad
	}

	w, h := crop.Dx()+2*pad, crop.Dy()+2*pad
	rt := c.pool.Acquire(w, h)
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(pad), float64(pad))
	rt.DrawImage(sub, &op)

	result := applyFilters(chain, rt, &c.pool)
	cached := ebiten.NewImage(w, h)
	cached.DrawImage(result.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image), nil)
	c.pool.Release(result)
	if result != rt {
		c.pool.Release(rt)
	}
	c.cache.put(key, cached)
	return cached, pad
}

// drawTint covers the viewport with the tint color.
func (c *Compositor) drawTint(dst *ebiten.Image, o OriginState, t *Tint) {
	if o.Width <= 0 || o.Height <= 0 {
		return
	}
	op := &c.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.GeoM.Scale(o.Width, o.Height)
	a := clamp01(t.Color.A * t.Opacity)
	op.ColorScale.Scale(float32(t.Color.R*a), float32(t.Color.G*a), float32(t.Color.B*a), float32(a))
	op.Blend = t.Blend.EbitenBlend()
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(ensureWhitePixel(), op)
}

// Dispose releases cached and pooled images.
func (c *Compositor) Dispose() {
	c.cache.purge()
	c.pool.Drain()
}

// setGeoM loads an affine [a, b, c, d, tx, ty] into g.
func setGeoM(g *ebiten.GeoM, m [6]float64) {
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
}
