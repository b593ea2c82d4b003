package launcher

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Button is a simple overlay widget anchored at a normalized point. The
// button is centered on the mapped pixel position and follows the origin
// as the screen resizes.
type Button struct {
	Norm  Norm
	Label string
	// Font defaults to DefaultFont.
	Font *TTFFont
	// Size overrides the measured size when both components are positive.
	Size    Vec2
	Padding Vec2
	Radius  float64

	Color      Color
	HoverColor Color
	TextColor  Color

	// OnClick is called for a completed click. When nil the click is logged.
	OnClick func(b *Button, e PointerEvent)
	Logger  *log.Logger

	scope   *OriginScope
	hovered bool
	pressed bool
	press   *floatTween

	mask    *ebiten.Image
	maskKey [3]int
	imgOp   ebiten.DrawImageOptions
}

// Sample button defaults.
var (
	SampleButtonNorm  = Norm{X: 0.25, Y: 0.1}
	SampleButtonLabel = "Sample Btn"
)

// NewButton creates a button with the default look.
func NewButton(label string, n Norm) *Button {
	return &Button{
		Norm:       n,
		Label:      label,
		Padding:    Vec2{12, 4},
		Radius:     16,
		Color:      Color{0xfd / 255.0, 0xe0 / 255.0, 0x47 / 255.0, 1},
		HoverColor: Color{0xfe / 255.0, 0xf0 / 255.0, 0x8a / 255.0, 1},
		TextColor:  Color{0.07, 0.09, 0.15, 1},
		press:      newFloatTween(1, 0.08, ease.OutQuad),
	}
}

// NewSampleButton returns the sample button at its default position.
func NewSampleButton() *Button {
	return NewButton(SampleButtonLabel, SampleButtonNorm)
}

// Mount implements Widget.
func (b *Button) Mount(scope *OriginScope) {
	b.scope = scope
	if b.press == nil {
		b.press = newFloatTween(1, 0.08, ease.OutQuad)
	}
}

// Unmount implements Widget.
func (b *Button) Unmount() {
	b.scope = nil
	b.hovered, b.pressed = false, false
	if b.mask != nil {
		b.mask.Deallocate()
		b.mask = nil
	}
}

// Interactive implements Widget. Buttons always take input.
func (b *Button) Interactive() bool { return true }

// Hovered reports whether a pointer is over the button.
func (b *Button) Hovered() bool { return b.hovered }

// Pressed reports whether the button is held down.
func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) font() *TTFFont {
	if b.Font != nil {
		return b.Font
	}
	return DefaultFont()
}

// Extent returns the button size in pixels.
func (b *Button) Extent() Vec2 {
	if b.Size.X > 0 && b.Size.Y > 0 {
		return b.Size
	}
	w, h := b.font().MeasureString(b.Label)
	return Vec2{math.Ceil(w + 2*b.Padding.X), math.Ceil(h + 2*b.Padding.Y)}
}

// Bounds returns the button rectangle in viewport pixels. It panics with
// ErrMissingOriginScope when the button is not mounted.
func (b *Button) Bounds() Rect {
	p := ToPixel(b.scope.Origin(), b.Norm)
	e := b.Extent()
	return Rect{X: p.Left - e.X/2, Y: p.Top - e.Y/2, Width: e.X, Height: e.Y}
}

// HitTest implements Widget.
func (b *Button) HitTest(x, y float64) bool {
	if !b.scope.Active() {
		return false
	}
	return b.Bounds().Contains(x, y)
}

// HandlePointer implements PointerTarget.
func (b *Button) HandlePointer(e PointerEvent) {
	switch e.Type {
	case EventPointerEnter:
		b.hovered = true
	case EventPointerLeave:
		b.hovered = false
		b.setPressed(false)
	case EventPointerDown:
		b.setPressed(true)
	case EventPointerUp:
		b.setPressed(false)
	case EventClick:
		b.click(e)
	}
}

func (b *Button) setPressed(v bool) {
	b.pressed = v
	if v {
		b.press.Retarget(0.95)
	} else {
		b.press.Retarget(1)
	}
}

func (b *Button) click(e PointerEvent) {
	if b.OnClick != nil {
		b.OnClick(b, e)
		return
	}
	orDefault(b.Logger).Info("button clicked", "label", b.Label, "x", b.Norm.X, "y", b.Norm.Y)
}

// Update implements Widget.
func (b *Button) Update(dt float32) {
	b.press.Update(dt)
}

// Draw implements Widget.
func (b *Button) Draw(dst *ebiten.Image) {
	if !b.scope.Active() {
		return
	}
	r := b.Bounds()
	w, h := int(r.Width), int(r.Height)
	if w <= 0 || h <= 0 {
		return
	}
	key := [3]int{w, h, int(b.Radius)}
	if b.mask == nil || b.maskKey != key {
		if b.mask != nil {
			b.mask.Deallocate()
		}
		b.mask = generateRoundedRect(w, h, b.Radius)
		b.maskKey = key
	}

	s := b.press.Value()
	c := b.Color
	if b.hovered {
		c = b.HoverColor
	}
	op := &b.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.GeoM.Translate(-r.Width/2, -r.Height/2)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(math.Round(r.X+r.Width/2), math.Round(r.Y+r.Height/2))
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(b.mask, op)

	if b.Label == "" {
		return
	}
	f := b.font()
	tw, th := f.MeasureString(b.Label)
	f.Draw(dst, b.Label, r.X+(r.Width-tw)/2, r.Y+(r.Height-th)/2, s, b.TextColor)
}

// generateRoundedRect creates a premultiplied white rounded rectangle mask.
// The corner radius is clamped to half the shorter side.
func generateRoundedRect(w, h int, radius float64) *ebiten.Image {
	radius = math.Max(0, math.Min(radius, float64(min(w, h))/2))
	img := ebiten.NewImage(w, h)
	pix := make([]byte, w*h*4)
	fw, fh := float64(w), float64(h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			cx := math.Max(radius, math.Min(px, fw-radius))
			cy := math.Max(radius, math.Min(py, fh-radius))
			d := math.Hypot(px-cx, py-cy)
			a := uint8(clamp01(radius+0.5-d)*255 + 0.5)
			if radius == 0 {
				a = 255
			}
			off := (y*w + x) * 4
			pix[off+0], pix[off+1], pix[off+2], pix[off+3] = a, a, a, a
		}
	}
	img.WritePixels(pix)
	return img
}
