package launcher

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement used by overlay widgets.
type Font interface {
	MeasureString(s string) (width, height float64)
	LineHeight() float64
}

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("launcher: parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 { return f.lh }

// Face returns the underlying GoTextFace.
func (f *TTFFont) Face() *text.GoTextFace { return f.face }

// Draw renders s with its top-left at (x, y), scaled by scale about the
// center of its bounds.
func (f *TTFFont) Draw(dst *ebiten.Image, s string, x, y, scale float64, c Color) {
	w, h := f.MeasureString(s)
	op := &text.DrawOptions{}
	op.LineSpacing = f.lh
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x+w/2, y+h/2)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	text.Draw(dst, s, f.face, op)
}

// defaultFontSize matches a small UI label.
const defaultFontSize = 14

var defaultFont *TTFFont

// DefaultFont returns the built-in Go Regular face at the default size.
func DefaultFont() *TTFFont {
	if defaultFont == nil {
		f, err := LoadTTFFont(goregular.TTF, defaultFontSize)
		if err != nil {
			panic(err)
		}
		defaultFont = f
	}
	return defaultFont
}
