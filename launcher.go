package launcher

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA for ebiten fills.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for percentages, offsets and sizes.
type Vec2 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendErase                     // destination-out (punch transparent holes)
)

// blendModeNames maps mix-blend-mode style names onto the supported modes.
var blendModeNames = map[string]BlendMode{
	"":                BlendNormal,
	"normal":          BlendNormal,
	"plus-lighter":    BlendAdd,
	"lighter":         BlendAdd,
	"add":             BlendAdd,
	"multiply":        BlendMultiply,
	"screen":          BlendScreen,
	"destination-out": BlendErase,
	"erase":           BlendErase,
}

// ParseBlendMode maps a blend mode name to a BlendMode. Unknown names report
// false and fall back to BlendNormal.
func ParseBlendMode(name string) (BlendMode, bool) {
	m, ok := blendModeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return BlendNormal, false
	}
	return m, true
}

// String returns the canonical name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendAdd:
		return "plus-lighter"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendErase:
		return "destination-out"
	default:
		return "normal"
	}
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	default:
		return ebiten.BlendSourceOver
	}
}

// Fit selects how a layer image is sized inside its box, following
// object-fit semantics.
type Fit string

const (
	FitFill    Fit = "fill"    // stretch to the container box
	FitContain Fit = "contain" // scale uniformly to fit inside the container
	FitCover   Fit = "cover"   // scale uniformly to cover the container
	FitNone    Fit = "none"    // natural size, centered on the origin
)

// Valid reports whether f is one of the known fit modes.
func (f Fit) Valid() bool {
	switch f {
	case FitFill, FitContain, FitCover, FitNone:
		return true
	}
	return false
}

// whitePixel is a 1x1 white image used for solid color rectangles. Created
// lazily so importing the package never touches the graphics driver.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
