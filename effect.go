package launcher

import (
	"fmt"
	"strconv"
	"strings"
)

// LengthUnit is the unit of a translate length.
type LengthUnit uint8

const (
	UnitPx      LengthUnit = iota // pixels in the layer box
	UnitPercent                   // percent of the layer box along the same axis
)

// Length is a translate distance, either in pixels or in percent of the
// layer box.
type Length struct {
	Value float64
	Unit  LengthUnit
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// Pct returns a percent length.
func Pct(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// ParseLength parses "12px", "-3%", "0" or a bare number (pixels).
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	unit := UnitPx
	switch {
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "%"):
		s = strings.TrimSuffix(s, "%")
		unit = UnitPercent
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Length{}, fmt.Errorf("parse length %q: %w", s, err)
	}
	return Length{Value: v, Unit: unit}, nil
}

// Resolve converts the length to pixels for an axis of the given size.
func (l Length) Resolve(size float64) float64 {
	if l.Unit == UnitPercent {
		return l.Value / 100 * size
	}
	return l.Value
}

func (l Length) String() string {
	if l.Unit == UnitPercent {
		return formatNum(l.Value) + "%"
	}
	return formatNum(l.Value) + "px"
}

// TransformKind identifies a transform step.
type TransformKind uint8

const (
	TransformTranslate TransformKind = iota
	TransformRotate
	TransformScale
)

// TransformOp is one step of a layer transform. Steps apply in list order,
// the first one outermost, as in a CSS transform list.
type TransformOp struct {
	Kind TransformKind
	X, Y Length  // translate
	Deg  float64 // rotate, clockwise
	S    float64 // uniform scale
}

func (op TransformOp) String() string {
	switch op.Kind {
	case TransformRotate:
		return "rotate(" + formatNum(op.Deg) + "deg)"
	case TransformScale:
		return "scale(" + formatNum(op.S) + ")"
	default:
		return "translate(" + op.X.String() + ", " + op.Y.String() + ")"
	}
}

// matrix resolves the op against a layer box of size (w, h).
func (op TransformOp) matrix(w, h float64) [6]float64 {
	switch op.Kind {
	case TransformRotate:
		return rotateMatrix(op.Deg)
	case TransformScale:
		return scaleMatrix(op.S, op.S)
	default:
		return translateMatrix(op.X.Resolve(w), op.Y.Resolve(h))
	}
}

// anchorOp centers the layer box on its left/top position. Every layer
// transform starts with it.
var anchorOp = TransformOp{Kind: TransformTranslate, X: Pct(-50), Y: Pct(-50)}

// FilterKind identifies a filter function. The numeric order is the
// canonical application order.
type FilterKind uint8

const (
	FilterBlur FilterKind = iota
	FilterBrightness
	FilterContrast
	FilterGrayscale
	FilterSepia
	FilterSaturate
	FilterHueRotate
)

var filterNames = [...]string{"blur", "brightness", "contrast", "grayscale", "sepia", "saturate", "hue-rotate"}

// FilterOp is one filter function with its amount.
type FilterOp struct {
	Kind   FilterKind
	Amount float64
}

func (f FilterOp) String() string {
	v := formatNum(f.Amount)
	switch f.Kind {
	case FilterBlur:
		v += "px"
	case FilterHueRotate:
		v += "deg"
	}
	return filterNames[f.Kind] + "(" + v + ")"
}

// Matrix returns the color matrix of a non-blur filter. Blur has no matrix
// and returns the identity.
func (f FilterOp) Matrix() ColorMatrix {
	switch f.Kind {
	case FilterBrightness:
		return BrightnessMatrix(f.Amount)
	case FilterContrast:
		return ContrastMatrix(f.Amount)
	case FilterGrayscale:
		return GrayscaleMatrix(f.Amount)
	case FilterSepia:
		return SepiaMatrix(f.Amount)
	case FilterSaturate:
		return SaturateMatrix(f.Amount)
	case FilterHueRotate:
		return HueRotateMatrix(f.Amount)
	default:
		return IdentityColorMatrix
	}
}

// Tint is a solid color overlay drawn over the whole viewport above its
// layer, sharing the layer's blend mode.
type Tint struct {
	Raw     string
	Color   Color
	Opacity float64
	Blend   BlendMode
	// Err is set when Raw could not be parsed; the tint is then skipped.
	Err error
}

// Effect is the composed visual style of one layer.
type Effect struct {
	Transform []TransformOp
	Filters   []FilterOp
	// Opacity is nil when the layer keeps its natural (opaque) alpha.
	Opacity *float64
	// BlendName is the configured blend mode name, empty when unset.
	BlendName string
	Blend     BlendMode
	// BlendKnown is false when BlendName is not a supported mode; Blend is
	// then BlendNormal.
	BlendKnown bool
	Tint       *Tint
	// TranslateErr records an unparsable TranslateX/TranslateY; the base
	// translation is skipped in that case.
	TranslateErr error
}

// ComposeEffect combines a layer's effect configuration with the current
// origin into a single style. It is pure: the same inputs always produce an
// equal Effect.
//
// Transform order: centering anchor, origin offset (PosPct), base translate
// (TranslateX/Y), rotation, scale. Filter order: blur, brightness,
// contrast, grayscale, sepia, saturate, hue-rotate.
func ComposeEffect(e EffectConfig, o OriginState) Effect {
	out := Effect{
		Transform:  []TransformOp{anchorOp},
		Opacity:    cloneFloat(e.Opacity),
		BlendName:  e.BlendMode,
		BlendKnown: true,
	}

	if e.PosPct != nil {
		dx := e.PosPct.X / 100 * o.Scale
		dy := 0 - e.PosPct.Y/100*o.Scale // normalized Y is up, screen Y is down
		if dx != 0 || dy != 0 {
			out.Transform = append(out.Transform, TransformOp{Kind: TransformTranslate, X: Px(dx), Y: Px(dy)})
		}
	}

	if e.TranslateX != "" || e.TranslateY != "" {
		tx, errX := parseOptionalLength(e.TranslateX)
		ty, errY := parseOptionalLength(e.TranslateY)
		switch {
		case errX != nil:
			out.TranslateErr = errX
		case errY != nil:
			out.TranslateErr = errY
		case tx.Value != 0 || ty.Value != 0:
			out.Transform = append(out.Transform, TransformOp{Kind: TransformTranslate, X: tx, Y: ty})
		}
	}

	if e.RotateDeg != nil && *e.RotateDeg != 0 {
		out.Transform = append(out.Transform, TransformOp{Kind: TransformRotate, Deg: *e.RotateDeg})
	}

	scale := 1.0
	if e.ScalePct != nil {
		scale = *e.ScalePct / 100
	}
	if e.Scale != nil {
		scale *= *e.Scale
	}
	if scale != 1 {
		out.Transform = append(out.Transform, TransformOp{Kind: TransformScale, S: scale})
	}

	if e.BlurPx != nil && *e.BlurPx > 0 {
		out.Filters = append(out.Filters, FilterOp{Kind: FilterBlur, Amount: *e.BlurPx})
	}
	for _, f := range [...]struct {
		kind FilterKind
		v    *float64
	}{
		{FilterBrightness, e.Brightness},
		{FilterContrast, e.Contrast},
		{FilterGrayscale, e.Grayscale},
		{FilterSepia, e.Sepia},
		{FilterSaturate, e.Saturate},
		{FilterHueRotate, e.HueRotateDeg},
	} {
		if f.v != nil {
			out.Filters = append(out.Filters, FilterOp{Kind: f.kind, Amount: *f.v})
		}
	}

	if e.BlendMode != "" {
		out.Blend, out.BlendKnown = ParseBlendMode(e.BlendMode)
	}

	if e.TintColor != "" && e.TintOpacity != nil {
		c, err := ParseColor(e.TintColor)
		out.Tint = &Tint{Raw: e.TintColor, Color: c, Opacity: *e.TintOpacity, Blend: out.Blend, Err: err}
	}
	return out
}

func parseOptionalLength(s string) (Length, error) {
	if s == "" {
		return Px(0), nil
	}
	return ParseLength(s)
}

// IsIdentity reports whether the transform is only the centering anchor.
func (e Effect) IsIdentity() bool {
	return len(e.Transform) == 1 && e.Transform[0] == anchorOp
}

// TransformString renders the transform list in CSS syntax.
func (e Effect) TransformString() string {
	parts := make([]string, len(e.Transform))
	for i, op := range e.Transform {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

// FilterString renders the filter chain in CSS syntax. ok is false when no
// filter is set.
func (e Effect) FilterString() (s string, ok bool) {
	if len(e.Filters) == 0 {
		return "", false
	}
	parts := make([]string, len(e.Filters))
	for i, f := range e.Filters {
		parts[i] = f.String()
	}
	return strings.Join(parts, " "), true
}

// Alpha returns the layer opacity, 1 when unset.
func (e Effect) Alpha() float64 {
	if e.Opacity == nil {
		return 1
	}
	return clamp01(*e.Opacity)
}

// Matrix returns the affine that maps layer-box coordinates (0..w, 0..h) to
// viewport pixels. The box is positioned with its top-left at the center of
// the viewport and transformed about its own center, so the anchor op puts
// the box center on the origin.
func (e Effect) Matrix(o OriginState, w, h float64) [6]float64 {
	m := translateMatrix(o.Width/2+w/2, o.Height/2+h/2)
	for _, op := range e.Transform {
		m = multiplyAffine(m, op.matrix(w, h))
	}
	return multiplyAffine(m, translateMatrix(-w/2, -h/2))
}

// formatNum prints a number the shortest way that round-trips.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
