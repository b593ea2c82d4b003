package launcher

// Norm is a position relative to the origin in normalized units. X grows to
// the right and Y grows upward. Values are conventionally in [-1, 1] but are
// never clamped.
type Norm struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// PixelPoint is a position in the viewport's local pixel space: top-left
// origin, Y growing downward.
type PixelPoint struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// ToPixel maps a normalized position to viewport pixels.
func ToPixel(o OriginState, n Norm) PixelPoint {
	return PixelPoint{
		Left: o.CenterX + n.X*o.Scale,
		Top:  o.CenterY - n.Y*o.Scale, // screen Y is inverted
	}
}

// ToNorm maps a viewport pixel position back to normalized units. It is the
// inverse of ToPixel for any state with Scale > 0.
func ToNorm(o OriginState, p PixelPoint) Norm {
	return Norm{
		X: (p.Left - o.CenterX) / o.Scale,
		Y: (o.CenterY - p.Top) / o.Scale,
	}
}

// ToPixel is shorthand for ToPixel(o, n).
func (o OriginState) ToPixel(n Norm) PixelPoint { return ToPixel(o, n) }

// ToNorm is shorthand for ToNorm(o, p).
func (o OriginState) ToNorm(p PixelPoint) Norm { return ToNorm(o, p) }
