package launcher

import "math"

// ColorMatrix is a 4x5 color matrix in row-major order:
// [R_r, R_g, R_b, R_a, R_offset, G_r, ...]. It operates on straight
// (non-premultiplied) RGBA in [0, 1].
type ColorMatrix [20]float64

// IdentityColorMatrix leaves colors unchanged.
var IdentityColorMatrix = ColorMatrix{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// rgbMatrix builds a matrix from a 3x3 RGB block, leaving alpha alone.
func rgbMatrix(m [9]float64, offset float64) ColorMatrix {
	return ColorMatrix{
		m[0], m[1], m[2], 0, offset,
		m[3], m[4], m[5], 0, offset,
		m[6], m[7], m[8], 0, offset,
		0, 0, 0, 1, 0,
	}
}

// BrightnessMatrix multiplies RGB by b. 1 is unchanged, 0 is black.
func BrightnessMatrix(b float64) ColorMatrix {
	return rgbMatrix([9]float64{b, 0, 0, 0, b, 0, 0, 0, b}, 0)
}

// ContrastMatrix scales RGB around mid-gray. 1 is unchanged, 0 is gray.
func ContrastMatrix(c float64) ColorMatrix {
	return rgbMatrix([9]float64{c, 0, 0, 0, c, 0, 0, 0, c}, (1-c)/2)
}

// GrayscaleMatrix converts toward luminance. g is clamped to [0, 1].
func GrayscaleMatrix(g float64) ColorMatrix {
	a := 1 - clamp01(g)
	return rgbMatrix([9]float64{
		0.2126 + 0.7874*a, 0.7152 - 0.7152*a, 0.0722 - 0.0722*a,
		0.2126 - 0.2126*a, 0.7152 + 0.2848*a, 0.0722 - 0.0722*a,
		0.2126 - 0.2126*a, 0.7152 - 0.7152*a, 0.0722 + 0.9278*a,
	}, 0)
}

// SepiaMatrix tones toward sepia. s is clamped to [0, 1].
func SepiaMatrix(s float64) ColorMatrix {
	a := 1 - clamp01(s)
	return rgbMatrix([9]float64{
		0.393 + 0.607*a, 0.769 - 0.769*a, 0.189 - 0.189*a,
		0.349 - 0.349*a, 0.686 + 0.314*a, 0.168 - 0.168*a,
		0.272 - 0.272*a, 0.534 - 0.534*a, 0.131 + 0.869*a,
	}, 0)
}

// SaturateMatrix scales saturation. 1 is unchanged, 0 is grayscale.
func SaturateMatrix(s float64) ColorMatrix {
	return rgbMatrix([9]float64{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s,
	}, 0)
}

// HueRotateMatrix rotates hue by deg degrees.
func HueRotateMatrix(deg float64) ColorMatrix {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return rgbMatrix([9]float64{
		0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928,
		0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283,
		0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072,
	}, 0)
}

// Apply transforms a straight-alpha color and clamps the result to [0, 1].
func (m ColorMatrix) Apply(r, g, b, a float64) (float64, float64, float64, float64) {
	nr := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
	ng := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
	nb := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
	na := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
	return clamp01(nr), clamp01(ng), clamp01(nb), clamp01(na)
}
