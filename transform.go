package launcher

import "math"

// Affine matrices use the layout [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// translateMatrix returns a translation by (x, y).
func translateMatrix(x, y float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, x, y}
}

// scaleMatrix returns a scale by (sx, sy) about the origin.
func scaleMatrix(sx, sy float64) [6]float64 {
	return [6]float64{sx, 0, 0, sy, 0, 0}
}

// rotateMatrix returns a rotation by deg degrees, clockwise on a Y-down
// screen.
func rotateMatrix(deg float64) [6]float64 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return [6]float64{cos, sin, -sin, cos, 0, 0}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// isIdentity reports whether m is the identity within a small tolerance.
func isIdentity(m [6]float64) bool {
	for i, v := range m {
		if math.Abs(v-identityTransform[i]) > 1e-12 {
			return false
		}
	}
	return true
}
