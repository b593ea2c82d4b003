package launcher

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a CSS-style color: "#rgb", "#rgba", "#rrggbb",
// "#rrggbbaa", "rgb(r, g, b)" or "rgba(r, g, b, a)" with 0..255 channels
// and a 0..1 alpha, or "transparent".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "transparent":
		return Color{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFuncColor(s)
	}
	return Color{}, fmt.Errorf("parse color %q: unsupported format", s)
}

func parseHexColor(s string) (Color, error) {
	alpha := 1.0
	digits := s[1:]
	switch len(digits) {
	case 4, 8:
		n := len(digits) / 4
		a, err := strconv.ParseUint(strings.Repeat(digits[len(digits)-n:], 3-n), 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		digits = digits[:len(digits)-n]
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func parseFuncColor(s string) (Color, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return Color{}, fmt.Errorf("parse color %q: missing parentheses", s)
	}
	parts := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("parse color %q: want 3 or 4 components", s)
	}
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		switch {
		case strings.HasSuffix(p, "%"):
			f /= 100
		case i < 3:
			f /= 255
		}
		v[i] = clamp01(f)
	}
	c := colorful.Color{R: v[0], G: v[1], B: v[2]}.Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: v[3]}, nil
}
