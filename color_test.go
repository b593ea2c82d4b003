package launcher

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ffffff", Color{1, 1, 1, 1}, false},
		{"#000", Color{0, 0, 0, 1}, false},
		{"#FF0000", Color{1, 0, 0, 1}, false},
		{"#ff000080", Color{1, 0, 0, 128.0 / 255}, false},
		{"#f008", Color{1, 0, 0, 136.0 / 255}, false},
		{"rgb(255, 0, 0)", Color{1, 0, 0, 1}, false},
		{"rgba(0, 0, 255, 0.25)", Color{0, 0, 1, 0.25}, false},
		{"rgb(50% 0% 100%)", Color{0.5, 0, 1, 1}, false},
		{"rgba(300, 0, 0, 2)", Color{1, 0, 0, 1}, false},
		{"transparent", Color{}, false},
		{"  #FFF  ", Color{1, 1, 1, 1}, false},
		{"red", Color{}, true},
		{"#12", Color{}, true},
		{"#gggggg", Color{}, true},
		{"rgb(1, 2)", Color{}, true},
		{"rgb 1 2 3", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		assertNear(t, tt.in+" R", got.R, tt.want.R)
		assertNear(t, tt.in+" G", got.G, tt.want.G)
		assertNear(t, tt.in+" B", got.B, tt.want.B)
		assertNear(t, tt.in+" A", got.A, tt.want.A)
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	c := Color{1, 0.5, 0, 0.5}.toRGBA()
	if c.R != 128 || c.G != 64 || c.B != 0 || c.A != 128 {
		t.Errorf("toRGBA() = %+v", c)
	}
}

func TestColorMatrices(t *testing.T) {
	r, g, b := 0.8, 0.4, 0.2
	tests := []struct {
		name       string
		m          ColorMatrix
		wr, wg, wb float64
	}{
		{"identity", IdentityColorMatrix, r, g, b},
		{"brightness 0.5", BrightnessMatrix(0.5), 0.4, 0.2, 0.1},
		{"brightness 2 clamps", BrightnessMatrix(2), 1, 0.8, 0.4},
		{"contrast 0", ContrastMatrix(0), 0.5, 0.5, 0.5},
		{"contrast 1", ContrastMatrix(1), r, g, b},
		{"grayscale 0", GrayscaleMatrix(0), r, g, b},
		{"sepia 0", SepiaMatrix(0), r, g, b},
		{"saturate 1", SaturateMatrix(1), r, g, b},
		{"hue-rotate 0", HueRotateMatrix(0), r, g, b},
		{"hue-rotate 360", HueRotateMatrix(360), r, g, b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gr, gg, gb, ga := tt.m.Apply(r, g, b, 0.7)
			const eps = 1e-6
			if abs(gr-tt.wr) > eps || abs(gg-tt.wg) > eps || abs(gb-tt.wb) > eps {
				t.Errorf("Apply = (%v, %v, %v), want (%v, %v, %v)", gr, gg, gb, tt.wr, tt.wg, tt.wb)
			}
			if abs(ga-0.7) > eps {
				t.Errorf("alpha = %v, want 0.7", ga)
			}
		})
	}
}

func TestGrayscaleFull(t *testing.T) {
	r, g, b, _ := GrayscaleMatrix(1).Apply(0.8, 0.4, 0.2, 1)
	lum := 0.2126*0.8 + 0.7152*0.4 + 0.0722*0.2
	assertNear(t, "r", r, lum)
	assertNear(t, "g", g, lum)
	assertNear(t, "b", b, lum)

	// Amounts above 1 clamp.
	if GrayscaleMatrix(3) != GrayscaleMatrix(1) {
		t.Error("grayscale amount should clamp to 1")
	}
}

func TestBlendModeNames(t *testing.T) {
	tests := []struct {
		in   string
		want BlendMode
		ok   bool
	}{
		{"", BlendNormal, true},
		{"normal", BlendNormal, true},
		{"Multiply", BlendMultiply, true},
		{" screen ", BlendScreen, true},
		{"plus-lighter", BlendAdd, true},
		{"destination-out", BlendErase, true},
		{"overlay", BlendNormal, false},
	}
	for _, tt := range tests {
		got, ok := ParseBlendMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseBlendMode(%q) = %v, %v", tt.in, got, ok)
		}
	}
	for _, m := range []BlendMode{BlendNormal, BlendAdd, BlendMultiply, BlendScreen, BlendErase} {
		back, ok := ParseBlendMode(m.String())
		if !ok || back != m {
			t.Errorf("%v does not round-trip through its name", m)
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
