package launcher

import (
	"image"
	"image/color"
	"testing"
)

type decodedMap map[string]image.Image

func (m decodedMap) Decoded(src string) (image.Image, bool) {
	img, ok := m[src]
	return img, ok
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func assertPixel(t *testing.T, img *image.NRGBA, x, y int, want color.NRGBA) {
	t.Helper()
	got := img.NRGBAAt(x, y)
	near := func(a, b uint8) bool { return int(a)-int(b) <= 1 && int(b)-int(a) <= 1 }
	if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
		t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
	}
}

func TestBlendPixel(t *testing.T) {
	red := [4]float64{1, 0, 0, 1}
	halfBlue := [4]float64{0, 0, 0.5, 0.5}
	tests := []struct {
		name string
		mode BlendMode
		s, d [4]float64
		want [4]float64
	}{
		{"normal opaque", BlendNormal, red, halfBlue, red},
		{"normal half", BlendNormal, halfBlue, red, [4]float64{0.5, 0, 0.5, 1}},
		{"add clamps", BlendAdd, red, [4]float64{1, 1, 0, 1}, [4]float64{1, 1, 0, 1}},
		{"multiply", BlendMultiply, [4]float64{0.5, 0.5, 0.5, 1}, [4]float64{1, 0.5, 0, 1}, [4]float64{0.5, 0.25, 0, 1}},
		{"screen", BlendScreen, [4]float64{0.5, 0.5, 0.5, 1}, [4]float64{1, 0.5, 0, 1}, [4]float64{1, 0.75, 0.5, 1}},
		{"erase", BlendErase, halfBlue, red, [4]float64{0.5, 0, 0, 0.5}},
		{"transparent source", BlendNormal, [4]float64{}, red, red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := blendPixel(tt.mode, tt.s, tt.d)
			for i := range got {
				assertNear(t, "channel", got[i], tt.want[i])
			}
		})
	}
}

func TestBoxPass(t *testing.T) {
	// One line of five opaque white pixels.
	src := make([]float64, 5*4)
	for i := range src {
		src[i] = 1
	}
	dst := make([]float64, len(src))
	boxPass(src, dst, 5, 1, 1, 4, 20)

	want := []float64{2.0 / 3, 1, 1, 1, 2.0 / 3}
	for i, w := range want {
		assertNear(t, "alpha", dst[i*4+3], w)
	}
}

func TestBoxRadius(t *testing.T) {
	if boxRadius(0) != 0 {
		t.Error("zero sigma should not blur")
	}
	if boxRadius(0.1) != 1 {
		t.Errorf("small sigma = %d, want 1", boxRadius(0.1))
	}
	if r := boxRadius(10); r < 5 || r > 11 {
		t.Errorf("boxRadius(10) = %d", r)
	}
}

func TestRenderSoftwareBackground(t *testing.T) {
	plan := BuildPlan(NewOrigin(4, 2), nil)
	img := RenderSoftware(plan, decodedMap{}, SoftwareOptions{Background: Color{1, 0, 0, 1}})
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			assertPixel(t, img, x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
}

func TestRenderSoftwareEmptyViewport(t *testing.T) {
	img := RenderSoftware(BuildPlan(NewOrigin(0, 0), nil), decodedMap{}, SoftwareOptions{})
	if !img.Bounds().Empty() {
		t.Errorf("bounds = %v, want empty", img.Bounds())
	}
}

func TestRenderSoftwareLayers(t *testing.T) {
	fill := FitFill
	layers := ResolveLayers([]*RawLayer{
		{Src: "green.png", Fit: &fill},
		{Src: "missing.png", Fit: &fill},
	}, PathResolver{}, nil)
	images := decodedMap{"/green.png": solidImage(2, 2, color.NRGBA{0, 255, 0, 255})}

	img := RenderSoftware(BuildPlan(NewOrigin(4, 4), layers), images, SoftwareOptions{Background: Color{1, 0, 0, 1}})
	assertPixel(t, img, 1, 1, color.NRGBA{0, 255, 0, 255})
	assertPixel(t, img, 2, 2, color.NRGBA{0, 255, 0, 255})
}

func TestRenderSoftwareOpacity(t *testing.T) {
	fill := FitFill
	layers := ResolveLayers([]*RawLayer{
		{Src: "green.png", Fit: &fill, Opacity: Float(0.5)},
	}, PathResolver{}, nil)
	images := decodedMap{"/green.png": solidImage(2, 2, color.NRGBA{0, 255, 0, 255})}

	img := RenderSoftware(BuildPlan(NewOrigin(4, 4), layers), images, SoftwareOptions{Background: Color{1, 0, 0, 1}})
	assertPixel(t, img, 1, 1, color.NRGBA{128, 128, 0, 255})
}

func TestRenderSoftwareMarker(t *testing.T) {
	m := NewOriginMarker()
	img := RenderSoftware(BuildPlan(NewOrigin(20, 20), nil), decodedMap{}, SoftwareOptions{
		Background: Color{0, 0, 0, 1},
		Marker:     m,
	})
	// The pixel just off center is inside the fill radius.
	r := uint8(DefaultMarkerColor.R*255 + 0.5)
	assertPixel(t, img, 10, 10, color.NRGBA{r, 0x31, 0x31, 255})
	assertPixel(t, img, 0, 0, color.NRGBA{0, 0, 0, 255})
}

func TestRenderSoftwareGlow(t *testing.T) {
	img := RenderSoftware(BuildPlan(NewOrigin(40, 40), nil), decodedMap{}, SoftwareOptions{
		Background: Color{0, 0, 0, 1},
		Glow:       NewGlow(),
	})
	center := img.NRGBAAt(20, 20)
	corner := img.NRGBAAt(0, 0)
	if center.R == 0 {
		t.Error("glow should brighten the center")
	}
	if corner.R != 0 {
		t.Errorf("corner = %v, want untouched background", corner)
	}
}

func TestToAff3(t *testing.T) {
	m := [6]float64{1, 2, 3, 4, 5, 6}
	a := toAff3(m)
	// x' = a*x + c*y + tx
	if a[0] != 1 || a[1] != 3 || a[2] != 5 || a[3] != 2 || a[4] != 4 || a[5] != 6 {
		t.Errorf("toAff3 = %v", a)
	}
}
