package launcher

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestPathResolver(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"", "bg.png", "/bg.png"},
		{"/", "/bg.png", "/bg.png"},
		{"/app/", "bg.png", "/app/bg.png"},
		{"/app", "//layers/bg.png", "/app/layers/bg.png"},
		{"https://cdn.example.com/a/", "bg.png", "https://cdn.example.com/a/bg.png"},
		{"/app", "https://other.example.com/x.png", "https://other.example.com/x.png"},
		{"/app", "HTTP://other.example.com/x.png", "HTTP://other.example.com/x.png"},
		{"/app", "", ""},
	}
	for _, tt := range tests {
		got := PathResolver{Base: tt.base}.Resolve(tt.path)
		if got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestResolveLayerDefaults(t *testing.T) {
	cfg := ResolveLayer(RawLayer{Src: "bg.png"}, PathResolver{}, nil)
	if cfg.Src != "/bg.png" {
		t.Errorf("Src = %q", cfg.Src)
	}
	if !cfg.Visible {
		t.Error("layer with src should default to visible")
	}
	if cfg.Fit != FitNone {
		t.Errorf("Fit = %q, want none", cfg.Fit)
	}
	if cfg.Effects.Opacity != nil {
		t.Error("absent opacity should stay absent")
	}

	empty := ResolveLayer(RawLayer{}, PathResolver{}, nil)
	if empty.Visible || empty.Paints() {
		t.Error("layer without src should not paint")
	}

	hidden := ResolveLayer(RawLayer{Src: "a.png", Visible: Bool(false)}, PathResolver{}, nil)
	if hidden.Paints() {
		t.Error("explicitly hidden layer should not paint")
	}
}

func TestResolveLayerLegacyShorthands(t *testing.T) {
	raw := RawLayer{
		Src:      "a.png",
		Opacity:  Float(0.4),
		ScalePct: Float(150),
		PosPct:   &Vec2{X: 10, Y: -5},
	}
	cfg := ResolveLayer(raw, PathResolver{}, nil)
	if cfg.Effects.Opacity == nil || *cfg.Effects.Opacity != 0.4 {
		t.Errorf("legacy opacity not applied: %v", cfg.Effects.Opacity)
	}
	if cfg.Effects.ScalePct == nil || *cfg.Effects.ScalePct != 150 {
		t.Errorf("legacy scalePct not applied: %v", cfg.Effects.ScalePct)
	}
	if cfg.Effects.PosPct == nil || *cfg.Effects.PosPct != (Vec2{10, -5}) {
		t.Errorf("legacy posPct not applied: %v", cfg.Effects.PosPct)
	}

	// The resolved config must not alias the raw one.
	*raw.Opacity = 1
	if *cfg.Effects.Opacity != 0.4 {
		t.Error("resolved opacity aliases raw layer")
	}
}

func TestResolveLayerExplicitEffectsWin(t *testing.T) {
	raw := RawLayer{
		Src:     "a.png",
		Opacity: Float(0.4),
		Effects: &EffectConfig{Opacity: Float(0.9)},
	}
	cfg := ResolveLayer(raw, PathResolver{}, nil)
	if *cfg.Effects.Opacity != 0.9 {
		t.Errorf("Opacity = %v, want explicit 0.9", *cfg.Effects.Opacity)
	}
	if cfg.Effects.Opacity == raw.Effects.Opacity {
		t.Error("effects were not cloned")
	}
}

func TestResolveLayerUnknownFit(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	fit := Fit("stretch")
	cfg := ResolveLayer(RawLayer{Src: "a.png", Fit: &fit}, PathResolver{}, logger)
	if cfg.Fit != FitNone {
		t.Errorf("Fit = %q, want none", cfg.Fit)
	}
	if !strings.Contains(buf.String(), "unknown fit") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestResolveLayersAltAndNil(t *testing.T) {
	layers := ResolveLayers([]*RawLayer{
		{Src: "a.png"},
		nil,
		{Src: "c.png", Alt: "clouds"},
	}, PathResolver{}, nil)
	if len(layers) != 3 {
		t.Fatalf("len = %d, want 3", len(layers))
	}
	if layers[0].Alt != "bg-layer-1" {
		t.Errorf("Alt[0] = %q", layers[0].Alt)
	}
	if layers[1].Paints() {
		t.Error("nil entry should not paint")
	}
	if layers[2].Alt != "clouds" {
		t.Errorf("Alt[2] = %q", layers[2].Alt)
	}
}
