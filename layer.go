package launcher

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// EffectConfig describes the optional visual effects of one layer. Every
// field is independently optional: a nil pointer or an empty string means
// "no contribution", never zero.
type EffectConfig struct {
	BlurPx       *float64 `json:"blurPx,omitempty" toml:"blur_px"`
	Brightness   *float64 `json:"brightness,omitempty" toml:"brightness"`     // 0..2
	Contrast     *float64 `json:"contrast,omitempty" toml:"contrast"`         // 0..2
	Grayscale    *float64 `json:"grayscale,omitempty" toml:"grayscale"`       // 0..1
	Sepia        *float64 `json:"sepia,omitempty" toml:"sepia"`               // 0..1
	Saturate     *float64 `json:"saturate,omitempty" toml:"saturate"`         // 0..3
	HueRotateDeg *float64 `json:"hueRotateDeg,omitempty" toml:"hue_rotate_deg"` // degrees
	Opacity      *float64 `json:"opacity,omitempty" toml:"opacity"`           // 0..1
	BlendMode    string   `json:"blendMode,omitempty" toml:"blend_mode"`
	TintColor    string   `json:"tintColor,omitempty" toml:"tint_color"`
	TintOpacity  *float64 `json:"tintOpacity,omitempty" toml:"tint_opacity"` // 0..1
	Scale        *float64 `json:"scale,omitempty" toml:"scale"`
	ScalePct     *float64 `json:"scalePct,omitempty" toml:"scale_pct"` // 100 = natural size
	RotateDeg    *float64 `json:"rotateDeg,omitempty" toml:"rotate_deg"`
	TranslateX   string   `json:"translateX,omitempty" toml:"translate_x"` // "12px", "-2%"
	TranslateY   string   `json:"translateY,omitempty" toml:"translate_y"`
	// PosPct offsets the layer from the origin in percent of the origin
	// scale. X right-positive, Y up-positive.
	PosPct *Vec2 `json:"posPct,omitempty" toml:"pos_pct"`
}

// Clone returns a deep copy of e.
func (e EffectConfig) Clone() EffectConfig {
	c := e
	c.BlurPx = cloneFloat(e.BlurPx)
	c.Brightness = cloneFloat(e.Brightness)
	c.Contrast = cloneFloat(e.Contrast)
	c.Grayscale = cloneFloat(e.Grayscale)
	c.Sepia = cloneFloat(e.Sepia)
	c.Saturate = cloneFloat(e.Saturate)
	c.HueRotateDeg = cloneFloat(e.HueRotateDeg)
	c.Opacity = cloneFloat(e.Opacity)
	c.TintOpacity = cloneFloat(e.TintOpacity)
	c.Scale = cloneFloat(e.Scale)
	c.ScalePct = cloneFloat(e.ScalePct)
	c.RotateDeg = cloneFloat(e.RotateDeg)
	if e.PosPct != nil {
		p := *e.PosPct
		c.PosPct = &p
	}
	return c
}

// RawLayer is one layer entry as supplied by a caller or a manifest, before
// defaults are applied.
type RawLayer struct {
	Src     string  `json:"src,omitempty" toml:"src"`
	Alt     string  `json:"alt,omitempty" toml:"alt"`
	Visible *bool   `json:"visible,omitempty" toml:"visible"`
	Fit     *Fit    `json:"fit,omitempty" toml:"fit"`
	// Opacity is the legacy shorthand for Effects.Opacity.
	Opacity *float64 `json:"opacity,omitempty" toml:"opacity"`
	// ScalePct and PosPct are legacy shorthands for the same effect fields.
	ScalePct *float64      `json:"scalePct,omitempty" toml:"scale_pct"`
	PosPct   *Vec2         `json:"posPct,omitempty" toml:"pos_pct"`
	Effects  *EffectConfig `json:"effects,omitempty" toml:"effects"`
}

// LayerConfig is the canonical form of a layer after resolution.
type LayerConfig struct {
	Src     string
	Alt     string
	Visible bool
	Fit     Fit
	Effects EffectConfig
}

// Paints reports whether the layer produces any output.
func (l LayerConfig) Paints() bool {
	return l.Visible && l.Src != ""
}

// PathResolver resolves layer asset paths against a deployment base path.
type PathResolver struct {
	// Base is a URL or directory prefix. Empty means "/".
	Base string
}

// Resolve returns p resolved against the base. Absolute http(s) URLs pass
// through; everything else is joined with exactly one "/" separator.
func (r PathResolver) Resolve(p string) string {
	if p == "" {
		return ""
	}
	if isAbsoluteURL(p) {
		return p
	}
	base := r.Base
	if base == "" {
		base = "/"
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

func isAbsoluteURL(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ResolveLayer normalizes raw into a LayerConfig. Src is resolved through
// paths. Problems (unknown fit) are reported to logger and replaced by
// defaults; resolution never fails.
func ResolveLayer(raw RawLayer, paths PathResolver, logger *log.Logger) LayerConfig {
	cfg := LayerConfig{
		Src:     paths.Resolve(raw.Src),
		Alt:     raw.Alt,
		Visible: raw.Src != "",
		Fit:     FitNone,
	}
	if raw.Visible != nil {
		cfg.Visible = *raw.Visible
	}
	if raw.Fit != nil {
		if raw.Fit.Valid() {
			cfg.Fit = *raw.Fit
		} else {
			orDefault(logger).Warn("unknown fit, using none", "src", raw.Src, "fit", string(*raw.Fit))
		}
	}
	if raw.Effects != nil {
		cfg.Effects = raw.Effects.Clone()
	}
	// Explicit effect fields win over legacy shorthands.
	if cfg.Effects.Opacity == nil {
		cfg.Effects.Opacity = cloneFloat(raw.Opacity)
	}
	if cfg.Effects.ScalePct == nil {
		cfg.Effects.ScalePct = cloneFloat(raw.ScalePct)
	}
	if cfg.Effects.PosPct == nil && raw.PosPct != nil {
		p := *raw.PosPct
		cfg.Effects.PosPct = &p
	}
	return cfg
}

// ResolveLayers resolves a whole sequence, preserving order. Nil entries
// resolve to invisible layers so indices stay stable.
func ResolveLayers(raws []*RawLayer, paths PathResolver, logger *log.Logger) []LayerConfig {
	out := make([]LayerConfig, len(raws))
	for i, raw := range raws {
		if raw == nil {
			out[i] = LayerConfig{Fit: FitNone}
			continue
		}
		out[i] = ResolveLayer(*raw, paths, logger)
		if out[i].Alt == "" {
			out[i].Alt = fmt.Sprintf("bg-layer-%d", i+1)
		}
	}
	return out
}

// Float returns a pointer to v, for building configs in code.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for building configs in code.
func Bool(v bool) *bool { return &v }

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
