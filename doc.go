// Package launcher renders a responsive launcher screen for Ebitengine: a
// stack of background image layers centered on a screen origin, with
// overlay widgets positioned in normalized coordinates around that origin.
//
// # Quick start
//
//	s := launcher.NewScreen(launcher.ScreenOptions{
//		BasePath: "/assets/",
//		Layers: []*launcher.RawLayer{
//			{Src: "sky.png"},
//			{Src: "logo.png", Effects: &launcher.EffectConfig{ScalePct: launcher.Float(40)}},
//		},
//	})
//	s.Overlay().Mount(launcher.NewSampleButton())
//	if err := launcher.Run(s, launcher.RunConfig{Title: "Launcher"}); err != nil {
//		log.Fatal(err)
//	}
//
// # Origin
//
// Every window size produces an [OriginState]: the center of the viewport and
// a scale equal to half its shorter side (never below 1). A zero or negative
// size yields a degenerate origin at (0, 0) with scale 1. [OriginModel]
// memoizes the computation so an unchanged size costs nothing.
//
// Normalized coordinates put (0, 0) at the origin with Y pointing up; one
// unit equals the scale in pixels. [ToPixel] and [ToNorm] convert between
// the two spaces:
//
//	p := launcher.ToPixel(o, launcher.Norm{X: 0.5, Y: 0.5})
//	// 800x600: p.Left == 550, p.Top == 150
//
// The screen owns an [OriginScope] and publishes the origin to it after each
// resize. Widgets read it with [OriginScope.Origin], which panics with
// [ErrMissingOriginScope] outside a live scope. Code holding only a
// context uses [WithOriginScope] and [OriginFromContext].
//
// # Layers
//
// Layers come from the inline list or from a JSON manifest:
//
//	{"layers": [{"src": "sky.png", "fit": "cover"}, {"src": "fx.png", "effects": {"blurPx": 4}}]}
//
// A manifest, once loaded, replaces the inline layers. While it loads the
// inline layers show; when it fails the list is empty. Changing the
// manifest path discards any response still in flight for the old one.
//
// [ResolveLayer] fills defaults: a layer is visible when it has a src, fit
// defaults to none and the legacy top-level opacity, scalePct and posPct
// fields move into the effects unless the effects already set them.
// Relative paths are joined to the base path by [PathResolver].
//
// Layers paint in list order, index 0 at the bottom. The background never
// receives input.
//
// # Effects
//
// [ComposeEffect] turns an [EffectConfig] into transform, filter, opacity,
// blend and tint values for one origin. Transforms start with a centering
// anchor, then the posPct offset, the base translate, rotation and scale.
// Filters apply in a fixed order: blur, brightness, contrast, grayscale,
// sepia, saturate, hue-rotate. The composed [Effect] also prints in CSS
// syntax, which the plan command uses.
//
// On screen, filters run through Kage color matrix shaders and a
// downscale blur. [RenderSoftware] paints the same plan on the CPU for
// headless snapshots.
//
// # Overlay
//
// [Overlay] is the mount point for widgets. It passes input through except
// where an interactive widget is hit. Widgets receive pointer enter, leave,
// down, up and click events. [Button] is a sample widget anchored to a
// normalized point.
//
// Input can be injected for automation with [Overlay.InjectClick] and
// [Overlay.InjectDrag], or scripted from JSON with [LoadScript].
//
// # Logging
//
// Warnings about failed assets and manifests go to a charmbracelet/log
// logger. [SetLogger] replaces the package default; most constructors also
// accept a logger directly.
package launcher
