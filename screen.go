package launcher

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ScreenOptions configures a Screen.
type ScreenOptions struct {
	// BasePath prefixes every relative asset and manifest path.
	BasePath string
	// Manifest is the layer manifest path. While it loads, or when empty,
	// Layers are shown.
	Manifest string
	// Layers are the inline layers.
	Layers []*RawLayer
	// Background fills the screen below all layers.
	Background Color
	// Marker is the origin marker. Nil uses NewOriginMarker; a zero Size
	// hides it.
	Marker *OriginMarker
	// Glow is drawn beneath the layers when non-nil.
	Glow *Glow
	// ScreenshotDir receives F12 screenshots. Empty means "screenshots".
	ScreenshotDir string
	// Fetcher loads manifests and images. Nil reads relative paths from the
	// working directory and absolute URLs over HTTP.
	Fetcher Fetcher
	Logger  *log.Logger
}

// Screen is the launcher scene. It implements ebiten.Game: the window size
// reported to Layout drives the origin, which is published to overlay
// widgets and used to compose the background layers.
type Screen struct {
	resizeBroadcaster

	logger     *log.Logger
	background Color
	paths      PathResolver

	model    OriginModel
	scope    *OriginScope
	observer *SizeObserver

	manifest   *ManifestLoader
	assets     *AssetStore
	compositor *Compositor
	overlay    *Overlay
	marker     *OriginMarker
	glow       *Glow

	inline []*RawLayer
	layers []LayerConfig
	plan   Plan
	dirty  bool

	screenshotDir   string
	screenshotQueue []string

	script     *ScriptRunner
	scriptExit bool
	closed     bool
}

// NewScreen creates a screen. Its origin is degenerate until the first
// Layout call reports a size.
func NewScreen(opts ScreenOptions) *Screen {
	logger := orDefault(opts.Logger)
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher(os.DirFS("."))
	}
	s := &Screen{
		logger:        logger,
		background:    opts.Background,
		paths:         PathResolver{Base: opts.BasePath},
		scope:         NewOriginScope(NewOrigin(0, 0)),
		assets:        NewAssetStore(fetcher, logger),
		compositor:    NewCompositor(logger),
		marker:        opts.Marker,
		glow:          opts.Glow,
		inline:        opts.Layers,
		screenshotDir: opts.ScreenshotDir,
		dirty:         true,
	}
	if s.marker == nil {
		s.marker = NewOriginMarker()
	}
	if s.screenshotDir == "" {
		s.screenshotDir = "screenshots"
	}
	s.overlay = NewOverlay(s.scope)
	s.manifest = NewManifestLoader(fetcher, s.paths, logger)
	if opts.Manifest != "" {
		s.manifest.SetPath(opts.Manifest)
	}
	s.observer = NewSizeObserver(s, s.resized)
	return s
}

func (s *Screen) resized(width, height float64) {
	s.scope.Publish(s.model.Compute(width, height))
	s.dirty = true
}

// Resize reports a new container size, as ebiten does through Layout.
func (s *Screen) Resize(width, height float64) {
	if s.closed {
		return
	}
	s.Notify(width, height)
}

// Layout implements ebiten.Game. The logical size always equals the
// outside size so one layer pixel is one screen pixel.
func (s *Screen) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Update implements ebiten.Game.
func (s *Screen) Update() error {
	if s.closed {
		return nil
	}
	if s.script != nil {
		if s.scriptExit && s.script.Done() && len(s.screenshotQueue) == 0 {
			return ebiten.Termination
		}
		s.script.step(s)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		s.Screenshot("launcher")
	}
	s.sync()
	s.overlay.Update(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

// sync applies finished background loads and rebuilds the plan when the
// origin or the layer set changed.
func (s *Screen) sync() {
	if s.manifest.Poll() {
		s.dirty = true
	}
	s.assets.Poll()
	if s.dirty {
		s.rebuild()
	}
}

func (s *Screen) rebuild() {
	raws := s.inline
	if layers, ok := s.manifest.Layers(); ok {
		raws = layers
	}
	s.layers = ResolveLayers(raws, s.paths, s.logger)
	for _, l := range s.layers {
		if l.Paints() {
			s.assets.Request(l.Src)
		}
	}
	s.plan = s.compositor.Plan(s.Origin(), s.layers)
	s.dirty = false
}

// Draw implements ebiten.Game. Paint order: background, glow, layers,
// origin marker, overlay widgets.
func (s *Screen) Draw(screen *ebiten.Image) {
	if s.closed {
		return
	}
	o := s.Origin()
	screen.Fill(s.background.toRGBA())
	if s.glow != nil {
		s.glow.Draw(screen, o)
	}
	s.compositor.Draw(screen, s.plan, s.assets)
	s.marker.Draw(screen, o)
	s.overlay.Draw(screen)
	s.flushScreenshots(screen)
}

// Origin returns the current origin.
func (s *Screen) Origin() OriginState { return s.scope.Origin() }

// Scope returns the origin scope widgets read from.
func (s *Screen) Scope() *OriginScope { return s.scope }

// SetScript attaches a test script that drives injected input and
// screenshots frame by frame. With exitWhenDone, Update returns
// ebiten.Termination once the script has finished and its screenshots are
// written.
func (s *Screen) SetScript(r *ScriptRunner, exitWhenDone bool) {
	s.script = r
	s.scriptExit = exitWhenDone
}

// Overlay returns the overlay mount point.
func (s *Screen) Overlay() *Overlay { return s.overlay }

// Plan returns the current composition plan.
func (s *Screen) Plan() Plan {
	if s.dirty && !s.closed {
		s.rebuild()
	}
	return s.plan
}

// Layers returns the resolved layer sequence in effect.
func (s *Screen) Layers() []LayerConfig {
	if s.dirty && !s.closed {
		s.rebuild()
	}
	return s.layers
}

// SetLayers replaces the inline layers.
func (s *Screen) SetLayers(layers []*RawLayer) {
	s.inline = layers
	s.dirty = true
}

// SetManifest switches to another manifest path. An empty path reverts to
// the inline layers.
func (s *Screen) SetManifest(path string) {
	s.manifest.SetPath(path)
	s.dirty = true
}

// Manifest returns the manifest loader.
func (s *Screen) Manifest() *ManifestLoader { return s.manifest }

// Assets returns the layer image store.
func (s *Screen) Assets() *AssetStore { return s.assets }

// HitTest returns the overlay widget that would receive a pointer at (x, y).
// The background layers never do.
func (s *Screen) HitTest(x, y float64) Widget {
	return s.overlay.HitTest(x, y)
}

// Close tears the screen down: pending loads are discarded, widgets
// unmounted, the origin scope closed and GPU resources released.
func (s *Screen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.observer.Close()
	s.manifest.Close()
	s.assets.Close()
	s.overlay.Close()
	s.scope.Close()
	s.compositor.Dispose()
	s.marker.Dispose()
	if s.glow != nil {
		s.glow.Dispose()
	}
}
