package launcher

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"
)

func waitManifest(t *testing.T, s *Screen) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for s.Manifest().Pending() {
		if time.Now().After(deadline) {
			t.Fatal("manifest never arrived")
		}
		s.sync()
		time.Sleep(time.Millisecond)
	}
	s.sync()
}

func TestScreenOriginFollowsResize(t *testing.T) {
	s := NewScreen(ScreenOptions{Fetcher: NewFetcher(fstest.MapFS{})})
	defer s.Close()

	if !s.Origin().Degenerate() {
		t.Errorf("origin before layout = %+v, want degenerate", s.Origin())
	}
	var seen []OriginState
	s.Scope().Subscribe(func(o OriginState) { seen = append(seen, o) })

	if w, h := s.Layout(800, 600); w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d", w, h)
	}
	s.Layout(800, 600)
	s.Resize(1024, 768)

	if len(seen) != 2 {
		t.Fatalf("origin changes = %d, want 2", len(seen))
	}
	assertNear(t, "scale", s.Origin().Scale, 384)
	assertNear(t, "plan origin", s.Plan().Origin.Scale, 384)
}

func TestScreenInlineLayers(t *testing.T) {
	s := NewScreen(ScreenOptions{
		BasePath: "/assets/",
		Layers: []*RawLayer{
			{Src: "sky.png"},
			{Src: "hidden.png", Visible: Bool(false)},
		},
		Fetcher: NewFetcher(fstest.MapFS{}),
	})
	defer s.Close()
	s.Resize(800, 600)

	plan := s.Plan()
	if len(plan.Layers) != 1 || plan.Layers[0].Src != "/assets/sky.png" {
		t.Fatalf("plan = %+v", plan.Layers)
	}
	if len(s.Layers()) != 2 {
		t.Errorf("Layers() = %d, want 2", len(s.Layers()))
	}

	s.SetLayers([]*RawLayer{{Src: "a.png"}, {Src: "b.png"}})
	if n := len(s.Plan().Layers); n != 2 {
		t.Errorf("plan after SetLayers = %d layers", n)
	}
}

func TestScreenManifestOverridesInline(t *testing.T) {
	fsys := fstest.MapFS{
		"layers.json": {Data: []byte(`{"layers":[{"src":"m1.png"},{"src":"m2.png"}]}`)},
	}
	s := NewScreen(ScreenOptions{
		Layers:   []*RawLayer{{Src: "inline.png"}},
		Manifest: "layers.json",
		Fetcher:  NewFetcher(fsys),
	})
	defer s.Close()
	s.Resize(800, 600)

	// Inline layers show while the manifest is loading.
	if p := s.Plan(); len(p.Layers) != 1 || p.Layers[0].Src != "/inline.png" {
		t.Fatalf("pending plan = %+v", p.Layers)
	}
	waitManifest(t, s)
	p := s.Plan()
	if len(p.Layers) != 2 || p.Layers[0].Src != "/m1.png" {
		t.Fatalf("manifest plan = %+v", p.Layers)
	}

	s.SetManifest("")
	if p := s.Plan(); len(p.Layers) != 1 || p.Layers[0].Src != "/inline.png" {
		t.Errorf("cleared manifest plan = %+v", p.Layers)
	}
}

func TestScreenFailedManifestIsEmpty(t *testing.T) {
	s := NewScreen(ScreenOptions{
		Layers:   []*RawLayer{{Src: "inline.png"}},
		Manifest: "missing.json",
		Fetcher:  NewFetcher(fstest.MapFS{}),
	})
	defer s.Close()
	s.Resize(800, 600)
	waitManifest(t, s)
	if n := len(s.Plan().Layers); n != 0 {
		t.Errorf("plan after failed manifest = %d layers, want 0", n)
	}
}

func TestScreenHitTestBackgroundPassesThrough(t *testing.T) {
	s := NewScreen(ScreenOptions{Fetcher: NewFetcher(fstest.MapFS{})})
	defer s.Close()
	s.Resize(800, 600)

	b := newTestButton()
	s.Overlay().Mount(b)
	if s.HitTest(475, 270) != b {
		t.Error("button not hit")
	}
	if s.HitTest(10, 10) != nil {
		t.Error("background captured a hit")
	}
}

func TestScreenClose(t *testing.T) {
	s := NewScreen(ScreenOptions{Fetcher: NewFetcher(fstest.MapFS{})})
	s.Resize(800, 600)
	b := newTestButton()
	s.Overlay().Mount(b)

	s.Close()
	s.Close()
	if len(s.Overlay().Widgets()) != 0 {
		t.Error("widgets still mounted after Close")
	}
	if _, err := s.Scope().Lookup(); !errors.Is(err, ErrMissingOriginScope) {
		t.Errorf("scope after Close: %v", err)
	}
	s.Resize(10, 10)
	if err := s.Update(); err != nil {
		t.Errorf("Update after Close = %v", err)
	}
}

func TestScreenCloseWithManifestPending(t *testing.T) {
	release := make(chan struct{})
	fetched := make(chan struct{})
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		if url != "/layers.json" {
			return nil, fs.ErrNotExist
		}
		close(fetched)
		<-release
		return []byte(`{"layers":[{"src":"late.png"}]}`), nil
	})
	s := NewScreen(ScreenOptions{
		Layers:   []*RawLayer{{Src: "inline.png"}},
		Manifest: "layers.json",
		Fetcher:  fetcher,
	})
	s.Resize(800, 600)
	if p := s.Plan(); len(p.Layers) != 1 {
		t.Fatalf("pending plan = %+v", p.Layers)
	}
	<-fetched
	s.Close()
	close(release)

	time.Sleep(10 * time.Millisecond)
	if s.Manifest().Poll() {
		t.Error("manifest applied after the screen closed")
	}
	if err := s.Update(); err != nil {
		t.Errorf("Update after Close = %v", err)
	}
	if _, ok := s.Manifest().Layers(); ok {
		t.Error("manifest layers set after Close")
	}
	if p := s.Plan(); len(p.Layers) != 1 || p.Layers[0].Src != "/inline.png" {
		t.Errorf("plan after Close = %+v, want the inline layer", p.Layers)
	}
}
