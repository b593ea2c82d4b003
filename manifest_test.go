package launcher

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"two layers", `{"layers":[{"src":"a.png"},{"src":"b.png","opacity":0.5}]}`, 2, false},
		{"no layers key", `{"other":1}`, 0, false},
		{"layers not array", `{"layers":{"src":"a.png"}}`, 0, false},
		{"layers null", `{"layers":null}`, 0, false},
		{"empty array", `{"layers":[]}`, 0, false},
		{"not json", `<html>`, 0, true},
		{"bad entry", `{"layers":[{"src":5}]}`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layers, err := ParseManifest([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedManifest) {
				t.Errorf("err = %v, want ErrMalformedManifest", err)
			}
			if layers == nil {
				t.Fatal("layers must never be nil")
			}
			if len(layers) != tt.want {
				t.Errorf("len = %d, want %d", len(layers), tt.want)
			}
		})
	}
}

func drainManifest(t *testing.T, l *ManifestLoader) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for l.Pending() {
		if _, err := l.Next(ctx); err != nil {
			t.Fatalf("manifest never arrived: %v", err)
		}
	}
}

func TestManifestLoaderLoads(t *testing.T) {
	fsys := fstest.MapFS{
		"app/layers.json": {Data: []byte(`{"layers":[{"src":"sky.png"}]}`)},
	}
	l := NewManifestLoader(NewFetcher(fsys), PathResolver{Base: "/app/"}, nil)
	defer l.Close()

	if _, ok := l.Layers(); ok {
		t.Error("Layers() ok before SetPath")
	}
	l.SetPath("layers.json")
	if !l.Pending() {
		t.Error("expected pending after SetPath")
	}
	if _, ok := l.Layers(); ok {
		t.Error("Layers() ok before the response arrived")
	}
	drainManifest(t, l)

	layers, ok := l.Layers()
	if !ok || len(layers) != 1 || layers[0].Src != "sky.png" {
		t.Errorf("Layers() = %v, %v", layers, ok)
	}
}

func TestManifestLoaderFailureYieldsEmpty(t *testing.T) {
	l := NewManifestLoader(NewFetcher(fstest.MapFS{}), PathResolver{}, nil)
	defer l.Close()
	l.SetPath("missing.json")
	drainManifest(t, l)

	layers, ok := l.Layers()
	if !ok {
		t.Fatal("failed manifest should still report ok")
	}
	if len(layers) != 0 {
		t.Errorf("len = %d, want 0", len(layers))
	}
}

func TestManifestLoaderDropsStaleResponse(t *testing.T) {
	fsys := fstest.MapFS{
		"old.json": {Data: []byte(`{"layers":[{"src":"old.png"}]}`)},
		"new.json": {Data: []byte(`{"layers":[{"src":"new.png"}]}`)},
	}
	l := NewManifestLoader(NewFetcher(fsys), PathResolver{}, nil)
	defer l.Close()

	l.SetPath("old.json")
	oldGen := l.gen
	l.SetPath("new.json")
	drainManifest(t, l)

	// A response from the superseded request arrives late.
	l.results <- manifestResult{gen: oldGen, url: "/old.json", layers: []*RawLayer{{Src: "old.png"}}}
	if l.Poll() {
		t.Error("stale response was applied")
	}
	layers, _ := l.Layers()
	if len(layers) != 1 || layers[0].Src != "new.png" {
		t.Errorf("Layers() = %v, want new.png", layers)
	}
}

func TestManifestLoaderSupersededFetchIgnored(t *testing.T) {
	release := make(chan struct{})
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		if url == "/old.json" {
			<-release
			return []byte(`{"layers":[{"src":"old.png"}]}`), nil
		}
		return []byte(`{"layers":[{"src":"new.png"}]}`), nil
	})
	l := NewManifestLoader(fetcher, PathResolver{}, nil)
	defer l.Close()

	l.SetPath("old.json")
	l.SetPath("new.json")
	drainManifest(t, l)

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if applied, _ := l.Next(ctx); applied {
		t.Error("superseded response was applied")
	}
	layers, _ := l.Layers()
	if len(layers) != 1 || layers[0].Src != "new.png" {
		t.Errorf("Layers() = %v, want new.png", layers)
	}
}

func TestManifestLoaderResolvesAfterClose(t *testing.T) {
	release := make(chan struct{})
	fetched := make(chan struct{})
	fetcher := FetcherFunc(func(ctx context.Context, url string) ([]byte, error) {
		close(fetched)
		<-release
		return []byte(`{"layers":[{"src":"late.png"}]}`), nil
	})
	l := NewManifestLoader(fetcher, PathResolver{}, nil)
	l.SetPath("m.json")
	<-fetched
	l.Close()
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if applied, _ := l.Next(ctx); applied {
		t.Error("response applied after Close")
	}
	if layers, ok := l.Layers(); ok || layers != nil {
		t.Errorf("Layers() = %v, %v after Close, want nil, false", layers, ok)
	}
	if l.Pending() {
		t.Error("closed loader reports pending")
	}

	// Even a result that reaches the channel is dropped once closed.
	l.results <- manifestResult{gen: l.gen, url: "/m.json", layers: []*RawLayer{{Src: "late.png"}}}
	if l.Poll() {
		t.Error("Poll applied a result after Close")
	}
	if _, ok := l.Layers(); ok {
		t.Error("layers changed after Close")
	}
}

func TestManifestLoaderClearPath(t *testing.T) {
	fsys := fstest.MapFS{"m.json": {Data: []byte(`{"layers":[{"src":"a.png"}]}`)}}
	l := NewManifestLoader(NewFetcher(fsys), PathResolver{}, nil)
	defer l.Close()
	l.SetPath("m.json")
	drainManifest(t, l)

	l.SetPath("")
	if _, ok := l.Layers(); ok {
		t.Error("cleared path should fall back to inline layers")
	}
	if l.Pending() {
		t.Error("cleared path should not be pending")
	}
}

func TestManifestLoaderClosed(t *testing.T) {
	l := NewManifestLoader(NewFetcher(fstest.MapFS{}), PathResolver{}, nil)
	l.Close()
	l.SetPath("m.json")
	if l.Pending() || l.Path() != "" {
		t.Error("SetPath after Close should be ignored")
	}
	l.Close()
}
