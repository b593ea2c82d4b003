package launcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// Manifest is the externally served layer list.
type Manifest struct {
	Layers []*RawLayer `json:"layers"`
}

// ParseManifest decodes a manifest body. A body that is not a JSON object
// yields ErrMalformedManifest; a missing or non-array "layers" field yields
// an empty, non-nil list.
func ParseManifest(data []byte) ([]*RawLayer, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return []*RawLayer{}, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	raw, ok := doc["layers"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return []*RawLayer{}, nil
	}
	var layers []*RawLayer
	if err := json.Unmarshal(raw, &layers); err != nil {
		return []*RawLayer{}, fmt.Errorf("%w: layers: %v", ErrMalformedManifest, err)
	}
	if layers == nil {
		layers = []*RawLayer{}
	}
	return layers, nil
}

// manifestResult carries a finished fetch back to the UI goroutine.
type manifestResult struct {
	gen    uint64
	url    string
	layers []*RawLayer
	err    error
}

// ManifestLoader fetches a layer manifest asynchronously.
//
// All state changes happen on the goroutine that calls SetPath, Poll, Next
// and Close (the UI goroutine). Fetches run in the background and report
// through a channel; each result is tagged with the generation that started
// it and is dropped if the path changed or the loader closed since.
type ManifestLoader struct {
	fetcher Fetcher
	paths   PathResolver
	logger  *log.Logger

	gen     uint64
	cancel  context.CancelFunc
	results chan manifestResult
	closed  bool

	path    string
	layers  []*RawLayer
	pending bool
}

// NewManifestLoader creates a loader. logger may be nil.
func NewManifestLoader(fetcher Fetcher, paths PathResolver, logger *log.Logger) *ManifestLoader {
	return &ManifestLoader{
		fetcher: fetcher,
		paths:   paths,
		logger:  orDefault(logger),
		results: make(chan manifestResult, 4),
	}
}

// SetPath configures the manifest path and starts fetching it. An empty
// path clears the manifest so callers fall back to inline layers. Any
// in-flight fetch for a previous path is cancelled and its result ignored.
func (l *ManifestLoader) SetPath(path string) {
	if l.closed {
		return
	}
	l.supersede()
	l.path = path
	if path == "" {
		l.layers = nil
		l.pending = false
		return
	}

	url := l.paths.Resolve(path)
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.pending = true
	gen, fetcher, results := l.gen, l.fetcher, l.results
	l.logger.Info("loading manifest", "url", url)

	go func() {
		res := manifestResult{gen: gen, url: url}
		body, err := fetcher.Fetch(ctx, url)
		if err == nil {
			res.layers, err = ParseManifest(body)
		}
		res.err = err
		select {
		case results <- res:
		case <-ctx.Done():
			// superseded; nobody wants this result
		}
	}()
}

// supersede invalidates every outstanding request.
func (l *ManifestLoader) supersede() {
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Poll applies any finished fetches without blocking. It reports whether
// the manifest layers changed.
func (l *ManifestLoader) Poll() bool {
	changed := false
	for {
		select {
		case res := <-l.results:
			if l.apply(res) {
				changed = true
			}
		default:
			return changed
		}
	}
}

// Next blocks until one fetch finishes or ctx is done, and reports whether
// its result was applied.
func (l *ManifestLoader) Next(ctx context.Context) (bool, error) {
	select {
	case res := <-l.results:
		return l.apply(res), nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (l *ManifestLoader) apply(res manifestResult) bool {
	if l.closed || res.gen != l.gen {
		l.logger.Debug("discarding stale manifest response", "url", res.url)
		return false
	}
	l.pending = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if res.err != nil {
		l.logger.Warn("manifest load failed", "url", res.url, "err", res.err)
		l.layers = []*RawLayer{}
		return true
	}
	l.layers = res.layers
	return true
}

// Layers returns the manifest layer list. ok is false when no manifest path
// is configured or the first response has not arrived yet, in which case the
// caller falls back to inline layers.
func (l *ManifestLoader) Layers() (layers []*RawLayer, ok bool) {
	return l.layers, l.layers != nil
}

// Path returns the configured manifest path.
func (l *ManifestLoader) Path() string { return l.path }

// Pending reports whether a fetch for the current path is outstanding.
func (l *ManifestLoader) Pending() bool { return l.pending }

// Close discards any in-flight fetch. Later results are never applied.
func (l *ManifestLoader) Close() {
	if l.closed {
		return
	}
	l.supersede()
	l.closed = true
	l.pending = false
}
