package launcher

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/log"
	_ "github.com/ftrvxmtrx/tga"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes any registered format (PNG, JPEG, GIF, WebP, TGA).
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

type assetState uint8

const (
	assetLoading assetState = iota
	assetReady
	assetFailed
)

type assetEntry struct {
	state   assetState
	decoded image.Image
	img     *ebiten.Image
}

type assetResult struct {
	src string
	img image.Image
	err error
}

// AssetStore loads layer images in the background and hands them to the
// compositor once decoded. A failed asset is logged once and stays absent;
// the layer simply does not paint.
//
// Request, Poll and Image are called from the UI goroutine only.
type AssetStore struct {
	fetcher Fetcher
	logger  *log.Logger
	entries map[string]*assetEntry
	results chan assetResult
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewAssetStore creates a store that loads through fetcher. logger may be nil.
func NewAssetStore(fetcher Fetcher, logger *log.Logger) *AssetStore {
	ctx, cancel := context.WithCancel(context.Background())
	return &AssetStore{
		fetcher: fetcher,
		logger:  orDefault(logger),
		entries: make(map[string]*assetEntry),
		results: make(chan assetResult, 16),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Request starts loading every src not already known.
func (s *AssetStore) Request(srcs ...string) {
	for _, src := range srcs {
		if src == "" || s.entries[src] != nil {
			continue
		}
		s.entries[src] = &assetEntry{state: assetLoading}
		go s.load(src)
	}
}

func (s *AssetStore) load(src string) {
	res := assetResult{src: src}
	data, err := s.fetcher.Fetch(s.ctx, src)
	if err == nil {
		res.img, err = DecodeImage(data)
	}
	if err != nil {
		res.err = &AssetError{Src: src, Err: err}
	}
	select {
	case s.results <- res:
	case <-s.ctx.Done():
	}
}

// Poll applies finished loads without blocking and reports whether any
// image became available.
func (s *AssetStore) Poll() bool {
	changed := false
	for {
		select {
		case res := <-s.results:
			if s.apply(res) {
				changed = true
			}
		default:
			return changed
		}
	}
}

// Wait blocks until no load is outstanding or ctx is done.
func (s *AssetStore) Wait(ctx context.Context) error {
	for s.loading() > 0 {
		select {
		case res := <-s.results:
			s.apply(res)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *AssetStore) loading() int {
	n := 0
	for _, e := range s.entries {
		if e.state == assetLoading {
			n++
		}
	}
	return n
}

func (s *AssetStore) apply(res assetResult) bool {
	e := s.entries[res.src]
	if e == nil || e.state != assetLoading {
		return false
	}
	if res.err != nil {
		e.state = assetFailed
		s.logger.Warn("failed to load layer image", "src", res.src, "err", res.err)
		return false
	}
	e.state = assetReady
	e.decoded = res.img
	s.logger.Debug("layer image loaded", "src", res.src, "size", res.img.Bounds().Size())
	return true
}

// Image implements ImageSource. The ebiten image is created on first use.
func (s *AssetStore) Image(src string) (*ebiten.Image, bool) {
	e := s.entries[src]
	if e == nil || e.state != assetReady {
		return nil, false
	}
	if e.img == nil {
		e.img = ebiten.NewImageFromImage(e.decoded)
	}
	return e.img, true
}

// Decoded returns the decoded image for src, for CPU rendering.
func (s *AssetStore) Decoded(src string) (image.Image, bool) {
	e := s.entries[src]
	if e == nil || e.state != assetReady {
		return nil, false
	}
	return e.decoded, true
}

// Failed reports whether src failed to load.
func (s *AssetStore) Failed(src string) bool {
	e := s.entries[src]
	return e != nil && e.state == assetFailed
}

// Close cancels outstanding loads and frees GPU images.
func (s *AssetStore) Close() {
	s.cancel()
	for _, e := range s.entries {
		if e.img != nil {
			e.img.Deallocate()
			e.img = nil
		}
	}
}
