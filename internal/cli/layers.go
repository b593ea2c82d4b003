package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yuzhayo/launcher"
)

// loadLayers resolves the layers a screen shows once loading settles: the
// manifest when one is configured (empty if it fails), the inline layers
// otherwise.
func loadLayers(ctx context.Context, cfg launcher.Config, fetcher launcher.Fetcher, logger *log.Logger) ([]launcher.LayerConfig, error) {
	paths := launcher.PathResolver{Base: cfg.BasePath}
	raws := cfg.Layers
	if cfg.Manifest != "" {
		loader := launcher.NewManifestLoader(fetcher, paths, logger)
		defer loader.Close()
		loader.SetPath(cfg.Manifest)
		for loader.Pending() {
			if _, err := loader.Next(ctx); err != nil {
				return nil, err
			}
		}
		raws, _ = loader.Layers()
	}
	return launcher.ResolveLayers(raws, paths, logger), nil
}

// parseSize parses "WIDTHxHEIGHT".
func parseSize(s string) (w, h float64, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q (want WIDTHxHEIGHT)", s)
	}
	if w, err = strconv.ParseFloat(ws, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if h, err = strconv.ParseFloat(hs, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return w, h, nil
}

// parsePair parses "X,Y".
func parsePair(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q (want X,Y)", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return x, y, nil
}

// sizeOrConfig returns the --size value, or the config window size when
// the flag is empty.
func sizeOrConfig(flag string, cfg launcher.Config) (float64, float64, error) {
	if flag == "" {
		return float64(cfg.Width), float64(cfg.Height), nil
	}
	return parseSize(flag)
}
