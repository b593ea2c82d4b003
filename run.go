package launcher

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Fixed disables window resizing.
	Fixed bool
}

// Run opens a window and runs s until the window is closed. The screen is
// closed when Run returns.
func Run(s *Screen, cfg RunConfig) error {
	defer s.Close()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Fixed {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(s)
}
