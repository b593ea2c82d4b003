package launcher

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshInterval = 0.5 // seconds

// FPSWidget shows the current FPS and TPS in the top-left corner. It is a
// pass-through overlay widget: it never takes pointer input.
type FPSWidget struct {
	img     *ebiten.Image
	elapsed float32
	text    string
	stale   bool
}

// NewFPSWidget creates an FPS readout.
func NewFPSWidget() *FPSWidget {
	return &FPSWidget{stale: true}
}

func (f *FPSWidget) Mount(*OriginScope) { f.stale = true }

func (f *FPSWidget) Unmount() {
	if f.img != nil {
		f.img.Deallocate()
		f.img = nil
	}
}

func (f *FPSWidget) Interactive() bool         { return false }
func (f *FPSWidget) HitTest(x, y float64) bool { return false }

// Text returns the last rendered readout.
func (f *FPSWidget) Text() string { return f.text }

func (f *FPSWidget) Update(dt float32) {
	f.elapsed += dt
	if !f.stale && f.elapsed < fpsRefreshInterval {
		return
	}
	f.elapsed = 0
	f.stale = false
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if f.img == nil {
		// 100x32 fits two lines of the debug font.
		f.img = ebiten.NewImage(100, 32)
	}
	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, f.text)
}

func (f *FPSWidget) Draw(dst *ebiten.Image) {
	if f.img == nil {
		return
	}
	dst.DrawImage(f.img, nil)
}
