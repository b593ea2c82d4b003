package launcher

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Widget is an element mounted on the overlay layer above the background.
//
// Mount receives the screen's OriginScope; widgets read the origin from it
// and position themselves with ToPixel. Only widgets that report
// Interactive receive pointer input; everything else is pass-through.
type Widget interface {
	Mount(scope *OriginScope)
	Unmount()
	Update(dt float32)
	Draw(dst *ebiten.Image)
	// Interactive reports whether the widget takes pointer input.
	Interactive() bool
	// HitTest reports whether viewport point (x, y) is inside the widget.
	HitTest(x, y float64) bool
}

// Overlay is the mount point for foreground widgets. It covers the whole
// screen but never captures input itself.
type Overlay struct {
	scope       *OriginScope
	widgets     []Widget
	router      pointerRouter
	injectQueue []syntheticPointer
}

// NewOverlay creates an overlay whose widgets read the origin from scope.
func NewOverlay(scope *OriginScope) *Overlay {
	return &Overlay{scope: scope}
}

// Mount attaches w on top of the existing widgets and returns a function
// that detaches it. Mounting on an overlay without an active origin scope
// panics with ErrMissingOriginScope.
func (ov *Overlay) Mount(w Widget) (unmount func()) {
	if w == nil {
		panic("launcher: cannot mount a nil widget")
	}
	if !ov.scope.Active() {
		panic(ErrMissingOriginScope)
	}
	for _, existing := range ov.widgets {
		if existing == w {
			panic("launcher: widget already mounted")
		}
	}
	w.Mount(ov.scope)
	ov.widgets = append(ov.widgets, w)
	return func() { ov.Unmount(w) }
}

// Unmount detaches w. No-op if w is not mounted.
func (ov *Overlay) Unmount(w Widget) {
	for i, existing := range ov.widgets {
		if existing == w {
			copy(ov.widgets[i:], ov.widgets[i+1:])
			ov.widgets[len(ov.widgets)-1] = nil
			ov.widgets = ov.widgets[:len(ov.widgets)-1]
			ov.router.forget(w)
			w.Unmount()
			return
		}
	}
}

// Widgets returns the mounted widgets bottom-to-top.
func (ov *Overlay) Widgets() []Widget { return ov.widgets }

// Interactive reports whether the overlay root itself takes input. It never
// does; only its interactive widgets do.
func (ov *Overlay) Interactive() bool { return false }

// HitTest returns the topmost interactive widget at (x, y), or nil when the
// point passes through.
func (ov *Overlay) HitTest(x, y float64) Widget {
	for i := len(ov.widgets) - 1; i >= 0; i-- {
		w := ov.widgets[i]
		if w.Interactive() && w.HitTest(x, y) {
			return w
		}
	}
	return nil
}

// Pointer feeds one pointer sample through the overlay. id 0 is the mouse.
func (ov *Overlay) Pointer(id int, x, y float64, pressed bool) {
	ov.router.process(id, x, y, pressed, ov.HitTest)
}

// Update advances pointer input and widget animations. A queued injected
// sample replaces real input for this update.
func (ov *Overlay) Update(dt float32) {
	if !ov.processInjected() {
		ov.router.poll(ov.HitTest)
	}
	ov.updateWidgets(dt)
}

func (ov *Overlay) updateWidgets(dt float32) {
	for _, w := range ov.widgets {
		w.Update(dt)
	}
}

// Draw paints the widgets bottom-to-top.
func (ov *Overlay) Draw(dst *ebiten.Image) {
	for _, w := range ov.widgets {
		w.Draw(dst)
	}
}

// Close unmounts every widget and drops queued injections.
func (ov *Overlay) Close() {
	ov.injectQueue = nil
	for len(ov.widgets) > 0 {
		ov.Unmount(ov.widgets[len(ov.widgets)-1])
	}
}
