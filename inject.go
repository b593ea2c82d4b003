package launcher

// syntheticPointer is one injected mouse sample in viewport pixels.
type syntheticPointer struct {
	x, y    float64
	pressed bool
}

// InjectPress queues a mouse press at viewport pixel (x, y). Injected
// samples are consumed one per Update, in place of real mouse input.
func (ov *Overlay) InjectPress(x, y float64) {
	ov.injectQueue = append(ov.injectQueue, syntheticPointer{x: x, y: y, pressed: true})
}

// InjectMove queues a mouse move with the button held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (ov *Overlay) InjectMove(x, y float64) {
	ov.injectQueue = append(ov.injectQueue, syntheticPointer{x: x, y: y, pressed: true})
}

// InjectRelease queues a mouse release at (x, y).
func (ov *Overlay) InjectRelease(x, y float64) {
	ov.injectQueue = append(ov.injectQueue, syntheticPointer{x: x, y: y})
}

// InjectClick queues a press and a release at the same point. Consumes two
// updates.
func (ov *Overlay) InjectClick(x, y float64) {
	ov.InjectPress(x, y)
	ov.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). frames is clamped to at least 2.
func (ov *Overlay) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	ov.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		ov.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	ov.InjectRelease(toX, toY)
}

// Injecting reports whether injected samples are still queued.
func (ov *Overlay) Injecting() bool { return len(ov.injectQueue) > 0 }

// processInjected feeds the oldest queued sample to pointer 0. Returns
// false when the queue is empty.
func (ov *Overlay) processInjected() bool {
	if len(ov.injectQueue) == 0 {
		return false
	}
	evt := ov.injectQueue[0]
	copy(ov.injectQueue, ov.injectQueue[1:])
	ov.injectQueue = ov.injectQueue[:len(ov.injectQueue)-1]
	ov.Pointer(0, evt.x, evt.y, evt.pressed)
	return true
}
