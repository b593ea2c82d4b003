package launcher

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// EventType identifies a pointer event delivered to a widget.
type EventType uint8

const (
	EventPointerDown EventType = iota
	EventPointerUp
	EventPointerEnter
	EventPointerLeave
	EventClick
)

func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventPointerEnter:
		return "pointerenter"
	case EventPointerLeave:
		return "pointerleave"
	case EventClick:
		return "click"
	}
	return "unknown"
}

// PointerEvent is a pointer interaction in viewport pixels.
type PointerEvent struct {
	Type      EventType
	PointerID int
	X, Y      float64
}

// Norm returns the event position in normalized coordinates for origin o.
func (e PointerEvent) Norm(o OriginState) Norm {
	return ToNorm(o, PixelPoint{Left: e.X, Top: e.Y})
}

// PointerTarget is implemented by widgets that want pointer events.
type PointerTarget interface {
	HandlePointer(e PointerEvent)
}

type pointerState struct {
	down     bool
	lastX    float64
	lastY    float64
	hitTgt   Widget
	hoverTgt Widget
}

// pointerRouter runs the per-pointer state machine and dispatches events to
// overlay widgets. Points that hit no widget pass through to nothing; the
// background never receives input.
type pointerRouter struct {
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
}

// poll reads mouse and touch state from ebiten.
func (r *pointerRouter) poll(hit func(x, y float64) Widget) {
	mx, my := ebiten.CursorPosition()
	r.process(0, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), hit)

	touchIDs := ebiten.AppendTouchIDs(r.prevTouchIDs[:0])
	r.prevTouchIDs = touchIDs
	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := r.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		r.process(slot, float64(tx), float64(ty), true, hit)
	}
	for i := 1; i < maxPointers; i++ {
		if r.touchUsed[i] && !active[i] {
			ps := &r.pointers[i]
			if ps.down {
				r.process(i, ps.lastX, ps.lastY, false, hit)
			}
			r.touchUsed[i] = false
			r.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). Returns -1 if full.
func (r *pointerRouter) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if r.touchUsed[i] && r.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !r.touchUsed[i] {
			r.touchUsed[i] = true
			r.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// process advances pointer id with one sample.
func (r *pointerRouter) process(id int, x, y float64, pressed bool, hit func(x, y float64) Widget) {
	if id < 0 || id >= maxPointers {
		return
	}
	ps := &r.pointers[id]
	target := hit(x, y)

	if target != ps.hoverTgt {
		if ps.hoverTgt != nil {
			fire(ps.hoverTgt, EventPointerLeave, id, x, y)
		}
		if target != nil {
			fire(target, EventPointerEnter, id, x, y)
		}
		ps.hoverTgt = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.hitTgt = target
		fire(target, EventPointerDown, id, x, y)
	case !pressed && ps.down:
		if ps.hitTgt != nil && ps.hitTgt == target {
			fire(target, EventClick, id, x, y)
		}
		if ps.hitTgt != nil && ps.hitTgt != target {
			fire(ps.hitTgt, EventPointerUp, id, x, y)
		}
		fire(target, EventPointerUp, id, x, y)
		ps.down = false
		ps.hitTgt = nil
	}
	ps.lastX, ps.lastY = x, y
}

// forget drops every pointer reference to an unmounted widget.
func (r *pointerRouter) forget(w Widget) {
	for i := range r.pointers {
		ps := &r.pointers[i]
		if ps.hoverTgt == w {
			ps.hoverTgt = nil
		}
		if ps.hitTgt == w {
			ps.hitTgt = nil
		}
	}
}

func fire(w Widget, t EventType, id int, x, y float64) {
	if w == nil {
		return
	}
	if pt, ok := w.(PointerTarget); ok {
		pt.HandlePointer(PointerEvent{Type: t, PointerID: id, X: x, Y: y})
	}
}
