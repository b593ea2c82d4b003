package launcher

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// floatTween animates a single float64 toward a target. Retarget restarts
// from the current value so interrupted animations never jump.
type floatTween struct {
	value float64
	tween *gween.Tween
	to    float64
	dur   float32
	fn    ease.TweenFunc
}

func newFloatTween(value float64, duration float32, fn ease.TweenFunc) *floatTween {
	if fn == nil {
		fn = ease.Linear
	}
	return &floatTween{value: value, to: value, dur: duration, fn: fn}
}

// Retarget starts animating toward to. It is a no-op when already heading
// there.
func (t *floatTween) Retarget(to float64) {
	if to == t.to {
		return
	}
	t.to = to
	if t.dur <= 0 {
		t.value = to
		t.tween = nil
		return
	}
	t.tween = gween.New(float32(t.value), float32(to), t.dur, t.fn)
}

// Update advances by dt seconds and reports whether the value changed.
func (t *floatTween) Update(dt float32) bool {
	if t.tween == nil {
		return false
	}
	v, done := t.tween.Update(dt)
	t.value = float64(v)
	if done {
		t.value = t.to
		t.tween = nil
	}
	return true
}

// Value returns the current value.
func (t *floatTween) Value() float64 { return t.value }

// Done reports whether the tween has reached its target.
func (t *floatTween) Done() bool { return t.tween == nil }
