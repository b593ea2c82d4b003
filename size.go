package launcher

import "slices"

// ResizeNotifier is the capability to observe size changes of a container.
// Subscribe registers fn and returns a function that removes it.
type ResizeNotifier interface {
	Subscribe(fn func(width, height float64)) (unsubscribe func())
}

// SizeObserver tracks the latest size reported by a ResizeNotifier.
// Intermediate sizes may be coalesced by the notifier; only the latest one
// matters.
type SizeObserver struct {
	width, height float64
	onChange      func(width, height float64)
	unsubscribe   func()
	closed        bool
}

// NewSizeObserver subscribes to n. onChange, if non-nil, is called for every
// size that differs from the previously observed one.
func NewSizeObserver(n ResizeNotifier, onChange func(width, height float64)) *SizeObserver {
	o := &SizeObserver{onChange: onChange}
	o.unsubscribe = n.Subscribe(o.observe)
	return o
}

func (o *SizeObserver) observe(width, height float64) {
	if o.closed || (width == o.width && height == o.height) {
		return
	}
	o.width, o.height = width, height
	if o.onChange != nil {
		o.onChange(width, height)
	}
}

// Size returns the latest observed size, (0, 0) before the first notification.
func (o *SizeObserver) Size() (width, height float64) {
	return o.width, o.height
}

// Close unsubscribes from the notifier. Safe to call more than once.
func (o *SizeObserver) Close() {
	o.closed = true
	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
	o.onChange = nil
}

// resizeBroadcaster is a ResizeNotifier fed by explicit Notify calls.
// Screen embeds one and feeds it from ebiten's Layout callback.
type resizeBroadcaster struct {
	subs          []*resizeSub
	nextID        uint32
	width, height float64
	notified      bool
}

type resizeSub struct {
	id      uint32
	fn      func(width, height float64)
	removed bool
}

// Subscribe implements ResizeNotifier. A subscriber added after the first
// notification immediately receives the current size.
func (b *resizeBroadcaster) Subscribe(fn func(width, height float64)) func() {
	b.nextID++
	id := b.nextID
	sub := &resizeSub{id: id, fn: fn}
	b.subs = append(b.subs, sub)
	if b.notified {
		fn(b.width, b.height)
	}
	return func() {
		sub.removed = true
		b.subs = slices.DeleteFunc(b.subs, func(s *resizeSub) bool { return s.id == id })
	}
}

// Notify broadcasts a size. Repeated identical sizes are coalesced.
func (b *resizeBroadcaster) Notify(width, height float64) {
	if b.notified && width == b.width && height == b.height {
		return
	}
	b.width, b.height = width, height
	b.notified = true
	// Subscribers may unsubscribe from inside fn.
	for _, s := range slices.Clone(b.subs) {
		if !s.removed {
			s.fn(width, height)
		}
	}
}

// subscribers returns the number of live subscriptions.
func (b *resizeBroadcaster) subscribers() int {
	return len(b.subs)
}
