package launcher

import (
	"context"
	"slices"
)

// OriginScope publishes the current OriginState to widgets mounted under a
// Screen. Only the owner calls Publish; every other holder reads.
//
// A scope is an explicit object handed down to consumers, never a package
// global, so several screens can coexist in one process.
type OriginScope struct {
	origin OriginState
	active bool
	subs   []*originSub
	nextID uint32
}

type originSub struct {
	id      uint32
	fn      func(OriginState)
	removed bool
}

// NewOriginScope creates an active scope holding the initial state.
func NewOriginScope(initial OriginState) *OriginScope {
	return &OriginScope{origin: initial, active: true}
}

// Publish replaces the current state and notifies subscribers when it
// differs from the previous one. No-op on a closed scope.
func (s *OriginScope) Publish(o OriginState) {
	if s == nil || !s.active || s.origin == o {
		return
	}
	s.origin = o
	// Subscribers may unsubscribe, or close the scope, from inside fn.
	for _, sub := range slices.Clone(s.subs) {
		if sub.removed || !s.active {
			continue
		}
		sub.fn(o)
	}
}

// Origin returns the published state. It panics with ErrMissingOriginScope
// when s is nil or closed.
func (s *OriginScope) Origin() OriginState {
	o, err := s.Lookup()
	if err != nil {
		panic(err)
	}
	return o
}

// Lookup is the non-panicking form of Origin.
func (s *OriginScope) Lookup() (OriginState, error) {
	if s == nil || !s.active {
		return OriginState{}, ErrMissingOriginScope
	}
	return s.origin, nil
}

// Active reports whether the scope is still publishing.
func (s *OriginScope) Active() bool {
	return s != nil && s.active
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription; calling it more than once is safe.
// Subscribing to a nil or closed scope panics with ErrMissingOriginScope.
func (s *OriginScope) Subscribe(fn func(OriginState)) (unsubscribe func()) {
	if s == nil || !s.active {
		panic(ErrMissingOriginScope)
	}
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, &originSub{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub *originSub) bool {
			if sub.id == id {
				sub.removed = true
				return true
			}
			return false
		})
	}
}

// Close ends the scope. Later reads fail with ErrMissingOriginScope.
func (s *OriginScope) Close() {
	if s == nil {
		return
	}
	s.active = false
	for _, sub := range s.subs {
		sub.removed = true
	}
	s.subs = nil
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const originScopeKey ctxKey = 0

// WithOriginScope returns a context carrying scope.
func WithOriginScope(ctx context.Context, scope *OriginScope) context.Context {
	return context.WithValue(ctx, originScopeKey, scope)
}

// OriginFromContext reads the origin published by the scope in ctx.
// Returns ErrMissingOriginScope when ctx carries no active scope.
func OriginFromContext(ctx context.Context) (OriginState, error) {
	scope, _ := ctx.Value(originScopeKey).(*OriginScope)
	return scope.Lookup()
}

// MustOrigin is like OriginFromContext but panics on a missing scope.
func MustOrigin(ctx context.Context) OriginState {
	o, err := OriginFromContext(ctx)
	if err != nil {
		panic(err)
	}
	return o
}
