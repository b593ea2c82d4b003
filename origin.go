package launcher

import "math"

// OriginState is the computed reference frame of the launcher viewport: its
// size, its center and the pixel length of one normalized unit.
//
// OriginState is a plain value. A new one is produced on every resize and
// two states are compared by fields, never by identity.
type OriginState struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	// Scale is the number of pixels spanned by one normalized unit.
	// Always > 0.
	Scale float64 `json:"scale"`
}

// degenerateScale is used whenever the viewport has no area yet.
const degenerateScale = 1

// NewOrigin derives the origin state for a viewport of the given size.
//
// The center sits at the middle of the viewport and the scale is half of the
// shorter side, never below 1. If either dimension is zero, negative or not
// finite the degenerate state (center 0,0, scale 1) is returned so that
// downstream mapping never divides by zero.
func NewOrigin(width, height float64) OriginState {
	width = viewportDim(width)
	height = viewportDim(height)
	if width == 0 || height == 0 {
		return OriginState{Width: width, Height: height, Scale: degenerateScale}
	}
	return OriginState{
		Width:   width,
		Height:  height,
		CenterX: width / 2,
		CenterY: height / 2,
		Scale:   max(1, 0.5*min(width, height)),
	}
}

// viewportDim clamps a reported dimension to a finite value >= 0.
func viewportDim(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 1) {
		return 0
	}
	return v
}

// Degenerate reports whether o is the fallback state for an empty viewport.
func (o OriginState) Degenerate() bool {
	return o.Width <= 0 || o.Height <= 0
}

// Valid reports whether o can be used for coordinate mapping.
func (o OriginState) Valid() bool {
	return o.Scale > 0
}

// OriginModel memoizes NewOrigin by the last (width, height) pair so that an
// unchanged size yields the same state without recomputation.
type OriginModel struct {
	w, h       float64
	state      OriginState
	primed     bool
	recomputes int
}

// Compute returns the origin state for the given size, reusing the previous
// result when the size did not change.
func (m *OriginModel) Compute(width, height float64) OriginState {
	width, height = viewportDim(width), viewportDim(height)
	if m.primed && m.w == width && m.h == height {
		return m.state
	}
	m.w, m.h = width, height
	m.state = NewOrigin(width, height)
	m.primed = true
	m.recomputes++
	return m.state
}

// State returns the most recently computed state (degenerate before the
// first Compute).
func (m *OriginModel) State() OriginState {
	if !m.primed {
		return NewOrigin(0, 0)
	}
	return m.state
}

// Recomputes returns how many times the state was actually recomputed.
func (m *OriginModel) Recomputes() int {
	return m.recomputes
}
