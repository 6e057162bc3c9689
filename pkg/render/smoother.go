package render

import (
	"math"
	"sync"
)

// DefaultDamping is the per-tick damping factor used when a caller passes a
// non-positive value. At 60 ticks per second values in 0.06-0.10 feel right:
// higher is snappier, lower is smoother. The factor is per-tick, not
// per-second; see ScaledDamping for frame-rate independent callers.
const DefaultDamping = 0.08

// Smoother moves a displayed value toward a target by a fixed fraction of the
// remaining gap each tick. Convergence is geometric: for a constant target the
// error after n ticks is bounded by |err0| * (1-damping)^n, with no overshoot
// and no oscillation.
//
// SetTarget may be called from any goroutine (the field source pushes from
// its own read loop); Tick is expected once per animation frame.
type Smoother struct {
	mu      sync.Mutex
	current float64
	target  float64
	damping float64

	clamped bool
	lo, hi  float64
}

// NewSmoother returns a smoother starting at initial with the given per-tick
// damping factor. Damping outside (0,1] falls back to DefaultDamping.
func NewSmoother(initial, damping float64) *Smoother {
	if damping <= 0 || damping > 1 || math.IsNaN(damping) {
		damping = DefaultDamping
	}
	if math.IsNaN(initial) || math.IsInf(initial, 0) {
		initial = 0
	}
	return &Smoother{current: initial, target: initial, damping: damping}
}

// NewClampedSmoother is NewSmoother with a declared domain [lo, hi]. Both the
// initial value and every accepted target are clamped into the domain, so
// Value never leaves it.
func NewClampedSmoother(initial, damping, lo, hi float64) *Smoother {
	s := NewSmoother(initial, damping)
	if lo > hi {
		lo, hi = hi, lo
	}
	s.clamped = true
	s.lo, s.hi = lo, hi
	s.current = s.clampDomain(s.current)
	s.target = s.current
	return s
}

func (s *Smoother) clampDomain(v float64) float64 {
	if !s.clamped {
		return v
	}
	return math.Max(s.lo, math.Min(v, s.hi))
}

// SetTarget overwrites the target. NaN and infinite values are rejected and
// the previous target is retained; this is the boundary where malformed
// metric samples are contained.
func (s *Smoother) SetTarget(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	s.mu.Lock()
	s.target = s.clampDomain(v)
	s.mu.Unlock()
}

// Target returns the most recently accepted target.
func (s *Smoother) Target() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Tick advances the displayed value one step toward the target and returns
// the new value.
func (s *Smoother) Tick() float64 {
	s.mu.Lock()
	s.current += (s.target - s.current) * s.damping
	v := s.current
	s.mu.Unlock()
	return v
}

// Value returns the displayed value without advancing it.
func (s *Smoother) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Snap jumps the displayed value straight to the target, skipping the decay.
// Used when a view (re)appears and animating from a stale value would look
// worse than a hard cut.
func (s *Smoother) Snap() {
	s.mu.Lock()
	s.current = s.target
	s.mu.Unlock()
}

// ScaledDamping converts a per-tick damping factor assumed at referenceDt
// into one appropriate for an elapsed dt, preserving the decay rate:
// 1 - (1-damping)^(dt/referenceDt).
func ScaledDamping(damping, dt, referenceDt float64) float64 {
	if referenceDt <= 0 || dt <= 0 {
		return damping
	}
	return 1 - math.Pow(1-damping, dt/referenceDt)
}
