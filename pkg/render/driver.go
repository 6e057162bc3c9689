package render

import (
	"image/color"
	"log"
	"sync"
	"time"
)

// DrawFunc renders one frame. The smoothed slice holds the post-Tick value of
// every smoother registered with the driver, in registration order.
type DrawFunc func(dst Surface, smoothed []float64)

var (
	backgroundColor = color.RGBA{8, 10, 15, 255}
	fallbackDim     = color.RGBA{12, 14, 20, 255}
	fallbackOutline = color.RGBA{36, 42, 53, 255}
)

// Driver owns the animation loop for a single canvas view. One tick advances
// every registered smoother, clears the surface, and invokes the draw
// callback with the smoothed values. A panic inside the callback is confined
// to that frame: it is logged, a neutral fallback frame is drawn instead, and
// the next tick proceeds normally.
//
// Each view runs its own Driver; nothing is shared between instances.
type Driver struct {
	mu        sync.Mutex
	surface   Surface
	smoothers []*Smoother
	scratch   []float64

	resizeMu    sync.Mutex
	resizeFns   []func(w, h float64)
	lastFaulted bool
	faults      uint64
}

// NewDriver builds a driver over the given surface and smoother set.
func NewDriver(surface Surface, smoothers ...*Smoother) *Driver {
	return &Driver{
		surface:   surface,
		smoothers: smoothers,
		scratch:   make([]float64, len(smoothers)),
	}
}

// OnResize registers a hook invoked by NotifyResize, typically a geometry
// cache invalidation.
func (d *Driver) OnResize(fn func(w, h float64)) {
	d.resizeMu.Lock()
	d.resizeFns = append(d.resizeFns, fn)
	d.resizeMu.Unlock()
}

// NotifyResize reports a change of the surface's pixel dimensions. Cached
// geometry is invalidated before the next draw. Safe to call at any time,
// including from inside a draw callback or mid-tick from another goroutine.
func (d *Driver) NotifyResize(w, h float64) {
	d.resizeMu.Lock()
	fns := make([]func(float64, float64), len(d.resizeFns))
	copy(fns, d.resizeFns)
	d.resizeMu.Unlock()
	for _, fn := range fns {
		fn(w, h)
	}
}

// Step runs exactly one tick: smoothers advance, the surface is cleared, and
// draw is invoked. The host calls this once per animation frame (the viz
// engine calls it from ebiten's Draw; headless mode uses Start instead).
func (d *Driver) Step(draw DrawFunc) {
	d.mu.Lock()
	if cap(d.scratch) < len(d.smoothers) {
		d.scratch = make([]float64, len(d.smoothers))
	}
	smoothed := d.scratch[:len(d.smoothers)]
	for i, s := range d.smoothers {
		smoothed[i] = s.Tick()
	}
	surface := d.surface
	d.mu.Unlock()

	if surface == nil || draw == nil {
		return
	}
	surface.Clear(backgroundColor)
	d.lastFaulted = !d.invoke(surface, smoothed, draw)
}

// invoke runs the callback with panic containment. Returns false when the
// frame fell back.
func (d *Driver) invoke(surface Surface, smoothed []float64, draw DrawFunc) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.faults++
			log.Printf("draw callback panicked (frame %d dropped): %v", d.faults, r)
			d.drawFallback(surface)
			ok = false
		}
	}()
	draw(surface, smoothed)
	return true
}

// drawFallback replaces a half-drawn frame with a neutral placeholder: a dim
// field with a centered outline where the pattern would be. The hosting view
// reads Faulted and overlays its own "stabilizing" label, since the Surface
// contract has no text op.
func (d *Driver) drawFallback(surface Surface) {
	w, h := surface.Size()
	surface.Clear(fallbackDim)
	bw := SafeRadius(w*0.25, w) * 2
	bh := SafeRadius(h*0.15, h) * 2
	surface.StrokeRect((w-bw)/2, (h-bh)/2, bw, bh, 1, fallbackOutline)
}

// Faulted reports whether the most recent tick fell back.
func (d *Driver) Faulted() bool { return d.lastFaulted }

// Faults returns the total number of dropped frames.
func (d *Driver) Faults() uint64 { return d.faults }

// Smoothed returns the current (non-advancing) value of every registered
// smoother, in registration order.
func (d *Driver) Smoothed() []float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]float64, len(d.smoothers))
	for i, s := range d.smoothers {
		out[i] = s.Value()
	}
	return out
}

// StopHandle cancels a loop begun with Start. Stop is idempotent and safe to
// call from inside the draw callback itself.
type StopHandle struct {
	once sync.Once
	quit chan struct{}
}

func (h *StopHandle) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.quit) })
}

// Stopped reports whether Stop has been called.
func (h *StopHandle) Stopped() bool {
	select {
	case <-h.quit:
		return true
	default:
		return false
	}
}

// Start runs the loop on an internal ticker for hosts without their own
// frame scheduling (headless capture, tests). Ticks never overlap: each Step
// runs to completion before the next is considered. The caller owns the
// returned handle and must Stop it on teardown.
func (d *Driver) Start(interval time.Duration, draw DrawFunc) *StopHandle {
	if interval <= 0 {
		interval = time.Second / 60
	}
	h := &StopHandle{quit: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.quit:
				return
			case <-ticker.C:
				d.Step(draw)
				// Re-check after the step so a Stop issued from inside
				// the callback wins over a pending tick.
				select {
				case <-h.quit:
					return
				default:
				}
			}
		}
	}()
	return h
}
