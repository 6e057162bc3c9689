package render

import (
	"image/color"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// opSurface records draw calls so tests can assert on what reached the
// surface without a display. Counters are atomic because Start ticks from
// its own goroutine.
type opSurface struct {
	w, h   float64
	clears atomic.Int64
	rects  atomic.Int64
	lines  atomic.Int64
}

func (s *opSurface) Size() (float64, float64)                       { return s.w, s.h }
func (s *opSurface) Clear(color.RGBA)                               { s.clears.Add(1) }
func (s *opSurface) StrokeLine(_, _, _, _, _ float64, _ color.RGBA) { s.lines.Add(1) }
func (s *opSurface) StrokeCircle(_, _, _, _ float64, _ color.RGBA)  {}
func (s *opSurface) FillCircle(_, _, _ float64, _ color.RGBA)       {}
func (s *opSurface) FillRect(_, _, _, _ float64, _ color.RGBA)      { s.rects.Add(1) }
func (s *opSurface) StrokeRect(_, _, _, _, _ float64, _ color.RGBA) { s.rects.Add(1) }

func TestDriverStepAdvancesSmoothers(t *testing.T) {
	sm := NewSmoother(0, 0.5)
	sm.SetTarget(1)
	surf := &opSurface{w: 400, h: 300}
	d := NewDriver(surf, sm)

	var seen []float64
	d.Step(func(_ Surface, smoothed []float64) {
		seen = append(seen, smoothed...)
	})
	if len(seen) != 1 {
		t.Fatalf("expected 1 smoothed value, got %d", len(seen))
	}
	if math.Abs(seen[0]-0.5) > 1e-12 {
		t.Errorf("first tick value = %v; want 0.5", seen[0])
	}
	if surf.clears.Load() != 1 {
		t.Errorf("surface cleared %d times; want 1", surf.clears.Load())
	}
}

func TestDriverFaultIsolation(t *testing.T) {
	surf := &opSurface{w: 400, h: 300}
	d := NewDriver(surf)

	ticks := 0
	draw := func(Surface, []float64) {
		ticks++
		if ticks == 5 {
			panic("bad frame")
		}
	}
	for i := 0; i < 6; i++ {
		d.Step(draw)
	}
	if ticks != 6 {
		t.Fatalf("tick 6 did not run after tick 5 panicked: got %d ticks", ticks)
	}
	if d.Faults() != 1 {
		t.Errorf("faults = %d; want 1", d.Faults())
	}
	if surf.rects.Load() == 0 {
		t.Error("fallback render did not draw the placeholder rectangle")
	}
	// The frame after the fault is clean again.
	if d.Faulted() {
		t.Error("Faulted still set after a clean frame")
	}
}

func TestStopIdempotent(t *testing.T) {
	surf := &opSurface{w: 100, h: 100}
	d := NewDriver(surf)
	h := d.Start(time.Millisecond, func(Surface, []float64) {})
	h.Stop()
	h.Stop() // must not panic or block
	if !h.Stopped() {
		t.Error("handle not marked stopped")
	}

	// No further ticks after stop settles.
	time.Sleep(5 * time.Millisecond)
	before := surf.clears.Load()
	time.Sleep(10 * time.Millisecond)
	if got := surf.clears.Load(); got != before {
		t.Errorf("ticks continued after Stop: %d -> %d", before, got)
	}
}

func TestStopFromInsideCallback(t *testing.T) {
	surf := &opSurface{w: 100, h: 100}
	d := NewDriver(surf)

	done := make(chan struct{})
	handles := make(chan *StopHandle, 1)
	var once sync.Once
	h := d.Start(time.Millisecond, func(Surface, []float64) {
		once.Do(func() {
			hh := <-handles
			hh.Stop()
			close(done)
		})
	})
	handles <- h
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
	time.Sleep(5 * time.Millisecond)
	before := surf.clears.Load()
	time.Sleep(10 * time.Millisecond)
	if surf.clears.Load() != before {
		t.Error("loop kept ticking after Stop from inside the callback")
	}
}

func TestNotifyResizeInvokesHooks(t *testing.T) {
	d := NewDriver(&opSurface{w: 100, h: 100})
	var gotW, gotH float64
	d.OnResize(func(w, h float64) { gotW, gotH = w, h })
	d.NotifyResize(800, 600)
	if gotW != 800 || gotH != 600 {
		t.Errorf("resize hook got (%v, %v); want (800, 600)", gotW, gotH)
	}
}

func TestDriverEndToEnd(t *testing.T) {
	sm := NewSmoother(0.75, 0.08)
	surf := &opSurface{w: 800, h: 600}
	d := NewDriver(surf, sm)

	sm.SetTarget(0.95)
	for i := 0; i < 50; i++ {
		d.Step(func(Surface, []float64) {})
	}
	got := sm.Value()
	if got < 0.93 || got > 0.95 {
		t.Errorf("after 50 ticks: value %v outside [0.93, 0.95]", got)
	}

	d.NotifyResize(800, 600)
	if r := SafeRadius(1000, 600); r != 300 {
		t.Errorf("SafeRadius(1000, 600) = %v; want 300 (half the smaller dimension)", r)
	}
}
