package geometry

import (
	"image/color"
	"testing"

	"github.com/wiltonos/field-viz/pkg/render"
)

// recordSurface captures every draw call so layout structure and bounds can
// be asserted without a display.
type recordSurface struct {
	w, h        float64
	lines       int
	circles     int
	dots        int
	maxR        float64
	outOfBounds int
}

func (s *recordSurface) Size() (float64, float64) { return s.w, s.h }
func (s *recordSurface) Clear(color.RGBA)         {}

func (s *recordSurface) checkPt(x, y float64) {
	if x < 0 || x > s.w || y < 0 || y > s.h {
		s.outOfBounds++
	}
}

func (s *recordSurface) StrokeLine(x1, y1, x2, y2, _ float64, _ color.RGBA) {
	s.lines++
	s.checkPt(x1, y1)
	s.checkPt(x2, y2)
}

func (s *recordSurface) StrokeCircle(cx, cy, r, _ float64, _ color.RGBA) {
	s.circles++
	s.checkPt(cx, cy)
	if r > s.maxR {
		s.maxR = r
	}
}

func (s *recordSurface) FillCircle(cx, cy, r float64, _ color.RGBA) {
	s.dots++
	s.checkPt(cx, cy)
	if r > s.maxR {
		s.maxR = r
	}
}

func (s *recordSurface) FillRect(_, _, _, _ float64, _ color.RGBA)      {}
func (s *recordSurface) StrokeRect(_, _, _, _, _ float64, _ color.RGBA) {}

func TestRenderUnknownTagPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown tag")
		}
	}()
	NewRenderer().Render(&recordSurface{w: 400, h: 400}, Tag(99), 200, 200, 100, 0)
}

func TestFlowerOfLifeCircleCount(t *testing.T) {
	surf := &recordSurface{w: 800, h: 600}
	NewRenderer().Render(surf, FlowerOfLife, 400, 300, 200, 0)
	if surf.circles != 19 {
		t.Errorf("flower stroked %d circles; want 19", surf.circles)
	}
	if surf.outOfBounds != 0 {
		t.Errorf("%d draw points fell outside the surface", surf.outOfBounds)
	}
}

func TestMetatronsCubeStructure(t *testing.T) {
	surf := &recordSurface{w: 800, h: 600}
	NewRenderer().Render(surf, MetatronsCube, 400, 300, 200, 0.5)
	if surf.dots != 13 {
		t.Errorf("metatron drew %d node dots; want 13", surf.dots)
	}
	if surf.lines != 78 {
		t.Errorf("metatron drew %d connecting lines; want 78 (13 choose 2)", surf.lines)
	}
}

func TestMerkabaStructure(t *testing.T) {
	surf := &recordSurface{w: 800, h: 600}
	NewRenderer().Render(surf, Merkaba, 400, 300, 150, 0)
	if surf.lines != 6 {
		t.Errorf("merkaba drew %d edges; want 6 (two triangles)", surf.lines)
	}
	if surf.dots != 6 {
		t.Errorf("merkaba drew %d vertex dots; want 6", surf.dots)
	}
	if surf.circles != 1 {
		t.Errorf("merkaba drew %d circles; want 1 inner circle", surf.circles)
	}
}

func TestTorusRadiiBounded(t *testing.T) {
	surf := &recordSurface{w: 400, h: 400}
	NewRenderer().Render(surf, Torus, 200, 200, 1e9, 1.2)
	if surf.circles != 36 {
		t.Errorf("torus stroked %d circles; want 36", surf.circles)
	}
	if surf.maxR > 200 {
		t.Errorf("torus passed radius %v to a draw call; limit is 200", surf.maxR)
	}
}

func TestSpiralTermination(t *testing.T) {
	surf := &recordSurface{w: 400, h: 400}
	NewRenderer().Render(surf, PhiSpiral, 200, 200, 1e12, 0)
	if surf.lines == 0 {
		t.Fatal("spiral drew nothing")
	}
	if surf.lines >= 4096 {
		t.Errorf("spiral hit the hard segment cap (%d segments); termination bound failed", surf.lines)
	}
	if surf.outOfBounds != 0 {
		t.Errorf("spiral emitted %d points outside the 400x400 surface", surf.outOfBounds)
	}
}

func TestRenderClampsWildCenter(t *testing.T) {
	for _, tag := range Tags() {
		surf := &recordSurface{w: 640, h: 480}
		NewRenderer().Render(surf, tag, 1e9, -1e9, 5000, 123456.789)
		if surf.outOfBounds != 0 {
			t.Errorf("%s: %d draw points escaped the surface with a wild center", tag, surf.outOfBounds)
		}
		if surf.maxR > 240 {
			t.Errorf("%s: radius %v exceeds half the smaller dimension (240)", tag, surf.maxR)
		}
	}
}

func TestInvalidateBumpsEpoch(t *testing.T) {
	r := NewRenderer()
	surf := &recordSurface{w: 400, h: 400}
	r.Render(surf, FlowerOfLife, 200, 200, 100, 0)
	before := r.Epoch()
	r.Invalidate()
	if r.Epoch() != before+1 {
		t.Errorf("epoch %d after Invalidate; want %d", r.Epoch(), before+1)
	}
	// Layouts rebuild transparently after invalidation.
	surf2 := &recordSurface{w: 400, h: 400}
	r.Render(surf2, FlowerOfLife, 200, 200, 100, 0)
	if surf2.circles != 19 {
		t.Errorf("flower after invalidation stroked %d circles; want 19", surf2.circles)
	}
}

func TestFlowerAfterResizeUsesClampedRadius(t *testing.T) {
	r := NewRenderer()
	surf := &recordSurface{w: 800, h: 600}
	r.Invalidate()

	// A huge requested radius clamps to half the smaller dimension before
	// reaching Render; petal rings derive from the clamped value.
	base := render.SafeRadius(1000, 600)
	if base != 300 {
		t.Fatalf("SafeRadius(1000, 600) = %v; want 300", base)
	}
	r.Render(surf, FlowerOfLife, 400, 300, base, 0)

	if surf.circles != 19 {
		t.Fatalf("flower stroked %d circles; want 19", surf.circles)
	}
	wantRing := base / 3
	if surf.maxR != wantRing {
		t.Errorf("petal ring radius = %v; want %v (baseRadius/3)", surf.maxR, wantRing)
	}
	if surf.outOfBounds != 0 {
		t.Errorf("%d draw points fell outside the surface", surf.outOfBounds)
	}
}

func TestParseTag(t *testing.T) {
	for _, tag := range Tags() {
		got, err := ParseTag(tag.String())
		if err != nil {
			t.Fatalf("ParseTag(%q): %v", tag.String(), err)
		}
		if got != tag {
			t.Errorf("ParseTag(%q) = %v; want %v", tag.String(), got, tag)
		}
	}
	if _, err := ParseTag("soul_compression"); err == nil {
		t.Error("ParseTag accepted an unknown name")
	}
}
