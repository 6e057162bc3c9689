package geometry

import (
	"fmt"
	"math"
	"sync"

	"github.com/wiltonos/field-viz/pkg/render"
)

// Phi is the golden ratio, the growth factor of the phi spiral per full turn.
var Phi = (1 + math.Sqrt(5)) / 2

type point struct{ x, y float64 }

// layout holds the metric-independent geometry of one tag, in unit space
// (base radius 1, centered at the origin). Computed once per canvas-size
// epoch and reused across frames.
type layout struct {
	circles   []point    // unit centers of stroked circles (flower, torus ring)
	lines     [][2]point // unit segment endpoints (metatron web, merkaba edges, yantra triangles)
	dots      []point    // unit centers of filled vertex dots
	dotScale  float64    // dot radius as a fraction of base radius
	ringScale float64    // circle radius as a fraction of base radius
}

// Renderer strokes patterns onto a render.Surface. It is owned by a single
// view; concurrent use of one Renderer from multiple views is not supported
// (each view gets its own, like each view gets its own frame driver).
type Renderer struct {
	mu        sync.Mutex
	cache     map[Tag]*layout
	epoch     uint64
	coherence float64
}

func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[Tag]*layout), coherence: 0.75}
}

// SetCoherence updates the coherence value the palette keys off. Values are
// pinned to [0,1].
func (r *Renderer) SetCoherence(v float64) {
	if math.IsNaN(v) {
		return
	}
	r.mu.Lock()
	r.coherence = math.Max(0, math.Min(v, 1))
	r.mu.Unlock()
}

// Invalidate drops all precomputed layouts. Wire it to the frame driver's
// resize hook: anything derived from the old canvas size is stale.
func (r *Renderer) Invalidate() {
	r.mu.Lock()
	r.epoch++
	r.cache = make(map[Tag]*layout)
	r.mu.Unlock()
}

// Epoch returns the current cache generation; it bumps on every Invalidate.
func (r *Renderer) Epoch() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.epoch
}

// Render strokes the requested pattern. baseRadius is expected to have passed
// through render.SafeRadius and rotation through render.SafeAngle; the center
// is clamped onto the surface here, and every radius derived from baseRadius
// is re-clamped before use. An unknown tag is a programming error and panics.
func (r *Renderer) Render(dst render.Surface, tag Tag, cx, cy, baseRadius, rotation float64) {
	if !tag.Valid() {
		panic(fmt.Sprintf("geometry: unknown pattern tag %d", int(tag)))
	}
	w, h := dst.Size()
	cx = render.SafeCoordinate(cx, w)
	cy = render.SafeCoordinate(cy, h)
	rotation = render.SafeAngle(rotation)

	r.mu.Lock()
	coherence := r.coherence
	lay, ok := r.cache[tag]
	if !ok {
		lay = buildLayout(tag)
		r.cache[tag] = lay
	}
	r.mu.Unlock()

	minDim := render.MinDimension(dst)
	stroke := math.Max(1, minDim/400)

	switch tag {
	case PhiSpiral:
		r.renderSpiral(dst, cx, cy, baseRadius, rotation, coherence, stroke)
	case Torus:
		r.renderTorus(dst, lay, cx, cy, baseRadius, rotation, coherence, stroke)
	default:
		r.renderLayout(dst, lay, cx, cy, baseRadius, rotation, coherence, stroke)
	}
}

// place maps a unit-space point to surface coordinates with rotation, scale,
// and clamping applied.
func place(dst render.Surface, p point, cx, cy, scale, rotation float64) (float64, float64) {
	sin, cos := math.Sincos(rotation)
	x := cx + scale*(p.x*cos-p.y*sin)
	y := cy + scale*(p.x*sin+p.y*cos)
	w, h := dst.Size()
	return render.SafeCoordinate(x, w), render.SafeCoordinate(y, h)
}

func (r *Renderer) renderLayout(dst render.Surface, lay *layout, cx, cy, baseRadius, rotation, coherence, stroke float64) {
	minDim := render.MinDimension(dst)
	hue := fieldHue(coherence)

	if lay.ringScale > 0 {
		ringRadius := render.SafeRadius(baseRadius*lay.ringScale, minDim)
		for i, c := range lay.circles {
			x, y := place(dst, c, cx, cy, baseRadius, rotation)
			col := HSV(hue+float64(i)*8, 0.8, 0.95)
			dst.StrokeCircle(x, y, ringRadius, stroke, col)
		}
	}

	for i, seg := range lay.lines {
		x1, y1 := place(dst, seg[0], cx, cy, baseRadius, rotation)
		x2, y2 := place(dst, seg[1], cx, cy, baseRadius, rotation)
		col := HSV(hue+float64(i%13)*4, 0.75, 0.9)
		dst.StrokeLine(x1, y1, x2, y2, stroke, col)
	}

	if lay.dotScale > 0 {
		dotRadius := render.SafeRadius(baseRadius*lay.dotScale, minDim)
		dotCol := HSV(hue+40, 0.9, 1)
		for _, d := range lay.dots {
			x, y := place(dst, d, cx, cy, baseRadius, rotation)
			dst.FillCircle(x, y, dotRadius, dotCol)
		}
	}
}

func (r *Renderer) renderTorus(dst render.Surface, lay *layout, cx, cy, baseRadius, rotation, coherence, stroke float64) {
	minDim := render.MinDimension(dst)
	hue := fieldHue(coherence)

	// Ring of circles: centers at baseRadius/2, each of radius baseRadius/2.
	ringRadius := render.SafeRadius(baseRadius*lay.ringScale, minDim)
	for i, c := range lay.circles {
		x, y := place(dst, c, cx, cy, baseRadius, rotation)
		col := HSV(hue+float64(i)*(120.0/float64(len(lay.circles))), 0.9, 0.85)
		dst.StrokeCircle(x, y, ringRadius, stroke, col)
	}

	// Flow lines: closed polylines whose radius is sinusoidally modulated by
	// the line's phase. Radii are recomputed per vertex, so each one is
	// re-clamped before use.
	const flowLines = 12
	const flowPoints = 48
	w, h := dst.Size()
	flowStroke := math.Max(1, stroke/2)
	for i := 0; i < flowLines; i++ {
		phase := render.TwoPi * float64(i) / flowLines
		col := HSV(hue-30+float64(i)*(60.0/flowLines), 0.8, 1)
		var px, py float64
		for j := 0; j <= flowPoints; j++ {
			angle := render.SafeAngle(render.TwoPi*float64(j)/flowPoints + rotation)
			radius := render.SafeRadius(baseRadius/2+(baseRadius/2)*math.Sin(angle+phase), minDim)
			x := render.SafeCoordinate(cx+radius*math.Cos(angle), w)
			y := render.SafeCoordinate(cy+radius*math.Sin(angle), h)
			if j > 0 {
				dst.StrokeLine(px, py, x, y, flowStroke, col)
			}
			px, py = x, y
		}
	}
}

// renderSpiral strokes a logarithmic spiral with growth factor Phi per turn.
// The loop terminates as soon as the next radius would exceed half the
// smaller surface dimension; this bound is a safety requirement, not a
// performance tweak, because an unterminated spiral is exactly the runaway
// radius failure the clamping layer exists to prevent.
func (r *Renderer) renderSpiral(dst render.Surface, cx, cy, baseRadius, rotation, coherence, stroke float64) {
	minDim := render.MinDimension(dst)
	maxRadius := minDim / 2
	if maxRadius < 1 {
		maxRadius = 1
	}
	w, h := dst.Size()
	hue := fieldHue(coherence)

	const step = render.TwoPi / 48
	const maxSegments = 4096 // hard stop even on degenerate growth inputs
	start := math.Max(1, render.SafeRadius(baseRadius, minDim)*0.02)
	px := render.SafeCoordinate(cx+start*math.Cos(rotation), w)
	py := render.SafeCoordinate(cy+start*math.Sin(rotation), h)

	for i := 1; i <= maxSegments; i++ {
		theta := float64(i) * step
		radius := start * math.Pow(Phi, theta/render.TwoPi)
		if radius > maxRadius {
			break
		}
		radius = render.SafeRadius(radius, minDim)
		angle := render.SafeAngle(theta + rotation)
		x := render.SafeCoordinate(cx+radius*math.Cos(angle), w)
		y := render.SafeCoordinate(cy+radius*math.Sin(angle), h)
		col := HSV(hue+theta*4, 0.8, 0.95)
		dst.StrokeLine(px, py, x, y, stroke, col)
		px, py = x, y
	}
}
