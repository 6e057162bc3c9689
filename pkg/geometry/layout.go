package geometry

import (
	"math"

	"github.com/wiltonos/field-viz/pkg/render"
)

func unitPoint(angle, radius float64) point {
	sin, cos := math.Sincos(angle)
	return point{x: radius * cos, y: radius * sin}
}

// buildLayout computes the unit-space geometry for a tag. Only metric-
// independent structure lives here; anything that depends on the live
// coherence values is derived at draw time.
func buildLayout(tag Tag) *layout {
	switch tag {
	case FlowerOfLife:
		return flowerLayout()
	case MetatronsCube:
		return metatronLayout()
	case SriYantra:
		return sriYantraLayout()
	case Merkaba:
		return merkabaLayout()
	case Torus:
		return torusLayout()
	default:
		// PhiSpiral has no static layout; its extent depends on the surface.
		return &layout{}
	}
}

// flowerLayout is the 19-circle flower: one center circle, six neighbors at
// 60 degree increments at distance equal to the petal radius, and a second
// hexagonal ring.
func flowerLayout() *layout {
	const petal = 1.0 / 3
	l := &layout{ringScale: petal}
	l.circles = append(l.circles, point{})
	for i := 0; i < 6; i++ {
		a := render.TwoPi / 6 * float64(i)
		l.circles = append(l.circles, unitPoint(a, petal))
	}
	for i := 0; i < 6; i++ {
		a := render.TwoPi / 6 * float64(i)
		l.circles = append(l.circles, unitPoint(a, 2*petal))
		l.circles = append(l.circles, unitPoint(a+render.TwoPi/12, math.Sqrt(3)*petal))
	}
	return l
}

// metatronLayout is the 13-node web: the center, six nodes at 0.4R, six at
// 0.8R offset by 30 degrees, with a line between every pair of nodes.
func metatronLayout() *layout {
	l := &layout{dotScale: 1.0 / 25}
	l.dots = append(l.dots, point{})
	for i := 0; i < 6; i++ {
		a := render.TwoPi / 6 * float64(i)
		l.dots = append(l.dots, unitPoint(a, 0.4))
	}
	for i := 0; i < 6; i++ {
		a := render.TwoPi/6*float64(i) + render.TwoPi/12
		l.dots = append(l.dots, unitPoint(a, 0.8))
	}
	for i := 0; i < len(l.dots); i++ {
		for j := i + 1; j < len(l.dots); j++ {
			l.lines = append(l.lines, [2]point{l.dots[i], l.dots[j]})
		}
	}
	return l
}

// sriYantraLayout is nine concentric triangle layers inside an outer circle,
// with the bindu dot at the center. Odd layers interleave a second,
// downward-pointing triangle fan.
func sriYantraLayout() *layout {
	const layers = 9
	l := &layout{ringScale: 1, dotScale: 1.0 / 20}
	l.circles = append(l.circles, point{}) // outer circle at full radius
	l.dots = append(l.dots, point{})       // bindu

	for layer := 0; layer < layers; layer++ {
		rf := float64(layers-layer) / layers
		n := 4 + layer%2
		span := render.TwoPi / float64(n)
		for i := 0; i < n; i++ {
			a := span * float64(i)
			p1 := unitPoint(a, rf)
			p2 := unitPoint(a+span, rf)
			center := point{}
			l.lines = append(l.lines, [2]point{p1, p2}, [2]point{p2, center}, [2]point{center, p1})

			if layer%2 == 1 {
				mid := a + span/2
				q1 := unitPoint(mid, rf*0.8)
				q2 := unitPoint(mid+math.Pi, rf*0.8)
				q3 := unitPoint(mid+math.Pi/2, rf)
				l.lines = append(l.lines, [2]point{q1, q2}, [2]point{q2, q3}, [2]point{q3, q1})
			}
		}
	}
	return l
}

// merkabaLayout is two overlapping equilateral triangles, the second rotated
// half a turn (which for an equilateral triangle is the 60 degree offset),
// with vertex dots and a small inner circle.
func merkabaLayout() *layout {
	l := &layout{ringScale: 0.2, dotScale: 1.0 / 15}
	l.circles = append(l.circles, point{})
	for t := 0; t < 2; t++ {
		offset := float64(t) * render.TwoPi / 6
		var verts []point
		for i := 0; i < 3; i++ {
			verts = append(verts, unitPoint(render.TwoPi/3*float64(i)+offset, 1))
		}
		for i := 0; i < 3; i++ {
			l.lines = append(l.lines, [2]point{verts[i], verts[(i+1)%3]})
		}
		l.dots = append(l.dots, verts...)
	}
	return l
}

// torusLayout is the classic 2D torus slice: 36 circles of radius R/2 whose
// centers sit on a ring of radius R/2.
func torusLayout() *layout {
	const n = 36
	l := &layout{ringScale: 0.5}
	for i := 0; i < n; i++ {
		l.circles = append(l.circles, unitPoint(render.TwoPi*float64(i)/n, 0.5))
	}
	return l
}
