// Package geometry strokes the fixed set of field-viz patterns onto a render
// surface. Every radius, coordinate, and angle is routed through the
// pkg/render clamping primitives before it reaches a draw call; derived
// sub-radii are re-clamped independently because a valid base radius does not
// make its multiples valid.
package geometry

import "fmt"

// Tag selects one of the closed set of pattern layouts.
type Tag int

const (
	SriYantra Tag = iota
	FlowerOfLife
	Torus
	Merkaba
	PhiSpiral
	MetatronsCube
)

var tagNames = map[Tag]string{
	SriYantra:     "sri_yantra",
	FlowerOfLife:  "flower_of_life",
	Torus:         "torus",
	Merkaba:       "merkaba",
	PhiSpiral:     "phi_spiral",
	MetatronsCube: "metatrons_cube",
}

// Tags lists every valid tag in display-cycle order.
func Tags() []Tag {
	return []Tag{FlowerOfLife, SriYantra, Merkaba, Torus, PhiSpiral, MetatronsCube}
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// Valid reports whether t is one of the known tags.
func (t Tag) Valid() bool {
	_, ok := tagNames[t]
	return ok
}

// ParseTag resolves a tag name as used on CLI flags and in configs.
func ParseTag(s string) (Tag, error) {
	for t, name := range tagNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern tag %q", s)
}
