package geometry

import (
	"image/color"
	"math"
)

// HSV converts hue (degrees), saturation, and value in [0,1] to RGBA.
func HSV(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h60 := h / 60.0
	hi := int(math.Floor(h60)) % 6
	f := h60 - math.Floor(h60)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch hi {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

// fieldHue maps a coherence value in [0,1] onto the deep-blue-to-violet band
// the dashboard uses: low coherence sits at 240, full coherence at 300.
func fieldHue(coherence float64) float64 {
	if coherence < 0 {
		coherence = 0
	}
	if coherence > 1 {
		coherence = 1
	}
	return 240 + coherence*60
}
