package render

import "image/color"

// Surface is the immediate-mode draw target the pattern renderers stroke
// into. Production code wraps an *ebiten.Image (see NewEbitenSurface); tests
// and the debug-pattern tool use the CPU-backed ImageSurface so geometry can
// be exercised without a display.
type Surface interface {
	// Size reports the drawable area in pixels. It may change over the
	// surface's lifetime; see Driver.NotifyResize.
	Size() (width, height float64)
	Clear(c color.RGBA)
	StrokeLine(x1, y1, x2, y2, strokeWidth float64, c color.RGBA)
	StrokeCircle(cx, cy, r, strokeWidth float64, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeRect(x, y, w, h, strokeWidth float64, c color.RGBA)
}

// MinDimension returns the smaller of the surface's two dimensions, the
// quantity SafeRadius clamps against.
func MinDimension(s Surface) float64 {
	w, h := s.Size()
	if h < w {
		return h
	}
	return w
}
