package render

import (
	"image"
	"image/color"
	"math"
)

// ImageSurface is a CPU-backed Surface drawing into an *image.RGBA. It backs
// the debug-pattern tool and the geometry tests, where spinning up a GPU
// context is not worth it. Strokes are single-pixel Bresenham walks repeated
// across the stroke width; good enough for inspection output.
type ImageSurface struct {
	img *image.RGBA
}

func NewImageSurface(width, height int) *ImageSurface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image exposes the backing pixels, e.g. for PNG encoding.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

func (s *ImageSurface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *ImageSurface) Clear(c color.RGBA) {
	b := s.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			s.setPixel(x, y, c)
		}
	}
}

func (s *ImageSurface) setPixel(x, y int, c color.RGBA) {
	b := s.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	off := (y-b.Min.Y)*s.img.Stride + (x-b.Min.X)*4
	s.img.Pix[off], s.img.Pix[off+1], s.img.Pix[off+2], s.img.Pix[off+3] = c.R, c.G, c.B, 255
}

func (s *ImageSurface) line(x1, y1, x2, y2 int, c color.RGBA) {
	dx, dy := math.Abs(float64(x2-x1)), math.Abs(float64(y2-y1))
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy
	for {
		s.setPixel(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (s *ImageSurface) StrokeLine(x1, y1, x2, y2, strokeWidth float64, c color.RGBA) {
	n := int(strokeWidth)
	if n < 1 {
		n = 1
	}
	// Fan the extra stroke width out along the minor axis.
	horiz := math.Abs(x2-x1) >= math.Abs(y2-y1)
	for i := 0; i < n; i++ {
		off := i - n/2
		if horiz {
			s.line(int(x1), int(y1)+off, int(x2), int(y2)+off, c)
		} else {
			s.line(int(x1)+off, int(y1), int(x2)+off, int(y2), c)
		}
	}
}

func (s *ImageSurface) StrokeCircle(cx, cy, r, strokeWidth float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	// Segment count scales with circumference so large circles stay round.
	segs := int(math.Max(24, r))
	if segs > 720 {
		segs = 720
	}
	step := TwoPi / float64(segs)
	px := cx + r
	py := cy
	for i := 1; i <= segs; i++ {
		a := float64(i) * step
		x := cx + r*math.Cos(a)
		y := cy + r*math.Sin(a)
		s.StrokeLine(px, py, x, y, strokeWidth, c)
		px, py = x, y
	}
}

func (s *ImageSurface) FillCircle(cx, cy, r float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	for y := int(cy - r); y <= int(cy+r); y++ {
		dy := float64(y) - cy
		half := math.Sqrt(math.Max(0, r*r-dy*dy))
		for x := int(cx - half); x <= int(cx+half); x++ {
			s.setPixel(x, y, c)
		}
	}
}

func (s *ImageSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	for yy := int(y); yy < int(y+h); yy++ {
		for xx := int(x); xx < int(x+w); xx++ {
			s.setPixel(xx, yy, c)
		}
	}
}

func (s *ImageSurface) StrokeRect(x, y, w, h, strokeWidth float64, c color.RGBA) {
	s.StrokeLine(x, y, x+w, y, strokeWidth, c)
	s.StrokeLine(x+w, y, x+w, y+h, strokeWidth, c)
	s.StrokeLine(x+w, y+h, x, y+h, strokeWidth, c)
	s.StrokeLine(x, y+h, x, y, strokeWidth, c)
}
