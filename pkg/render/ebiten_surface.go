package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface adapts an *ebiten.Image to the Surface interface using the
// ebiten vector package for strokes and fills.
type EbitenSurface struct {
	img *ebiten.Image
}

func NewEbitenSurface(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{img: img}
}

// Retarget points the surface at a new frame's image. The viz engine calls
// this once per Draw because ebiten hands out a fresh screen each frame.
func (s *EbitenSurface) Retarget(img *ebiten.Image) {
	s.img = img
}

func (s *EbitenSurface) Size() (float64, float64) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *EbitenSurface) Clear(c color.RGBA) {
	if s.img == nil {
		return
	}
	s.img.Fill(c)
}

func (s *EbitenSurface) StrokeLine(x1, y1, x2, y2, strokeWidth float64, c color.RGBA) {
	if s.img == nil {
		return
	}
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(strokeWidth), c, true)
}

func (s *EbitenSurface) StrokeCircle(cx, cy, r, strokeWidth float64, c color.RGBA) {
	if s.img == nil {
		return
	}
	vector.StrokeCircle(s.img, float32(cx), float32(cy), float32(r), float32(strokeWidth), c, true)
}

func (s *EbitenSurface) FillCircle(cx, cy, r float64, c color.RGBA) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}

func (s *EbitenSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	if s.img == nil {
		return
	}
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *EbitenSurface) StrokeRect(x, y, w, h, strokeWidth float64, c color.RGBA) {
	if s.img == nil {
		return
	}
	vector.StrokeRect(s.img, float32(x), float32(y), float32(w), float32(h), float32(strokeWidth), c, false)
}
