package vizengine

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/wiltonos/field-viz/pkg/geometry"
)

var (
	boxFill   = color.RGBA{0, 0, 0, 100}
	boxStroke = color.RGBA{36, 42, 53, 255}
)

func (e *Engine) drawHUD(screen *ebiten.Image) {
	if e.fontSource == nil {
		return
	}
	margin, fontSize := 40.0, 18.0
	if e.Width > 2000 {
		margin, fontSize = 80.0, 36.0
	}

	e.drawFieldBox(screen, margin, fontSize)
	e.drawPatternLegend(screen, margin, fontSize)
	e.drawTrendlines(screen, margin, fontSize)
	e.drawNowPlaying(screen, margin, fontSize)

	if e.driver.Faulted() {
		e.drawStabilizing(screen, fontSize)
	}
}

// drawBox paints the standard HUD panel: dim fill, thin outline and the
// accent bar beside the title.
func (e *Engine) drawBox(screen *ebiten.Image, x, y, w, h, fontSize float64, title string) {
	vector.DrawFilledRect(screen, float32(x-10), float32(y-fontSize-15), float32(w), float32(h), boxFill, false)
	vector.StrokeRect(screen, float32(x-10), float32(y-fontSize-15), float32(w), float32(h), 1, boxStroke, false)
	vector.DrawFilledRect(screen, float32(x-10), float32(y-fontSize-15), 4, float32(fontSize+10), ColorAccent, false)

	titleFace := &text.GoTextFace{Source: e.fontSource, Size: fontSize * 0.8}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+5, y-fontSize-5)
	op.ColorScale.Scale(1, 1, 1, 0.5)
	text.Draw(screen, title, titleFace, op)
}

func (e *Engine) drawFieldBox(screen *ebiten.Image, margin, fontSize float64) {
	face := &text.GoTextFace{Source: e.monoSource, Size: fontSize}
	boxW, boxH := 300.0, 160.0
	if e.Width > 2000 {
		boxW, boxH = 600.0, 320.0
	}
	x := margin
	y := margin + fontSize + 15
	e.drawBox(screen, x, y, boxW, boxH, fontSize, "FIELD STATE")

	sample, ok := e.Latest()
	rows := []struct {
		label string
		value string
		col   color.RGBA
	}{
		{"coherence", fmt.Sprintf("%.3f", e.smCoherence.Value()), ColorCoherent},
		{"phi", fmt.Sprintf("%.3f", e.smIntegrated.Value()), ColorAccent},
		{"phase", fmt.Sprintf("%5.1f deg", degrees(sample.Phase)), ColorText},
		{"samples", fmt.Sprintf("%.1f /s", e.sampleRate()), ColorText},
	}
	if !ok {
		rows[2].value = "--"
	}

	for i, r := range rows {
		ty := y + float64(i)*(fontSize+10)

		labelOp := &text.DrawOptions{}
		labelOp.GeoM.Translate(x, ty)
		labelOp.ColorScale.Scale(1, 1, 1, 0.8)
		text.Draw(screen, r.label, face, labelOp)

		tw, _ := text.Measure(r.value, face, 0)
		cr, cg, cb := float32(r.col.R)/255.0, float32(r.col.G)/255.0, float32(r.col.B)/255.0
		valOp := &text.DrawOptions{}
		valOp.GeoM.Translate(x+boxW-tw-25, ty)
		valOp.ColorScale.Scale(cr, cg, cb, 0.9)
		text.Draw(screen, r.value, face, valOp)
	}
}

func (e *Engine) drawPatternLegend(screen *ebiten.Image, margin, fontSize float64) {
	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize}
	tags := geometry.Tags()
	boxW := 260.0
	if e.Width > 2000 {
		boxW = 520.0
	}
	boxH := float64(len(tags))*(fontSize+10) + fontSize + 25

	x := margin
	y := float64(e.Height) - margin - boxH + fontSize + 15
	e.drawBox(screen, x, y, boxW, boxH, fontSize, "PATTERNS")

	active := e.ActiveTag()
	for i, tag := range tags {
		ty := y + float64(i)*(fontSize+10)
		alpha := float32(0.45)
		if tag == active {
			alpha = 0.95
			vector.DrawFilledRect(screen, float32(x-4), float32(ty+2), 3, float32(fontSize-4), ColorCoherent, false)
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+8, ty)
		op.ColorScale.Scale(1, 1, 1, alpha)
		text.Draw(screen, tag.String(), face, op)
	}
}

func (e *Engine) drawTrendlines(screen *ebiten.Image, margin, fontSize float64) {
	graphW, graphH := 300.0, 100.0
	if e.Width > 2000 {
		graphW, graphH = 600.0, 200.0
	}
	gx := float64(e.Width) - margin - graphW
	gy := float64(e.Height) - margin - graphH

	e.drawBox(screen, gx, gy, graphW+20, graphH+fontSize+25, fontSize, "FIELD TREND (5m)")

	history := e.History()
	if len(history) < 2 {
		return
	}

	drawLayer := func(getValue func(s RateSnapshot) float64, col color.RGBA) {
		step := graphW / float64(len(history)-1)
		for i := 0; i < len(history)-1; i++ {
			x1, x2 := gx+float64(i)*step, gx+float64(i+1)*step
			v1 := math.Min(1, math.Max(0, getValue(history[i])))
			v2 := math.Min(1, math.Max(0, getValue(history[i+1])))
			y1 := gy + graphH - v1*graphH
			y2 := gy + graphH - v2*graphH
			vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 2, col, false)
		}
	}
	drawLayer(func(s RateSnapshot) float64 { return s.Coherence }, ColorCoherent)
	drawLayer(func(s RateSnapshot) float64 { return s.Integrated }, ColorAccent)
}

func (e *Engine) drawNowPlaying(screen *ebiten.Image, margin, fontSize float64) {
	if e.CurrentSong == "" {
		return
	}
	face := &text.GoTextFace{Source: e.fontSource, Size: fontSize}
	boxW := 440.0
	boxH := fontSize * 3.0
	if e.CurrentArtist != "" {
		boxH = fontSize * 4.5
	}
	x := float64(e.Width) - margin - boxW
	y := margin + fontSize + 15
	e.drawBox(screen, x, y, boxW, boxH, fontSize, "NOW PLAYING")

	songOp := &text.DrawOptions{}
	songOp.GeoM.Translate(x, y+fontSize*0.2)
	songOp.ColorScale.Scale(1, 1, 1, 0.8)
	text.Draw(screen, e.CurrentSong, face, songOp)

	if e.CurrentArtist != "" {
		artistFace := &text.GoTextFace{Source: e.fontSource, Size: fontSize * 0.7}
		artistOp := &text.DrawOptions{}
		artistOp.GeoM.Translate(x, y+fontSize*1.3)
		artistOp.ColorScale.Scale(1, 1, 1, 0.5)
		text.Draw(screen, e.CurrentArtist, artistFace, artistOp)
	}
}

// drawStabilizing overlays the recovery banner after a draw fault. The
// neutral frame underneath comes from the driver fallback.
func (e *Engine) drawStabilizing(screen *ebiten.Image, fontSize float64) {
	label := "field stabilizing..."
	face := &text.GoTextFace{Source: e.monoSource, Size: fontSize * 1.4}
	tw, th := text.Measure(label, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(e.Width)/2-tw/2, float64(e.Height)/2-th/2)
	op.ColorScale.Scale(1, 1, 1, 0.7)
	text.Draw(screen, label, face, op)
}
