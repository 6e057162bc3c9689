// Package vizengine drives the dashboard window: it owns the frame driver,
// the pattern renderer and the HUD, and folds incoming field samples into
// smoother targets so the display never jumps.
package vizengine

import (
	"bytes"
	"image/color"
	"log"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wiltonos/field-viz/pkg/field"
	"github.com/wiltonos/field-viz/pkg/geometry"
	"github.com/wiltonos/field-viz/pkg/render"
)

var (
	ColorAccent   = color.RGBA{0, 191, 255, 255}   // Sky Blue
	ColorCoherent = color.RGBA{173, 255, 47, 255}  // Lime Green
	ColorWarning  = color.RGBA{255, 50, 50, 255}   // Red
	ColorText     = color.RGBA{255, 255, 255, 255} // White
)

// RateSnapshot is one bucket of the trendline history.
type RateSnapshot struct {
	Coherence  float64
	Integrated float64
	SampleRate float64
}

type Engine struct {
	Width, Height int
	FPS           int

	// CycleEvery rotates the active pattern; zero pins the current tag.
	CycleEvery time.Duration

	surface  *render.EbitenSurface
	driver   *render.Driver
	renderer *geometry.Renderer

	smCoherence  *render.Smoother
	smIntegrated *render.Smoother
	smRadius     *render.Smoother

	mu          sync.Mutex
	latest      field.Sample
	haveSample  bool
	samplesSeen int64
	activeTag   geometry.Tag
	tagIdx      int
	lastCycle   time.Time
	rotation    float64

	lastLayoutW, lastLayoutH int

	// History for trendlines (last 60 snapshots, 5s each = 5 mins)
	history           []RateSnapshot
	windowSamples     int64
	lastMetricsUpdate time.Time
	metricsMu         sync.Mutex

	fontSource *text.GoTextFaceSource
	monoSource *text.GoTextFaceSource

	CurrentSong   string
	CurrentArtist string
	songChangedAt time.Time

	FrameCaptureDir string
	CaptureEvery    time.Duration
	lastCapture     time.Time
}

func NewEngine(width, height int) *Engine {
	s, _ := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	m, _ := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))

	minDim := math.Min(float64(width), float64(height))
	e := &Engine{
		Width:        width,
		Height:       height,
		FPS:          30,
		CycleEvery:   20 * time.Second,
		surface:      render.NewEbitenSurface(nil),
		renderer:     geometry.NewRenderer(),
		smCoherence:  render.NewClampedSmoother(0.75, render.DefaultDamping, 0, 1),
		smIntegrated: render.NewClampedSmoother(0.5, render.DefaultDamping, 0, 1),
		smRadius:     render.NewSmoother(minDim*0.36, render.DefaultDamping),
		activeTag:    geometry.Tags()[0],
		lastCycle:    time.Now(),
		history:      make([]RateSnapshot, 60),
		fontSource:   s,
		monoSource:   m,
	}
	e.driver = render.NewDriver(e.surface, e.smCoherence, e.smIntegrated, e.smRadius)
	e.driver.OnResize(func(float64, float64) { e.renderer.Invalidate() })
	return e
}

func (e *Engine) baseRadius() float64 {
	minDim := float64(e.Width)
	if float64(e.Height) < minDim {
		minDim = float64(e.Height)
	}
	return minDim * 0.36
}

// SetSample folds a field sample into the smoother targets. Invalid samples
// are dropped so a bad frame off the wire cannot poison the display.
func (e *Engine) SetSample(s field.Sample) {
	if !s.Valid() {
		log.Printf("Dropping invalid field sample: %+v", s)
		return
	}
	e.mu.Lock()
	e.latest = s
	e.haveSample = true
	e.samplesSeen++
	e.mu.Unlock()

	e.metricsMu.Lock()
	e.windowSamples++
	e.metricsMu.Unlock()

	e.smCoherence.SetTarget(s.Coherence)
	e.smIntegrated.SetTarget(s.IntegratedInfo)
	// Integrated information breathes the pattern scale a little.
	e.smRadius.SetTarget(e.baseRadius() * (0.85 + 0.3*s.IntegratedInfo))
}

// Latest returns the most recent accepted sample.
func (e *Engine) Latest() (field.Sample, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest, e.haveSample
}

// ActiveTag returns the pattern currently on screen.
func (e *Engine) ActiveTag() geometry.Tag {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeTag
}

// SetTag pins the given pattern and disables cycling.
func (e *Engine) SetTag(t geometry.Tag) {
	if !t.Valid() {
		return
	}
	e.mu.Lock()
	e.activeTag = t
	e.CycleEvery = 0
	e.mu.Unlock()
	e.renderer.Invalidate()
}

func (e *Engine) advanceTag(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.CycleEvery <= 0 || now.Sub(e.lastCycle) < e.CycleEvery {
		return
	}
	tags := geometry.Tags()
	e.tagIdx = (e.tagIdx + 1) % len(tags)
	e.activeTag = tags[e.tagIdx]
	e.lastCycle = now
}

func (e *Engine) Update() error {
	now := time.Now()
	e.advanceTag(now)

	// Spin speed follows coherence so a calm field rotates slowly.
	fps := e.FPS
	if fps <= 0 {
		fps = 30
	}
	spin := (0.1 + 0.5*e.smCoherence.Value()) / float64(fps)

	e.mu.Lock()
	e.rotation = render.SafeAngle(e.rotation + spin)
	e.mu.Unlock()
	return nil
}

func (e *Engine) Draw(screen *ebiten.Image) {
	e.surface.Retarget(screen)
	e.driver.Step(e.drawScene)
	e.drawHUD(screen)

	if e.FrameCaptureDir != "" && e.CaptureEvery > 0 {
		now := time.Now()
		if now.Sub(e.lastCapture) >= e.CaptureEvery {
			e.lastCapture = now
			e.captureFrame(screen, now)
		}
	}
}

func (e *Engine) drawScene(dst render.Surface, smoothed []float64) {
	coherence, radius := smoothed[0], smoothed[2]

	e.mu.Lock()
	tag := e.activeTag
	rotation := e.rotation
	e.mu.Unlock()

	w, h := dst.Size()
	e.renderer.SetCoherence(coherence)
	e.renderer.Render(dst, tag, w/2, h/2, radius, rotation)
}

func (e *Engine) Layout(w, h int) (int, int) {
	e.mu.Lock()
	changed := w != e.lastLayoutW || h != e.lastLayoutH
	e.lastLayoutW, e.lastLayoutH = w, h
	e.mu.Unlock()
	if changed {
		e.driver.NotifyResize(float64(w), float64(h))
	}
	return e.Width, e.Height
}

// StartMetricsLoop buckets sample throughput and smoothed field values into
// the trendline history every 5 seconds.
func (e *Engine) StartMetricsLoop() {
	ticker := time.NewTicker(5 * time.Second)
	for range ticker.C {
		e.snapshotMetrics(time.Now())
	}
}

func (e *Engine) snapshotMetrics(now time.Time) {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()

	interval := now.Sub(e.lastMetricsUpdate).Seconds()
	if interval <= 0 {
		interval = 5.0
	}
	e.lastMetricsUpdate = now

	snap := RateSnapshot{
		Coherence:  e.smCoherence.Value(),
		Integrated: e.smIntegrated.Value(),
		SampleRate: float64(e.windowSamples) / interval,
	}
	e.windowSamples = 0
	e.history = append(e.history, snap)
	if len(e.history) > 60 {
		e.history = e.history[1:]
	}
}

// History returns a copy of the trendline buckets, oldest first.
func (e *Engine) History() []RateSnapshot {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()
	out := make([]RateSnapshot, len(e.history))
	copy(out, e.history)
	return out
}

func (e *Engine) sampleRate() float64 {
	e.metricsMu.Lock()
	defer e.metricsMu.Unlock()
	if len(e.history) == 0 {
		return 0
	}
	return e.history[len(e.history)-1].SampleRate
}

// degrees for the HUD phase readout
func degrees(rad float64) float64 {
	return math.Mod(rad*180/math.Pi, 360)
}
