package field

import (
	"math/rand"
	"sync"
	"time"

	"github.com/wiltonos/field-viz/pkg/render"
)

// Default blend weights: each step keeps three parts of the previous value
// and takes one part fresh noise, so the channels wander without jumping.
const (
	carryWeight = 0.75
	noiseWeight = 0.25
)

// Generator produces synthetic field samples when no server is configured.
// Each step blends the previous channel value with fresh noise at a 3:1
// ratio and advances the phase by a jittered drift. Deterministic for a
// given seed, which the tests rely on.
type Generator struct {
	mu         sync.Mutex
	rng        *rand.Rand
	coherence  float64
	integrated float64
	phase      float64
	drift      float64
	now        func() time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:        rand.New(rand.NewSource(seed)),
		coherence:  0.75,
		integrated: 0.5,
		drift:      0.05,
		now:        time.Now,
	}
}

// Step advances the generator and returns the new sample.
func (g *Generator) Step() Sample {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.coherence = carryWeight*g.coherence + noiseWeight*g.rng.Float64()
	g.integrated = carryWeight*g.integrated + noiseWeight*g.rng.Float64()
	g.phase = render.SafeAngle(g.phase + g.drift*(0.5+g.rng.Float64()))
	return Sample{
		Coherence:      g.coherence,
		IntegratedInfo: g.integrated,
		Phase:          g.phase,
		Timestamp:      g.now(),
	}
}

// Run emits a sample on each tick of the cadence until ctx-free shutdown via
// the returned stop function. Emission is push-based; the consumer stores
// only the latest value.
func (g *Generator) Run(cadence time.Duration, emit func(Sample)) (stop func()) {
	if cadence <= 0 {
		cadence = time.Second
	}
	quit := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cadence)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				emit(g.Step())
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(quit) }) }
}
