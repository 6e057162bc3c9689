// Package field ingests coherence field samples, either from the local
// synthetic generator or from a field server over websocket. The render loop
// never waits on this package: samples are pushed into smoother targets and
// the latest value wins.
package field

import (
	"math"
	"time"
)

// Sample is one reading of the coherence field. Samples are immutable once
// produced; newer samples supersede older ones rather than mutating them.
type Sample struct {
	Coherence      float64   `json:"coherence"`       // [0,1]
	IntegratedInfo float64   `json:"integrated_info"` // [0,1]
	Phase          float64   `json:"phase"`           // radians, [0,2pi)
	Timestamp      time.Time `json:"timestamp"`
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Valid reports whether every channel is finite and in its declared domain.
// Invalid samples are dropped at the ingestion boundary so they can never
// reach a smoother or a draw call.
func (s Sample) Valid() bool {
	if !finite(s.Coherence) || s.Coherence < 0 || s.Coherence > 1 {
		return false
	}
	if !finite(s.IntegratedInfo) || s.IntegratedInfo < 0 || s.IntegratedInfo > 1 {
		return false
	}
	return finite(s.Phase)
}
