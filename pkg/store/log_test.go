package store

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wiltonos/field-viz/pkg/field"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "coherence-log-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Logf("Error removing temp dir: %v", err)
		}
	})

	l, err := Open(filepath.Join(tmpDir, "log.db"))
	if err != nil {
		t.Fatalf("Failed to open log: %v", err)
	}
	t.Cleanup(func() {
		if err := l.Close(); err != nil {
			t.Logf("Error closing log: %v", err)
		}
	})
	return l
}

func sampleAt(ts time.Time, coherence float64) field.Sample {
	return field.Sample{Coherence: coherence, IntegratedInfo: 0.5, Phase: 1, Timestamp: ts}
}

func TestLogAppendAndRecent(t *testing.T) {
	l := openTestLog(t)
	base := time.Unix(1700000000, 0)

	for i := 0; i < 10; i++ {
		if err := l.Append(sampleAt(base.Add(time.Duration(i)*time.Second), float64(i)/10)); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	got, err := l.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent(3) returned %d samples", len(got))
	}
	// Newest first.
	if got[0].Coherence != 0.9 || got[2].Coherence != 0.7 {
		t.Errorf("wrong order: got coherences %v, %v, %v", got[0].Coherence, got[1].Coherence, got[2].Coherence)
	}
}

func TestLogRange(t *testing.T) {
	l := openTestLog(t)
	base := time.Unix(1700000000, 0)

	var all []field.Sample
	for i := 0; i < 10; i++ {
		all = append(all, sampleAt(base.Add(time.Duration(i)*time.Second), 0.5))
	}
	if err := l.AppendBatch(all); err != nil {
		t.Fatalf("AppendBatch: %v", err)
	}

	from := base.Add(2 * time.Second).UnixNano()
	to := base.Add(5 * time.Second).UnixNano()
	got, err := l.Range(from, to)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Range returned %d samples; want 3", len(got))
	}
	if !got[0].Timestamp.Equal(base.Add(2 * time.Second)) {
		t.Errorf("first sample at %v; want %v", got[0].Timestamp, base.Add(2*time.Second))
	}
}

func TestLogRejectsInvalid(t *testing.T) {
	l := openTestLog(t)
	bad := field.Sample{Coherence: math.NaN(), IntegratedInfo: 0.5, Phase: 0, Timestamp: time.Now()}
	if err := l.Append(bad); err == nil {
		t.Fatal("Append accepted an invalid sample")
	}
	got, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("invalid sample was persisted: %d entries", len(got))
	}
}

func TestLogBatchSkipsInvalid(t *testing.T) {
	l := openTestLog(t)
	base := time.Unix(1700000000, 0)
	batch := []field.Sample{
		sampleAt(base, 0.5),
		{Coherence: 3, IntegratedInfo: 0.5, Phase: 0, Timestamp: base.Add(time.Second)},
		sampleAt(base.Add(2*time.Second), 0.6),
	}
	if err := l.AppendBatch(batch); err != nil {
		t.Fatalf("AppendBatch: %v", err)
	}
	got, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("persisted %d samples; want 2 (invalid one skipped)", len(got))
	}
}
