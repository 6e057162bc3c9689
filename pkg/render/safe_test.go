package render

import (
	"math"
	"testing"
)

func TestSafeRadius(t *testing.T) {
	tests := []struct {
		name      string
		requested float64
		maxDim    float64
		want      float64
	}{
		{"inside bounds", 50, 400, 50},
		{"clamped to half dimension", 1000, 600, 300},
		{"negative flips to magnitude", -80, 400, 80},
		{"negative beyond bound", -900, 400, 200},
		{"zero floors at one", 0, 400, 1},
		{"NaN floors at one", math.NaN(), 100, 1},
		{"zero dimension keeps magnitude", 500, 0, 500},
		{"negative dimension keeps magnitude", 500, -10, 500},
	}
	for _, tt := range tests {
		if got := SafeRadius(tt.requested, tt.maxDim); got != tt.want {
			t.Errorf("%s: SafeRadius(%v, %v) = %v; want %v", tt.name, tt.requested, tt.maxDim, got, tt.want)
		}
	}
}

func TestSafeRadiusIdempotent(t *testing.T) {
	for _, r := range []float64{-5000, -1, 0, 0.5, 1, 17, 299, 300, 301, 1e9} {
		once := SafeRadius(r, 600)
		twice := SafeRadius(once, 600)
		if once != twice {
			t.Errorf("SafeRadius not idempotent for %v: %v != %v", r, once, twice)
		}
	}
}

func TestSafeRadiusBounds(t *testing.T) {
	for _, r := range []float64{-1e12, -3, 0, 2, 100, 1e12} {
		for _, d := range []float64{2, 10, 333, 4096} {
			got := SafeRadius(r, d)
			if got < 1 || got > d/2 {
				t.Errorf("SafeRadius(%v, %v) = %v out of [1, %v]", r, d, got, d/2)
			}
		}
	}
}

func TestSafeCoordinate(t *testing.T) {
	tests := []struct {
		requested float64
		axis      float64
		want      float64
	}{
		{50, 100, 50},
		{-5, 100, 0},
		{150, 100, 100},
		{0, 100, 0},
		{100, 100, 100},
		{math.NaN(), 100, 0},
		{math.Inf(1), 100, 100},
	}
	for _, tt := range tests {
		if got := SafeCoordinate(tt.requested, tt.axis); got != tt.want {
			t.Errorf("SafeCoordinate(%v, %v) = %v; want %v", tt.requested, tt.axis, got, tt.want)
		}
	}
}

func TestSafeAngleRange(t *testing.T) {
	for _, a := range []float64{-100, -7, -math.Pi, -0.0001, 0, 0.5, math.Pi, 6.28, 7, 1000, -1e6} {
		got := SafeAngle(a)
		if got < 0 || got >= TwoPi {
			t.Errorf("SafeAngle(%v) = %v out of [0, 2pi)", a, got)
		}
	}
}

func TestSafeAnglePeriodicity(t *testing.T) {
	for _, a := range []float64{-9.5, -1, 0, 1, 2.5, 100} {
		got := SafeAngle(a)
		shifted := SafeAngle(a + TwoPi)
		if math.Abs(got-shifted) > 1e-9 {
			t.Errorf("SafeAngle(%v)=%v but SafeAngle(+2pi)=%v", a, got, shifted)
		}
	}
}

func TestSafeAngleInvalid(t *testing.T) {
	if got := SafeAngle(math.NaN()); got != 0 {
		t.Errorf("SafeAngle(NaN) = %v; want 0", got)
	}
	if got := SafeAngle(math.Inf(1)); got != 0 {
		t.Errorf("SafeAngle(+Inf) = %v; want 0", got)
	}
	if got := SafeAngle(math.Inf(-1)); got != 0 {
		t.Errorf("SafeAngle(-Inf) = %v; want 0", got)
	}
}
