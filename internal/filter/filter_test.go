package filter

import (
	"math"
	"testing"
)

func TestEMAConvergesToConstantInput(t *testing.T) {
	for _, alpha := range []float64{0.05, 0.3, 0.7, 1.0} {
		const v = 3.7
		filtered := -12.0
		for i := 0; i < 2000; i++ {
			filtered = EMA(v, filtered, alpha)
		}
		if math.Abs(filtered-v) > 1e-9 {
			t.Errorf("alpha=%v: filtered=%v, want convergence to %v", alpha, filtered, v)
		}
	}
}

func TestEMAFirstStep(t *testing.T) {
	got := EMA(10, 0, 0.3)
	if math.Abs(got-3.0) > 1e-12 {
		t.Errorf("EMA(10,0,0.3) = %v, want 3.0", got)
	}
}

func TestEMAAlphaOnePassesThrough(t *testing.T) {
	if got := EMA(5.5, -100, 1.0); got != 5.5 {
		t.Errorf("EMA with alpha=1 = %v, want 5.5", got)
	}
}

func TestHighPassRejectsDC(t *testing.T) {
	// A constant input should decay toward zero.
	const v = 2.0
	filtered := 0.0
	prev := v
	for i := 0; i < 5000; i++ {
		filtered = HighPass(v, prev, filtered, 0.98)
		prev = v
	}
	if math.Abs(filtered) > 1e-9 {
		t.Errorf("high-pass of constant input = %v, want ~0", filtered)
	}
}

func TestMagnitude(t *testing.T) {
	cases := []struct {
		x, y, z, want float64
	}{
		{0, 0, 0, 0},
		{3, 4, 0, 5},
		{1, 2, 2, 3},
		{-3, -4, 0, 5},
	}
	for _, c := range cases {
		if got := Magnitude(c.x, c.y, c.z); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Magnitude(%v,%v,%v) = %v, want %v", c.x, c.y, c.z, got, c.want)
		}
	}
}
