package units

import (
	"math"
	"testing"
)

func TestCalculateWavelength(t *testing.T) {
	// Non-relativistic wavelength at 100 V is about 1.226 Å.
	got := CalculateWavelength(100)
	want := 1.2264e-10
	if math.Abs(got-want)/want > 1e-3 {
		t.Errorf("CalculateWavelength(100) = %g, want ≈ %g", got, want)
	}
}

func TestWavelengthPhi0RoundTrip(t *testing.T) {
	for _, v := range []float64{1, 100, 3e3, 2e5, 3e5, 1e6} {
		got := CalculatePhi0(CalculateWavelength(v))
		if math.Abs(got-v)/v > 1e-12 {
			t.Errorf("CalculatePhi0(CalculateWavelength(%g)) = %g", v, got)
		}
	}
}

func TestWavelengthDecreasesWithVoltage(t *testing.T) {
	prev := math.Inf(1)
	for _, v := range []float64{10, 100, 1e3, 1e4, 1e5} {
		w := CalculateWavelength(v)
		if w >= prev {
			t.Errorf("wavelength at %g V (%g) not below previous (%g)", v, w, prev)
		}
		prev = w
	}
}
