// Package testutil provides shared assertions for numeric tests.
package testutil

import (
	"math"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertAll checks that every element of vals equals want exactly.
func AssertAll(t *testing.T, name string, vals []float64, want float64) {
	t.Helper()
	for i, v := range vals {
		if v != want {
			t.Fatalf("%s[%d] = %g, want %g", name, i, v, want)
		}
	}
}

// AssertInDisc checks that every (y, x) point lies within radius of the
// origin: strictly inside when strict is set, otherwise within radius+1e-12.
func AssertInDisc(t *testing.T, ys, xs []float64, radius float64, strict bool) {
	t.Helper()
	if len(ys) != len(xs) {
		t.Fatalf("got %d y values but %d x values", len(ys), len(xs))
	}
	for i := range ys {
		r := math.Hypot(ys[i], xs[i])
		if strict && !(r < radius) {
			t.Fatalf("point %d at radius %g, want < %g", i, r, radius)
		}
		if !strict && r > radius+1e-12 {
			t.Fatalf("point %d at radius %g, want <= %g", i, r, radius)
		}
	}
}
