package testutil

import (
	"errors"
	"testing"
)

func TestAssertNoError(t *testing.T) {
	// Should not fail for nil error
	AssertNoError(t, nil)
}

func TestAssertError(t *testing.T) {
	// Should not fail for non-nil error
	AssertError(t, errors.New("test error"))
}

func TestAssertAll(t *testing.T) {
	AssertAll(t, "ones", []float64{1, 1, 1}, 1)
	AssertAll(t, "empty", nil, 0)
}

func TestAssertInDisc(t *testing.T) {
	ys := []float64{0, 0.6, -1}
	xs := []float64{1, 0.8, 0}
	AssertInDisc(t, ys, xs, 1, false)
	AssertInDisc(t, []float64{0.5}, []float64{0.5}, 1, true)
}
