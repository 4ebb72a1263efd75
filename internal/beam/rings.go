package beam

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RingLayout describes how approximately NumPointsApprox points are spread
// over concentric rings inside a disc of the given Radius. Ring k (1-based)
// is weighted by its circumference, round(2πk), so areal density stays
// roughly uniform.
type RingLayout struct {
	NumPointsApprox int
	Radius          float64

	// PointsPerRing holds the number of points on each ring, innermost first.
	// An entry may be zero for pathological inputs; see DegenerateRings.
	PointsPerRing []int
	// Radii is strictly increasing and ends exactly at Radius.
	Radii []float64
	// AngularSteps[k] = 2π / PointsPerRing[k]; +Inf for a zero-point ring.
	AngularSteps []float64
}

// NewRingLayout computes the ring layout for numPointsApprox points within
// radius. The number of rings comes from solving π·k·(k+1) ≈ N for k, with a
// minimum of one ring.
func NewRingLayout(numPointsApprox int, radius float64) (*RingLayout, error) {
	if numPointsApprox < 1 {
		return nil, fmt.Errorf("%w: approximate point count must be at least 1, got %d", ErrInvalidGeometry, numPointsApprox)
	}
	if !(radius > 0) || math.IsInf(radius, 1) {
		return nil, fmt.Errorf("%w: radius must be positive and finite, got %g", ErrInvalidGeometry, radius)
	}

	n := float64(numPointsApprox)
	ringCount := int(math.Floor((-1 + math.Sqrt(1+4*n/math.Pi)) / 2))
	if ringCount < 1 {
		ringCount = 1
	}

	weights := make([]float64, ringCount)
	for k := range weights {
		weights[k] = math.Round(2 * math.Pi * float64(k+1))
	}
	perUnit := n / floats.Sum(weights)

	pointsPerRing := make([]int, ringCount)
	steps := make([]float64, ringCount)
	for k, w := range weights {
		// Half-way cases round to even, matching numpy's rounding.
		pointsPerRing[k] = int(math.RoundToEven(w * perUnit))
		steps[k] = 2 * math.Pi / float64(pointsPerRing[k])
	}

	radii := floats.Span(make([]float64, ringCount+1), 0, radius)[1:]
	radii[len(radii)-1] = radius

	return &RingLayout{
		NumPointsApprox: numPointsApprox,
		Radius:          radius,
		PointsPerRing:   pointsPerRing,
		Radii:           radii,
		AngularSteps:    steps,
	}, nil
}

// RingCount returns the number of rings in the layout.
func (l *RingLayout) RingCount() int {
	return len(l.PointsPerRing)
}

// TotalPoints returns the exact number of points the layout produces.
func (l *RingLayout) TotalPoints() int {
	total := 0
	for _, n := range l.PointsPerRing {
		total += n
	}
	return total
}

// DegenerateRings returns the indices of rings that were allotted no points.
func (l *RingLayout) DegenerateRings() []int {
	var out []int
	for k, n := range l.PointsPerRing {
		if n <= 0 {
			out = append(out, k)
		}
	}
	return out
}

// Check reports ErrDegenerateRing when any ring has no points. Callers that
// accept the skip policy can ignore it.
func (l *RingLayout) Check() error {
	if rings := l.DegenerateRings(); len(rings) > 0 {
		return fmt.Errorf("%w: rings %v have no points", ErrDegenerateRing, rings)
	}
	return nil
}
