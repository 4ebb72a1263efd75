package beam

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRingLayout_EightPoints(t *testing.T) {
	l, err := NewRingLayout(8, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 1, l.RingCount())
	assert.Equal(t, []int{8}, l.PointsPerRing)
	assert.Equal(t, []float64{1.0}, l.Radii)
	assert.InDelta(t, math.Pi/4, l.AngularSteps[0], 1e-15)
	assert.Equal(t, 8, l.TotalPoints())
}

func TestNewRingLayout_SinglePoint(t *testing.T) {
	l, err := NewRingLayout(1, 2.5)
	require.NoError(t, err)

	assert.Equal(t, 1, l.RingCount())
	assert.Equal(t, []int{1}, l.PointsPerRing)
	assert.Equal(t, []float64{2.5}, l.Radii)
	assert.Empty(t, l.DegenerateRings())
	assert.NoError(t, l.Check())
}

func TestNewRingLayout_KnownAllocations(t *testing.T) {
	tests := []struct {
		n       int
		rings   int
		perRing []int
	}{
		// weights 6, 13 sum to 19: one point per unit weight
		{n: 19, rings: 2, perRing: []int{6, 13}},
		// weights 6, 13, 19, 25, 31 sum to 94
		{n: 100, rings: 5, perRing: []int{6, 14, 20, 27, 33}},
	}

	for _, tt := range tests {
		l, err := NewRingLayout(tt.n, 1.0)
		require.NoError(t, err)
		assert.Equal(t, tt.rings, l.RingCount(), "n=%d", tt.n)
		assert.Equal(t, tt.perRing, l.PointsPerRing, "n=%d", tt.n)
	}
}

func TestNewRingLayout_Properties(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8, 18, 19, 50, 100, 257, 1000, 10000} {
		for _, radius := range []float64{1e-6, 0.3, 1, 7.5} {
			l, err := NewRingLayout(n, radius)
			require.NoError(t, err)

			require.Len(t, l.Radii, l.RingCount())
			require.Len(t, l.AngularSteps, l.RingCount())
			assert.Equal(t, radius, l.Radii[len(l.Radii)-1], "outer ring must sit exactly at radius")
			for k := 1; k < len(l.Radii); k++ {
				assert.Greater(t, l.Radii[k], l.Radii[k-1], "radii must increase (n=%d)", n)
			}
			assert.Greater(t, l.Radii[0], 0.0)

			// Rounding error is at most one half point per ring.
			diff := math.Abs(float64(l.TotalPoints() - n))
			assert.LessOrEqual(t, diff, float64(l.RingCount()), "n=%d total=%d", n, l.TotalPoints())

			for k, p := range l.PointsPerRing {
				assert.InDelta(t, 2*math.Pi/float64(p), l.AngularSteps[k], 1e-12)
			}
		}
	}
}

func TestNewRingLayout_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		radius float64
	}{
		{"zero points", 0, 1},
		{"negative points", -3, 1},
		{"zero radius", 10, 0},
		{"negative radius", 10, -1},
		{"NaN radius", 10, math.NaN()},
		{"infinite radius", 10, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRingLayout(tt.n, tt.radius)
			assert.True(t, errors.Is(err, ErrInvalidGeometry), "got %v", err)
		})
	}
}

func TestRingLayout_DegenerateRings(t *testing.T) {
	l := &RingLayout{
		NumPointsApprox: 4,
		Radius:          1,
		PointsPerRing:   []int{0, 4},
		Radii:           []float64{0.5, 1},
		AngularSteps:    []float64{math.Inf(1), math.Pi / 2},
	}

	assert.Equal(t, []int{0}, l.DegenerateRings())
	assert.ErrorIs(t, l.Check(), ErrDegenerateRing)
}
