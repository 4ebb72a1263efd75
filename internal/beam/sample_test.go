package beam

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/banshee-data/beamrays/internal/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcentricRings_EightPoints(t *testing.T) {
	y, x, err := ConcentricRings(8, 1.0)
	require.NoError(t, err)
	require.Len(t, y, 8)
	require.Len(t, x, 8)

	// First point at angle 0, then every 45°, never wrapping to 2π.
	for i := range y {
		a := float64(i) * math.Pi / 4
		assert.InDelta(t, math.Sin(a), y[i], 1e-12, "y[%d]", i)
		assert.InDelta(t, math.Cos(a), x[i], 1e-12, "x[%d]", i)
	}
}

func TestConcentricRings_WithinRadiusAndCount(t *testing.T) {
	for _, n := range []int{1, 19, 100, 1000} {
		for _, radius := range []float64{0.01, 1, 3} {
			y, x, err := ConcentricRings(n, radius)
			require.NoError(t, err)

			l, err := NewRingLayout(n, radius)
			require.NoError(t, err)
			require.Len(t, y, l.TotalPoints())
			require.Len(t, x, l.TotalPoints())

			for i := range y {
				assert.LessOrEqual(t, math.Hypot(y[i], x[i]), radius+1e-12)
			}
		}
	}
}

func TestConcentricRings_RingStructure(t *testing.T) {
	y, x, err := ConcentricRings(19, 2.0)
	require.NoError(t, err)
	require.Len(t, y, 19)

	// First ring: 6 points at r=1, second ring: 13 points at r=2.
	for i := 0; i < 6; i++ {
		assert.InDelta(t, 1.0, math.Hypot(y[i], x[i]), 1e-12)
	}
	for i := 6; i < 19; i++ {
		assert.InDelta(t, 2.0, math.Hypot(y[i], x[i]), 1e-12)
	}
	// Each ring restarts at angle 0 on the +x axis.
	assert.InDelta(t, 1.0, x[0], 1e-12)
	assert.InDelta(t, 0.0, y[0], 1e-12)
	assert.InDelta(t, 2.0, x[6], 1e-12)
	assert.InDelta(t, 0.0, y[6], 1e-12)
}

func TestRingLayout_CoordsSkipsDegenerateRing(t *testing.T) {
	original := monitoring.Logf
	defer func() { monitoring.Logf = original }()
	var logged int
	monitoring.SetLogger(func(string, ...interface{}) { logged++ })

	l := &RingLayout{
		NumPointsApprox: 4,
		Radius:          1,
		PointsPerRing:   []int{0, 4},
		Radii:           []float64{0.5, 1},
		AngularSteps:    []float64{math.Inf(1), math.Pi / 2},
	}

	y, x, err := l.Coords()
	require.NoError(t, err)
	require.Len(t, y, 4)
	assert.Equal(t, 1, logged, "degenerate ring should be reported once")

	for i := range y {
		assert.False(t, math.IsNaN(y[i]) || math.IsNaN(x[i]), "point %d is NaN", i)
		assert.InDelta(t, 1.0, math.Hypot(y[i], x[i]), 1e-12)
	}
	assert.InDelta(t, 1.0, y[1], 1e-12)
	assert.InDelta(t, -1.0, x[2], 1e-12)
}

func TestRandomCoords(t *testing.T) {
	src := rand.NewPCG(1, 2)
	const n = 10000
	const radius = 0.5

	y, x, err := RandomCoords(n, radius, src)
	require.NoError(t, err)
	require.Equal(t, len(y), len(x))

	for i := range y {
		assert.Less(t, math.Hypot(y[i], x[i]), radius)
	}

	// 12732 draws with acceptance π/4: mean ≈ 10000, σ ≈ 46.
	assert.InDelta(t, n, len(y), 300)
}

func TestRandomCoords_Deterministic(t *testing.T) {
	y1, x1, err := RandomCoords(100, 1, rand.NewPCG(42, 42))
	require.NoError(t, err)
	y2, x2, err := RandomCoords(100, 1, rand.NewPCG(42, 42))
	require.NoError(t, err)

	assert.Equal(t, y1, y2)
	assert.Equal(t, x1, x2)
}

func TestRandomCoords_InvalidGeometry(t *testing.T) {
	_, _, err := RandomCoords(0, 1, nil)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	_, _, err = RandomCoords(10, 0, nil)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	_, _, err = RandomCoords(10, math.NaN(), nil)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestSampler_Coords(t *testing.T) {
	y, x, err := Sampler{}.Coords(8, 1)
	require.NoError(t, err)
	assert.Len(t, y, 8)
	assert.Len(t, x, 8)

	y, _, err = Sampler{Random: true, Src: rand.NewPCG(3, 4)}.Coords(500, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, y)
}
