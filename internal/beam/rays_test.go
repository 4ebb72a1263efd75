package beam

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/banshee-data/beamrays/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialRays(t *testing.T) {
	r, err := InitialRays(7)
	require.NoError(t, err)
	require.Equal(t, 7, r.Num())

	rows, cols := r.Matrix().Dims()
	assert.Equal(t, NumRows, rows)
	assert.Equal(t, 7, cols)

	for row := RowX; row <= RowSlopeY; row++ {
		testutil.AssertAll(t, "row", r.Row(row), 0)
	}
	testutil.AssertAll(t, "homogeneous row", r.Row(RowOne), 1)
}

func TestInitialRays_Empty(t *testing.T) {
	r, err := InitialRays(0)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Num())
	assert.Nil(t, r.Matrix())
	assert.Empty(t, r.X())
	assert.Empty(t, r.Row(RowOne))
}

func TestInitialRays_Negative(t *testing.T) {
	_, err := InitialRays(-1)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestCircularBeam(t *testing.T) {
	const radius = 2.0
	r, err := CircularBeam(100, radius, false)
	require.NoError(t, err)
	require.Equal(t, 100, r.Num())

	testutil.AssertAll(t, "homogeneous row", r.Row(RowOne), 1)
	testutil.AssertAll(t, "slope x", r.SlopeX(), 0)
	testutil.AssertAll(t, "slope y", r.SlopeY(), 0)

	x, y := r.X(), r.Y()
	testutil.AssertInDisc(t, y, x, radius, false)

	wantY, wantX, err := ConcentricRings(100, radius)
	require.NoError(t, err)
	assert.Equal(t, wantX, x)
	assert.Equal(t, wantY, y)
}

func TestCircularBeam_Random(t *testing.T) {
	s := Sampler{Random: true, Src: rand.NewPCG(9, 9)}
	r, err := s.CircularBeam(1000, 0.1)
	require.NoError(t, err)
	require.Greater(t, r.Num(), 0)

	testutil.AssertAll(t, "homogeneous row", r.Row(RowOne), 1)
	testutil.AssertAll(t, "slope x", r.SlopeX(), 0)
	testutil.AssertInDisc(t, r.Y(), r.X(), 0.1, true)
}

func TestPointBeam(t *testing.T) {
	const semiangle = 0.01
	r, err := PointBeam(50, semiangle, false)
	require.NoError(t, err)

	wantY, wantX, err := ConcentricRings(50, semiangle)
	require.NoError(t, err)
	require.Equal(t, len(wantY), r.Num())

	testutil.AssertAll(t, "x", r.X(), 0)
	testutil.AssertAll(t, "y", r.Y(), 0)
	testutil.AssertAll(t, "homogeneous row", r.Row(RowOne), 1)
	// Sampled y goes to row 1 and sampled x to row 3.
	assert.Equal(t, wantY, r.SlopeX())
	assert.Equal(t, wantX, r.SlopeY())
}

func TestBeams_InvalidGeometry(t *testing.T) {
	_, err := CircularBeam(10, -1, false)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = PointBeam(0, 0.01, true)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestSampler_Build(t *testing.T) {
	s := Sampler{}
	r, err := s.Build(KindCircular, 8, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r.At(RowX, 0), 1e-12)

	r, err = s.Build(KindPoint, 8, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, r.At(RowSlopeY, 0), 1e-12)

	_, err = s.Build(Kind("pencil"), 8, 1)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("point")
	require.NoError(t, err)
	assert.Equal(t, KindPoint, k)

	_, err = ParseKind("Point")
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestNewRays(t *testing.T) {
	r, err := NewRays([]float64{1, 2}, []float64{3, 4}, []float64{5, 6}, []float64{7, 8})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, r.X())
	assert.Equal(t, []float64{3, 4}, r.SlopeX())
	assert.Equal(t, []float64{5, 6}, r.Y())
	assert.Equal(t, []float64{7, 8}, r.SlopeY())
	assert.Equal(t, []float64{1, 1}, r.Row(RowOne))

	r.SetRay(1, -1, -2, -3, -4)
	assert.Equal(t, -3.0, r.At(RowY, 1))
	assert.Equal(t, 1.0, r.At(RowOne, 1))

	_, err = NewRays([]float64{1}, nil, []float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	empty, err := NewRays(nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Num())
}
