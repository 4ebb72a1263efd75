package beam

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Row indices of the ray-state matrix. The order is fixed; downstream
// transfer matrices depend on it.
const (
	RowX = iota
	RowSlopeX
	RowY
	RowSlopeY
	RowOne

	NumRows
)

// Kind names a beam geometry.
type Kind string

const (
	// KindCircular is a parallel beam with a circular cross-section.
	KindCircular Kind = "circular"
	// KindPoint is a point source diverging within a cone.
	KindPoint Kind = "point"
)

// ParseKind validates a beam kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCircular, KindPoint:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: unknown beam kind %q (want %q or %q)", ErrInvalidGeometry, s, KindCircular, KindPoint)
	}
}

// Rays is a 5×N ray-state matrix. Columns are rays; rows are x, θx, y, θy
// and the homogeneous constant 1.
type Rays struct {
	m *mat.Dense // nil when n == 0
	n int
}

// InitialRays allocates n rays at the origin with zero slope.
func InitialRays(n int) (*Rays, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: ray count must be non-negative, got %d", ErrInvalidGeometry, n)
	}
	r := &Rays{n: n}
	if n == 0 {
		return r, nil
	}
	r.m = mat.NewDense(NumRows, n, nil)
	ones := make([]float64, n)
	floats.AddConst(1, ones)
	r.m.SetRow(RowOne, ones)
	return r, nil
}

// NewRays builds a ray set from per-ray columns. All slices must have the same
// length.
func NewRays(x, slopeX, y, slopeY []float64) (*Rays, error) {
	n := len(x)
	if len(slopeX) != n || len(y) != n || len(slopeY) != n {
		return nil, fmt.Errorf("%w: column lengths differ (%d, %d, %d, %d)",
			ErrInvalidGeometry, len(x), len(slopeX), len(y), len(slopeY))
	}
	r, err := InitialRays(n)
	if err != nil {
		return nil, err
	}
	r.setRow(RowX, x)
	r.setRow(RowSlopeX, slopeX)
	r.setRow(RowY, y)
	r.setRow(RowSlopeY, slopeY)
	return r, nil
}

// Num returns the number of rays.
func (r *Rays) Num() int { return r.n }

// Row returns a copy of the given row.
func (r *Rays) Row(i int) []float64 {
	if r.n == 0 {
		return []float64{}
	}
	return mat.Row(nil, i, r.m)
}

func (r *Rays) X() []float64      { return r.Row(RowX) }
func (r *Rays) SlopeX() []float64 { return r.Row(RowSlopeX) }
func (r *Rays) Y() []float64      { return r.Row(RowY) }
func (r *Rays) SlopeY() []float64 { return r.Row(RowSlopeY) }

// At returns a single matrix element.
func (r *Rays) At(row, col int) float64 {
	return r.m.At(row, col)
}

// SetRay overwrites the position and slope of ray col. The homogeneous row is
// not touched.
func (r *Rays) SetRay(col int, x, slopeX, y, slopeY float64) {
	r.m.Set(RowX, col, x)
	r.m.Set(RowSlopeX, col, slopeX)
	r.m.Set(RowY, col, y)
	r.m.Set(RowSlopeY, col, slopeY)
}

// Matrix exposes the underlying 5×N matrix for propagation. It returns nil
// for an empty ray set.
func (r *Rays) Matrix() mat.Matrix {
	if r.n == 0 {
		return nil
	}
	return r.m
}

func (r *Rays) setRow(i int, v []float64) {
	if r.n == 0 {
		return
	}
	r.m.SetRow(i, v)
}

// CircularBeam samples a parallel beam: the sampled points within outerRadius
// become ray positions and all slopes are zero.
func (s Sampler) CircularBeam(numRaysApprox int, outerRadius float64) (*Rays, error) {
	y, x, err := s.Coords(numRaysApprox, outerRadius)
	if err != nil {
		return nil, fmt.Errorf("circular beam: %w", err)
	}
	r, err := InitialRays(len(y))
	if err != nil {
		return nil, err
	}
	r.setRow(RowX, x)
	r.setRow(RowY, y)
	return r, nil
}

// PointBeam samples a diverging point source: points within semiangle are
// used as slopes and all positions are zero. The sampled y lands in row 1
// and x in row 3.
func (s Sampler) PointBeam(numRaysApprox int, semiangle float64) (*Rays, error) {
	y, x, err := s.Coords(numRaysApprox, semiangle)
	if err != nil {
		return nil, fmt.Errorf("point beam: %w", err)
	}
	r, err := InitialRays(len(y))
	if err != nil {
		return nil, err
	}
	r.setRow(RowSlopeX, y)
	r.setRow(RowSlopeY, x)
	return r, nil
}

// Build dispatches to CircularBeam or PointBeam. For a point beam size is the
// semiangle in radians.
func (s Sampler) Build(kind Kind, numRaysApprox int, size float64) (*Rays, error) {
	switch kind {
	case KindCircular:
		return s.CircularBeam(numRaysApprox, size)
	case KindPoint:
		return s.PointBeam(numRaysApprox, size)
	default:
		return nil, fmt.Errorf("%w: unknown beam kind %q", ErrInvalidGeometry, kind)
	}
}

// CircularBeam generates a circular parallel beam of roughly numRaysApprox
// rays, on concentric rings or at random.
func CircularBeam(numRaysApprox int, outerRadius float64, random bool) (*Rays, error) {
	return Sampler{Random: random}.CircularBeam(numRaysApprox, outerRadius)
}

// PointBeam generates a diverging point-source beam of roughly numRaysApprox
// rays with the given maximum semiangle.
func PointBeam(numRaysApprox int, semiangle float64, random bool) (*Rays, error) {
	return Sampler{Random: random}.PointBeam(numRaysApprox, semiangle)
}
