// Package coords maps ray coordinates between polar, cartesian and detector
// pixel frames.
//
// 2D transforms act on row vectors in (y, x) order: a point p is mapped as
// p·T. ScanTransform left-multiplies the scan rotation onto the optional
// flip, T = R·F.
package coords

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidGeometry is returned for mismatched inputs or a non-positive
// detector shape or pixel size.
var ErrInvalidGeometry = errors.New("invalid geometry")

// FlipY negates the first (y) component.
func FlipY() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		-1, 0,
		0, 1,
	})
}

// Identity returns the 2×2 identity.
func Identity() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})
}

// Rotate returns the rotation by radians in the y, x row convention.
func Rotate(radians float64) *mat.Dense {
	sin, cos := math.Sincos(radians)
	return mat.NewDense(2, 2, []float64{
		cos, sin,
		-sin, cos,
	})
}

// RotateDeg is Rotate with the angle in degrees.
func RotateDeg(degrees float64) *mat.Dense {
	return Rotate(math.Pi / 180 * degrees)
}

// ScanTransform composes the scan rotation with an optional y flip.
func ScanTransform(flipY bool, scanRotationDeg float64) *mat.Dense {
	base := Identity()
	if flipY {
		base = FlipY()
	}
	var total mat.Dense
	total.Mul(RotateDeg(scanRotationDeg), base)
	return &total
}

// Apply maps each (y, x) pair through t as a row vector.
func Apply(t mat.Matrix, ys, xs []float64) (yOut, xOut []float64, err error) {
	if len(ys) != len(xs) {
		return nil, nil, fmt.Errorf("%w: %d y values but %d x values", ErrInvalidGeometry, len(ys), len(xs))
	}
	if r, c := t.Dims(); r != 2 || c != 2 {
		return nil, nil, fmt.Errorf("%w: transform must be 2x2, got %dx%d", ErrInvalidGeometry, r, c)
	}
	n := len(ys)
	if n == 0 {
		return []float64{}, []float64{}, nil
	}

	points := mat.NewDense(n, 2, nil)
	points.SetCol(0, ys)
	points.SetCol(1, xs)

	var out mat.Dense
	out.Mul(points, t)
	return mat.Col(nil, 0, &out), mat.Col(nil, 1, &out), nil
}

// PixelCoords maps physical (y, x) ray coordinates onto a detector grid of
// shape (sy, sx). The flip and scan rotation are applied first, then
// coordinates are scaled by pixelSize and offset so that the origin lands on
// pixel (sy/2, sx/2) using integer division.
func PixelCoords(raysY, raysX []float64, shape [2]int, pixelSize float64, flipY bool, scanRotationDeg float64) (pixelY, pixelX []float64, err error) {
	if shape[0] <= 0 || shape[1] <= 0 {
		return nil, nil, fmt.Errorf("%w: detector shape must be positive, got %v", ErrInvalidGeometry, shape)
	}
	if !(pixelSize > 0) || math.IsInf(pixelSize, 1) {
		return nil, nil, fmt.Errorf("%w: pixel size must be positive and finite, got %g", ErrInvalidGeometry, pixelSize)
	}

	yT, xT, err := Apply(ScanTransform(flipY, scanRotationDeg), raysY, raysX)
	if err != nil {
		return nil, nil, err
	}

	sy, sx := shape[0], shape[1]
	cy, cx := float64(sy/2), float64(sx/2)
	for i := range yT {
		yT[i] = yT[i]/pixelSize + cy
		xT[i] = xT[i]/pixelSize + cx
	}
	return yT, xT, nil
}

// Detector bundles the parameters of PixelCoords.
type Detector struct {
	Shape        [2]int // (sy, sx)
	PixelSize    float64
	FlipY        bool
	ScanRotation float64 // degrees
}

// PixelCoords maps (y, x) coordinates onto this detector.
func (d Detector) PixelCoords(raysY, raysX []float64) (pixelY, pixelX []float64, err error) {
	return PixelCoords(raysY, raysX, d.Shape, d.PixelSize, d.FlipY, d.ScanRotation)
}
