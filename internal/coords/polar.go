package coords

import (
	"fmt"
	"math/cmplx"
)

// P2R converts polar coordinates to complex numbers r·e^{iθ}; the real part is
// x and the imaginary part y.
func P2R(radii, angles []float64) ([]complex128, error) {
	if len(radii) != len(angles) {
		return nil, fmt.Errorf("%w: %d radii but %d angles", ErrInvalidGeometry, len(radii), len(angles))
	}
	out := make([]complex128, len(radii))
	for i := range radii {
		out[i] = cmplx.Rect(radii[i], angles[i])
	}
	return out, nil
}

// R2P returns the magnitude and phase, in (-π, π], of each value.
func R2P(z []complex128) (radii, angles []float64) {
	radii = make([]float64, len(z))
	angles = make([]float64, len(z))
	for i, v := range z {
		radii[i], angles[i] = cmplx.Polar(v)
	}
	return radii, angles
}
