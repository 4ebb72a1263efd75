package beam

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/banshee-data/beamrays/internal/monitoring"
	"gonum.org/v1/gonum/stat/distuv"
)

// discOversample compensates for the square-to-disc area ratio (≈ 4/π) when
// rejection sampling a disc.
const discOversample = 1.2732

// ConcentricRings places approximately numPointsApprox points on concentric
// rings within radius and returns their (y, x) coordinates. The first point of
// every ring lies at angle 0.
func ConcentricRings(numPointsApprox int, radius float64) (y, x []float64, err error) {
	layout, err := NewRingLayout(numPointsApprox, radius)
	if err != nil {
		return nil, nil, err
	}
	return layout.Coords()
}

// Coords expands the layout into per-point (y, x) coordinates. Rings with no
// points are skipped and logged as an advisory.
func (l *RingLayout) Coords() (y, x []float64, err error) {
	if err := l.Check(); err != nil {
		monitoring.Advisoryf("concentric rings (n≈%d, r=%g): %v", l.NumPointsApprox, l.Radius, err)
	}

	total := l.TotalPoints()
	angles := make([]float64, total)
	radii := make([]float64, total)
	i := 0
	for k, n := range l.PointsPerRing {
		for j := 0; j < n; j++ {
			angles[i] = l.AngularSteps[k]
			radii[i] = l.Radii[k]
			i++
		}
	}
	if err := MultiCumsum(angles, l.PointsPerRing, 0); err != nil {
		return nil, nil, err
	}

	y = make([]float64, total)
	x = make([]float64, total)
	for i, a := range angles {
		sin, cos := math.Sincos(a)
		y[i] = radii[i] * sin
		x[i] = radii[i] * cos
	}
	return y, x, nil
}

// RandomCoords draws points uniformly inside a disc of radius maxR by
// rejection from the enclosing square. About num points are returned; the
// exact count depends on the draw and is not adjusted. A nil src uses the
// global math/rand/v2 source.
func RandomCoords(num int, maxR float64, src rand.Source) (y, x []float64, err error) {
	if num < 1 {
		return nil, nil, fmt.Errorf("%w: point count must be at least 1, got %d", ErrInvalidGeometry, num)
	}
	if !(maxR > 0) || math.IsInf(maxR, 1) {
		return nil, nil, fmt.Errorf("%w: radius must be positive and finite, got %g", ErrInvalidGeometry, maxR)
	}

	draws := int(math.Ceil(float64(num) * discOversample))
	u := distuv.Uniform{Min: -maxR, Max: maxR, Src: src}

	y = make([]float64, 0, num)
	x = make([]float64, 0, num)
	for i := 0; i < draws; i++ {
		py, px := u.Rand(), u.Rand()
		if math.Hypot(py, px) < maxR {
			y = append(y, py)
			x = append(x, px)
		}
	}
	return y, x, nil
}

// Sampler selects how beam points are generated.
type Sampler struct {
	// Random switches from concentric rings to uniform random disc sampling.
	Random bool
	// Src feeds random sampling. Nil uses the global source.
	Src rand.Source
}

// Coords returns approximately num (y, x) points inside a disc of radius.
func (s Sampler) Coords(num int, radius float64) (y, x []float64, err error) {
	if s.Random {
		return RandomCoords(num, radius, s.Src)
	}
	return ConcentricRings(num, radius)
}
