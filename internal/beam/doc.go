// Package beam generates initial ray distributions for an electron-optics
// column simulator.
//
// A ray set is a 5×N matrix whose columns are rays and whose rows are
// (x, θx, y, θy, 1). The trailing homogeneous row lets downstream optical
// elements apply affine transfer matrices with a single multiplication.
//
// Two beam geometries are provided:
//   - CircularBeam: a parallel beam; sampled points become ray positions.
//   - PointBeam: a diverging point source; sampled points become ray slopes.
//
// Points are either laid out on concentric rings (deterministic, roughly
// uniform areal density) or drawn uniformly at random inside a disc.
package beam
