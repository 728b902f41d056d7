package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// PlueckerLine holds the Pluecker coordinates of an infinite line: N is the normal of the plane
// through the line and the origin, V the (unnormalized) direction of the line.
type PlueckerLine struct {
	N r3.Vector
	V r3.Vector
}

// EndpointsToPluecker returns n = start x end and v = end - start.
func EndpointsToPluecker(start, end r3.Vector) (PlueckerLine, error) {
	if err := checkEndpoints(start, end); err != nil {
		return PlueckerLine{}, err
	}
	return PlueckerLine{
		N: start.Cross(end),
		V: end.Sub(start),
	}, nil
}

// Vector returns n then v as 6 values.
func (p PlueckerLine) Vector() [6]float64 {
	return [6]float64{p.N.X, p.N.Y, p.N.Z, p.V.X, p.V.Y, p.V.Z}
}

// PlueckerFromVector is the inverse of Vector.
func PlueckerFromVector(v [6]float64) PlueckerLine {
	return PlueckerLine{
		N: r3.Vector{X: v[0], Y: v[1], Z: v[2]},
		V: r3.Vector{X: v[3], Y: v[4], Z: v[5]},
	}
}

// Residual returns n.v, which is zero for any valid line.
func (p PlueckerLine) Residual() float64 {
	return p.N.Dot(p.V)
}

// DistanceToOrigin returns |n| / |v|, the distance from the origin to the line.
func (p PlueckerLine) DistanceToOrigin() float64 {
	vNorm := p.V.Norm()
	if vNorm == 0 {
		return math.NaN()
	}
	return p.N.Norm() / vNorm
}

// Orthonormal converts to the orthonormal representation using DefaultRotationTolerance.
func (p PlueckerLine) Orthonormal() (OrthonormalLine, error) {
	return PlueckerToOrthonormal(p, DefaultRotationTolerance)
}
