package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// SegmentClamp selects which segment ends restrict the closest points. With every flag unset the
// segments are treated as infinite lines.
type SegmentClamp struct {
	A0, A1, B0, B1 bool
}

// ClampAll restricts both closest points to their segments.
var ClampAll = SegmentClamp{A0: true, A1: true, B0: true, B1: true}

func (c SegmentClamp) any() bool {
	return c.A0 || c.A1 || c.B0 || c.B1
}

// SegmentDistanceToSegment returns the minimum distance between segments a0-a1 and b0-b1.
func SegmentDistanceToSegment(a0, a1, b0, b1 r3.Vector) float64 {
	_, _, dist, _ := ClosestPointsSegmentSegment(a0, a1, b0, b1, ClampAll)
	return dist
}

// ClosestPointsSegmentSegment returns the closest points pA on a0-a1 and pB on b0-b1 and the
// distance between them. Both segments must have non-zero length.
//
// When the segments are parallel and overlap along their shared direction there is no unique
// closest pair: unique is false, pA and pB are zero vectors, and dist is the distance between
// the two parallel lines.
func ClosestPointsSegmentSegment(a0, a1, b0, b1 r3.Vector, clamp SegmentClamp) (pA, pB r3.Vector, dist float64, unique bool) {
	segA := a1.Sub(a0)
	segB := b1.Sub(b0)
	magA := segA.Norm()
	magB := segB.Norm()

	unitA := segA.Mul(1 / magA)
	unitB := segB.Mul(1 / magB)

	cross := unitA.Cross(unitB)
	denom := cross.Norm2()

	if denom == 0 {
		d0 := unitA.Dot(b0.Sub(a0))

		// Overlap is only possible with clamping.
		if clamp.any() {
			d1 := unitA.Dot(b1.Sub(a0))

			switch {
			case d0 <= 0 && d1 <= 0:
				// B lies before A.
				if clamp.A0 && clamp.B1 {
					if math.Abs(d0) < math.Abs(d1) {
						return a0, b0, a0.Distance(b0), true
					}
					return a0, b1, a0.Distance(b1), true
				}
			case d0 >= magA && d1 >= magA:
				// B lies after A.
				if clamp.A1 && clamp.B0 {
					if math.Abs(d0) < math.Abs(d1) {
						return a1, b0, a1.Distance(b0), true
					}
					return a1, b1, a1.Distance(b1), true
				}
			}
		}

		// Overlapping parallel segments: infinitely many closest pairs, one distance.
		return r3.Vector{}, r3.Vector{}, unitA.Mul(d0).Add(a0).Distance(b0), false
	}

	// Lines criss-cross: project onto each line.
	t := b0.Sub(a0)
	t0 := det3(t, unitB, cross) / denom
	t1 := det3(t, unitA, cross) / denom

	pA = a0.Add(unitA.Mul(t0))
	pB = b0.Add(unitB.Mul(t1))

	if clamp.any() {
		clampedA := false
		if clamp.A0 && t0 < 0 {
			pA = a0
			clampedA = true
		} else if clamp.A1 && t0 > magA {
			pA = a1
			clampedA = true
		}

		clampedB := false
		if clamp.B0 && t1 < 0 {
			pB = b0
			clampedB = true
		} else if clamp.B1 && t1 > magB {
			pB = b1
			clampedB = true
		}

		// A moved onto an endpoint, so the best point on B changes with it.
		if clampedA {
			pB = projectOntoSegment(b0, unitB, magB, pA, clamp.B0, clamp.B1)
		}
		// Then B moved, so refit A against the final point on B.
		if clampedB {
			pA = projectOntoSegment(a0, unitA, magA, pB, clamp.A0, clamp.A1)
		}
	}

	return pA, pB, pA.Distance(pB), true
}

// projectOntoSegment returns the projection of pt onto the line origin + s*unit, with s limited to
// [0, length] on the sides whose clamp flag is set.
func projectOntoSegment(origin, unit r3.Vector, length float64, pt r3.Vector, clampStart, clampEnd bool) r3.Vector {
	s := unit.Dot(pt.Sub(origin))
	if clampStart && s < 0 {
		s = 0
	} else if clampEnd && s > length {
		s = length
	}
	return origin.Add(unit.Mul(s))
}

// det3 returns the determinant of the 3x3 matrix with the given rows.
func det3(row0, row1, row2 r3.Vector) float64 {
	return mgl64.Mat3FromRows(
		mgl64.Vec3{row0.X, row0.Y, row0.Z},
		mgl64.Vec3{row1.X, row1.Y, row1.Z},
		mgl64.Vec3{row2.X, row2.Y, row2.Z},
	).Det()
}
