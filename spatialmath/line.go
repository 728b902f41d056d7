package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
)

// LineSegment is a finite 3D segment given by its two endpoints.
type LineSegment struct {
	Start r3.Vector
	End   r3.Vector
}

// NewLineSegment returns the segment from start to end. Zero-length segments and non-finite
// coordinates are rejected.
func NewLineSegment(start, end r3.Vector) (LineSegment, error) {
	if err := checkEndpoints(start, end); err != nil {
		return LineSegment{}, err
	}
	return LineSegment{Start: start, End: end}, nil
}

// Length returns the distance between the endpoints.
func (l LineSegment) Length() float64 {
	return l.End.Sub(l.Start).Norm()
}

// Center returns the midpoint of the segment.
func (l LineSegment) Center() r3.Vector {
	return l.Start.Add(l.End).Mul(0.5)
}

// Reversed returns the same segment with its endpoints swapped.
func (l LineSegment) Reversed() LineSegment {
	return LineSegment{Start: l.End, End: l.Start}
}

// CenterpointAndDirection returns the orientation-invariant center/direction form of the segment.
func (l LineSegment) CenterpointAndDirection() (CenterpointDirection, error) {
	return EndpointsToCenterpointAndDirection(l.Start, l.End)
}

// Pluecker returns the Pluecker coordinates of the infinite line through the segment.
func (l LineSegment) Pluecker() (PlueckerLine, error) {
	return EndpointsToPluecker(l.Start, l.End)
}

// DistanceToSegment returns the minimum distance between the two segments.
func (l LineSegment) DistanceToSegment(other LineSegment) float64 {
	return SegmentDistanceToSegment(l.Start, l.End, other.Start, other.End)
}

// CenterpointDirection is a segment described by its midpoint and a unit direction whose X
// component is non-negative, so that both endpoint orders give the same value.
type CenterpointDirection struct {
	Center    r3.Vector
	Direction r3.Vector
}

// Vector returns center then direction as 6 values.
func (cd CenterpointDirection) Vector() [6]float64 {
	return [6]float64{
		cd.Center.X, cd.Center.Y, cd.Center.Z,
		cd.Direction.X, cd.Direction.Y, cd.Direction.Z,
	}
}

// EndpointsToCenterpointAndDirection returns the center of the segment and its unit direction,
// negated when the direction's first entry is negative.
func EndpointsToCenterpointAndDirection(start, end r3.Vector) (CenterpointDirection, error) {
	if err := checkEndpoints(start, end); err != nil {
		return CenterpointDirection{}, err
	}
	direction := end.Sub(start).Normalize()
	if direction.X < 0 {
		direction = direction.Mul(-1)
	}
	return CenterpointDirection{
		Center:    start.Add(end).Mul(0.5),
		Direction: direction,
	}, nil
}

func checkEndpoints(start, end r3.Vector) error {
	if !isFiniteVector(start) {
		return newNonFiniteError("start point", start)
	}
	if !isFiniteVector(end) {
		return newNonFiniteError("end point", end)
	}
	if end.Sub(start).Norm2() == 0 {
		return newZeroLengthError(start, end)
	}
	return nil
}

// isFiniteVector rejects NaN and infinite components. The max norm cannot overflow on finite input.
func isFiniteVector(v r3.Vector) bool {
	coords := []float64{v.X, v.Y, v.Z}
	return !floats.HasNaN(coords) && !math.IsInf(floats.Norm(coords, math.Inf(1)), 1)
}
