package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

var (
	// ErrDegenerateLine is returned when a line has no well defined direction or, for the
	// orthonormal representation, passes through the origin.
	ErrDegenerateLine = errors.New("degenerate line")
	// ErrNotRotationMatrix is returned when a matrix expected to be in SO(3) is not orthonormal.
	ErrNotRotationMatrix = errors.New("matrix is not a rotation matrix")
	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = errors.New("non-finite coordinate")
)

func newZeroLengthError(start, end r3.Vector) error {
	return errors.Wrapf(ErrDegenerateLine, "zero-length segment from %v to %v", start, end)
}

func newNonFiniteError(name string, v r3.Vector) error {
	return errors.Wrapf(ErrNonFinite, "%s %v", name, v)
}

func newNotRotationMatrixError(residual, tolerance float64) error {
	return errors.Wrapf(ErrNotRotationMatrix, "||I - U*U^T|| = %g exceeds tolerance %g", residual, tolerance)
}
