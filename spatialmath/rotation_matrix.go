package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DefaultRotationTolerance is the largest accepted Frobenius norm of I - R*R^T for a matrix to
// be treated as a rotation.
const DefaultRotationTolerance = 1e-4

// gimbalLockEps is the threshold on cos(theta2) below which the x-y-z decomposition is singular.
const gimbalLockEps = 1e-9

// RotationMatrix is a 3x3 matrix in row major order.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates a rotation matrix from 9 row-major values and checks that it is
// orthonormal within DefaultRotationTolerance.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	rm := &RotationMatrix{}
	copy(rm.mat[:], m)
	if err := rm.Validate(DefaultRotationTolerance); err != nil {
		return nil, err
	}
	return rm, nil
}

// NewRotationMatrixFromColumns builds a matrix whose columns are c0, c1 and c2. No validation is
// done; call Validate before trusting the result.
func NewRotationMatrixFromColumns(c0, c1, c2 r3.Vector) *RotationMatrix {
	return &RotationMatrix{[9]float64{
		c0.X, c1.X, c2.X,
		c0.Y, c1.Y, c2.Y,
		c0.Z, c1.Z, c2.Z,
	}}
}

// RotationMatrixFromEulerXYZ returns Rx(theta1) * Ry(theta2) * Rz(theta3).
func RotationMatrixFromEulerXYZ(theta1, theta2, theta3 float64) *RotationMatrix {
	sa, ca := math.Sincos(theta1)
	sb, cb := math.Sincos(theta2)
	sc, cc := math.Sincos(theta3)
	return &RotationMatrix{[9]float64{
		cb * cc, -cb * sc, sb,
		sa*sb*cc + ca*sc, -sa*sb*sc + ca*cc, -sa * cb,
		-ca*sb*cc + sa*sc, ca*sb*sc + sa*cc, ca * cb,
	}}
}

// At returns the value at the given row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the given row as a vector.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[row*3], Y: rm.mat[row*3+1], Z: rm.mat[row*3+2]}
}

// Col returns the given column as a vector.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[3+col], Z: rm.mat[6+col]}
}

// Mul returns the product of the matrix and v.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.Row(0).Dot(v),
		Y: rm.Row(1).Dot(v),
		Z: rm.Row(2).Dot(v),
	}
}

// OrthonormalityResidual returns the Frobenius norm of I - R*R^T.
func (rm *RotationMatrix) OrthonormalityResidual() float64 {
	r := mat.NewDense(3, 3, append([]float64(nil), rm.mat[:]...))
	var rrt mat.Dense
	rrt.Mul(r, r.T())
	var diff mat.Dense
	diff.Sub(mat.NewDiagDense(3, []float64{1, 1, 1}), &rrt)
	return mat.Norm(&diff, 2)
}

// Validate returns ErrNotRotationMatrix when the orthonormality residual exceeds tolerance.
// NaN entries never validate.
func (rm *RotationMatrix) Validate(tolerance float64) error {
	residual := rm.OrthonormalityResidual()
	if math.IsNaN(residual) || residual > tolerance {
		return newNotRotationMatrixError(residual, tolerance)
	}
	return nil
}

// EulerAnglesXYZ decomposes the matrix as Rx(theta1) * Ry(theta2) * Rz(theta3). theta2 is in
// [-pi/2, pi/2]. At gimbal lock (|theta2| = pi/2) theta3 is fixed to 0.
func (rm *RotationMatrix) EulerAnglesXYZ() (theta1, theta2, theta3 float64) {
	cosTheta2 := math.Hypot(rm.At(0, 0), rm.At(0, 1))
	theta2 = math.Atan2(rm.At(0, 2), cosTheta2)
	if cosTheta2 > gimbalLockEps {
		theta1 = math.Atan2(-rm.At(1, 2), rm.At(2, 2))
		theta3 = math.Atan2(-rm.At(0, 1), rm.At(0, 0))
		return theta1, theta2, theta3
	}
	theta1 = math.Atan2(rm.At(2, 1), rm.At(1, 1))
	return theta1, theta2, 0
}
