package spatialmath

import (
	"math"

	"github.com/pkg/errors"
)

// OrthonormalLine is the minimal 4-DOF encoding of an infinite line (Bartoli and Sturm).
// Theta[0:3] are the x-y-z Euler angles of U in SO(3), so U = Rx(Theta[0])*Ry(Theta[1])*Rz(Theta[2]);
// Theta[3] is the angle of W in SO(2).
type OrthonormalLine struct {
	Theta [4]float64
}

// U returns the rotation matrix encoded by the first three angles.
func (o OrthonormalLine) U() *RotationMatrix {
	return RotationMatrixFromEulerXYZ(o.Theta[0], o.Theta[1], o.Theta[2])
}

// W returns the first column (cos, sin) of the SO(2) matrix encoded by the last angle.
func (o OrthonormalLine) W() (float64, float64) {
	sin, cos := math.Sincos(o.Theta[3])
	return cos, sin
}

// PlueckerToOrthonormal returns the orthonormal representation of a line given in Pluecker
// coordinates. U has columns n/|n|, v/|v| and (n x v)/|n x v|; W is [[w1, -w2], [w2, w1]]
// scaled to unit norm with w1 = |n|, w2 = |v|. Lines through the origin (n = 0) and zero
// directions are ErrDegenerateLine; a U that is not orthonormal within tolerance is
// ErrNotRotationMatrix.
func PlueckerToOrthonormal(p PlueckerLine, tolerance float64) (OrthonormalLine, error) {
	n, v := p.N, p.V
	if !isFiniteVector(n) || !isFiniteVector(v) {
		return OrthonormalLine{}, errors.Wrapf(ErrNonFinite, "pluecker coordinates %v", p.Vector())
	}
	w1 := n.Norm()
	w2 := v.Norm()
	if w1 == 0 {
		return OrthonormalLine{}, errors.Wrap(ErrDegenerateLine, "line passes through the origin")
	}
	if w2 == 0 {
		return OrthonormalLine{}, errors.Wrap(ErrDegenerateLine, "line has zero direction")
	}
	nCrossV := n.Cross(v)
	nCrossVNorm := nCrossV.Norm()
	if nCrossVNorm == 0 {
		return OrthonormalLine{}, errors.Wrap(ErrDegenerateLine, "normal and direction are parallel")
	}

	u := NewRotationMatrixFromColumns(n.Mul(1/w1), v.Mul(1/w2), nCrossV.Mul(1/nCrossVNorm))
	if err := u.Validate(tolerance); err != nil {
		return OrthonormalLine{}, err
	}

	scale := math.Hypot(w1, w2)
	w00, w10 := w1/scale, w2/scale

	theta1, theta2, theta3 := u.EulerAnglesXYZ()
	return OrthonormalLine{Theta: [4]float64{theta1, theta2, theta3, math.Atan2(w10, w00)}}, nil
}

// OrthonormalToPluecker maps an orthonormal representation back to Pluecker coordinates,
// n = cos(theta4) * U[:,0] and v = sin(theta4) * U[:,1]. The result equals the Pluecker
// coordinates o was built from, divided by sqrt(|n|^2 + |v|^2).
func OrthonormalToPluecker(o OrthonormalLine) PlueckerLine {
	u := o.U()
	w00, w10 := o.W()
	return PlueckerLine{
		N: u.Col(0).Mul(w00),
		V: u.Col(1).Mul(w10),
	}
}
