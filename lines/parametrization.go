// Package lines converts batches of 3D line segments into the parametrizations used by the
// line description and instance clustering stages.
package lines

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidParametrization is returned for an unknown parametrization name.
	ErrInvalidParametrization = errors.New("invalid line parametrization")
	// ErrShapeMismatch is returned when batch inputs disagree in length or width.
	ErrShapeMismatch = errors.New("line batch shape mismatch")
)

// Parametrization names an output encoding of a line.
type Parametrization string

const (
	// DirectionAndCenterpoint encodes a segment as its center and unit direction (6 values).
	DirectionAndCenterpoint Parametrization = "direction_and_centerpoint"
	// Orthonormal encodes the infinite line through a segment with 4 angles.
	Orthonormal Parametrization = "orthonormal"
)

// ParseParametrization returns the parametrization with the given name.
func ParseParametrization(name string) (Parametrization, error) {
	p := Parametrization(name)
	if _, err := p.Width(); err != nil {
		return "", err
	}
	return p, nil
}

// Width returns the number of values per line for the parametrization.
func (p Parametrization) Width() (int, error) {
	switch p {
	case DirectionAndCenterpoint:
		return 6, nil
	case Orthonormal:
		return 4, nil
	default:
		return 0, errors.Wrapf(ErrInvalidParametrization, "%q (expected %q or %q)", string(p), DirectionAndCenterpoint, Orthonormal)
	}
}

func (p Parametrization) String() string {
	return string(p)
}
