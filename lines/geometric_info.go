package lines

import (
	"context"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/lines/spatialmath"
	"go.viam.com/lines/utils"
)

// Converter turns endpoint pairs into one of the supported parametrizations.
type Converter struct {
	Parametrization Parametrization
	// RotationTolerance bounds ||I - U*U^T|| for the orthonormal parametrization. Zero means
	// spatialmath.DefaultRotationTolerance.
	RotationTolerance float64
}

// GeometricInfo converts every (starts[i], ends[i]) pair with the default rotation tolerance.
// See Converter.GeometricInfo.
func GeometricInfo(ctx context.Context, starts, ends []r3.Vector, mode Parametrization) (*mat.Dense, error) {
	return Converter{Parametrization: mode}.GeometricInfo(ctx, starts, ends)
}

// GeometricInfo returns an N x 6 (direction and centerpoint) or N x 4 (orthonormal) matrix,
// one row per endpoint pair. Inputs are checked before any conversion; if any row fails the
// errors of all failing rows are returned together and no matrix is produced. An empty batch
// gives an empty matrix.
func (c Converter) GeometricInfo(ctx context.Context, starts, ends []r3.Vector) (*mat.Dense, error) {
	width, err := c.Parametrization.Width()
	if err != nil {
		return nil, err
	}
	if len(starts) != len(ends) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d start points but %d end points", len(starts), len(ends))
	}
	n := len(starts)
	if n == 0 {
		return &mat.Dense{}, nil
	}

	values := make([]float64, n*width)
	rowErrs := make([]error, n)
	err = utils.GroupWorkParallel(
		ctx,
		n,
		nil,
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			return func(memberNum, workNum int) error {
				if err := c.convert(starts[workNum], ends[workNum], values[workNum*width:(workNum+1)*width]); err != nil {
					rowErrs[workNum] = errors.Wrapf(err, "line %d", workNum)
				}
				return nil
			}, nil
		},
	)
	if err != nil {
		return nil, err
	}
	if err := multierr.Combine(rowErrs...); err != nil {
		return nil, err
	}
	return mat.NewDense(n, width, values), nil
}

// convert writes the parametrization of one line into dst.
func (c Converter) convert(start, end r3.Vector, dst []float64) error {
	switch c.Parametrization {
	case DirectionAndCenterpoint:
		cd, err := spatialmath.EndpointsToCenterpointAndDirection(start, end)
		if err != nil {
			return err
		}
		v := cd.Vector()
		copy(dst, v[:])
	case Orthonormal:
		p, err := spatialmath.EndpointsToPluecker(start, end)
		if err != nil {
			return err
		}
		o, err := spatialmath.PlueckerToOrthonormal(p, c.tolerance())
		if err != nil {
			return err
		}
		copy(dst, o.Theta[:])
	default:
		return errors.Wrapf(ErrInvalidParametrization, "%q", string(c.Parametrization))
	}
	return nil
}

func (c Converter) tolerance() float64 {
	if c.RotationTolerance <= 0 {
		return spatialmath.DefaultRotationTolerance
	}
	return c.RotationTolerance
}

// CentersWithLabels reduces N x 7 rows of [start, end, instance label] to N x 4 rows of
// [center, instance label].
func CentersWithLabels(labeled mat.Matrix) (*mat.Dense, error) {
	n, cols := labeled.Dims()
	if cols != 7 {
		return nil, errors.Wrapf(ErrShapeMismatch, "labeled lines need 7 columns, got %d", cols)
	}
	if n == 0 {
		return &mat.Dense{}, nil
	}
	out := mat.NewDense(n, 4, nil)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			out.Set(i, k, (labeled.At(i, k)+labeled.At(i, k+3))/2)
		}
		out.Set(i, 3, labeled.At(i, 6))
	}
	return out, nil
}
