package lines

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/lines/spatialmath"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestParseParametrization(t *testing.T) {
	p, err := ParseParametrization("orthonormal")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p, test.ShouldEqual, Orthonormal)

	p, err = ParseParametrization("direction_and_centerpoint")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.String(), test.ShouldEqual, "direction_and_centerpoint")

	_, err = ParseParametrization("pluecker")
	test.That(t, errors.Is(err, ErrInvalidParametrization), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"pluecker"`)
}

func TestGeometricInfoDirectionAndCenterpoint(t *testing.T) {
	starts := []r3.Vector{{}, {X: 1}}
	ends := []r3.Vector{{X: 2}, {X: -1}}
	info, err := GeometricInfo(context.Background(), starts, ends, DirectionAndCenterpoint)
	test.That(t, err, test.ShouldBeNil)

	r, c := info.Dims()
	test.That(t, r, test.ShouldEqual, 2)
	test.That(t, c, test.ShouldEqual, 6)
	test.That(t, cmp.Diff(mat.Row(nil, 0, info), []float64{1, 0, 0, 1, 0, 0}, approx), test.ShouldBeEmpty)
	test.That(t, cmp.Diff(mat.Row(nil, 1, info), []float64{0, 0, 0, 1, 0, 0}, approx), test.ShouldBeEmpty)
}

func TestGeometricInfoOrthonormal(t *testing.T) {
	starts := []r3.Vector{{Y: 1}, {X: 1, Y: 2, Z: 3}}
	ends := []r3.Vector{{X: 2, Y: 1}, {X: -2, Y: 0.5, Z: 4}}
	info, err := GeometricInfo(context.Background(), starts, ends, Orthonormal)
	test.That(t, err, test.ShouldBeNil)

	r, c := info.Dims()
	test.That(t, r, test.ShouldEqual, 2)
	test.That(t, c, test.ShouldEqual, 4)
	test.That(t, info.At(0, 3), test.ShouldAlmostEqual, math.Pi/4)

	// Each row agrees with the single-line conversion.
	for i := range starts {
		p, err := spatialmath.EndpointsToPluecker(starts[i], ends[i])
		test.That(t, err, test.ShouldBeNil)
		o, err := p.Orthonormal()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, cmp.Diff(mat.Row(nil, i, info), o.Theta[:], approx), test.ShouldBeEmpty)
	}
}

func TestGeometricInfoLarge(t *testing.T) {
	n := 500
	starts := make([]r3.Vector, n)
	ends := make([]r3.Vector, n)
	for i := range starts {
		f := float64(i)
		starts[i] = r3.Vector{X: f, Y: 1, Z: -f}
		ends[i] = r3.Vector{X: f + 1, Y: 2 + f, Z: 3}
	}
	info, err := Converter{Parametrization: DirectionAndCenterpoint}.GeometricInfo(context.Background(), starts, ends)
	test.That(t, err, test.ShouldBeNil)
	for i := range starts {
		cd, err := spatialmath.EndpointsToCenterpointAndDirection(starts[i], ends[i])
		test.That(t, err, test.ShouldBeNil)
		v := cd.Vector()
		test.That(t, cmp.Diff(mat.Row(nil, i, info), v[:], approx), test.ShouldBeEmpty)
	}
}

func TestGeometricInfoErrors(t *testing.T) {
	ctx := context.Background()

	_, err := GeometricInfo(ctx, []r3.Vector{{}}, []r3.Vector{{X: 1}}, "plucker")
	test.That(t, errors.Is(err, ErrInvalidParametrization), test.ShouldBeTrue)

	_, err = GeometricInfo(ctx, []r3.Vector{{}, {}}, []r3.Vector{{X: 1}}, Orthonormal)
	test.That(t, errors.Is(err, ErrShapeMismatch), test.ShouldBeTrue)

	info, err := GeometricInfo(ctx, nil, nil, Orthonormal)
	test.That(t, err, test.ShouldBeNil)
	r, _ := info.Dims()
	test.That(t, r, test.ShouldEqual, 0)

	// Rows 1 and 2 both fail and both are reported; no matrix comes back.
	starts := []r3.Vector{{Y: 1}, {X: 1, Y: 1, Z: 1}, {X: 3}}
	ends := []r3.Vector{{X: 2, Y: 1}, {X: 2, Y: 2, Z: 2}, {X: 3}}
	info, err = GeometricInfo(ctx, starts, ends, Orthonormal)
	test.That(t, info, test.ShouldBeNil)
	test.That(t, errors.Is(err, spatialmath.ErrDegenerateLine), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "line 1")
	test.That(t, err.Error(), test.ShouldContainSubstring, "line 2")
	test.That(t, err.Error(), test.ShouldNotContainSubstring, "line 0")

	// The origin line is fine for the centerpoint parametrization.
	_, err = GeometricInfo(ctx, starts[:2], ends[:2], DirectionAndCenterpoint)
	test.That(t, err, test.ShouldBeNil)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = GeometricInfo(canceled, starts[:1], ends[:1], DirectionAndCenterpoint)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}

func TestGeometricInfoRotationTolerance(t *testing.T) {
	conv := Converter{Parametrization: Orthonormal, RotationTolerance: 1e-12}
	info, err := conv.GeometricInfo(context.Background(), []r3.Vector{{Y: 1}}, []r3.Vector{{X: 2, Y: 1}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.At(0, 3), test.ShouldAlmostEqual, math.Pi/4)
}

func TestCentersWithLabels(t *testing.T) {
	labeled := mat.NewDense(2, 7, []float64{
		0, 0, 0, 2, 4, 6, 3,
		-1, 1, 5, 1, 1, 7, 0,
	})
	centers, err := CentersWithLabels(labeled)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mat.Row(nil, 0, centers), test.ShouldResemble, []float64{1, 2, 3, 3})
	test.That(t, mat.Row(nil, 1, centers), test.ShouldResemble, []float64{0, 1, 6, 0})

	_, err = CentersWithLabels(mat.NewDense(1, 6, nil))
	test.That(t, errors.Is(err, ErrShapeMismatch), test.ShouldBeTrue)
}
