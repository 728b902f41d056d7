package utils

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// PairDistanceFunc returns the distance between items i and j of some collection.
type PairDistanceFunc func(i, j int) (float64, error)

// PairwiseDistanceMatrix computes the n x n matrix of distances between every ordered pair
// of items. Rows are filled in parallel; each row is written by exactly one worker.
func PairwiseDistanceMatrix(ctx context.Context, n int, dist PairDistanceFunc) (*mat.Dense, error) {
	if n == 0 {
		return &mat.Dense{}, nil
	}
	rows := make([][]float64, n)
	err := ParallelForEachIndex(ctx, n, func(i int) error {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			d, err := dist(i, j)
			if err != nil {
				return errors.Wrapf(err, "distance between %d and %d", i, j)
			}
			row[j] = d
		}
		rows[i] = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	distances := mat.NewDense(n, n, nil)
	for i, row := range rows {
		distances.SetRow(i, row)
	}
	return distances, nil
}

// CheckDistanceMatrix verifies that m is square and holds only finite, non-negative values.
// It returns the side length.
func CheckDistanceMatrix(m mat.Matrix) (int, error) {
	r, c := m.Dims()
	if r != c {
		return 0, errors.Errorf("distance matrix must be square, got %dx%d", r, c)
	}
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, m)
		if floats.HasNaN(row) {
			return 0, errors.Errorf("distance matrix row %d contains NaN", i)
		}
		if minDist := floats.Min(row); minDist < 0 {
			return 0, errors.Errorf("distance matrix row %d contains negative distance %v", i, minDist)
		}
		if maxDist := floats.Max(row); math.IsInf(maxDist, 1) {
			return 0, errors.Errorf("distance matrix row %d contains an infinite distance", i)
		}
	}
	return r, nil
}

// IsSymmetricWithin reports whether m is square and |m(i,j) - m(j,i)| <= tol everywhere.
func IsSymmetricWithin(m mat.Matrix, tol float64) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if !scalar.EqualWithinAbs(m.At(i, j), m.At(j, i), tol) {
				return false
			}
		}
	}
	return true
}
