package lines

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/lines/spatialmath"
)

// Batch is a set of detected line segments, one per row of [start (3), end (3), extra...],
// with a mask marking which rows hold real detections.
type Batch struct {
	rows  [][]float64
	valid []bool
}

// NewBatch creates a batch from an N x C matrix with C >= 6. A nil mask marks every row valid.
func NewBatch(data mat.Matrix, valid []bool) (*Batch, error) {
	n, cols := data.Dims()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, data)
	}
	if n > 0 && cols < 6 {
		return nil, errors.Wrapf(ErrShapeMismatch, "line rows need at least 6 columns, got %d", cols)
	}
	return newBatch(rows, valid)
}

// NewBatchFromRows creates a batch from rows of at least 6 values each. A nil mask marks
// every row valid.
func NewBatchFromRows(rows [][]float64, valid []bool) (*Batch, error) {
	for i, row := range rows {
		if len(row) < 6 {
			return nil, errors.Wrapf(ErrShapeMismatch, "line %d has %d values, need at least 6", i, len(row))
		}
	}
	return newBatch(rows, valid)
}

func newBatch(rows [][]float64, valid []bool) (*Batch, error) {
	if valid == nil {
		valid = lo.Times(len(rows), func(int) bool { return true })
	}
	if len(valid) != len(rows) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d lines but %d validity flags", len(rows), len(valid))
	}
	return &Batch{rows: rows, valid: valid}, nil
}

// Len returns the number of rows, valid or not.
func (b *Batch) Len() int {
	return len(b.rows)
}

// Valid reports whether row i holds a real detection.
func (b *Batch) Valid(i int) bool {
	return b.valid[i]
}

// Segment returns row i as a segment. It is not validated.
func (b *Batch) Segment(i int) spatialmath.LineSegment {
	row := b.rows[i]
	return spatialmath.LineSegment{
		Start: r3.Vector{X: row[0], Y: row[1], Z: row[2]},
		End:   r3.Vector{X: row[3], Y: row[4], Z: row[5]},
	}
}

// Starts returns the start point of every row.
func (b *Batch) Starts() []r3.Vector {
	return lo.Times(b.Len(), func(i int) r3.Vector { return b.Segment(i).Start })
}

// Ends returns the end point of every row.
func (b *Batch) Ends() []r3.Vector {
	return lo.Times(b.Len(), func(i int) r3.Vector { return b.Segment(i).End })
}

// ValidIndices returns the rows marked valid, in order.
func (b *Batch) ValidIndices() []int {
	return lo.Filter(lo.Range(b.Len()), func(i, _ int) bool { return b.valid[i] })
}

// NumValid returns the number of rows marked valid.
func (b *Batch) NumValid() int {
	return lo.Count(b.valid, true)
}

// ValidSegments returns the segments of the valid rows, in order.
func (b *Batch) ValidSegments() []spatialmath.LineSegment {
	return lo.Map(b.ValidIndices(), func(i, _ int) spatialmath.LineSegment { return b.Segment(i) })
}
