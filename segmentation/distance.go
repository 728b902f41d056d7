package segmentation

import (
	"context"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/lines/lines"
	"go.viam.com/lines/spatialmath"
	"go.viam.com/lines/utils"
)

// LineDistanceMatrix returns the M x M matrix of clamped segment-to-segment distances between
// the M valid lines of the batch, in batch order. Invalid rows are skipped entirely; a valid row
// with zero length or non-finite coordinates fails the whole call.
func LineDistanceMatrix(ctx context.Context, batch *lines.Batch) (*mat.Dense, error) {
	indices := batch.ValidIndices()
	segments := make([]spatialmath.LineSegment, len(indices))
	for i, idx := range indices {
		raw := batch.Segment(idx)
		seg, err := spatialmath.NewLineSegment(raw.Start, raw.End)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", idx)
		}
		segments[i] = seg
	}

	return utils.PairwiseDistanceMatrix(ctx, len(segments), func(i, j int) (float64, error) {
		if i == j {
			return 0, nil
		}
		return segments[i].DistanceToSegment(segments[j]), nil
	})
}
