package segmentation

import (
	"context"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/lines/lines"
	"go.viam.com/lines/logging"
)

// LineClusters keeps track of the cluster each valid line of a batch was assigned to.
// Labels[i] is the cluster of the i-th valid line, whose row in the batch is BatchIndices[i].
type LineClusters struct {
	Labels       []int
	BatchIndices []int
	// Distances is the valid-line distance matrix the clusters were built from, if known.
	Distances *mat.Dense

	numClusters int
	batchLen    int
}

// NewLineClusters creates a LineClusters over a batch of batchLen rows.
func NewLineClusters(batchLen int, batchIndices, labels []int) (*LineClusters, error) {
	if len(batchIndices) != len(labels) {
		return nil, errors.Errorf("%d batch indices but %d labels", len(batchIndices), len(labels))
	}
	numClusters := 0
	for i, label := range labels {
		if label < 0 {
			return nil, errors.Errorf("line %d has negative cluster label %d", batchIndices[i], label)
		}
		if batchIndices[i] < 0 || batchIndices[i] >= batchLen {
			return nil, errors.Errorf("batch index %d out of range [0, %d)", batchIndices[i], batchLen)
		}
		if label+1 > numClusters {
			numClusters = label + 1
		}
	}
	return &LineClusters{
		Labels:       labels,
		BatchIndices: batchIndices,
		numClusters:  numClusters,
		batchLen:     batchLen,
	}, nil
}

// N gives the number of clusters.
func (lc *LineClusters) N() int {
	return lc.numClusters
}

// Members returns the batch rows of the lines in the given cluster.
func (lc *LineClusters) Members(cluster int) []int {
	var members []int
	for i, label := range lc.Labels {
		if label == cluster {
			members = append(members, lc.BatchIndices[i])
		}
	}
	return members
}

// BatchLabels returns the cluster of every batch row, -1 for rows that were not clustered.
func (lc *LineClusters) BatchLabels() []int {
	out := make([]int, lc.batchLen)
	for i := range out {
		out[i] = -1
	}
	for i, label := range lc.Labels {
		out[lc.BatchIndices[i]] = label
	}
	return out
}

// OneHot returns a batchLen x (maxClusters+1) matrix where clustered row r has a 1 in column
// label+1. Column 0 is reserved for background and left empty.
func (lc *LineClusters) OneHot(maxClusters int) (*mat.Dense, error) {
	if lc.numClusters > maxClusters {
		return nil, errors.Wrapf(ErrInvalidClusterCount, "%d clusters do not fit in %d columns", lc.numClusters, maxClusters)
	}
	if lc.batchLen == 0 {
		return &mat.Dense{}, nil
	}
	out := mat.NewDense(lc.batchLen, maxClusters+1, nil)
	for i, label := range lc.Labels {
		out.Set(lc.BatchIndices[i], label+1, 1)
	}
	return out, nil
}

// ClusterLines computes the distance matrix of the valid lines of batch and clusters it into
// numClusters groups.
func ClusterLines(
	ctx context.Context,
	batch *lines.Batch,
	clusterer Clusterer,
	numClusters int,
	logger logging.Logger,
) (*LineClusters, error) {
	indices := batch.ValidIndices()
	if numClusters < 1 || numClusters > len(indices) {
		return nil, errors.Wrapf(ErrInvalidClusterCount, "cannot form %d clusters from %d valid lines", numClusters, len(indices))
	}

	distances, err := LineDistanceMatrix(ctx, batch)
	if err != nil {
		return nil, errors.Wrap(err, "computing line distances")
	}
	logger.Debugw("computed line distance matrix", "lines", batch.Len(), "valid", len(indices))

	labels, err := clusterer.Cluster(ctx, distances, numClusters)
	if err != nil {
		return nil, errors.Wrap(err, "clustering lines")
	}
	if len(labels) != len(indices) {
		return nil, errors.Errorf("clusterer returned %d labels for %d lines", len(labels), len(indices))
	}

	clusters, err := NewLineClusters(batch.Len(), indices, labels)
	if err != nil {
		return nil, err
	}
	clusters.Distances = distances
	if clusters.N() != numClusters {
		logger.Warnw("clusterer produced a different number of clusters than requested",
			"requested", numClusters, "produced", clusters.N())
	}
	logger.Debugw("clustered lines", "clusters", clusters.N())
	return clusters, nil
}
