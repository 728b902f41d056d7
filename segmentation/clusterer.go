// Package segmentation groups detected line segments into object instances by clustering their
// pairwise segment distances.
package segmentation

import (
	"context"
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/lines/utils"
)

// ErrInvalidClusterCount is returned when the requested number of clusters cannot be formed.
var ErrInvalidClusterCount = errors.New("invalid cluster count")

// A Clusterer assigns each of the M items of an M x M distance matrix to one of numClusters
// clusters. Labels are in [0, numClusters).
type Clusterer interface {
	Cluster(ctx context.Context, distances mat.Matrix, numClusters int) ([]int, error)
}

// ClustererFunc adapts a function to the Clusterer interface.
type ClustererFunc func(ctx context.Context, distances mat.Matrix, numClusters int) ([]int, error)

// Cluster calls f.
func (f ClustererFunc) Cluster(ctx context.Context, distances mat.Matrix, numClusters int) ([]int, error) {
	return f(ctx, distances, numClusters)
}

// SingleLinkageClusterer performs single-linkage agglomerative clustering on a precomputed
// distance matrix. Merging until numClusters remain is the same as cutting the numClusters-1
// heaviest edges of a minimum spanning tree, which is how it is computed.
//
// Labels are dense and ordered by the smallest item index in each cluster. When several tree
// edges share the cut weight, which of them is cut is unspecified.
type SingleLinkageClusterer struct{}

// Cluster implements Clusterer. The matrix must be square with finite, non-negative entries;
// an asymmetric matrix is read as min(d(i,j), d(j,i)).
func (SingleLinkageClusterer) Cluster(ctx context.Context, distances mat.Matrix, numClusters int) ([]int, error) {
	n, err := utils.CheckDistanceMatrix(distances)
	if err != nil {
		return nil, err
	}
	if numClusters < 1 || numClusters > n {
		return nil, errors.Wrapf(ErrInvalidClusterCount, "cannot form %d clusters from %d items", numClusters, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := math.Min(distances.At(i, j), distances.At(j, i))
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), w))
		}
	}

	tree := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	path.Kruskal(tree, g)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	edges := graph.WeightedEdgesOf(tree.WeightedEdges())
	sort.Slice(edges, func(a, b int) bool {
		return edges[a].Weight() > edges[b].Weight()
	})
	for _, e := range edges[:numClusters-1] {
		tree.RemoveEdge(e.From().ID(), e.To().ID())
	}

	return labelComponents(topo.ConnectedComponents(tree), n), nil
}

// labelComponents numbers components by their smallest node ID.
func labelComponents(components [][]graph.Node, n int) []int {
	type component struct {
		minID   int64
		members []graph.Node
	}
	ordered := make([]component, 0, len(components))
	for _, members := range components {
		minID := int64(math.MaxInt64)
		for _, node := range members {
			if node.ID() < minID {
				minID = node.ID()
			}
		}
		ordered = append(ordered, component{minID, members})
	}
	sort.Slice(ordered, func(a, b int) bool { return ordered[a].minID < ordered[b].minID })

	labels := make([]int, n)
	for label, c := range ordered {
		for _, node := range c.members {
			labels[node.ID()] = label
		}
	}
	return labels
}
