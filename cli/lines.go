package cli

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/lines/config"
	"go.viam.com/lines/lines"
	"go.viam.com/lines/logging"
	"go.viam.com/lines/segmentation"
	"go.viam.com/lines/spatialmath"
)

// setup reads the config, the batch named by the first argument and builds a logger that writes
// to the app's error writer.
func setup(c *cli.Context) (*config.Config, *lines.Batch, logging.Logger, error) {
	cfg, err := config.Read(c.Path(flagConfig))
	if err != nil {
		return nil, nil, nil, err
	}
	cfg.ApplyParallelFactor()

	level := cfg.Level()
	if c.Bool(flagDebug) {
		level = logging.DEBUG
	}
	logger := logging.NewLogger("lines", level, logging.NewWriterAppender(c.App.ErrWriter))

	if c.Args().Len() != 1 {
		return nil, nil, nil, errors.New("expected exactly one line batch file")
	}
	batch, err := readBatch(c.Args().First())
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Debugw("read line batch", "lines", batch.Len(), "valid", batch.NumValid())
	return cfg, batch, logger, nil
}

// GeometryAction prints one row per valid line: its batch index then its parametrization.
func GeometryAction(c *cli.Context) error {
	cfg, batch, logger, err := setup(c)
	if err != nil {
		return err
	}
	conv := cfg.Converter()
	segments := batch.ValidSegments()
	info, err := conv.GeometricInfo(
		c.Context,
		lo.Map(segments, func(s spatialmath.LineSegment, _ int) r3.Vector { return s.Start }),
		lo.Map(segments, func(s spatialmath.LineSegment, _ int) r3.Vector { return s.End }),
	)
	if err != nil {
		return err
	}
	logger.Infow("converted lines", "parametrization", conv.Parametrization.String(), "lines", len(segments))

	inDegrees := c.Bool(flagDegrees) && conv.Parametrization == lines.Orthonormal
	for i, idx := range batch.ValidIndices() {
		row := mat.Row(nil, i, info)
		if inDegrees {
			row = lo.Map(row, func(v float64, _ int) float64 { return mgl64.RadToDeg(v) })
		}
		printf(c.App.Writer, "%d\t%s", idx, formatRow(row))
	}
	return nil
}

// ClusterAction prints the cluster of every batch row (-1 for invalid rows), a per-cluster
// summary and statistics of the pairwise line distances.
func ClusterAction(c *cli.Context) error {
	cfg, batch, logger, err := setup(c)
	if err != nil {
		return err
	}
	numClusters := cfg.NumClusters
	if c.IsSet(flagNumClusters) {
		numClusters = c.Int(flagNumClusters)
	}
	if numClusters == 0 {
		return errors.Errorf("no cluster count: set num_clusters in %q or pass --%s",
			cfg.ConfigFilePath, flagNumClusters)
	}

	clusters, err := segmentation.ClusterLines(
		c.Context,
		batch,
		segmentation.SingleLinkageClusterer{},
		numClusters,
		logger.Sublogger("segmentation"),
	)
	if err != nil {
		return err
	}

	for row, label := range clusters.BatchLabels() {
		printf(c.App.Writer, "%d\t%d", row, label)
	}

	printf(c.App.Writer, "%s", clusterTable(clusters))

	if summary, ok := summarizeDistances(clusters.Distances); ok {
		printf(c.App.Writer, "distances: min %.6f max %.6f mean %.6f median %.6f",
			summary.min, summary.max, summary.mean, summary.median)
	}

	if c.Bool(flagOneHot) {
		oneHot, err := clusters.OneHot(cfg.MaxClusters)
		if err != nil {
			return err
		}
		printf(c.App.Writer, "%v", mat.Formatted(oneHot, mat.Squeeze()))
	}
	return nil
}

// clusterTable renders one row per cluster with its size and batch rows.
func clusterTable(clusters *segmentation.LineClusters) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"cluster", "lines", "rows"})
	for cluster := 0; cluster < clusters.N(); cluster++ {
		members := clusters.Members(cluster)
		rows := lo.Map(members, func(row, _ int) string { return strconv.Itoa(row) })
		tw.AppendRow(table.Row{cluster, len(members), strings.Join(rows, " ")})
	}
	return tw.Render()
}

type distanceSummary struct {
	min, max, mean, median float64
}

// summarizeDistances describes the distances between distinct lines. It reports false when
// there are fewer than two lines.
func summarizeDistances(distances *mat.Dense) (distanceSummary, bool) {
	if distances == nil {
		return distanceSummary{}, false
	}
	n, _ := distances.Dims()
	var pairs stats.Float64Data
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, distances.At(i, j))
		}
	}
	if len(pairs) == 0 {
		return distanceSummary{}, false
	}

	var summary distanceSummary
	var err error
	if summary.min, err = stats.Min(pairs); err != nil {
		return distanceSummary{}, false
	}
	if summary.max, err = stats.Max(pairs); err != nil {
		return distanceSummary{}, false
	}
	if summary.mean, err = stats.Mean(pairs); err != nil {
		return distanceSummary{}, false
	}
	if summary.median, err = stats.Median(pairs); err != nil {
		return distanceSummary{}, false
	}
	return summary, true
}

func formatRow(row []float64) string {
	return strings.Join(lo.Map(row, func(v float64, _ int) string {
		return strconv.FormatFloat(v, 'f', 6, 64)
	}), "\t")
}
