// Package cli contains the command line front end of the line pipeline.
package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagConfig      = "config"
	flagDebug       = "debug"
	flagDegrees     = "degrees"
	flagNumClusters = "num-clusters"
	flagOneHot      = "one-hot"
)

var app = &cli.App{
	Name:            "lines",
	Usage:           "convert and cluster 3D line segment detections",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.PathFlag{
			Name:     flagConfig,
			Aliases:  []string{"c"},
			Required: true,
			Usage:    "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    flagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "geometry",
			Usage:     "print the configured parametrization of every valid line",
			ArgsUsage: "<batch.json>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  flagDegrees,
					Usage: "print orthonormal angles in degrees",
				},
			},
			Action: GeometryAction,
		},
		{
			Name:      "cluster",
			Usage:     "cluster the valid lines into object instances",
			ArgsUsage: "<batch.json>",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  flagNumClusters,
					Usage: "number of clusters, overrides num_clusters from the config",
				},
				&cli.BoolFlag{
					Name:  flagOneHot,
					Usage: "also print the one-hot cluster matrix",
				},
			},
			Action: ClusterAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}

// printf prints a message with a newline at the end.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
