// Package config defines the line pipeline configuration and how it is read from disk.
package config

import (
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"go.viam.com/lines/lines"
	"go.viam.com/lines/logging"
	"go.viam.com/lines/spatialmath"
	"go.viam.com/lines/utils"
)

// DefaultMaxClusters is the number of cluster columns in one-hot output when none is configured.
const DefaultMaxClusters = 15

// A Config describes how to convert and cluster a batch of lines.
type Config struct {
	ConfigFilePath string `json:"-"`

	Parametrization   string  `json:"parametrization"`
	// NumClusters is the cluster count for the cluster command. Zero means unset, in which case the
	// command needs --num-clusters.
	NumClusters       int     `json:"num_clusters"`
	MaxClusters       int     `json:"max_clusters,omitempty"`
	RotationTolerance float64 `json:"rotation_tolerance,omitempty"`
	// ParallelFactor overrides utils.ParallelFactor when positive.
	ParallelFactor int    `json:"parallel_factor,omitempty"`
	LogLevel       string `json:"log_level,omitempty"`
}

// Validate ensures all parts of the config are valid and fills in defaults.
func (c *Config) Validate(path string) error {
	if c.Parametrization == "" {
		return goutils.NewConfigValidationFieldRequiredError(path, "parametrization")
	}
	if _, err := lines.ParseParametrization(c.Parametrization); err != nil {
		return goutils.NewConfigValidationError(path, err)
	}
	if c.NumClusters < 0 {
		return goutils.NewConfigValidationError(path, errors.Errorf("num_clusters must be non-negative, got %d", c.NumClusters))
	}
	if c.MaxClusters == 0 {
		c.MaxClusters = DefaultMaxClusters
	}
	if c.MaxClusters < c.NumClusters {
		return goutils.NewConfigValidationError(path,
			errors.Errorf("max_clusters (%d) is less than num_clusters (%d)", c.MaxClusters, c.NumClusters))
	}
	if c.RotationTolerance < 0 {
		return goutils.NewConfigValidationError(path, errors.Errorf("rotation_tolerance must be positive, got %v", c.RotationTolerance))
	}
	if c.RotationTolerance == 0 {
		c.RotationTolerance = spatialmath.DefaultRotationTolerance
	}
	if c.ParallelFactor < 0 {
		return goutils.NewConfigValidationError(path, errors.Errorf("parallel_factor must be non-negative, got %d", c.ParallelFactor))
	}
	if c.LogLevel == "" {
		c.LogLevel = logging.INFO.String()
	}
	if _, err := logging.LevelFromString(c.LogLevel); err != nil {
		return goutils.NewConfigValidationError(path, err)
	}
	return nil
}

// Converter returns the line converter described by the config. The config must be valid.
func (c *Config) Converter() lines.Converter {
	return lines.Converter{
		Parametrization:   lines.Parametrization(c.Parametrization),
		RotationTolerance: c.RotationTolerance,
	}
}

// Level returns the configured log level, INFO if it does not parse.
func (c *Config) Level() logging.Level {
	level, err := logging.LevelFromString(c.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// ApplyParallelFactor sets utils.ParallelFactor when the config overrides it.
func (c *Config) ApplyParallelFactor() {
	if c.ParallelFactor > 0 {
		utils.ParallelFactor = c.ParallelFactor
	}
}
