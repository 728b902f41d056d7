package logging

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a logger emits.
type Level = zapcore.Level

// Levels accepted in configs.
const (
	DEBUG = zapcore.DebugLevel
	INFO  = zapcore.InfoLevel
	WARN  = zapcore.WarnLevel
	ERROR = zapcore.ErrorLevel
)

// LevelFromString parses one of debug, info, warn (or warning) and error, ignoring case.
func LevelFromString(inp string) (Level, error) {
	switch name := strings.ToLower(inp); name {
	case "debug", "info", "warn", "error":
		return zapcore.ParseLevel(name)
	case "warning":
		return WARN, nil
	}
	return DEBUG, errors.Errorf("unknown log level: %q", inp)
}
