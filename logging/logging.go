// Package logging contains the leveled, structured logger used throughout the line pipeline.
// Loggers are zap loggers whose entries fan out to a set of appenders.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is the structured logger handed to pipeline stages.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a logger named "<parent>.<subname>" writing to the same appenders. It
	// starts at the parent's current level; later level changes on either side are not shared.
	Sublogger(subname string) Logger
	SetLevel(level Level)
	Sync() error
}

// NewLogger returns a logger at level that writes every entry to each appender.
func NewLogger(name string, level Level, appenders ...Appender) Logger {
	return newImpl(name, level, appenders)
}

// NewTestLogger returns a new logger that outputs Debug+ logs to the test object.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also saves logs to an in memory observer.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	observerCore, observedLogs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	return NewLogger("", DEBUG, NewTestAppender(tb), observerCore), observedLogs
}
