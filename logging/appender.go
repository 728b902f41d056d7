package logging

import (
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

// TimeFormat is how appenders render entry times, always in UTC.
const TimeFormat = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. Any zapcore.Core, such as an observer, is an Appender.
type Appender interface {
	Write(zapcore.Entry, []zapcore.Field) error
	Sync() error
}

// consoleEncoder renders tab separated lines:
//
//	2023-10-30T09:12:09.459Z	DEBUG	lines.segmentation	segmentation/clusters.go:131	clustered lines	{"clusters": 3}
var consoleEncoder = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
	TimeKey:          "ts",
	LevelKey:         "level",
	NameKey:          "logger",
	CallerKey:        "caller",
	MessageKey:       "msg",
	LineEnding:       zapcore.DefaultLineEnding,
	EncodeTime:       encodeUTC,
	EncodeLevel:      zapcore.CapitalLevelEncoder,
	EncodeCaller:     zapcore.ShortCallerEncoder,
	EncodeName:       zapcore.FullNameEncoder,
	EncodeDuration:   zapcore.StringDurationEncoder,
	ConsoleSeparator: "\t",
})

func encodeUTC(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(TimeFormat))
}

func formatEntry(entry zapcore.Entry, fields []zapcore.Field) (string, error) {
	buf, err := consoleEncoder.EncodeEntry(entry, fields)
	if err != nil {
		return "", err
	}
	defer buf.Free()
	return buf.String(), nil
}

type writerAppender struct {
	w io.Writer
}

// NewWriterAppender returns an appender writing one line per entry to w. The CLI points it at
// its error writer so logs never mix with command output.
func NewWriterAppender(w io.Writer) Appender {
	return writerAppender{w}
}

func (a writerAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	line, err := formatEntry(entry, fields)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.w, line)
	return err
}

func (a writerAppender) Sync() error {
	return nil
}

type testAppender struct {
	tb testing.TB
}

// NewTestAppender returns an appender that logs through tb.Log so lines are attributed to the
// running test.
func NewTestAppender(tb testing.TB) Appender {
	return testAppender{tb}
}

func (a testAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	a.tb.Helper()
	line, err := formatEntry(entry, fields)
	a.tb.Log(strings.TrimSuffix(line, zapcore.DefaultLineEnding))
	return err
}

func (a testAppender) Sync() error {
	return nil
}
