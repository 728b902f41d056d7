package logging

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// appenderCore is the zapcore.Core behind every logger: level filtering in front of a fan-out
// to the appenders.
type appenderCore struct {
	zap.AtomicLevel
	appenders []Appender
	fields    []zapcore.Field
}

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	return &appenderCore{
		AtomicLevel: c.AtomicLevel,
		appenders:   c.appenders,
		fields:      append(c.fields[:len(c.fields):len(c.fields)], fields...),
	}
}

func (c *appenderCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if len(c.fields) > 0 {
		fields = append(c.fields[:len(c.fields):len(c.fields)], fields...)
	}
	var err error
	for _, appender := range c.appenders {
		err = multierr.Append(err, appender.Write(entry, fields))
	}
	return err
}

func (c *appenderCore) Sync() error {
	var err error
	for _, appender := range c.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

type impl struct {
	name      string
	level     zap.AtomicLevel
	appenders []Appender
	sugar     *zap.SugaredLogger
}

func newImpl(name string, level Level, appenders []Appender) *impl {
	atomicLevel := zap.NewAtomicLevelAt(level)
	core := &appenderCore{AtomicLevel: atomicLevel, appenders: appenders}
	// Skip impl's own frame so callers see the line that logged.
	base := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named(name)
	return &impl{name: name, level: atomicLevel, appenders: appenders, sugar: base.Sugar()}
}

func (imp *impl) Sublogger(subname string) Logger {
	name := subname
	if imp.name != "" {
		name = imp.name + "." + subname
	}
	return newImpl(name, imp.level.Level(), imp.appenders)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.SetLevel(level)
}

func (imp *impl) Sync() error {
	return imp.sugar.Sync()
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.sugar.Debugw(msg, keysAndValues...)
}

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.sugar.Infow(msg, keysAndValues...)
}

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.sugar.Warnw(msg, keysAndValues...)
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.sugar.Errorw(msg, keysAndValues...)
}
