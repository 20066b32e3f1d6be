package log

import (
	"go.uber.org/zap"
)

// ZapLogger adapts a zap logger to the 'Logger' interface, allowing applications which already use zap to plumb their
// logger into the library without writing an adapter themselves.
type ZapLogger struct {
	sugared *zap.SugaredLogger
}

// NewZapLogger creates a new zap backed logger using the given logger.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	// Skip one level of callers so log lines are attributed to the library call site, not this adapter
	return &ZapLogger{sugared: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// Log maps the library log levels onto their closest zap equivalents.
//
// NOTE: Zap has no trace level, and panicking is left to the caller, so trace maps to debug and panic logs at the
// error level.
func (z *ZapLogger) Log(level Level, format string, args ...any) {
	switch level {
	case LevelTrace, LevelDebug:
		z.sugared.Debugf(format, args...)
	case LevelInfo:
		z.sugared.Infof(format, args...)
	case LevelWarning:
		z.sugared.Warnf(format, args...)
	case LevelError, LevelPanic:
		z.sugared.Errorf(format, args...)
	}
}
