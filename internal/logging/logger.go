package logging

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level selects how chatty the logger is. Higher values log more.
type Level int

const (
	// LevelCritical only emits diagnostics that abort the run.
	LevelCritical Level = iota
	// LevelInfo adds progress messages (notes loaded, stdin read).
	LevelInfo
	// LevelDebug adds the full list of loaded failure names.
	LevelDebug
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "critical"
	}
}

// LevelFromVerbosity maps a repeat count of -v onto a Level.
func LevelFromVerbosity(count int) Level {
	switch {
	case count >= 2:
		return LevelDebug
	case count == 1:
		return LevelInfo
	default:
		return LevelCritical
	}
}

// Logger is the capability components receive instead of reaching for a
// process-wide logger.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Criticalf(format string, args ...any)
	Sync() error
}

// ZapLogger writes timestamped console lines through zap.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a logger that writes to w, filtering anything below level.
func New(w io.Writer, level Level) *ZapLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = ""
	encCfg.StacktraceKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(zapLevel(level)),
	)
	return &ZapLogger{sugar: zap.New(core).Sugar()}
}

// zapLevel maps critical onto zap's error level; zap has no critical level
// that does not also panic or exit.
func zapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Debugf logs a debug message.
func (l *ZapLogger) Debugf(format string, args ...any) {
	l.sugar.Debugf(trimLine(format), args...)
}

// Infof logs an informational message.
func (l *ZapLogger) Infof(format string, args ...any) {
	l.sugar.Infof(trimLine(format), args...)
}

// Criticalf logs a message that is always shown.
func (l *ZapLogger) Criticalf(format string, args ...any) {
	l.sugar.Errorf(trimLine(format), args...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

func trimLine(format string) string {
	return strings.TrimRight(format, "\n")
}

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debugf(string, ...any)    {}
func (nopLogger) Infof(string, ...any)     {}
func (nopLogger) Criticalf(string, ...any) {}
func (nopLogger) Sync() error              { return nil }
