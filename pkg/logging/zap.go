package logging

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements Logger on a zap core. Children created with With
// share the parent's level.
type ZapLogger struct {
	base  *zap.Logger
	level zap.AtomicLevel
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "msg"
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

// NewJSONLogger writes one JSON object per line
func NewJSONLogger(w io.Writer, level Level) *ZapLogger {
	return newZapLogger(zapcore.NewJSONEncoder(encoderConfig()), w, level)
}

// NewConsoleLogger writes tab-separated human-readable lines
func NewConsoleLogger(w io.Writer, level Level) *ZapLogger {
	cfg := encoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	return newZapLogger(zapcore.NewConsoleEncoder(cfg), w, level)
}

func newZapLogger(enc zapcore.Encoder, w io.Writer, level Level) *ZapLogger {
	atom := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), atom)
	return &ZapLogger{base: zap.New(core), level: atom}
}

func (l *ZapLogger) Debug(msg string, fields ...Field) { l.base.Debug(msg, fields...) }
func (l *ZapLogger) Info(msg string, fields ...Field)  { l.base.Info(msg, fields...) }
func (l *ZapLogger) Warn(msg string, fields ...Field)  { l.base.Warn(msg, fields...) }
func (l *ZapLogger) Error(msg string, fields ...Field) { l.base.Error(msg, fields...) }

func (l *ZapLogger) With(fields ...Field) Logger {
	return &ZapLogger{base: l.base.With(fields...), level: l.level}
}

func (l *ZapLogger) SetLevel(level Level) { l.level.SetLevel(level) }
func (l *ZapLogger) GetLevel() Level      { return l.level.Level() }

// Zap exposes the underlying zap logger
func (l *ZapLogger) Zap() *zap.Logger { return l.base }

// Sync flushes buffered entries
func (l *ZapLogger) Sync() error { return l.base.Sync() }
