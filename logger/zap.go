package logger

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ZapLogger implements Logger on top of a *zap.Logger.
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

var _ Logger = (*ZapLogger)(nil)

// New builds a ZapLogger from cfg.
func New(cfg Config) (*ZapLogger, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	lvl, err := cfg.level()
	if err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	atomic := zap.NewAtomicLevelAt(lvl.zap())

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.encoding() == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	var sinks []zapcore.WriteSyncer

	if !cfg.DisableConsole {
		if cfg.Output != nil {
			sinks = append(sinks, zapcore.AddSync(cfg.Output))
		} else {
			sinks = append(sinks, zapcore.Lock(os.Stdout))
		}
	}

	if cfg.FilePath != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(cfg.MaxBackups, defaultMaxBackups),
			MaxAge:     orDefault(cfg.MaxAgeDays, defaultMaxAgeDays),
			Compress:   cfg.Compress,
		}))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), atomic)

	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if cfg.isDevelopment() {
		opts = append(opts, zap.Development())
	}

	return &ZapLogger{logger: zap.New(core, opts...), level: atomic}, nil
}

// NewWithCore wraps an existing core, e.g. zaptest/observer in tests. The core
// keeps its own level, so SetLevel has no effect on the result.
func NewWithCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{
		logger: zap.New(core),
		level:  zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}
}

func (l *ZapLogger) must() *zap.Logger {
	if l == nil || l.logger == nil {
		return zap.NewNop()
	}

	return l.logger
}

func (l *ZapLogger) Debug(msg string, fields ...Field) {
	l.must().Debug(sanitize(msg), fields...)
}

func (l *ZapLogger) Info(msg string, fields ...Field) {
	l.must().Info(sanitize(msg), fields...)
}

func (l *ZapLogger) Warn(msg string, fields ...Field) {
	l.must().Warn(sanitize(msg), fields...)
}

func (l *ZapLogger) Error(msg string, fields ...Field) {
	l.must().Error(sanitize(msg), fields...)
}

// Log dispatches to the zap level and appends trace_id and span_id when ctx
// carries a valid span context.
func (l *ZapLogger) Log(ctx context.Context, level Level, msg string, fields ...Field) {
	if ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}

	switch level {
	case LevelDebug:
		l.Debug(msg, fields...)
	case LevelWarn:
		l.Warn(msg, fields...)
	case LevelError:
		l.Error(msg, fields...)
	default:
		l.Info(msg, fields...)
	}
}

func (l *ZapLogger) With(fields ...Field) Logger {
	return &ZapLogger{
		logger: l.must().With(fields...),
		level:  l.atomicLevel(),
	}
}

func (l *ZapLogger) Enabled(level Level) bool {
	return l.must().Core().Enabled(level.zap())
}

// SetLevel changes the minimum level at runtime for this logger and its children.
func (l *ZapLogger) SetLevel(level Level) {
	if l == nil || l.logger == nil {
		return
	}

	l.level.SetLevel(level.zap())
}

func (l *ZapLogger) Sync() error {
	return l.must().Sync()
}

// Raw returns the underlying zap logger.
func (l *ZapLogger) Raw() *zap.Logger {
	return l.must()
}

func (l *ZapLogger) atomicLevel() zap.AtomicLevel {
	if l == nil {
		return zap.NewAtomicLevel()
	}

	return l.level
}
